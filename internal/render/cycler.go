package render

import (
	"sync"
	"time"
)

// LoadingInterval is how long each loading message stays on screen.
const LoadingInterval = time.Second

// Ticker is the part of time.Ticker the cycler needs.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) Chan() <-chan time.Time { return t.C }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

// Tick is one step of the loading cycle.
type Tick struct {
	Index   int
	Message string
}

// Cycler steps through the loading messages while a submission is in flight.
// Start acquires the timer, Stop releases it; after Stop returns nothing is
// sent on the channel handed out by Start.
type Cycler struct {
	messages  []string
	interval  time.Duration
	newTicker func(time.Duration) Ticker

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewCycler(messages []string) *Cycler {
	return NewCyclerWithTicker(messages, newTimeTicker)
}

// NewCyclerWithTicker lets callers drive the cycle from their own ticker.
func NewCyclerWithTicker(messages []string, newTicker func(time.Duration) Ticker) *Cycler {
	if len(messages) == 0 {
		messages = DefaultMessages
	}
	return &Cycler{
		messages:  append([]string(nil), messages...),
		interval:  LoadingInterval,
		newTicker: newTicker,
	}
}

// Start (re)starts the cycle at the first message and returns it together
// with the channel carrying every following step.
func (c *Cycler) Start() (Tick, <-chan Tick) {
	c.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	stop := make(chan struct{})
	done := make(chan struct{})
	ticks := make(chan Tick)
	c.stop, c.done = stop, done
	go c.run(c.newTicker(c.interval), ticks, stop, done)
	return Tick{Index: 0, Message: c.messages[0]}, ticks
}

// Stop cancels the cycle and waits for it to wind down. It is safe to call
// at any time, any number of times.
func (c *Cycler) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether a cycle is active.
func (c *Cycler) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Cycler) run(t Ticker, out chan<- Tick, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()
	i := 0
	for {
		select {
		case <-stop:
			return
		case <-t.Chan():
			i = (i + 1) % len(c.messages)
			select {
			case out <- Tick{Index: i, Message: c.messages[i]}:
			case <-stop:
				return
			}
		}
	}
}
