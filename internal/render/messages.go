package render

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var DefaultMessages = []string{
	"Contacting endpoint…",
	"Sending payload…",
	"Awaiting response…",
	"Processing data…",
	"Almost there…",
}

type messagesFile struct {
	Messages []string `yaml:"messages"`
}

// LoadMessages reads a YAML file of the form `messages: [...]`. Blank entries
// are dropped; a file with no usable entries is an error.
func LoadMessages(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f messagesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]string, 0, len(f.Messages))
	for _, m := range f.Messages {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no loading messages", path)
	}
	return out, nil
}
