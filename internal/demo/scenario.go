package demo

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed scenario.yaml
var defaultScenario []byte

// Reply is one canned answer. A non-zero Status makes the service fail the
// request with that status instead.
type Reply struct {
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
	Status   int      `yaml:"status,omitempty"`
}

// Sample is a conversation preloaded into the demo store.
type Sample struct {
	Messages []SampleMessage `yaml:"messages"`
}

// SampleMessage is one turn of a Sample. Type is TypeUser or TypeAssistant.
type SampleMessage struct {
	Type    string `yaml:"type"`
	Content string `yaml:"content"`
}

// Scenario scripts the demo assistant.
type Scenario struct {
	Delay    time.Duration `yaml:"delay"`
	Fallback string        `yaml:"fallback"`
	Replies  []Reply       `yaml:"replies"`
	Samples  []Sample      `yaml:"samples,omitempty"`
}

// DefaultScenario returns the built-in script.
func DefaultScenario() *Scenario {
	s, err := ParseScenario(defaultScenario)
	if err != nil {
		panic(fmt.Sprintf("demo: embedded scenario: %v", err))
	}
	return s
}

// LoadScenario reads a script from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML script.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Delay < 0 {
		return nil, fmt.Errorf("parse scenario: negative delay %v", s.Delay)
	}
	if strings.TrimSpace(s.Fallback) == "" {
		return nil, fmt.Errorf("parse scenario: fallback is required")
	}
	for i, r := range s.Replies {
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("parse scenario: reply %d has no keywords", i)
		}
		if r.Status != 0 && (r.Status < 400 || r.Status > 599) {
			return nil, fmt.Errorf("parse scenario: reply %d has status %d", i, r.Status)
		}
	}
	for i, sample := range s.Samples {
		for _, m := range sample.Messages {
			if m.Type != TypeUser && m.Type != TypeAssistant {
				return nil, fmt.Errorf("parse scenario: sample %d has message type %q", i, m.Type)
			}
		}
	}
	return &s, nil
}

// Seed stores every sample as a session for userID, oldest first, and
// returns the new session ids.
func (s *Scenario) Seed(st *Store, userID int) []string {
	ids := make([]string, 0, len(s.Samples))
	for _, sample := range s.Samples {
		id := st.Open(userID, "")
		for _, m := range sample.Messages {
			st.Append(id, m.Type, strings.TrimSpace(m.Content))
		}
		ids = append(ids, id)
	}
	return ids
}

// Match returns the first reply whose keyword occurs in message as a whole
// word, ignoring case, or the fallback.
func (s *Scenario) Match(message string) Reply {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(message), isSeparator) {
		words[w] = true
	}
	for _, r := range s.Replies {
		for _, k := range r.Keywords {
			if words[strings.ToLower(k)] {
				r.Response = strings.TrimSpace(r.Response)
				return r
			}
		}
	}
	return Reply{Response: strings.TrimSpace(s.Fallback)}
}

func isSeparator(r rune) bool {
	return !(r == '-' || r == '\'' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r > 127)
}
