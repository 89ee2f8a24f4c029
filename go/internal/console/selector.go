package console

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/mcdev12/scoreboard/go/internal/catalog"
)

// Selector is a numbered menu standing in for a drop-down.
type Selector struct {
	console *Console
	name    string

	mu      sync.Mutex
	options []catalog.Option
	enabled bool
}

func (c *Console) NewSelector(name string) *Selector {
	return &Selector{console: c, name: name}
}

func (s *Selector) SetOptions(options []catalog.Option) {
	s.mu.Lock()
	s.options = append([]catalog.Option(nil), options...)
	s.mu.Unlock()
	s.Print()
}

func (s *Selector) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

func (s *Selector) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *Selector) Options() []catalog.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Option(nil), s.options...)
}

// Print lists the options with their menu numbers.
func (s *Selector) Print() {
	options := s.Options()
	if len(options) == 0 {
		s.console.printf("%s: nothing to choose from\n", s.name)
		return
	}
	s.console.printf("%s:\n", s.name)
	for i, option := range options {
		s.console.printf("  %d) %s\n", i, option.Label)
	}
}

// Resolve maps a menu number or an option value to the option value.
func (s *Selector) Resolve(arg string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return "", fmt.Errorf("%s selector is disabled", s.name)
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 0 && n < len(s.options) {
		return s.options[n].Value, nil
	}
	for _, option := range s.options {
		if option.Value == arg && arg != catalog.NoneSelected {
			return option.Value, nil
		}
	}
	return "", fmt.Errorf("no %s %q", s.name, arg)
}
