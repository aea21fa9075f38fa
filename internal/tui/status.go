package tui

import "fmt"

// statusLine is shared between the App and its view-model observers.
type statusLine struct {
	text  string
	isErr bool
}

func (s *statusLine) set(format string, args ...any) {
	s.text = fmt.Sprintf(format, args...)
	s.isErr = false
}

func (s *statusLine) fail(format string, args ...any) {
	s.text = fmt.Sprintf(format, args...)
	s.isErr = true
}
