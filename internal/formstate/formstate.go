// Package formstate models the life of a single form submission:
// idle → submitting → success | error.
package formstate

// State is the phase a form is in.
type State int

const (
	Idle State = iota
	Submitting
	Success
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	}
	return "unknown"
}

// Submission tracks one view's form. The zero value is idle with no error.
type Submission struct {
	state State
	err   string
}

// Begin enters submitting and clears the error left by a previous attempt.
func (s *Submission) Begin() {
	s.state = Submitting
	s.err = ""
}

// Succeed marks the in-flight submission as done.
func (s *Submission) Succeed() {
	s.state = Success
	s.err = ""
}

// Fail returns the form to idle. The message stays visible until the next Begin.
func (s *Submission) Fail(message string) {
	s.state = Idle
	s.err = message
}

// State reports the current phase.
func (s *Submission) State() State { return s.state }

// Pending is true while a request is in flight.
func (s *Submission) Pending() bool { return s.state == Submitting }

// Error is the retained failure message, or "".
func (s *Submission) Error() string { return s.err }
