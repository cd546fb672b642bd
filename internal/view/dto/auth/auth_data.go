package auth

// SessionData is the slice of a session the views are allowed to see.
type SessionData struct {
	Name string
}

// SignInData is the View Model (DTO) for the sign-in page.
type SignInData struct {
	Email string
	// FieldErrors maps a form field name to its validation message.
	FieldErrors map[string]string
	FormState
	Providers []Provider
}

// FormState is a snapshot of a form's submission for rendering. State is
// rendered as data-state on the card; Error fills the alert region; Pending
// disables the controls.
type FormState struct {
	State   string
	Error   string
	Pending bool
}

// Provider is one social sign-in button.
type Provider struct {
	ID    string
	Label string
}

// SignUpData is the View Model for the sign-up page. A non-nil Session
// switches the page to the logged-in state.
type SignUpData struct {
	Name    string
	Email   string
	Session *SessionData
}

// HomeData is the View Model for the landing page.
type HomeData struct {
	Session *SessionData
}
