package pages

import (
	"bytes"
	"testing"

	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestSignIn(t *testing.T) {
	out := render(t, SignIn(auth.SignInData{
		Email:     "ada@example.com",
		Providers: []auth.Provider{{ID: "github", Label: "GitHub"}, {ID: "google", Label: "Google"}},
	}))

	assert.Contains(t, out, `hx-post="/sign-in"`)
	assert.Contains(t, out, `hx-disabled-elt="#sign-in button"`)
	assert.Contains(t, out, `value="ada@example.com"`)
	assert.Contains(t, out, "Continue with GitHub")
	assert.Contains(t, out, `action="/sign-in/social/google"`)
	assert.NotContains(t, out, `role="alert"`)
	assert.NotContains(t, out, "disabled>")
	assert.NotContains(t, out, "data-state")
}

func TestSignIn_ErrorsAndPending(t *testing.T) {
	out := render(t, SignIn(auth.SignInData{
		FieldErrors: map[string]string{"password": "Password is required"},
		FormState:   auth.FormState{State: "submitting", Error: "Invalid credentials", Pending: true},
	}))

	assert.Contains(t, out, `data-state="submitting"`)
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, ">Invalid credentials</div>")
	assert.Contains(t, out, `<p id="password-error" class="field-error">Password is required</p>`)
	assert.Contains(t, out, `aria-invalid="true"`)
	assert.Contains(t, out, "disabled>")
}

func TestSignUp(t *testing.T) {
	out := render(t, SignUp(auth.SignUpData{Name: "Ada"}))

	assert.Contains(t, out, `action="/sign-up"`)
	assert.Contains(t, out, `hx-boost="true"`)
	assert.Contains(t, out, `value="Ada"`)
	assert.NotContains(t, out, "Logged in as")
}

func TestSignUp_LoggedIn(t *testing.T) {
	out := render(t, SignUp(auth.SignUpData{Session: &auth.SessionData{Name: "Ada"}}))

	assert.Contains(t, out, "Logged in as Ada")
	assert.Contains(t, out, `action="/sign-out"`)
	assert.NotContains(t, out, `action="/sign-up"`)
}

func TestHome(t *testing.T) {
	assert.Contains(t, render(t, Home(auth.HomeData{})), `href="/sign-in"`)
	assert.Contains(t, render(t, Home(auth.HomeData{Session: &auth.SessionData{Name: "Ada"}})), "Logged in as Ada")
}
