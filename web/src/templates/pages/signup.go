package pages

import (
	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// SignUp renders the registration form, or the logged-in state when a
// session is present.
func SignUp(data auth.SignUpData) g.Node {
	if data.Session != nil {
		return h.Div(
			h.ID("sign-up"),
			h.Class("card"),
			loggedIn(data.Session),
		)
	}
	return h.Div(
		h.ID("sign-up"),
		h.Class("card"),
		h.H1(g.Text("Sign up")),
		h.Form(
			h.Method("post"),
			h.Action("/sign-up"),
			hx.Boost("true"),
			g.Attr("hx-disabled-elt", "find button"),
			field("name", "Name", "text", data.Name, "name", ""),
			field("email", "Email", "email", data.Email, "email", ""),
			field("password", "Password", "password", "", "new-password", ""),
			h.Button(
				h.Type("submit"),
				h.Class("btn btn-primary"),
				g.Text("Sign up"),
			),
		),
		h.P(
			g.Text("Already have an account? "),
			h.A(h.Href("/sign-in"), g.Text("Sign in")),
		),
	)
}

// loggedIn shows who is signed in and a sign-out control.
func loggedIn(s *auth.SessionData) g.Node {
	return g.Group{
		h.P(h.ID("session-name"), g.Text("Logged in as "+s.Name)),
		h.Form(
			h.Method("post"),
			h.Action("/sign-out"),
			hx.Boost("true"),
			h.Button(h.Type("submit"), h.Class("btn"), g.Text("Sign out")),
		),
	}
}
