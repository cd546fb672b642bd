package pages

import (
	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Home is the landing page users are sent to after signing in.
func Home(data auth.HomeData) g.Node {
	if data.Session != nil {
		return h.Div(h.Class("card"), h.H1(g.Text("Welcome")), loggedIn(data.Session))
	}
	return h.Div(
		h.Class("card"),
		h.H1(g.Text("Welcome")),
		h.P(
			h.A(h.Href("/sign-in"), g.Text("Sign in")),
			g.Text(" or "),
			h.A(h.Href("/sign-up"), g.Text("create an account")),
			g.Text("."),
		),
	)
}
