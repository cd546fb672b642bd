package pages

import (
	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// SignInID is the element htmx swaps when the sign-in form re-renders.
const SignInID = "sign-in"

// pendingControls disables every button in the sign-in card while any of
// its requests is in flight.
const pendingControls = "#" + SignInID + " button"

// SignIn renders the email/password form, the alert region and the social
// sign-in buttons.
func SignIn(data auth.SignInData) g.Node {
	return h.Div(
		h.ID(SignInID),
		h.Class("card"),
		g.If(data.State != "", h.Data("state", data.State)),
		h.H1(g.Text("Sign in")),
		g.If(data.Error != "",
			h.Div(
				h.ID("sign-in-error"),
				g.Attr("role", "alert"),
				h.Class("alert alert-error"),
				g.Text(data.Error),
			),
		),
		h.Form(
			h.Method("post"),
			h.Action("/sign-in"),
			hx.Post("/sign-in"),
			hx.Target("#"+SignInID),
			hx.Swap("outerHTML"),
			g.Attr("hx-disabled-elt", pendingControls),
			g.Attr("novalidate"),
			field("email", "Email", "email", data.Email, "email", data.FieldErrors["email"]),
			field("password", "Password", "password", "", "current-password", data.FieldErrors["password"]),
			h.Button(
				h.Type("submit"),
				h.Class("btn btn-primary"),
				g.If(data.Pending, h.Disabled()),
				g.Text("Sign in"),
			),
		),
		h.Div(
			h.Class("social"),
			g.Map(data.Providers, func(p auth.Provider) g.Node {
				return h.Form(
					h.Method("post"),
					h.Action("/sign-in/social/"+p.ID),
					hx.Post("/sign-in/social/"+p.ID),
					hx.Target("#"+SignInID),
					hx.Swap("outerHTML"),
					g.Attr("hx-disabled-elt", pendingControls),
					h.Button(
						h.Type("submit"),
						h.Class("btn btn-social btn-"+p.ID),
						g.If(data.Pending, h.Disabled()),
						g.Text("Continue with "+p.Label),
					),
				)
			}),
		),
		h.P(
			g.Text("Don't have an account? "),
			h.A(h.Href("/sign-up"), g.Text("Sign up")),
		),
	)
}

// field renders a labelled input with its inline validation message.
func field(name, label, inputType, value, autocomplete, message string) g.Node {
	return h.Div(
		h.Class("field"),
		h.Label(h.For(name), g.Text(label)),
		h.Input(
			h.ID(name),
			h.Name(name),
			h.Type(inputType),
			g.If(value != "", h.Value(value)),
			h.AutoComplete(autocomplete),
			g.If(message != "", h.Aria("invalid", "true")),
		),
		g.If(message != "",
			h.P(
				h.ID(name+"-error"),
				h.Class("field-error"),
				g.Text(message),
			),
		),
	)
}
