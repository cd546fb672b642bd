package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/gobyauth/web/src/templates/partials"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	htmxSrc    = "https://unpkg.com/htmx.org@2.0.4"
	stylesheet = "/static/css/app.css"
)

// Base wraps page content in the document shell: head, navigation and the
// flash region.
func Base(title string, flashes partials.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		page := h.Doctype(
			h.HTML(
				h.Lang("en"),
				h.Head(
					h.Meta(h.Charset("utf-8")),
					h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
					h.TitleEl(g.Text(PageTitle(title))),
					h.Link(h.Rel("stylesheet"), h.Href(stylesheet)),
					h.Script(h.Src(htmxSrc), h.Defer()),
				),
				h.Body(
					h.Nav(
						h.Class("nav"),
						h.A(h.Href("/"), g.Text("Home")),
						h.A(h.Href("/sign-in"), g.Text("Sign in")),
						h.A(h.Href("/sign-up"), g.Text("Sign up")),
					),
					partials.Flash(flashes),
					h.Main(
						h.ID("content"),
						// The page is rendered with the request context, not a detached one.
						g.NodeFunc(func(w io.Writer) error { return content.Render(ctx, w) }),
					),
				),
			),
		)
		return page.Render(w)
	})
}
