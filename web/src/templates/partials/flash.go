package partials

import (
	"encoding/json"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// FlashData carries one-shot messages from a redirecting POST to the next page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// Flash renders the messages in an alert dialog region and raises a browser
// alert for each, so a redirect lands on the same kind of feedback a
// client-side alert() gives.
func Flash(f FlashData) g.Node {
	if f.Empty() {
		return nil
	}
	return h.Div(
		h.ID("flash"),
		g.Attr("role", "alertdialog"),
		h.Class("flash"),
		g.Map(f.Success, func(msg string) g.Node {
			return h.P(h.Class("flash-success"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.P(h.Class("flash-error"), g.Text(msg))
		}),
		h.Script(g.Raw(alertScript(f))),
	)
}

// alertScript builds the alert() calls. json.Marshal escapes <, > and &, so
// messages cannot break out of the script element.
func alertScript(f FlashData) string {
	var script string
	for _, msg := range append(append([]string{}, f.Success...), f.Error...) {
		quoted, _ := json.Marshal(msg)
		script += "alert(" + string(quoted) + ");"
	}
	return script
}
