package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/nfrund/gobyauth/internal/formstate"
	"github.com/nfrund/gobyauth/internal/view"
	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	"github.com/nfrund/gobyauth/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

const (
	headerHXRequest  = "HX-Request"
	headerHXRedirect = "HX-Redirect"
)

// isHTMX reports whether the request was issued by htmx rather than a full
// page navigation.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true"
}

// renderPage wraps page content in the Base layout, consuming any flashes.
func renderPage(c echo.Context, status int, title string, content g.Node) error {
	flashes := view.GetFlashData(c)
	page := layouts.Base(title, flashes, view.AdaptGomponentToTempl(content))
	return c.Render(status, "", page)
}

// renderForm answers a form post with the re-rendered form. htmx only swaps
// 2xx responses, so fragments always go out as 200.
func renderForm(c echo.Context, status int, title string, content g.Node) error {
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", content)
	}
	return renderPage(c, status, title, content)
}

// navigate sends the browser to url: a 303 for plain posts, an HX-Redirect
// for htmx requests so the whole page is replaced.
func navigate(c echo.Context, url string) error {
	if isHTMX(c) {
		c.Response().Header().Set(headerHXRedirect, url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, url)
}

// landingURL is the service's redirect when it is a path on this site, and
// callbackURL otherwise. Absolute and protocol-relative URLs are refused.
func landingURL(res *domain.SignInResult) string {
	if res == nil {
		return callbackURL
	}
	target := res.RedirectURL
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return callbackURL
	}
	if u, err := url.Parse(target); err != nil || u.Scheme != "" || u.Host != "" {
		return callbackURL
	}
	return target
}

func sessionData(sess *domain.Session) *auth.SessionData {
	if sess == nil {
		return nil
	}
	return &auth.SessionData{Name: sess.Name}
}

func socialProviders() []auth.Provider {
	providers := make([]auth.Provider, 0, len(domain.SocialProviders))
	for _, p := range domain.SocialProviders {
		providers = append(providers, auth.Provider{ID: p, Label: domain.ProviderLabel(p)})
	}
	return providers
}

// formState projects a submission onto the view model so the rendered form
// reflects where the state machine stands.
func formState(sub *formstate.Submission) auth.FormState {
	return auth.FormState{
		State:   sub.State().String(),
		Error:   sub.Error(),
		Pending: sub.Pending(),
	}
}
