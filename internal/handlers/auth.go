package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/nfrund/gobyauth/internal/events"
	"github.com/nfrund/gobyauth/internal/formstate"
	"github.com/nfrund/gobyauth/internal/middleware"
	"github.com/nfrund/gobyauth/internal/view"
	"github.com/nfrund/gobyauth/internal/view/dto/auth"
	"github.com/nfrund/gobyauth/web/src/templates/pages"
)

// callbackURL is where a successful sign-in lands unless the service picks
// another page on this site.
const callbackURL = "/"

const (
	msgSignUpSuccess = "Success"
	msgSignUpFailure = "Something went wrong"
)

// AuthHandler serves the sign-up and sign-in views. Every authentication
// decision is made by the AuthClient.
type AuthHandler struct {
	client    domain.AuthClient
	events    *events.Recorder
	validator *CustomValidator
}

// NewAuthHandler creates a new AuthHandler. recorder may be nil.
func NewAuthHandler(client domain.AuthClient, recorder *events.Recorder) *AuthHandler {
	return &AuthHandler{
		client:    client,
		events:    recorder,
		validator: NewValidator(),
	}
}

// Validator exposes the handler's validator so it can be installed on echo.
func (h *AuthHandler) Validator() *CustomValidator {
	return h.validator
}

// SignUpGet renders the sign-up page (GET /sign-up), or the logged-in state
// when a session is present.
func (h *AuthHandler) SignUpGet(c echo.Context) error {
	data := auth.SignUpData{Session: sessionData(middleware.SessionFromContext(c))}
	return renderPage(c, http.StatusOK, "Sign up", pages.SignUp(data))
}

// SignUpPost forwards the form to the authentication service (POST /sign-up).
// The outcome is reported as a generic alert; the user stays on /sign-up.
func (h *AuthHandler) SignUpPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind sign-up form", "error", err)
		view.SetFlashError(c, msgSignUpFailure)
		return c.Redirect(http.StatusSeeOther, "/sign-up")
	}

	var sub formstate.Submission
	sub.Begin()
	res, err := h.client.SignUpEmail(ctx, domain.SignUpParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		// The detail is for the logs only.
		logger.Error("Sign up failed", "email", req.Email, "error", err)
		sub.Fail(msgSignUpFailure)
	} else {
		sub.Succeed()
		if res != nil && res.Token != "" {
			middleware.SetAuthCookie(c, res.Token)
		}
		h.events.SignedUp(ctx, req.Email, req.Name)
	}

	flashOutcome(c, &sub)
	return c.Redirect(http.StatusSeeOther, "/sign-up")
}

// flashOutcome turns a finished sign-up into the alert shown after the
// redirect.
func flashOutcome(c echo.Context, sub *formstate.Submission) {
	if sub.State() == formstate.Success {
		view.SetFlashSuccess(c, msgSignUpSuccess)
		return
	}
	view.SetFlashError(c, sub.Error())
}

// SignInGet renders the sign-in page (GET /sign-in).
func (h *AuthHandler) SignInGet(c echo.Context) error {
	var sub formstate.Submission
	data := auth.SignInData{FormState: formState(&sub), Providers: socialProviders()}
	return renderPage(c, http.StatusOK, "Sign in", pages.SignIn(data))
}

// SignInPost validates the form and, if it passes, signs in through the
// authentication service (POST /sign-in).
func (h *AuthHandler) SignInPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	var sub formstate.Submission
	data := auth.SignInData{Email: req.Email, FormState: formState(&sub), Providers: socialProviders()}
	if err := h.validator.Validate(&req); err != nil {
		fieldErrs := FieldErrors(err)
		if fieldErrs == nil {
			return err
		}
		data.FieldErrors = fieldErrs
		return renderForm(c, http.StatusUnprocessableEntity, "Sign in", pages.SignIn(data))
	}

	sub.Begin()
	res, err := h.client.SignInEmail(ctx, domain.SignInParams{
		Email:       req.Email,
		Password:    req.Password,
		CallbackURL: callbackURL,
	})
	if err != nil {
		sub.Fail(domain.UserMessage(err))
		logger.Warn("Failed sign-in attempt", "email", req.Email, "error", err)
		h.events.SignInFailed(ctx, req.Email, "email", sub.Error())

		data.FormState = formState(&sub)
		return renderForm(c, http.StatusUnauthorized, "Sign in", pages.SignIn(data))
	}
	sub.Succeed()

	if res != nil && res.Token != "" {
		middleware.SetAuthCookie(c, res.Token)
	}
	h.events.SignedIn(ctx, req.Email, "email")
	return navigate(c, landingURL(res))
}

// SocialSignIn starts a sign-in with one of the fixed providers
// (POST /sign-in/social/:provider) and sends the browser to the provider.
func (h *AuthHandler) SocialSignIn(c echo.Context) error {
	ctx := c.Request().Context()
	provider := c.Param("provider")
	if !domain.IsSocialProvider(provider) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	}

	var sub formstate.Submission
	sub.Begin()
	res, err := h.client.SignInSocial(ctx, domain.SocialParams{Provider: provider, CallbackURL: callbackURL})
	if err != nil {
		sub.Fail(domain.UserMessage(err))
		middleware.FromContext(ctx).Warn("Social sign-in failed", "provider", provider, "error", err)
		h.events.SignInFailed(ctx, "", provider, sub.Error())

		data := auth.SignInData{FormState: formState(&sub), Providers: socialProviders()}
		return renderForm(c, http.StatusBadGateway, "Sign in", pages.SignIn(data))
	}
	sub.Succeed()

	h.events.SignedIn(ctx, "", provider)
	return navigate(c, res.RedirectURL)
}

// SignOut ends the session with the authentication service (POST /sign-out).
// Failures are logged; the local cookie is dropped regardless.
func (h *AuthHandler) SignOut(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(middleware.AuthCookieName); err == nil && cookie.Value != "" {
		if err := h.client.SignOut(ctx, cookie.Value); err != nil {
			middleware.FromContext(ctx).Error("Sign out failed", "error", err)
		}
	}
	if sess := middleware.SessionFromContext(c); sess != nil {
		h.events.SignedOut(ctx, sess.ID)
	}

	middleware.ClearAuthCookie(c)
	return c.Redirect(http.StatusSeeOther, "/sign-up")
}
