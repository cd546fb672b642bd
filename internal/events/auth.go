// Package events declares the authentication events published on the bus
// and the audit subscriber that logs them.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/gobyauth/internal/pubsub"
)

// UserSignedUp is published after the authentication service accepted a sign-up.
type UserSignedUp struct {
	Email string    `json:"email"`
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
}

// UserSignedIn is published after a successful email or social sign-in start.
type UserSignedIn struct {
	Email  string    `json:"email,omitempty"`
	Method string    `json:"method"`
	At     time.Time `json:"at"`
}

// SignInFailed is published when the service rejects a sign-in.
type SignInFailed struct {
	Email  string    `json:"email,omitempty"`
	Method string    `json:"method"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// UserSignedOut is published when a session is ended from the UI.
type UserSignedOut struct {
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
}

var (
	SignedUp      = pubsub.NewEvent[UserSignedUp]("auth.user.signed_up")
	SignedIn      = pubsub.NewEvent[UserSignedIn]("auth.user.signed_in")
	SignInFailure = pubsub.NewEvent[SignInFailed]("auth.user.sign_in_failed")
	SignedOut     = pubsub.NewEvent[UserSignedOut]("auth.user.signed_out")
)

// Recorder publishes auth events. Publishing never fails the caller; errors
// are logged. A nil Recorder or nil publisher drops everything.
type Recorder struct {
	pub pubsub.Publisher
	now func() time.Time
}

// NewRecorder creates a Recorder publishing on pub.
func NewRecorder(pub pubsub.Publisher) *Recorder {
	return &Recorder{pub: pub, now: time.Now}
}

func (r *Recorder) SignedUp(ctx context.Context, email, name string) {
	if r == nil || r.pub == nil {
		return
	}
	r.log(email, pubsub.Publish(ctx, r.pub, SignedUp, email, UserSignedUp{Email: email, Name: name, At: r.now()}))
}

func (r *Recorder) SignedIn(ctx context.Context, email, method string) {
	if r == nil || r.pub == nil {
		return
	}
	r.log(email, pubsub.Publish(ctx, r.pub, SignedIn, email, UserSignedIn{Email: email, Method: method, At: r.now()}))
}

func (r *Recorder) SignInFailed(ctx context.Context, email, method, reason string) {
	if r == nil || r.pub == nil {
		return
	}
	r.log(email, pubsub.Publish(ctx, r.pub, SignInFailure, email, SignInFailed{Email: email, Method: method, Reason: reason, At: r.now()}))
}

func (r *Recorder) SignedOut(ctx context.Context, sessionID string) {
	if r == nil || r.pub == nil {
		return
	}
	r.log(sessionID, pubsub.Publish(ctx, r.pub, SignedOut, sessionID, UserSignedOut{SessionID: sessionID, At: r.now()}))
}

func (r *Recorder) log(subject string, err error) {
	if err != nil {
		slog.Warn("Failed to publish auth event", "subject", subject, "error", err)
	}
}

// StartAudit subscribes a logger to every auth event. It returns once the
// subscriptions are active.
func StartAudit(ctx context.Context, sub pubsub.Subscriber, logger *slog.Logger) error {
	if err := pubsub.Subscribe(ctx, sub, SignedUp, func(ctx context.Context, subject string, e UserSignedUp) error {
		logger.Info("audit: user signed up", "email", e.Email, "at", e.At)
		return nil
	}); err != nil {
		return err
	}
	if err := pubsub.Subscribe(ctx, sub, SignedIn, func(ctx context.Context, subject string, e UserSignedIn) error {
		logger.Info("audit: user signed in", "email", e.Email, "method", e.Method, "at", e.At)
		return nil
	}); err != nil {
		return err
	}
	if err := pubsub.Subscribe(ctx, sub, SignInFailure, func(ctx context.Context, subject string, e SignInFailed) error {
		logger.Warn("audit: sign in failed", "email", e.Email, "method", e.Method, "reason", e.Reason, "at", e.At)
		return nil
	}); err != nil {
		return err
	}
	return pubsub.Subscribe(ctx, sub, SignedOut, func(ctx context.Context, subject string, e UserSignedOut) error {
		logger.Info("audit: user signed out", "session_id", e.SessionID, "at", e.At)
		return nil
	})
}

// Topic describes one auth event for listings.
type Topic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Topics lists every auth event topic in publication order.
func Topics() []Topic {
	return []Topic{
		{Name: SignedUp.Name(), Description: "A sign-up was accepted by the authentication service"},
		{Name: SignedIn.Name(), Description: "An email sign-in succeeded or a social sign-in started"},
		{Name: SignInFailure.Name(), Description: "The authentication service rejected a sign-in"},
		{Name: SignedOut.Name(), Description: "A session was ended from the UI"},
	}
}
