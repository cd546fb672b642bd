package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/gobyauth/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the audit goroutines and the test share a log buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAuditLogsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	var out syncBuffer
	require.NoError(t, StartAudit(ctx, bus, slog.New(slog.NewTextHandler(&out, nil))))

	rec := NewRecorder(bus)
	rec.SignedUp(ctx, "ada@example.com", "Ada")
	rec.SignedIn(ctx, "ada@example.com", "email")
	rec.SignInFailed(ctx, "eve@example.com", "email", "Invalid credentials")
	rec.SignedOut(ctx, "s1")

	require.Eventually(t, func() bool {
		logs := out.String()
		return strings.Contains(logs, "audit: user signed up") &&
			strings.Contains(logs, "audit: user signed in") &&
			strings.Contains(logs, "audit: sign in failed") &&
			strings.Contains(logs, "audit: user signed out")
	}, 2*time.Second, 10*time.Millisecond)

	assert.Contains(t, out.String(), "Invalid credentials")
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.SignedUp(context.Background(), "a@example.com", "A")
		NewRecorder(nil).SignedOut(context.Background(), "s1")
	})
}

func TestTopics(t *testing.T) {
	topics := Topics()
	require.Len(t, topics, 4)
	for _, topic := range topics {
		assert.True(t, strings.HasPrefix(topic.Name, "auth.user."), topic.Name)
		assert.NotEmpty(t, topic.Description)
	}
}
