package sessionwatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kindlinghq/kindling/internal/portal/notice"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves just enough of the identity API to sign in and
// revalidate, with a switchable session-check answer.
type fakeProvider struct {
	sessionStatus atomic.Int64 // HTTP status for GET /v1/session
}

func (p *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/challenges/{id}/confirm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(identitysdk.SessionResponse{
			SessionToken: "token-1",
			UserID:       "user-1",
			ExpiresIn:    3600,
		})
	})

	mux.HandleFunc("GET /v1/session", func(w http.ResponseWriter, r *http.Request) {
		switch status := int(p.sessionStatus.Load()); status {
		case 0, http.StatusOK:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(identitysdk.SessionResponse{UserID: "user-1", ExpiresIn: 3600})
		case http.StatusUnauthorized:
			identitysdk.ErrInvalidToken.WriteError(w)
		default:
			identitysdk.ErrServerError.WriteError(w)
		}
	})

	return mux
}

func TestObserverTracksSessionLifecycle(t *testing.T) {
	provider := &fakeProvider{}
	srv := httptest.NewServer(provider.handler())
	defer srv.Close()

	client := identitysdk.NewClient(srv.URL)
	notices := notice.NewCenter()

	o := NewObserver(client, notices, 20*time.Millisecond)
	o.Start()
	defer o.Close()

	var mu sync.Mutex
	var seen []*identitysdk.Session
	unsubscribe := o.Subscribe(func(s *identitysdk.Session) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})
	defer unsubscribe()

	// Fires immediately with the signed-out state.
	mu.Lock()
	require.Len(t, seen, 1)
	require.Nil(t, seen[0])
	mu.Unlock()

	// Signing in through the client reaches the observer.
	_, err := client.ConfirmCode(context.Background(), "handle-1", "123456")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return o.Current() != nil },
		2*time.Second, 5*time.Millisecond)
	require.Equal(t, "user-1", o.Current().UserID)

	// A transient provider failure keeps the session and posts a warning.
	provider.sessionStatus.Store(http.StatusInternalServerError)
	require.Eventually(t, func() bool { return len(notices.Active()) > 0 },
		2*time.Second, 5*time.Millisecond)
	require.NotNil(t, o.Current(), "session must survive transient failures")

	// A definitive invalid token clears the session.
	provider.sessionStatus.Store(http.StatusUnauthorized)
	require.Eventually(t, func() bool { return o.Current() == nil },
		2*time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Nil(t, seen[len(seen)-1])
	mu.Unlock()
}
