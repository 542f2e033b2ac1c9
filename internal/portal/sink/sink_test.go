package sink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kindlinghq/kindling/pkg/relaysdk"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls atomic.Int64
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return nil, http.ErrHandlerTimeout
}

func TestInvalidDocumentFailsBeforeNetwork(t *testing.T) {
	transport := &countingTransport{}
	c := NewClient("http://relay.local", nil)
	c.HTTPClient.Transport = transport
	ctx := context.Background()

	tests := []struct {
		name string
		doc  Document
	}{
		{"missing name", Document{Message: "hello"}},
		{"missing message", Document{Name: "Alex"}},
		{"name too long", Document{Name: strings.Repeat("x", 201), Message: "hello"}},
		{"message too long", Document{Name: "Alex", Message: strings.Repeat("x", 4001)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Append(ctx, CollectionSubmissions, tc.doc)
			require.Error(t, err)
		})
	}

	require.Zero(t, transport.calls.Load(), "invalid documents must not leave the process")
}

func TestUnknownCollection(t *testing.T) {
	transport := &countingTransport{}
	c := NewClient("http://relay.local", nil)
	c.HTTPClient.Transport = transport

	_, err := c.Append(context.Background(), "journal", Document{Name: "Alex", Message: "hi"})
	require.ErrorIs(t, err, ErrUnknownCollection)
	require.Zero(t, transport.calls.Load())
}

func newStoreServer(t *testing.T, wantBearer string, userID string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/submissions", r.URL.Path)

		auth := r.Header.Get("Authorization")
		if wantBearer == "" {
			require.Empty(t, auth, "anonymous appends must not carry a bearer token")
		} else {
			require.Equal(t, "Bearer "+wantBearer, auth)
		}

		var req relaysdk.SubmissionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(relaysdk.SubmissionResponse{
			ID:          "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			Name:        req.Name,
			Message:     req.Message,
			UserID:      userID,
			SubmittedAt: time.Now().UTC(),
		})
	}))
}

func TestAppendAnonymous(t *testing.T) {
	srv := newStoreServer(t, "", AnonymousUserID)
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "" })

	stored, err := c.Append(context.Background(), CollectionSubmissions, Document{
		Name:    "Alex",
		Message: "hello there",
	})
	require.NoError(t, err)
	require.Equal(t, AnonymousUserID, stored.UserID)
	require.NotEmpty(t, stored.ID)
	require.False(t, stored.SubmittedAt.IsZero())
}

func TestAppendWithSession(t *testing.T) {
	srv := newStoreServer(t, "session-token", "user-42")
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "session-token" })

	stored, err := c.Append(context.Background(), CollectionSubmissions, Document{
		Name:    "Alex",
		Message: "hello there",
	})
	require.NoError(t, err)
	require.Equal(t, "user-42", stored.UserID)
}

func TestAppendSurfacesStoreRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(relaysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "message is required",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Append(context.Background(), CollectionSubmissions, Document{Name: "Alex", Message: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "message is required")
}
