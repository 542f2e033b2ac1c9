package identitysdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPhoneSignInFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/verifications":
			_ = json.NewEncoder(w).Encode(ProofResponse{ProofToken: "proof-1", ExpiresIn: 120})
		case "/v1/challenges":
			var req ChallengeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "proof-1", req.ProofToken)
			_ = json.NewEncoder(w).Encode(ChallengeResponse{ChallengeID: "ch-1", ExpiresIn: 300})
		case "/v1/challenges/ch-1/confirm":
			var req ConfirmRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Code != "123456" {
				ErrInvalidCode.WriteError(w)
				return
			}
			_ = json.NewEncoder(w).Encode(SessionResponse{
				SessionToken: "tok",
				UserID:       "user-1",
				PhoneNumber:  "+15551234567",
				ExpiresIn:    3600,
			})
		default:
			t.Fatalf("unexpected request path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	proof, err := c.RequestProof(ctx, "#signin")
	require.NoError(t, err)
	require.Equal(t, "proof-1", proof.Token)
	require.True(t, proof.ExpiresAt.After(time.Now()))

	handle, err := c.IssueChallenge(ctx, "+15551234567", proof.Token)
	require.NoError(t, err)
	require.Equal(t, "ch-1", handle)

	_, err = c.ConfirmCode(ctx, handle, "000000")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, ErrorCodeInvalidCode, provErr.Code)
	require.Nil(t, c.CurrentSession(), "failed confirm must not establish a session")

	session, err := c.ConfirmCode(ctx, handle, "123456")
	require.NoError(t, err)
	require.Equal(t, "user-1", session.UserID)
	require.Equal(t, session, c.CurrentSession())
}

func TestOnSessionChange(t *testing.T) {
	c := NewClient("http://localhost")

	var got []*Session
	unsub := c.OnSessionChange(func(s *Session) {
		got = append(got, s)
	})

	require.Len(t, got, 1, "subscriber fires immediately")
	require.Nil(t, got[0])

	session := &Session{UserID: "u1"}
	c.setSession(session)
	require.Len(t, got, 2)
	require.Equal(t, session, got[1])

	unsub()
	c.setSession(nil)
	require.Len(t, got, 2, "unsubscribed callbacks must not fire")
}

func TestSignOutClearsLocalSessionOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrServerError.WriteError(w)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.setSession(&Session{UserID: "u1", Token: "tok"})

	err := c.SignOut(context.Background())
	require.Error(t, err)
	require.Nil(t, c.CurrentSession(), "local session is cleared even when revocation fails")
}

func TestCheckSessionRetainsOnTransientFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			ErrServerError.WriteError(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SessionResponse{UserID: "u1", ExpiresIn: 3600})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.setSession(&Session{UserID: "u1", Token: "tok"})

	require.NoError(t, c.CheckSession(context.Background()))
	require.NotNil(t, c.CurrentSession())

	fail.Store(true)
	err := c.CheckSession(context.Background())
	require.Error(t, err)
	require.NotNil(t, c.CurrentSession(), "transient failures retain the last known session")
}

func TestCheckSessionClearsOnInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrInvalidToken.WriteError(w)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.setSession(&Session{UserID: "u1", Token: "tok"})

	require.NoError(t, c.CheckSession(context.Background()))
	require.Nil(t, c.CurrentSession(), "a definitive invalid_token clears the session")
}

func TestProviderErrorRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrTooManyAttempts.WriteError(rec)

	resp := rec.Result()
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, ErrorCodeTooManyAttempts, body.Error)

	err := parseErrorResponse(resp, []byte(`{"error":"too_many_attempts","error_description":"x"}`))
	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	require.Equal(t, ErrorCodeTooManyAttempts, provErr.Code)
}
