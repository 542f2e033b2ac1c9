package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kindlinghq/kindling/internal/relay/domain"
	"github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/internal/relay/store/drivers/sqlite"
	"github.com/kindlinghq/kindling/pkg/jwtx"
	"github.com/kindlinghq/kindling/pkg/relaysdk"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, jwtx.Signer) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewEdDSASigner("test-key")
	require.NoError(t, err)

	logger := slog.Default()
	router := NewRouter(jwtx.NewEdDSAVerifier(signer.Public()), "test", st, logger)
	router.IntakeService = service.NewIntakeService(logger)
	router.SubmissionService = service.NewSubmissionService(st, logger)
	router.ApplyRoutes()

	return router, signer
}

func sessionToken(t *testing.T, signer jwtx.Signer, userID, email string) string {
	t.Helper()

	claims := jwtx.NewSessionClaims(
		userID, "sid-1", []string{"profile", "submissions:read"}, []string{jwtx.AMROTP},
		time.Hour, "http://localhost:9096", "Ada", email, "+15551234567", time.Now(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestCreateSubmissionAnonymous(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/submissions",
		strings.NewReader(`{"name":"Ada","message":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp relaysdk.SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, domain.AnonymousUserID, resp.UserID)
	require.Empty(t, resp.UserEmail)
	require.False(t, resp.SubmittedAt.IsZero(), "timestamp is assigned server-side")
}

func TestCreateSubmissionWithSession(t *testing.T) {
	router, signer := newTestRouter(t)
	token := sessionToken(t, signer, "user-1", "ada@example.com")

	req := httptest.NewRequest(http.MethodPost, "/v1/submissions",
		strings.NewReader(`{"name":"Ada","message":"hello"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp relaysdk.SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "user-1", resp.UserID)
	require.Equal(t, "ada@example.com", resp.UserEmail)
}

func TestCreateSubmissionRejectsBadToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/submissions",
		strings.NewReader(`{"name":"Ada","message":"hello"}`))
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// A presented but unusable token is rejected, not downgraded to anonymous.
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSubmissionValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/submissions",
		strings.NewReader(`{"name":"","message":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSubmissionsRequiresSession(t *testing.T) {
	router, signer := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/submissions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Seed one record and list it with a session.
	create := httptest.NewRequest(http.MethodPost, "/v1/submissions",
		strings.NewReader(`{"name":"Ada","message":"hello"}`))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, create)
	require.Equal(t, http.StatusCreated, createRec.Code)

	list := httptest.NewRequest(http.MethodGet, "/v1/submissions", nil)
	list.Header.Set("Authorization", "Bearer "+sessionToken(t, signer, "user-1", "ada@example.com"))
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, list)
	require.Equal(t, http.StatusOK, listRec.Code)

	var resp relaysdk.SubmissionListResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	require.Len(t, resp.Submissions, 1)
}
