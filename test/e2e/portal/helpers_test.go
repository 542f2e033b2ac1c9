package portal_test

import (
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	identityhttp "github.com/kindlinghq/kindling/internal/identity/http"
	"github.com/kindlinghq/kindling/internal/identity/service"
	"github.com/kindlinghq/kindling/internal/identity/store/drivers/memory"
	relayhttp "github.com/kindlinghq/kindling/internal/relay/http"
	relayservice "github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/internal/relay/store/drivers/sqlite"
	"github.com/kindlinghq/kindling/pkg/jwtx"
	"github.com/pquerna/otp/hotp"
	"github.com/stretchr/testify/require"
)

// Both services run in-process behind httptest servers; the portal packages
// are pointed at them exactly as they would be at real deployments.

const testCodeSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

type identityStack struct {
	server   *httptest.Server
	signer   jwtx.Signer
	sessions *service.SessionService

	// codesIssued counts challenge issuances so tests can recompute the
	// delivered one-time code from the shared secret.
	codesIssued uint64
}

// nextCode returns the code delivered for the most recent challenge.
func (s *identityStack) nextCode(t *testing.T) string {
	t.Helper()
	s.codesIssued++
	code, err := hotp.GenerateCode(testCodeSecret, s.codesIssued)
	require.NoError(t, err)
	return code
}

func startIdentity(t *testing.T) *identityStack {
	t.Helper()

	logger := slog.Default()
	db := memory.New()
	t.Cleanup(func() { _ = db.Close() })

	signer, err := jwtx.NewEdDSASigner("identity-e2e")
	require.NoError(t, err)

	sessions := &service.SessionService{
		Store:      db,
		Logger:     logger,
		Signer:     signer,
		Verifier:   jwtx.NewEdDSAVerifier(signer.Public()),
		Issuer:     "http://identity.test",
		SessionTTL: time.Hour,
	}

	router := identityhttp.NewRouter("e2e", "", logger)
	router.VerificationService = &service.VerificationService{
		Store:  db,
		Logger: logger,
	}
	router.ChallengeService = &service.ChallengeService{
		Store:      db,
		Logger:     logger,
		Sessions:   sessions,
		CodeSecret: testCodeSecret,
	}
	router.SessionService = sessions
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &identityStack{server: server, signer: signer, sessions: sessions}
}

func startRelay(t *testing.T, verifier jwtx.Verifier) *httptest.Server {
	t.Helper()

	logger := slog.Default()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	router := relayhttp.NewRouter(verifier, "e2e", st, logger)
	router.IntakeService = relayservice.NewIntakeService(logger)
	router.SubmissionService = relayservice.NewSubmissionService(st, logger)
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}
