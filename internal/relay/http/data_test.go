package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/pkg/relaysdk"
	"github.com/stretchr/testify/require"
)

func TestDataHandler(t *testing.T) {
	h := &DataHandler{IntakeService: service.NewIntakeService(slog.Default())}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"accepted", `{"email":"ada@example.com","feedback":"works"}`, http.StatusOK},
		{"missing feedback", `{"email":"ada@example.com"}`, http.StatusBadRequest},
		{"missing email", `{"feedback":"works"}`, http.StatusBadRequest},
		{"malformed email", `{"email":"not-an-email","feedback":"works"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/data", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.HandlePost(rec, req)
			require.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				var resp relaysdk.IntakeResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.Equal(t, "ada@example.com", resp.ReceivedEmail)
				require.Equal(t, "Data received successfully by backend!", resp.Message)
			}
		})
	}
}
