// Package sink is the portal's client for the document store behind the
// compute service. Documents are validated locally before any network I/O
// so a bad record never leaves the process.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kindlinghq/kindling/pkg/relaysdk"
)

// CollectionSubmissions is the collection holding form submissions.
const CollectionSubmissions = "submissions"

// AnonymousUserID labels documents appended without a session.
const AnonymousUserID = "anonymous"

var ErrUnknownCollection = errors.New("sink: unknown collection")

// TokenSource yields the current session token, or empty when signed out.
type TokenSource func() string

// Document is a record to append to a collection. UserID is filled in by
// the client from the session; callers never set it.
type Document struct {
	Name    string `validate:"required,max=200"`
	Message string `validate:"required,max=4000"`
}

// Stored describes an appended document as acknowledged by the service.
type Stored struct {
	ID          string
	UserID      string
	SubmittedAt time.Time
}

// Client appends documents to the store.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource

	validate *validator.Validate
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Append validates and stores a document. Only the submissions collection
// exists today. Invalid documents fail before any request is made.
func (c *Client) Append(ctx context.Context, collection string, doc Document) (Stored, error) {
	if collection != CollectionSubmissions {
		return Stored{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if err := c.validate.Struct(doc); err != nil {
		return Stored{}, fmt.Errorf("sink: invalid document: %w", err)
	}

	body, err := json.Marshal(relaysdk.SubmissionRequest{
		Name:    doc.Name,
		Message: doc.Message,
	})
	if err != nil {
		return Stored{}, fmt.Errorf("sink: failed to encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/submissions", bytes.NewReader(body))
	if err != nil {
		return Stored{}, fmt.Errorf("sink: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Tokens != nil {
		if token := c.Tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Stored{}, fmt.Errorf("sink: failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Stored{}, fmt.Errorf("sink: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errResp relaysdk.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return Stored{}, fmt.Errorf("sink: store rejected document: %s", errResp.ErrorDescription)
		}
		return Stored{}, fmt.Errorf("sink: store rejected document: HTTP %d", resp.StatusCode)
	}

	var stored relaysdk.SubmissionResponse
	if err := json.Unmarshal(respBody, &stored); err != nil {
		return Stored{}, fmt.Errorf("sink: failed to decode response: %w", err)
	}

	return Stored{
		ID:          stored.ID,
		UserID:      stored.UserID,
		SubmittedAt: stored.SubmittedAt,
	}, nil
}
