package identitysdk

import (
	"context"
	"net/http"
	"time"
)

// Proof is a single-use human-verification token. The provider consumes it
// on the first challenge issuance; it cannot be presented twice.
type Proof struct {
	Token     string
	ExpiresAt time.Time
}

// RequestProof obtains an invisible-mode human-verification proof bound to
// the given widget mount point.
func (c *Client) RequestProof(ctx context.Context, mount string) (Proof, error) {
	var resp ProofResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/verifications", ProofRequest{Mount: mount}, &resp, "")
	if err != nil {
		return Proof{}, err
	}

	return Proof{
		Token:     resp.ProofToken,
		ExpiresAt: time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// IssueChallenge asks the provider to send a one-time code to the phone
// number, consuming the proof. It returns the opaque challenge handle
// required by ConfirmCode. Only the handle from the most recent issuance is
// honored by the provider.
func (c *Client) IssueChallenge(ctx context.Context, phoneNumber, proofToken string) (string, error) {
	var resp ChallengeResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/challenges", ChallengeRequest{
		PhoneNumber: phoneNumber,
		ProofToken:  proofToken,
	}, &resp, "")
	if err != nil {
		return "", err
	}
	return resp.ChallengeID, nil
}

// ConfirmCode submits the one-time code for an issued challenge. On success
// the provider establishes a session, which becomes the client's current
// session and is published to subscribers.
func (c *Client) ConfirmCode(ctx context.Context, handle, code string) (*Session, error) {
	var resp SessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/challenges/"+handle+"/confirm", ConfirmRequest{Code: code}, &resp, "")
	if err != nil {
		return nil, err
	}

	session := sessionFromResponse(resp)
	c.setSession(session)
	return session, nil
}
