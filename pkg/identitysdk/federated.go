package identitysdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// FederatedConfig configures sign-in through an upstream OIDC identity
// provider. The SDK runs the authorization-code flow against the upstream,
// verifies the ID token locally against the upstream JWKS, then hands the
// verified profile to the identity service which mints its own session.
type FederatedConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// FederatedFlow is a configured upstream OIDC flow.
type FederatedFlow struct {
	client   *Client
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewFederatedFlow discovers the upstream provider and prepares the
// authorization-code flow.
func (c *Client) NewFederatedFlow(ctx context.Context, cfg FederatedConfig) (*FederatedFlow, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover upstream provider: %w", err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &FederatedFlow{
		client: c,
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// AuthURL returns the upstream authorization URL for the given state.
func (f *FederatedFlow) AuthURL(state string) string {
	return f.oauth.AuthCodeURL(state)
}

// Exchange redeems the authorization code, verifies the upstream ID token
// and establishes a session with the identity service from the verified
// profile. The resulting session becomes the client's current session.
func (f *FederatedFlow) Exchange(ctx context.Context, code string) (*Session, error) {
	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("upstream token response is missing an id_token")
	}

	idToken, err := f.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify upstream id_token: %w", err)
	}

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode upstream claims: %w", err)
	}

	var resp SessionResponse
	err = f.client.doJSON(ctx, http.MethodPost, "/v1/federated", FederatedRequest{
		Subject: idToken.Subject,
		Email:   profile.Email,
		Name:    profile.Name,
	}, &resp, "")
	if err != nil {
		return nil, err
	}

	session := sessionFromResponse(resp)
	f.client.setSession(session)
	return session, nil
}
