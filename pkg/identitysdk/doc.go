// Package identitysdk is the client SDK for the Kindling identity provider.
//
// It covers the full sign-in surface the portal consumes: invisible
// human-verification proofs, the two-step phone challenge protocol,
// federated sign-in through an upstream OIDC provider, sign-out, and a
// session change stream with background revalidation.
//
// The same error types are used by the identity service's HTTP handlers so
// that wire errors round-trip into the values callers match on.
package identitysdk
