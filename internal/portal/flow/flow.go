// Package flow drives phone sign-in: verification gate, challenge issuance,
// one-time-code confirmation, session establishment. The controller is a
// small state machine; every transition happens under one lock and async
// provider results are tagged so a cancelled attempt can never land late.
package flow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kindlinghq/kindling/internal/portal/gate"
	"github.com/kindlinghq/kindling/internal/portal/notice"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/idx"
)

// State names the controller's position in the sign-in flow.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingPhone State = "awaiting_phone"
	StateIssuing       State = "issuing"
	StateAwaitingCode  State = "awaiting_code"
	StateConfirming    State = "confirming"
	StateFailed        State = "failed"
)

// ErrUnexpectedState is returned when an operation does not apply to the
// controller's current state.
var ErrUnexpectedState = errors.New("flow: operation not valid in current state")

// Provider is the slice of the identity SDK the controller drives.
type Provider interface {
	IssueChallenge(ctx context.Context, phoneNumber, proofToken string) (string, error)
	ConfirmCode(ctx context.Context, handle, code string) (*identitysdk.Session, error)
}

// Controller runs one phone sign-in flow against one gate mount point.
type Controller struct {
	provider Provider
	gate     *gate.Gate
	notices  *notice.Center
	mount    string

	mu      sync.Mutex
	state   State
	attempt idx.ID // tags the in-flight provider call; stale results are dropped
	handle  string // current challenge handle, empty when none
	events  <-chan gate.Event
	subs    []func(State)
}

func NewController(provider Provider, g *gate.Gate, notices *notice.Center, mount string) *Controller {
	g.RegisterMount(mount)
	return &Controller{
		provider: provider,
		gate:     g,
		notices:  notices,
		mount:    mount,
		state:    StateIdle,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnStateChange registers fn for every state transition.
func (c *Controller) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Start begins the flow: renders the verification widget and moves to phone
// input. Valid only from Idle.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrUnexpectedState
	}
	c.mu.Unlock()

	if err := c.gate.EnsureRendered(ctx, c.mount); err != nil {
		return err
	}

	c.mu.Lock()
	if c.events == nil {
		c.mu.Unlock()
		events, err := c.gate.Events(c.mount)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.events = events
	}
	c.setStateLocked(StateAwaitingPhone)
	c.mu.Unlock()
	return nil
}

// SubmitPhoneNumber normalizes and submits the phone number, consuming the
// gate proof and asking the provider for a one-time code. An input that
// normalizes to nothing is ignored without a state change. Valid only while
// awaiting phone input.
func (c *Controller) SubmitPhoneNumber(ctx context.Context, raw string) error {
	normalized := NormalizePhone(raw)

	c.mu.Lock()
	if c.state != StateAwaitingPhone {
		c.mu.Unlock()
		return ErrUnexpectedState
	}
	if normalized == "" {
		// Nothing to send; stay put.
		c.mu.Unlock()
		return nil
	}

	proof, err := c.gate.TakeProof(c.mount)
	if err != nil {
		c.failLocked("human verification is not ready, please try again")
		c.mu.Unlock()
		return err
	}

	attempt := idx.New()
	c.attempt = attempt
	events := c.events
	c.setStateLocked(StateIssuing)
	c.mu.Unlock()

	go c.issue(ctx, attempt, normalized, proof, events)
	return nil
}

// issue runs challenge issuance, racing the provider call against proof
// expiry from the gate.
func (c *Controller) issue(ctx context.Context, attempt idx.ID, phone, proof string, events <-chan gate.Event) {
	type result struct {
		handle string
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		handle, err := c.provider.IssueChallenge(ctx, phone, proof)
		resultCh <- result{handle: handle, err: err}
	}()

	// Buffered events predate the proof consumed for this attempt; an
	// expiry left over from an earlier solve must not fail this issuance.
drain:
	for {
		select {
		case <-events:
		default:
			break drain
		}
	}

	for {
		select {
		case res := <-resultCh:
			if res.err != nil {
				c.applyFailure(attempt, StateIssuing, res.err, true)
				return
			}
			c.applyIssued(attempt, res.handle)
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type == gate.EventExpired {
				// The proof lapsed while the request was in flight. Even a
				// late success is untrustworthy; fail and reset.
				c.applyFailureText(attempt, StateIssuing, "verification expired, please try again", true)
				return
			}

		case <-ctx.Done():
			c.applyFailure(attempt, StateIssuing, ctx.Err(), true)
			return
		}
	}
}

// codeLength is the length of a delivered one-time code. Longer input is
// truncated, matching a length-capped input field.
const codeLength = 6

// SubmitCode submits the one-time code for confirmation. Empty input is
// ignored. Valid only while awaiting code input.
func (c *Controller) SubmitCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if len(code) > codeLength {
		code = code[:codeLength]
	}

	c.mu.Lock()
	if c.state != StateAwaitingCode {
		c.mu.Unlock()
		return ErrUnexpectedState
	}
	if code == "" {
		c.mu.Unlock()
		return nil
	}

	attempt := idx.New()
	c.attempt = attempt
	handle := c.handle
	c.setStateLocked(StateConfirming)
	c.mu.Unlock()

	go func() {
		session, err := c.provider.ConfirmCode(ctx, handle, code)
		if err != nil {
			// The handle stays valid for a plain wrong code; anything else
			// means it is spent and the flow must restart from phone input.
			retainHandle := providerErrorCode(err) == identitysdk.ErrorCodeInvalidCode
			c.applyFailure(attempt, StateConfirming, err, !retainHandle)
			return
		}
		c.applyConfirmed(attempt, session)
	}()
	return nil
}

// Cancel abandons the flow from any state and returns to Idle. Any in-flight
// provider result is discarded.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.attempt = idx.Zero
	c.handle = ""
	c.setStateLocked(StateIdle)
	c.mu.Unlock()

	c.gate.Reset(c.mount)
}

// Retry recovers from a failure. With a retained challenge handle it returns
// to code input; otherwise it restarts at phone input. Valid only from
// Failed.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateFailed {
		c.mu.Unlock()
		return ErrUnexpectedState
	}

	if c.handle != "" {
		c.setStateLocked(StateAwaitingCode)
		c.mu.Unlock()
		return nil
	}
	c.setStateLocked(StateIdle)
	c.mu.Unlock()

	return c.Start(ctx)
}

// applyIssued lands a successful issuance if the attempt is still current.
func (c *Controller) applyIssued(attempt idx.ID, handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt != attempt || c.state != StateIssuing {
		return
	}
	c.handle = handle
	c.setStateLocked(StateAwaitingCode)
}

// applyConfirmed lands a successful confirmation if the attempt is still
// current. The SDK has already published the session.
func (c *Controller) applyConfirmed(attempt idx.ID, _ *identitysdk.Session) {
	c.mu.Lock()
	if c.attempt != attempt || c.state != StateConfirming {
		c.mu.Unlock()
		return
	}
	c.handle = ""
	c.setStateLocked(StateIdle)
	c.mu.Unlock()

	// The solve behind this sign-in is spent; rearm the widget so a later
	// flow starts with a fresh proof.
	c.gate.Reset(c.mount)
}

func (c *Controller) applyFailure(attempt idx.ID, from State, err error, dropHandle bool) {
	c.applyFailureText(attempt, from, failureText(err), dropHandle)
}

func (c *Controller) applyFailureText(attempt idx.ID, from State, text string, dropHandle bool) {
	c.mu.Lock()
	if c.attempt != attempt || c.state != from {
		c.mu.Unlock()
		return
	}
	c.attempt = idx.Zero
	if dropHandle {
		c.handle = ""
	}
	c.failLocked(text)
	c.mu.Unlock()

	// The proof is spent either way; a fresh solve is needed for the next
	// issuance.
	c.gate.Reset(c.mount)
}

// failLocked transitions to Failed and posts the error notice. Flow
// failures are retryable, so the notice is dismissable.
func (c *Controller) failLocked(text string) {
	c.setStateLocked(StateFailed)
	if c.notices != nil {
		c.notices.Post(notice.SeverityError, text, true)
	}
}

func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.state = s
	for _, fn := range c.subs {
		go fn(s)
	}
}

// failureText surfaces provider error descriptions verbatim; other errors
// fall back to their message.
func failureText(err error) string {
	var provErr *identitysdk.ProviderError
	if errors.As(err, &provErr) {
		return provErr.Description
	}
	return err.Error()
}

func providerErrorCode(err error) string {
	var provErr *identitysdk.ProviderError
	if errors.As(err, &provErr) {
		return provErr.Code
	}
	return ""
}

// NormalizePhone strips formatting from a phone number: every non-digit is
// removed and the result carries a single leading "+". Inputs with no digits
// normalize to the empty string.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "+" + b.String()
}
