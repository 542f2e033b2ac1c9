package app

import (
	"log/slog"

	"github.com/kindlinghq/kindling/internal/portal/endpoint"
	"github.com/kindlinghq/kindling/internal/portal/flow"
	"github.com/kindlinghq/kindling/internal/portal/gate"
	"github.com/kindlinghq/kindling/internal/portal/notice"
	"github.com/kindlinghq/kindling/internal/portal/sessionwatch"
	"github.com/kindlinghq/kindling/internal/portal/sink"
	"github.com/kindlinghq/kindling/pkg/identitysdk"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the portal's client-side modules together. Everything
// hangs off the identity client: the gate requests proofs through it, the
// flow signs in through it, the observer and sink read its session.
type Application struct {
	Cfg    Config
	Logger *slog.Logger

	Identity *identitysdk.Client
	Notices  *notice.Center
	Gate     *gate.Gate
	Flow     *flow.Controller
	Sessions *sessionwatch.Observer
	Sink     *sink.Client
	Endpoint *endpoint.Client
}

// New builds the portal application from configuration.
func New(cfg Config) *Application {
	logger := slogx.New(slogx.Config{
		Service: "portal",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	identity := identitysdk.NewClient(cfg.IdentityURL)
	notices := notice.NewCenter()

	g := gate.New(func(mount string) gate.Widget {
		return gate.NewInvisibleWidget(identity, mount)
	})

	app := &Application{
		Cfg:      cfg,
		Logger:   logger,
		Identity: identity,
		Notices:  notices,
		Gate:     g,
		Flow:     flow.NewController(identity, g, notices, cfg.GateMount),
		Sessions: sessionwatch.NewObserver(identity, notices, cfg.SessionWatchInterval),
		Endpoint: endpoint.NewClient(cfg.EndpointURL),
	}

	app.Sink = sink.NewClient(cfg.RelayURL, func() string {
		if s := identity.CurrentSession(); s != nil {
			return s.Token
		}
		return ""
	})

	return app
}

// Start brings up the background observers.
func (a *Application) Start() {
	a.Sessions.Start()
}

// Close tears down the background observers.
func (a *Application) Close() {
	a.Sessions.Close()
}
