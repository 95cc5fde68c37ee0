package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/appshell"
	"github.com/dmitrymomot/appshell/middlewares"
	"github.com/dmitrymomot/appshell/pkg/event"
	"github.com/dmitrymomot/appshell/pkg/health"
	"github.com/dmitrymomot/appshell/pkg/redis"
	"github.com/dmitrymomot/appshell/pkg/registry"
	"github.com/dmitrymomot/appshell/pkg/response"
	"github.com/dmitrymomot/appshell/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web application",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address, overrides http.address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Set("http.address", addr)
	}

	log := newLogger(cfg)
	ctx := cmd.Context()

	store, checks, closeStore, err := sessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	handler := newHandler(cfg, log, store, checks)

	opts := []appshell.ServeOption{
		appshell.Address(cfg.String("http.address", ":8080")),
		appshell.ServeLogger(log),
		appshell.ShutdownTimeout(cfg.Duration("http.shutdown_timeout", 10*time.Second)),
		appshell.ShutdownHook(closeStore),
	}
	if domains := splitDomains(cfg.String("tls.domains", "")); len(domains) > 0 {
		opts = append(opts, appshell.WithAutoTLS(cfg.String("tls.cache_dir", "certs"), domains...))
	}

	return appshell.Serve(ctx, handler, opts...)
}

// newHandler assembles the routed application behind the request ID and
// recover middlewares.
func newHandler(cfg *registry.Registry, log *slog.Logger, store session.Store, checks health.Checks) http.Handler {
	bus := event.NewBus()
	bus.Subscribe(event.Error, event.LogErrors(log))

	manager := session.NewManager(store,
		session.WithCookieName(cfg.String("session.cookie", session.DefaultCookieName)),
		session.WithTTL(cfg.Duration("session.ttl", session.DefaultTTL)),
		session.WithCookiePath(cfg.String("session.path", "/")),
		session.WithSameSite(parseSameSite(cfg.String("session.same_site", "lax"))),
		session.WithSecureCookie(cfg.String("tls.domains", "") != ""),
	)

	rt, res := routes(checks)
	h := appshell.RoutedHandler(rt, res,
		appshell.WithConfig(cfg),
		appshell.WithLogger(log),
		appshell.WithDispatcher(bus),
		appshell.WithSessionManager(manager),
		appshell.WithNegotiator(response.NewNegotiator(response.WithProduct("appshell"))),
	)

	return middlewares.Chain(h,
		middlewares.RequestID(),
		middlewares.Recover(middlewares.WithRecoverLogger(log)),
	)
}

// sessionStore picks Redis when session.redis_url is set and memory
// otherwise, along with its readiness checks and a hook that releases it
// on shutdown.
func sessionStore(ctx context.Context, cfg *registry.Registry, log *slog.Logger) (session.Store, health.Checks, func(context.Context) error, error) {
	url := cfg.String("session.redis_url", "")
	if url == "" {
		log.Warn("sessions are kept in memory")
		return session.NewMemoryStore(), nil, func(context.Context) error { return nil }, nil
	}

	client, err := redis.Open(ctx, url)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("session store: %w", err)
	}

	checks := health.Checks{
		"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
	return session.NewRedisStore(client, session.WithRedisPrefix("appshell:session")), checks, redis.CloseHook(client), nil
}

// parseSameSite maps "strict", "none" and "lax" to cookie modes. Anything
// else is lax.
func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func splitDomains(s string) []string {
	var out []string
	for d := range strings.SplitSeq(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
