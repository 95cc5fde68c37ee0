package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/appshell/pkg/logger"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// ServeOption configures Serve.
type ServeOption func(*serveConfig)

type serveConfig struct {
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	tlsDomains      []string
	tlsCacheDir     string
}

// Address sets the listen address. Default: ":8080".
func Address(addr string) ServeOption {
	return func(c *serveConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// ServeLogger sets the runtime logger.
func ServeLogger(l *slog.Logger) ServeOption {
	return func(c *serveConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds the graceful shutdown, hooks included.
// Default: 30 seconds.
func ShutdownTimeout(d time.Duration) ServeOption {
	return func(c *serveConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook runs before the listener accepts connections. A failing hook
// aborts Serve.
func StartupHook(fn func(context.Context) error) ServeOption {
	return func(c *serveConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook runs after the server stopped, in registration order.
func ShutdownHook(fn func(context.Context) error) ServeOption {
	return func(c *serveConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithAutoTLS serves HTTPS on :443 with Let's Encrypt certificates for the
// given domains, cached in cacheDir, and answers ACME challenges on :80.
// The Address option is ignored.
func WithAutoTLS(cacheDir string, domains ...string) ServeOption {
	return func(c *serveConfig) {
		if len(domains) > 0 {
			c.tlsDomains = domains
			c.tlsCacheDir = cacheDir
		}
	}
}

// Serve runs handler until ctx is canceled or the process receives SIGINT
// or SIGTERM, then shuts down gracefully.
func Serve(ctx context.Context, handler http.Handler, opts ...ServeOption) error {
	cfg := &serveConfig{
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return err
		}
	}

	servers := []*http.Server{newServer(cfg.address, handler)}
	if len(cfg.tlsDomains) > 0 {
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.tlsDomains...),
		}
		if cfg.tlsCacheDir != "" {
			m.Cache = autocert.DirCache(cfg.tlsCacheDir)
		}
		https := newServer(":443", handler)
		https.TLSConfig = m.TLSConfig()
		servers = []*http.Server{https, newServer(":80", m.HTTPHandler(nil))}
	}

	listeners := make([]net.Listener, 0, len(servers))
	for _, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return err
		}
		listeners = append(listeners, ln)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		ln := listeners[i]
		g.Go(func() error {
			cfg.logger.Info("server starting", slog.String("address", ln.Addr().String()))
			var err error
			if srv.TLSConfig != nil {
				err = srv.ServeTLS(ln, "", "")
			} else {
				err = srv.Serve(ln)
			}
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		cfg.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		for _, hook := range cfg.shutdownHooks {
			if err := hook(shutdownCtx); err != nil {
				cfg.logger.Error("shutdown hook failed", slog.Any("error", err))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		cfg.logger.Error("server stopped with errors", slog.Any("error", err))
		return err
	}
	cfg.logger.Info("shutdown completed")
	return nil
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}
