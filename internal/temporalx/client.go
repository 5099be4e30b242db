package temporalx

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

// NewClient dials Temporal, retrying with capped exponential backoff until
// cfg.DialMaxWait elapses. It returns nil, nil when no address is configured.
func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (temporalsdkclient.Client, error) {
	cfg = cfg.withDefaults()
	if !cfg.Enabled() {
		log.Warn("TEMPORAL_ADDRESS not set; Temporal disabled")
		return nil, nil
	}

	opts := temporalsdkclient.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    log.With("component", "temporal"),
	}
	if cfg.ClientCertPath != "" || cfg.ClientKeyPath != "" || cfg.ClientCAPath != "" {
		tlsCfg, err := loadTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.ConnectionOptions.TLS = tlsCfg
	}

	deadline := time.Now().Add(cfg.DialMaxWait)
	for attempt := 1; ; attempt++ {
		dctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		c, err := temporalsdkclient.DialContext(dctx, opts)
		cancel()
		if err == nil {
			log.Info("connected to Temporal", "address", cfg.Address, "namespace", cfg.Namespace, "attempts", attempt)
			return c, nil
		}
		if cfg.DialMaxWait == 0 || time.Now().After(deadline) {
			return nil, fmt.Errorf("temporal dial failed (address=%s namespace=%s): %w", cfg.Address, cfg.Namespace, err)
		}
		log.Warn("Temporal not reachable; retrying", "address", cfg.Address, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
}

func backoff(attempt int) time.Duration {
	const (
		base = 250 * time.Millisecond
		max  = 5 * time.Second
	)
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	return d
}

func loadTLSConfig(cfg Config) (*tls.Config, error) {
	if cfg.ClientCertPath == "" || cfg.ClientKeyPath == "" {
		return nil, fmt.Errorf("temporal tls: both TEMPORAL_CLIENT_CERT_PATH and TEMPORAL_CLIENT_KEY_PATH are required")
	}
	cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
	if err != nil {
		return nil, fmt.Errorf("temporal tls: load client cert/key: %w", err)
	}
	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	if cfg.ClientCAPath != "" {
		pem, err := os.ReadFile(cfg.ClientCAPath)
		if err != nil {
			return nil, fmt.Errorf("temporal tls: read CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("temporal tls: invalid CA pem")
		}
		tlsCfg.RootCAs = pool
	}
	return tlsCfg, nil
}
