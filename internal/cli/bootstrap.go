package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lydakis/cuebridge/internal/config"
	"github.com/lydakis/cuebridge/internal/device"
	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/logging"
)

// app holds everything a command needs, built once from config.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	client      *graphql.Client
	gateway     *device.Gateway
	fingerprint string
}

// loadConfig reads the config file and layers flag overrides on top.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if opts.fingerprint != "" {
		cfg.Device.Fingerprint = opts.fingerprint
	}
	if opts.transport != "" {
		cfg.Server.Transport = opts.transport
	}
	if opts.listen != "" {
		cfg.Server.Listen = opts.listen
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newApp(cfg *config.Config) (*app, error) {
	logger := logging.NewWithWriter(rootStderr, cfg.Log, buildVersion)

	timeout, err := config.ParseRequestTimeout(cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	fingerprint := strings.TrimSpace(cfg.Device.Fingerprint)
	if fingerprint == "" {
		fingerprint, err = device.LoadOrCreateFingerprint(cfg.Device.FingerprintFile)
		if err != nil {
			return nil, fmt.Errorf("device fingerprint: %w", err)
		}
	}

	client := graphql.NewClient(cfg.Endpoint,
		graphql.WithHeaders(cfg.Headers),
		graphql.WithTimeout(timeout),
		graphql.WithLogger(logger),
		graphql.WithFingerprint(fingerprint),
	)
	return &app{
		cfg:         cfg,
		logger:      logger,
		client:      client,
		gateway:     device.NewGateway(client),
		fingerprint: fingerprint,
	}, nil
}
