package cli

import (
	"context"

	"github.com/lydakis/cuebridge/internal/device"
	"github.com/lydakis/cuebridge/internal/server"
	"github.com/lydakis/cuebridge/internal/tools"
)

func runServe(ctx context.Context, rt *app) error {
	rt.logger.Info("starting",
		"endpoint", rt.client.Endpoint(),
		"transport", rt.cfg.Server.Transport,
		"fingerprint", rt.fingerprint,
	)

	if rt.cfg.Device.ShouldCheckOnStartup() {
		if _, err := device.Probe(ctx, rt.gateway, rt.logger, rt.fingerprint, rt.cfg.Device.Name, rt.cfg.Device.AutoRegister); err != nil {
			rt.logger.Warn("startup device check failed", "error", err)
		}
	}

	s := server.New(tools.Deps{
		Client:     rt.client,
		Gateway:    rt.gateway,
		DeviceName: rt.cfg.Device.Name,
		Logger:     rt.logger,
	}, rt.logger, buildVersion)
	return server.Serve(ctx, s, rt.cfg.Server, rt.logger)
}
