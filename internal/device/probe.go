package device

import (
	"context"
	"log/slog"
)

// ProbeResult summarizes the startup device check.
type ProbeResult struct {
	Settings   *AuthSettings
	Status     Status
	Registered bool
}

// Probe reads the backend's auth settings and, when the device gate is
// enforced, the status of fingerprint. An UNKNOWN device is registered under
// name if autoRegister is set. Progress is logged; the returned error is
// informational and callers keep serving when it is non-nil.
func Probe(ctx context.Context, gw *Gateway, logger *slog.Logger, fingerprint, name string, autoRegister bool) (*ProbeResult, error) {
	settings, err := gw.AuthSettings(ctx)
	if err != nil {
		return nil, err
	}
	res := &ProbeResult{Settings: settings}
	if !settings.DeviceAuthEnabled {
		logger.Info("backend does not enforce device approval")
		return res, nil
	}

	check, err := gw.CheckDevice(ctx, fingerprint)
	if err != nil {
		return res, err
	}
	res.Status = check.Status

	switch check.Status {
	case StatusApproved:
		logger.Info("device approved", "fingerprint", fingerprint)
	case StatusPending:
		logger.Warn("device awaiting operator approval", "fingerprint", fingerprint)
	case StatusRevoked:
		logger.Error("device access revoked", "fingerprint", fingerprint)
	case StatusUnknown:
		if !autoRegister {
			logger.Warn("device not registered; call register_device or enable device.auto_register", "fingerprint", fingerprint)
			return res, nil
		}
		reg, err := gw.RegisterDevice(ctx, fingerprint, name)
		if err != nil {
			return res, err
		}
		if !reg.Success {
			logger.Warn("device registration rejected", "fingerprint", fingerprint, "message", reg.Message)
			return res, nil
		}
		res.Registered = true
		res.Status = StatusPending
		if reg.Device != nil {
			res.Status = reg.Device.Status
		}
		logger.Info("device registered; awaiting operator approval", "fingerprint", fingerprint, "name", name)
	}
	return res, nil
}
