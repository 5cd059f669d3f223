package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errRegistrationRejected = errors.New("registration rejected")

func runDeviceStatus(ctx context.Context, rt *app) error {
	res, err := rt.gateway.CheckDevice(ctx, rt.fingerprint)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"fingerprint": rt.fingerprint,
		"status":      res.Status,
		"message":     res.Message,
		"device":      res.Device,
	})
}

func runDeviceRegister(ctx context.Context, rt *app, name string) error {
	if name == "" {
		name = rt.cfg.Device.Name
	}
	res, err := rt.gateway.RegisterDevice(ctx, rt.fingerprint, name)
	if err != nil {
		return err
	}
	if err := printJSON(map[string]any{
		"fingerprint": rt.fingerprint,
		"success":     res.Success,
		"message":     res.Message,
		"device":      res.Device,
	}); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", errRegistrationRejected, res.Message)
	}
	return nil
}

func runAuthSettings(ctx context.Context, rt *app) error {
	settings, err := rt.gateway.AuthSettings(ctx)
	if err != nil {
		return err
	}
	return printJSON(settings)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rootStdout, string(out))
	return err
}
