package tools

import (
	"context"
	"errors"

	"github.com/lydakis/cuebridge/internal/response"
	"github.com/mark3labs/mcp-go/mcp"
)

var errNoFingerprint = errors.New("no fingerprint given and none configured")

func deviceTools(d Deps) []Tool {
	return []Tool{
		{
			Definition: mcp.Tool{
				Name:        "check_device",
				Description: "Check whether this device (or the given fingerprint) is approved by the lighting server. Status is UNKNOWN, PENDING, APPROVED or REVOKED.",
				InputSchema: objectSchema(map[string]any{
					"fingerprint": stringProp("Fingerprint to check. Defaults to this server's own fingerprint."),
				}),
			},
			Handler: d.checkDevice,
		},
		{
			Definition: mcp.Tool{
				Name:        "register_device",
				Description: "Register this device (or the given fingerprint) for approval. The device stays PENDING until an operator approves it on the lighting server.",
				InputSchema: objectSchema(map[string]any{
					"fingerprint": stringProp("Fingerprint to register. Defaults to this server's own fingerprint."),
					"name":        stringProp("Display name shown to the operator. Defaults to the configured device name."),
				}),
			},
			Handler: d.registerDevice,
		},
		{
			Definition: mcp.Tool{
				Name:        "get_auth_settings",
				Description: "Report whether the lighting server enforces authentication and device approval.",
				InputSchema: objectSchema(map[string]any{}),
			},
			Handler: d.getAuthSettings,
		},
	}
}

func (d Deps) fingerprintArg(req mcp.CallToolRequest) (string, error) {
	if fp, ok := optionalString(req, "fingerprint"); ok {
		return fp, nil
	}
	if fp, ok := d.Client.Fingerprint(); ok {
		return fp, nil
	}
	return "", errNoFingerprint
}

func (d Deps) checkDevice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fp, err := d.fingerprintArg(req)
	if err != nil {
		return response.Invalid("%v", err), nil
	}

	res, err := d.Gateway.CheckDevice(ctx, fp)
	if err != nil {
		return response.Failure("check device", err), nil
	}
	return response.Structured(map[string]any{
		"fingerprint": fp,
		"status":      res.Status,
		"device":      res.Device,
		"message":     res.Message,
	}), nil
}

func (d Deps) registerDevice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fp, err := d.fingerprintArg(req)
	if err != nil {
		return response.Invalid("%v", err), nil
	}
	name, ok := optionalString(req, "name")
	if !ok {
		name = d.DeviceName
	}

	res, err := d.Gateway.RegisterDevice(ctx, fp, name)
	if err != nil {
		return response.Failure("register device", err), nil
	}
	return response.Structured(map[string]any{
		"fingerprint": fp,
		"success":     res.Success,
		"device":      res.Device,
		"message":     res.Message,
	}), nil
}

func (d Deps) getAuthSettings(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings, err := d.Gateway.AuthSettings(ctx)
	if err != nil {
		return response.Failure("get auth settings", err), nil
	}
	return response.Structured(settings), nil
}
