package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lydakis/cuebridge/internal/graphql"
)

const deviceFields = `
      id
      name
      fingerprint
      status
      permissions
      createdAt
      approvedAt
      lastSeenAt`

const checkDeviceDocument = `query CheckDevice($fingerprint: String!) {
  checkDeviceAuthorization(fingerprint: $fingerprint) {
    status
    message
    device {` + deviceFields + `
    }
  }
}`

const registerDeviceDocument = `mutation RegisterDevice($fingerprint: String!, $name: String!) {
  registerDevice(fingerprint: $fingerprint, name: $name) {
    success
    message
    device {` + deviceFields + `
    }
  }
}`

const authSettingsDocument = `query AuthSettings {
  authSettings {
    authEnabled
    deviceAuthEnabled
  }
}`

// Executor runs one GraphQL request and decodes its data into out.
// *graphql.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, req graphql.Request, out any) error
}

// Gateway reads and initiates device approval on the backend.
type Gateway struct {
	exec Executor
}

// NewGateway creates a Gateway that sends requests through exec.
func NewGateway(exec Executor) *Gateway {
	return &Gateway{exec: exec}
}

// CheckDevice returns the backend's view of fingerprint. It never changes
// device state.
func (g *Gateway) CheckDevice(ctx context.Context, fingerprint string) (*CheckResult, error) {
	if strings.TrimSpace(fingerprint) == "" {
		return nil, errors.New("fingerprint is required")
	}

	var out struct {
		Result *CheckResult `json:"checkDeviceAuthorization"`
	}
	req := graphql.Build("CheckDevice", checkDeviceDocument, map[string]any{"fingerprint": fingerprint})
	if err := g.exec.Execute(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Result == nil {
		return nil, errors.New("checkDeviceAuthorization returned no result")
	}
	if err := out.Result.normalize(); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// RegisterDevice asks the backend to record fingerprint as PENDING under
// name. Repeat registrations are resolved by the backend.
func (g *Gateway) RegisterDevice(ctx context.Context, fingerprint, name string) (*RegisterResult, error) {
	if strings.TrimSpace(fingerprint) == "" {
		return nil, errors.New("fingerprint is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("device name is required")
	}

	var out struct {
		Result *RegisterResult `json:"registerDevice"`
	}
	req := graphql.Build("RegisterDevice", registerDeviceDocument, map[string]any{
		"fingerprint": fingerprint,
		"name":        name,
	})
	if err := g.exec.Execute(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Result == nil {
		return nil, errors.New("registerDevice returned no result")
	}
	return out.Result, nil
}

// AuthSettings reads whether the backend enforces the device gate.
func (g *Gateway) AuthSettings(ctx context.Context) (*AuthSettings, error) {
	var out struct {
		Settings *AuthSettings `json:"authSettings"`
	}
	if err := g.exec.Execute(ctx, graphql.Build("AuthSettings", authSettingsDocument, nil), &out); err != nil {
		return nil, err
	}
	if out.Settings == nil {
		return nil, fmt.Errorf("authSettings returned no result")
	}
	return out.Settings, nil
}
