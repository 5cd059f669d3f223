package device

import (
	"fmt"
	"time"
)

// Status is a device approval state.
type Status string

const (
	StatusUnknown  Status = "UNKNOWN"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRevoked  Status = "REVOKED"
)

// Valid reports whether s is one of the four backend states.
func (s Status) Valid() bool {
	switch s {
	case StatusUnknown, StatusPending, StatusApproved, StatusRevoked:
		return true
	default:
		return false
	}
}

// Device is the backend's record of a fingerprint.
type Device struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Fingerprint string     `json:"fingerprint"`
	Status      Status     `json:"status"`
	Permissions []string   `json:"permissions"`
	CreatedAt   time.Time  `json:"createdAt"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"`
}

// CheckResult is the answer to CheckDevice. Device is nil when the status
// is UNKNOWN.
type CheckResult struct {
	Status  Status  `json:"status"`
	Device  *Device `json:"device"`
	Message string  `json:"message"`
}

// RegisterResult is the answer to RegisterDevice. Success false with a nil
// Device is a rejected registration, not a failure.
type RegisterResult struct {
	Success bool    `json:"success"`
	Device  *Device `json:"device"`
	Message string  `json:"message"`
}

// AuthSettings says whether the backend enforces authentication at all.
type AuthSettings struct {
	AuthEnabled       bool `json:"authEnabled"`
	DeviceAuthEnabled bool `json:"deviceAuthEnabled"`
}

func (r *CheckResult) normalize() error {
	if !r.Status.Valid() {
		return fmt.Errorf("unexpected device status %q", r.Status)
	}
	if r.Status == StatusUnknown {
		r.Device = nil
	}
	return nil
}
