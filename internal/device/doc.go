// Package device observes the backend's device-approval workflow.
//
// The backend owns every device record. A device starts UNKNOWN, becomes
// PENDING once registered, and is moved to APPROVED or REVOKED only by an
// operator on the backend. This package can read the status and perform
// the initial registration; it never approves or revokes.
package device
