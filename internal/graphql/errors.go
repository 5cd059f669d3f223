package graphql

import "errors"

// Kind tags the failure domain of an *Error.
type Kind string

const (
	KindNetwork           Kind = "network"
	KindTimeout           Kind = "timeout"
	KindCancelled         Kind = "cancelled"
	KindTransport         Kind = "transport"
	KindExecution         Kind = "execution"
	KindDeviceNotApproved Kind = "device_not_approved"
)

// DeviceNotApprovedCode is the extensions.code the backend uses to deny a device.
const DeviceNotApprovedCode = "DEVICE_NOT_APPROVED"

// UnknownErrorMessage replaces a GraphQL error entry without a message.
const UnknownErrorMessage = "Unknown GraphQL error"

// Error is every failure produced by this package.
type Error struct {
	Kind Kind
	// Operation is the GraphQL operation name, when known.
	Operation string
	Message   string

	// Transport failures.
	StatusCode int
	Status     string
	Body       string

	// Execution failures.
	Code    string
	Dropped int // error entries after the first, not surfaced

	// Device denials: the session fingerprint or "unknown".
	Fingerprint string

	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" {
		return false
	}
	return t.Kind == e.Kind
}

// Name returns the type tag shown to tool callers.
func (e *Error) Name() string {
	switch e.Kind {
	case KindNetwork:
		return "NetworkError"
	case KindTimeout:
		return "TimeoutError"
	case KindCancelled:
		return "CancelledError"
	case KindTransport:
		return "TransportError"
	case KindDeviceNotApproved:
		return "DeviceNotApprovedError"
	default:
		return "GraphQLError"
	}
}

// Sentinels for errors.Is.
var (
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrCancelled         = &Error{Kind: KindCancelled}
	ErrTransport         = &Error{Kind: KindTransport}
	ErrExecution         = &Error{Kind: KindExecution}
	ErrDeviceNotApproved = &Error{Kind: KindDeviceNotApproved}
)

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var gqlErr *Error
	if errors.As(err, &gqlErr) {
		return gqlErr.Kind
	}
	return ""
}

// IsDeviceNotApproved reports whether err is a device denial.
func IsDeviceNotApproved(err error) bool {
	return errors.Is(err, ErrDeviceNotApproved)
}
