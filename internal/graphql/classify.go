package graphql

import (
	"encoding/json"
	"strings"
)

const deviceNotApprovedPhrase = "device not approved"

// Classify turns a decoded envelope into its data or an *Error.
//
// An empty errors list with data present is success. Otherwise only the
// first error entry is surfaced; the number of ignored entries is kept in
// Error.Dropped.
func Classify(env *Envelope, sess Session) (json.RawMessage, error) {
	if env == nil {
		env = &Envelope{}
	}

	if len(env.Errors) == 0 {
		if env.HasData() {
			return env.Data, nil
		}
		return nil, &Error{
			Kind:    KindExecution,
			Message: "GraphQL response contained neither data nor errors",
		}
	}

	first := env.Errors[0]
	message := first.Message
	if message == "" {
		message = UnknownErrorMessage
	}
	code := first.Code()

	if code == DeviceNotApprovedCode || strings.Contains(strings.ToLower(message), deviceNotApprovedPhrase) {
		return nil, &Error{
			Kind:        KindDeviceNotApproved,
			Message:     message,
			Code:        code,
			Dropped:     len(env.Errors) - 1,
			Fingerprint: sess.fingerprintOrUnknown(),
		}
	}

	return nil, &Error{
		Kind:    KindExecution,
		Message: message,
		Code:    code,
		Dropped: len(env.Errors) - 1,
	}
}
