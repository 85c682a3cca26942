package errors

import "net/http"

// Kind classifies a TypedError into one of the categories callers need to
// branch on: is this worth retrying, should it surface to the user as-is,
// is the on-disk state corrupt.
type Kind int

const (
	// KindUnknown is the zero value and should not be constructed directly.
	KindUnknown Kind = iota
	// KindConfig marks invalid caller-supplied input (a TusConfig validation
	// failure, an upload source that cannot be used) or a server response
	// missing a field the protocol requires, such as Location.
	KindConfig
	// KindIO marks a local filesystem failure (open, read, stat, rename).
	KindIO
	// KindNetwork marks a transport-level failure reaching the server.
	KindNetwork
	// KindProtocol marks a server response that violates the tus protocol
	// (unexpected status code, missing or malformed Upload-Offset,
	// unparseable Location header).
	KindProtocol
	// KindSerde marks a failure encoding or decoding persisted state.
	KindSerde
	// KindInvalidState marks an attempted state transition the upload's
	// state machine does not allow.
	KindInvalidState
	// KindUploadNotFound marks a lookup against an unknown upload ID.
	KindUploadNotFound
)

// String returns a lowercase name for the kind, suitable for log fields.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	case KindSerde:
		return "serde"
	case KindInvalidState:
		return "invalid_state"
	case KindUploadNotFound:
		return "upload_not_found"
	default:
		return "unknown"
	}
}

// TypedError is an error carrying a Kind, an optional HTTP status code (set
// when the error originated from a server response), and the underlying
// cause.
type TypedError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *TypedError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *TypedError) Unwrap() error {
	return e.Err
}

func newTyped(kind Kind, message string, statusCode int, err error) *TypedError {
	return &TypedError{Kind: kind, Message: message, StatusCode: statusCode, Err: err}
}

// NewConfigError wraps invalid caller-supplied input or a response missing
// a field the protocol requires.
func NewConfigError(message string, err error) *TypedError {
	return newTyped(KindConfig, message, 0, err)
}

// NewIOError wraps a local filesystem failure.
func NewIOError(message string, err error) *TypedError {
	return newTyped(KindIO, message, 0, err)
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(message string, err error) *TypedError {
	return newTyped(KindNetwork, message, 0, err)
}

// NewProtocolError wraps a tus protocol violation, optionally carrying the
// HTTP status code the server responded with.
func NewProtocolError(message string, statusCode int, err error) *TypedError {
	return newTyped(KindProtocol, message, statusCode, err)
}

// NewSerdeError wraps a persisted-state encode/decode failure.
func NewSerdeError(message string, err error) *TypedError {
	return newTyped(KindSerde, message, 0, err)
}

// NewInvalidStateError wraps a disallowed state-machine transition.
func NewInvalidStateError(message string) *TypedError {
	return newTyped(KindInvalidState, message, 0, nil)
}

// NewUploadNotFoundError wraps a lookup against an unknown upload ID.
func NewUploadNotFoundError(id string) *TypedError {
	return newTyped(KindUploadNotFound, "upload not found: "+id, http.StatusNotFound, nil)
}

func kindOf(err error) (Kind, bool) {
	var te *TypedError
	if As(err, &te) {
		return te.Kind, true
	}
	return KindUnknown, false
}

// IsConfigError reports whether err is, or wraps, a config TypedError.
func IsConfigError(err error) bool { k, ok := kindOf(err); return ok && k == KindConfig }

// IsIOError reports whether err is, or wraps, an IO TypedError.
func IsIOError(err error) bool { k, ok := kindOf(err); return ok && k == KindIO }

// IsNetworkError reports whether err is, or wraps, a network TypedError.
func IsNetworkError(err error) bool { k, ok := kindOf(err); return ok && k == KindNetwork }

// IsProtocolError reports whether err is, or wraps, a protocol TypedError.
func IsProtocolError(err error) bool { k, ok := kindOf(err); return ok && k == KindProtocol }

// IsSerdeError reports whether err is, or wraps, a serde TypedError.
func IsSerdeError(err error) bool { k, ok := kindOf(err); return ok && k == KindSerde }

// IsInvalidStateError reports whether err is, or wraps, an invalid-state TypedError.
func IsInvalidStateError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindInvalidState
}

// IsUploadNotFoundError reports whether err is, or wraps, an upload-not-found TypedError.
func IsUploadNotFoundError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindUploadNotFound
}

// IsRetryable reports whether err is a kind of failure a worker should
// retry: transport failures and protocol failures carrying a non-2xx HTTP
// status. Protocol failures with no status or a 2xx status (a malformed
// response header) are not retryable, nor are config, IO, serde,
// invalid-state, and not-found errors.
func IsRetryable(err error) bool {
	k, ok := kindOf(err)
	if !ok {
		return false
	}
	switch k {
	case KindNetwork:
		return true
	case KindProtocol:
		var te *TypedError
		if As(err, &te) {
			return te.StatusCode != 0 && (te.StatusCode < 200 || te.StatusCode >= 300)
		}
		return false
	default:
		return false
	}
}
