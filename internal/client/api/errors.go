package api

import "errors"

// Kind classifies an API failure for callers that need to branch on it.
type Kind int

const (
	// KindServer means the backend handled the request and rejected it
	// (bad credentials, validation, unknown id). Message carries the
	// server-supplied text.
	KindServer Kind = iota + 1

	// KindNetwork means the request never produced a usable response:
	// transport failure, timeout, or an undecodable body.
	KindNetwork
)

// Error is the only error type the API client returns.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ServerError builds a server-rejection error.
func ServerError(message string) *Error {
	return &Error{Kind: KindServer, Message: message}
}

// NetworkError builds a transport-level error.
func NetworkError(message string) *Error {
	return &Error{Kind: KindNetwork, Message: message}
}

// IsNetwork reports whether err is an API error of kind KindNetwork.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}
