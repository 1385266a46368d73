package vkapi

import (
	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/response"
	"github.com/jrsteele09/go-vk-client/transport"
)

type (
	// TransportError is a network or HTTP status failure.
	TransportError = transport.TransportError
	// DecodeError is a body that is not a JSON value.
	DecodeError = response.DecodeError
	// RemoteError is an error object returned by the API.
	RemoteError = response.RemoteError
)

var (
	// ErrAuthRequired is matched by every AuthRequiredError.
	ErrAuthRequired = vkerrors.ErrAuthRequired
	// ErrInvalidMethodName is returned when a dispatch name cannot be split.
	ErrInvalidMethodName = vkerrors.ErrInvalidMethodName
)

// AuthRequiredError is returned by Call when no access token is available.
type AuthRequiredError struct {
	Method string
}

func (e *AuthRequiredError) Error() string {
	return ErrAuthRequired.Error() + " (" + e.Method + ")"
}

func (e *AuthRequiredError) Unwrap() error {
	return ErrAuthRequired
}

// WarningError records an unstructured API error that did not fail the request.
type WarningError struct {
	Message string
}

func (e *WarningError) Error() string {
	return e.Message
}

// ErrorKind classifies client errors.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTransport
	KindDecode
	KindRemote
	KindAuthRequired
	KindWarning
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindRemote:
		return "remote"
	case KindAuthRequired:
		return "auth_required"
	case KindWarning:
		return "warning"
	}
	return "unknown"
}

// Kind reports which class err belongs to.
func Kind(err error) ErrorKind {
	var (
		te *TransportError
		de *DecodeError
		re *RemoteError
		we *WarningError
	)
	switch {
	case err == nil:
		return KindUnknown
	case vkerrors.As(err, &te):
		return KindTransport
	case vkerrors.As(err, &de):
		return KindDecode
	case vkerrors.As(err, &re):
		return KindRemote
	case vkerrors.Is(err, ErrAuthRequired):
		return KindAuthRequired
	case vkerrors.As(err, &we):
		return KindWarning
	}
	return KindUnknown
}
