package atompub

import (
	"errors"
	"fmt"
	"strconv"
)

//////////////////////////////////////////////////

var (
	NilDoer      = errors.New("doer is nil")
	NilRequester = errors.New("requester is nil")
	NilRequest   = errors.New("request is nil")
	EmptyURL     = errors.New("url is empty")
	NilResponse  = errors.New("response is nil")
)

// TransportError reports a failed round trip: the request could not be
// sent, or the server answered with a status the operation does not accept.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int // (0 when no response was received)

	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("atompub: %s %s: got HTTP response code %d", e.Method, e.URL, e.StatusCode)
	}

	return fmt.Sprintf("atompub: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response body that is not the XML document the
// operation expects.
type ProtocolError struct {
	Op  string
	URL string

	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("atompub: %s %s: unexpected response document: %v", e.Op, e.URL, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// AuthConfigurationError reports credentials of an unknown type.
type AuthConfigurationError struct {
	Type AuthType
	Name string
}

func (e *AuthConfigurationError) Error() string {
	if e.Name != "" {
		return "atompub: unknown auth type " + strconv.Quote(e.Name)
	}

	return "atompub: unknown auth type " + strconv.FormatUint(uint64(e.Type), 10)
}
