package atompub

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rubpy/livedoor-atompub/wsse"
)

//////////////////////////////////////////////////

type AuthType uint

const (
	AuthBasic AuthType = (iota + 1)
	AuthWSSE
)

func (at AuthType) String() string {
	switch at {
	case AuthBasic:
		return "Basic"
	case AuthWSSE:
		return "WSSE"
	}

	return ""
}

func ParseAuthType(s string) (AuthType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return AuthBasic, nil
	case "wsse":
		return AuthWSSE, nil
	}

	return 0, &AuthConfigurationError{Name: s}
}

// Credentials select one authentication strategy. LoginID is the user name
// and APIKey the secret.
type Credentials struct {
	Type    AuthType
	LoginID string
	APIKey  string
}

func BasicCredentials(loginID string, apiKey string) Credentials {
	return Credentials{AuthBasic, loginID, apiKey}
}

func WSSECredentials(loginID string, apiKey string) Credentials {
	return Credentials{AuthWSSE, loginID, apiKey}
}

func (c Credentials) Valid() bool {
	return c.Type.String() != "" && c.LoginID != ""
}

// String never includes the API key.
func (c Credentials) String() string {
	var s strings.Builder
	s.WriteRune('{')
	s.WriteString(c.Type.String())
	s.WriteString(":")
	s.WriteString(strconv.Quote(c.LoginID))
	s.WriteRune('}')

	return s.String()
}

//////////////////////////////////////////////////

// HeaderFunc computes an X-WSSE header value. It must use a new nonce on
// every call.
type HeaderFunc func(username string, secret string) (string, error)

// Authorize returns req with the authentication material of creds attached.
// It is called for every outgoing request; WSSE headers are never reused.
func Authorize(req Request, creds Credentials, wsseHeader HeaderFunc) (*AuthenticatedRequest, error) {
	ar := &AuthenticatedRequest{
		Request: req,
		Header:  http.Header{},
	}

	switch creds.Type {
	case AuthBasic:
		ar.BasicAuth = &BasicAuth{
			Username: creds.LoginID,
			Password: creds.APIKey,
		}

	case AuthWSSE:
		if wsseHeader == nil {
			wsseHeader = wsse.Header
		}

		v, err := wsseHeader(creds.LoginID, creds.APIKey)
		if err != nil {
			return nil, fmt.Errorf("wsse.Header: %w", err)
		}

		ar.Header.Set("Authorization", wsse.Profile)
		ar.Header.Set("X-WSSE", v)

	default:
		return nil, &AuthConfigurationError{Type: creds.Type}
	}

	return ar, nil
}
