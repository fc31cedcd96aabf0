package atompub

import (
	"net/http"
	"strconv"
	"strings"
)

//////////////////////////////////////////////////

type Request struct {
	Method string
	URL    string
	Body   []byte // (nil for GET and DELETE)
}

type BasicAuth struct {
	Username string
	Password string
}

// AuthenticatedRequest is built fresh for every call by Authorize.
type AuthenticatedRequest struct {
	Request

	BasicAuth *BasicAuth
	Header    http.Header
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (res Response) String() string {
	var s strings.Builder

	s.WriteString("{Response:[status:")
	s.WriteString(strconv.Itoa(res.StatusCode))
	s.WriteString(", length:")
	s.WriteString(strconv.Itoa(len(res.Body)))
	s.WriteString("]}")

	return s.String()
}
