package atompub

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	fhttp "github.com/bogdanfinn/fhttp"

	"github.com/rubpy/crawly/cclient"
)

//////////////////////////////////////////////////

// Doer performs one HTTP round trip. Non-success statuses are returned as
// responses, not errors.
type Doer interface {
	Do(ctx context.Context, req *AuthenticatedRequest) (*Response, error)
}

type DoerFunc func(ctx context.Context, req *AuthenticatedRequest) (*Response, error)

func (f DoerFunc) Do(ctx context.Context, req *AuthenticatedRequest) (*Response, error) {
	return f(ctx, req)
}

//////////////////////////////////////////////////

var NilHTTPClient = errors.New("http client is nil")

// ClientDoer sends requests through the HTTP client of a cclient.Client,
// starting from the client's default header.
type ClientDoer struct {
	client cclient.Client
}

func NewClientDoer(client cclient.Client) (*ClientDoer, error) {
	if client == nil {
		return nil, cclient.NilClient
	}

	return &ClientDoer{client: client}, nil
}

func (d *ClientDoer) Do(ctx context.Context, req *AuthenticatedRequest) (*Response, error) {
	if req == nil {
		return nil, NilRequest
	}

	httpClient := d.client.HTTPClient()
	if httpClient == nil {
		return nil, NilHTTPClient
	}

	if ctx == nil {
		ctx = context.Background()
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	r, err := fhttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}

	// cclient shares its default header map; never write into it.
	hdr := fhttp.Header(d.client.DefaultHeader().Clone())
	if hdr == nil {
		hdr = fhttp.Header{}
	}
	for k, v := range req.Header {
		hdr[http.CanonicalHeaderKey(k)] = v
	}
	r.Header = hdr

	if req.BasicAuth != nil {
		r.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	}

	resp, err := httpClient.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     http.Header(resp.Header),
		Body:       b,
	}, nil
}
