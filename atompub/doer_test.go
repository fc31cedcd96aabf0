package atompub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	tlsclient "github.com/bogdanfinn/tls-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubpy/crawly/cclient"
)

type stubHTTPClient struct {
	tlsclient.HttpClient

	do func(req *fhttp.Request) (*fhttp.Response, error)
}

func (c *stubHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	return c.do(req)
}

type stubClient struct {
	cclient.Client

	httpClient tlsclient.HttpClient
	header     http.Header
}

func (c *stubClient) HTTPClient() tlsclient.HttpClient {
	return c.httpClient
}

func (c *stubClient) DefaultHeader() http.Header {
	return c.header
}

func TestClientDoer_Do(t *testing.T) {
	var got *fhttp.Request
	var gotBody string

	defaults := http.Header{"Accept": {"*/*"}}
	client := &stubClient{
		header: defaults,
		httpClient: &stubHTTPClient{
			do: func(req *fhttp.Request) (*fhttp.Response, error) {
				got = req
				if req.Body != nil {
					b, _ := io.ReadAll(req.Body)
					gotBody = string(b)
				}

				return &fhttp.Response{
					StatusCode: http.StatusCreated,
					Header:     fhttp.Header{"Content-Type": {"application/atom+xml"}},
					Body:       io.NopCloser(strings.NewReader("<entry/>")),
				}, nil
			},
		},
	}

	d, err := NewClientDoer(client)
	require.NoError(t, err)

	resp, err := d.Do(context.Background(), &AuthenticatedRequest{
		Request: Request{
			Method: http.MethodPost,
			URL:    "https://host/atom/blog/1/article",
			Body:   []byte("<entry><title>x</title></entry>"),
		},
		BasicAuth: &BasicAuth{Username: "alice", Password: "key"},
		Header:    http.Header{"content-type": {"application/atom+xml;type=entry"}},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "<entry/>", string(resp.Body))
	assert.Equal(t, "application/atom+xml", resp.Header.Get("Content-Type"))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "https://host/atom/blog/1/article", got.URL.String())
	assert.Equal(t, "<entry><title>x</title></entry>", gotBody)
	assert.Equal(t, "*/*", got.Header.Get("Accept"))
	assert.Equal(t, "application/atom+xml;type=entry", got.Header.Get("Content-Type"))

	user, pass, ok := got.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "key", pass)

	assert.Equal(t, http.Header{"Accept": {"*/*"}}, defaults)
}

func TestClientDoer_DoError(t *testing.T) {
	boom := errors.New("connection refused")
	client := &stubClient{
		httpClient: &stubHTTPClient{
			do: func(req *fhttp.Request) (*fhttp.Response, error) {
				return nil, boom
			},
		},
	}

	d, err := NewClientDoer(client)
	require.NoError(t, err)

	resp, err := d.Do(context.Background(), &AuthenticatedRequest{
		Request: Request{Method: http.MethodGet, URL: "https://host/e/1"},
	})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)
}

func TestClientDoer_Nil(t *testing.T) {
	_, err := NewClientDoer(nil)
	assert.ErrorIs(t, err, cclient.NilClient)

	d, err := NewClientDoer(&stubClient{})
	require.NoError(t, err)

	_, err = d.Do(context.Background(), nil)
	assert.ErrorIs(t, err, NilRequest)

	_, err = d.Do(context.Background(), &AuthenticatedRequest{Request: Request{Method: http.MethodGet, URL: "https://h/e"}})
	assert.ErrorIs(t, err, NilHTTPClient)
}

func TestClientDoer_CanceledContext(t *testing.T) {
	called := false
	client := &stubClient{
		httpClient: &stubHTTPClient{
			do: func(req *fhttp.Request) (*fhttp.Response, error) {
				called = true
				return nil, errors.New("unreachable")
			},
		},
	}

	d, err := NewClientDoer(client)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Do(ctx, &AuthenticatedRequest{Request: Request{Method: http.MethodGet, URL: "https://h/e"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
