package atompub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rubpy/crawly/clog"

	"github.com/rubpy/livedoor-atompub/xmlapi"
)

//////////////////////////////////////////////////

// Transport authenticates and sends requests. It holds no per-call state
// and is safe for concurrent use.
type Transport struct {
	doer        Doer
	credentials Credentials
	wsseHeader  HeaderFunc
	logger      *slog.Logger
}

type TransportOption func(t *Transport)

func WithTransportLogger(logger *slog.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithHeaderFunc replaces the X-WSSE header computation.
func WithHeaderFunc(wsseHeader HeaderFunc) TransportOption {
	return func(t *Transport) {
		t.wsseHeader = wsseHeader
	}
}

func NewTransport(doer Doer, credentials Credentials, opts ...TransportOption) (*Transport, error) {
	if doer == nil {
		return nil, NilDoer
	}

	if credentials.Type.String() == "" {
		return nil, &AuthConfigurationError{Type: credentials.Type}
	}

	t := &Transport{
		doer:        doer,
		credentials: credentials,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func (t *Transport) Credentials() Credentials {
	return t.credentials
}

func (t *Transport) Log(ctx context.Context, params clog.Params) {
	if t.logger == nil {
		return
	}

	clog.WithParams(t.logger, ctx, params)
}

// Send authenticates one request and performs it. The response is returned
// whatever its status; failures to obtain a response are TransportErrors.
func (t *Transport) Send(ctx context.Context, method string, url string, body []byte) (*Response, error) {
	if url == "" {
		return nil, EmptyURL
	}

	req, err := Authorize(Request{
		Method: method,
		URL:    url,
		Body:   body,
	}, t.credentials, t.wsseHeader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", xmlapi.ContentTypeAtomEntry)
	}

	lp := clog.Params{
		Message: "send",
		Level:   slog.LevelDebug,

		Values: clog.ParamGroup{
			"method":   method,
			"url":      url,
			"authType": t.credentials.Type.String(),
		},
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var resp *Response
	if err = ctx.Err(); err == nil {
		resp, err = t.doer.Do(ctx, req)
	}
	if err != nil {
		err = contextError(ctx, err)
	}
	if err == nil && resp == nil {
		err = NilResponse
	}
	if err == nil {
		lp.Set("status", resp.StatusCode)
	} else {
		err = &TransportError{
			Method: method,
			URL:    url,
			Err:    err,
		}
	}

	lp.Err = err
	t.Log(ctx, lp)

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// contextError prefers the context's cause over err once ctx is done, so a
// deadline set with context.WithTimeoutCause reaches the caller.
func contextError(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil {
		return err
	}

	cause := context.Cause(ctx)
	if cause == nil || cause == ctxErr {
		return ctxErr
	}

	return fmt.Errorf("%w: %w", cause, ctxErr)
}
