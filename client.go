package livedoor

import (
	"context"
	"log/slog"

	"github.com/rubpy/crawly/clog"
	"github.com/rubpy/crawly/csync"

	"github.com/rubpy/livedoor-atompub/atompub"
)

//////////////////////////////////////////////////

// Client publishes entries to one blog. It is safe for concurrent use.
type Client struct {
	transport *atompub.Transport
	logger    *slog.Logger

	blogID        string
	collectionURI CollectionURIFunc

	settings csync.Value[ClientSettings]
}

func NewClient(opts ...ConfigOption) (*Client, error) {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	c, err := buildClientFromConfig(&cfg)
	if err != nil {
		return nil, err
	}

	return c, nil
}

//////////////////////////////////////////////////

func (c *Client) BlogID() string {
	return c.blogID
}

func (c *Client) Credentials() atompub.Credentials {
	return c.transport.Credentials()
}

// CollectionURI is the URI new entries are posted to.
func (c *Client) CollectionURI() string {
	return c.collectionURI(c.blogID)
}

func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func (c *Client) Log(ctx context.Context, params clog.Params) {
	if c.logger == nil {
		return
	}

	clog.WithParams(c.logger, ctx, params)
}
