package livedoor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rubpy/crawly/cclient"

	"github.com/rubpy/livedoor-atompub/atompub"
)

//////////////////////////////////////////////////

type config struct {
	logger *slog.Logger
	client cclient.Client
	doer   atompub.Doer

	credentials   atompub.Credentials
	wsseHeader    atompub.HeaderFunc
	blogID        string
	collectionURI CollectionURIFunc

	settings struct {
		v  ClientSettings
		ok bool
	}
}

var (
	NilConfig    = errors.New("config is nil")
	EmptyBlogID  = errors.New("blog ID is empty")
	EmptyLoginID = errors.New("login ID is empty")
)

func validateConfig(cfg *config) error {
	if cfg == nil {
		return NilConfig
	}

	if cfg.blogID == "" {
		return EmptyBlogID
	}

	if cfg.credentials.LoginID == "" {
		return EmptyLoginID
	}

	return nil
}

func buildClientFromConfig(cfg *config) (c *Client, err error) {
	if cfg == nil {
		err = NilConfig
		return
	}

	logger := cfg.logger

	doer := cfg.doer
	if doer == nil {
		cl := cfg.client
		if cl == nil {
			var clientLogger *slog.Logger
			if logger != nil {
				clientLogger = logger.WithGroup("client")
			}

			cl, err = cclient.NewClient(cclient.WithLogger(clientLogger))
			if err != nil {
				return nil, fmt.Errorf("cclient.NewClient: %w", err)
			}
		}

		doer, err = atompub.NewClientDoer(cl)
		if err != nil {
			return nil, fmt.Errorf("atompub.NewClientDoer: %w", err)
		}
	}

	var transportLogger *slog.Logger
	if logger != nil {
		transportLogger = logger.WithGroup("transport")
	}

	transport, err := atompub.NewTransport(doer, cfg.credentials,
		atompub.WithTransportLogger(transportLogger),
		atompub.WithHeaderFunc(cfg.wsseHeader),
	)
	if err != nil {
		return nil, err
	}

	collectionURI := cfg.collectionURI
	if collectionURI == nil {
		collectionURI = LivedoorCollectionURI
	}

	c = &Client{
		transport: transport,
		logger:    logger,

		blogID:        cfg.blogID,
		collectionURI: collectionURI,
	}

	if cfg.settings.ok {
		c.SetSettings(cfg.settings.v)
	} else {
		c.SetSettings(DefaultSettings)
	}

	return c, nil
}

type ConfigOption func(cfg *config)

//////////////////////////////////////////////////

func WithLogger(logger *slog.Logger) ConfigOption {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHTTPClient sets the cclient.Client requests are sent through. It is
// ignored when WithDoer is given.
func WithHTTPClient(client cclient.Client) ConfigOption {
	return func(cfg *config) {
		cfg.client = client
	}
}

func WithDoer(doer atompub.Doer) ConfigOption {
	return func(cfg *config) {
		cfg.doer = doer
	}
}

func WithCredentials(credentials atompub.Credentials) ConfigOption {
	return func(cfg *config) {
		cfg.credentials = credentials
	}
}

func WithBasicAuth(loginID string, apiKey string) ConfigOption {
	return WithCredentials(atompub.BasicCredentials(loginID, apiKey))
}

func WithWSSE(loginID string, apiKey string) ConfigOption {
	return WithCredentials(atompub.WSSECredentials(loginID, apiKey))
}

func WithWSSEHeaderFunc(wsseHeader atompub.HeaderFunc) ConfigOption {
	return func(cfg *config) {
		cfg.wsseHeader = wsseHeader
	}
}

func WithBlogID(blogID string) ConfigOption {
	return func(cfg *config) {
		cfg.blogID = blogID
	}
}

func WithCollectionURI(collectionURI CollectionURIFunc) ConfigOption {
	return func(cfg *config) {
		cfg.collectionURI = collectionURI
	}
}

func WithSettings(settings ClientSettings) ConfigOption {
	return func(cfg *config) {
		cfg.settings.v = settings
		cfg.settings.ok = true
	}
}
