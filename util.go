package livedoor

import (
	"context"
	"net/url"
)

//////////////////////////////////////////////////

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	if u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if timeout := c.loadSettings().RequestTimeout; timeout > 0 {
		return context.WithTimeoutCause(ctx, timeout, ExceededRequestTimeout)
	}

	return context.WithCancel(ctx)
}
