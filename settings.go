package livedoor

import (
	"time"

	"github.com/rubpy/livedoor-atompub/xmlapi"
)

//////////////////////////////////////////////////

type ClientSettings struct {
	// Upper bound for a single create/retrieve/edit/delete call (including
	// the round trip). Zero or less disables the timeout.
	RequestTimeout time.Duration

	// Content type used when BlogEntryParams.Content.Type is empty.
	DefaultContentType string
}

var DefaultSettings = ClientSettings{
	RequestTimeout:     30 * time.Second,
	DefaultContentType: xmlapi.ContentTypeHTML,
}

//////////////////////////////////////////////////

func (c *Client) loadSettings() ClientSettings {
	return c.settings.Load()
}

func (c *Client) setSettings(settings ClientSettings) {
	c.settings.Store(settings)
}

func (c *Client) Settings() ClientSettings {
	return c.loadSettings()
}

func (c *Client) SetSettings(settings ClientSettings) {
	c.setSettings(settings)
}
