package livedoor

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/beevik/etree"
	"github.com/rubpy/crawly/clog"

	"github.com/rubpy/livedoor-atompub/atompub"
	"github.com/rubpy/livedoor-atompub/xmlapi"
)

//////////////////////////////////////////////////

type (
	BlogEntry       = xmlapi.Entry
	BlogEntryParams = xmlapi.EntryParams
)

var (
	InvalidMemberURL       = errors.New("invalid member URL")
	ExceededRequestTimeout = errors.New("exceeded request timeout")
)

func IsValidMemberURL(s string) bool { return isValidURL(s) }

//////////////////////////////////////////////////

// Create posts a new entry to the blog's collection and returns the entry
// as stored by the server.
func (c *Client) Create(ctx context.Context, params BlogEntryParams) (entry *BlogEntry, err error) {
	collectionURI := c.CollectionURI()

	lp := clog.Params{
		Message: "create",
		Level:   slog.LevelDebug,

		Values: clog.ParamGroup{
			"blogID":        c.blogID,
			"collectionURI": collectionURI,
		},
	}
	defer func() {
		if entry != nil {
			lp.Set("editURL", entry.EditURL)
		}

		lp.Err = err
		c.Log(ctx, lp)
	}()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.toXML(params)
	if err != nil {
		return nil, err
	}

	doc, err := atompub.PostCollection(ctx, c.transport, collectionURI, req)
	if err != nil {
		return nil, err
	}

	return getEntry(doc, collectionURI)
}

// Retrieve fetches the entry at editURL.
func (c *Client) Retrieve(ctx context.Context, editURL string) (entry *BlogEntry, err error) {
	lp := clog.Params{
		Message: "retrieve",
		Level:   slog.LevelDebug,

		Values: clog.ParamGroup{
			"editURL": editURL,
		},
	}
	defer func() {
		lp.Err = err
		c.Log(ctx, lp)
	}()

	if !IsValidMemberURL(editURL) {
		return nil, InvalidMemberURL
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	doc, err := atompub.GetMember(ctx, c.transport, editURL)
	if err != nil {
		return nil, err
	}

	return getEntry(doc, editURL)
}

// Edit replaces the entry at editURL with params and returns the updated
// entry.
func (c *Client) Edit(ctx context.Context, editURL string, params BlogEntryParams) (entry *BlogEntry, err error) {
	lp := clog.Params{
		Message: "edit",
		Level:   slog.LevelDebug,

		Values: clog.ParamGroup{
			"editURL": editURL,
		},
	}
	defer func() {
		lp.Err = err
		c.Log(ctx, lp)
	}()

	if !IsValidMemberURL(editURL) {
		return nil, InvalidMemberURL
	}

	req, err := c.toXML(params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	doc, err := atompub.PutMember(ctx, c.transport, editURL, req)
	if err != nil {
		return nil, err
	}

	return getEntry(doc, editURL)
}

// Delete deletes the entry at editURL.
func (c *Client) Delete(ctx context.Context, editURL string) (err error) {
	lp := clog.Params{
		Message: "delete",
		Level:   slog.LevelDebug,

		Values: clog.ParamGroup{
			"editURL": editURL,
		},
	}
	defer func() {
		lp.Err = err
		c.Log(ctx, lp)
	}()

	if !IsValidMemberURL(editURL) {
		return InvalidMemberURL
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return atompub.DeleteMember(ctx, c.transport, editURL)
}

//////////////////////////////////////////////////

func (c *Client) toXML(params BlogEntryParams) (*etree.Document, error) {
	if params.Content.Type == "" {
		params.Content.Type = c.loadSettings().DefaultContentType
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return xmlapi.ToXML(params), nil
}

// getEntry decodes a response document; a relative edit link is resolved
// against the URL the document came from.
func getEntry(doc *etree.Document, requestURL string) (*BlogEntry, error) {
	entry, err := xmlapi.GetEntry(doc.Root())
	if err != nil {
		return nil, err
	}

	if err := entry.ResolveEditURL(requestURL); err != nil {
		return nil, err
	}
	if !IsValidMemberURL(entry.EditURL) {
		return nil, &xmlapi.MalformedEntryError{Reason: "unusable edit link " + strconv.Quote(entry.EditURL)}
	}

	return entry, nil
}
