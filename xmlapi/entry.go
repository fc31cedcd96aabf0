package xmlapi

import (
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
)

//////////////////////////////////////////////////

// EntryParams are the caller-controlled fields of an entry.
type EntryParams struct {
	Title      string
	Content    Content
	Categories []string
	Status     PublishStatus
}

// Entry is an entry as returned by the server. EditURL is the member URI
// used to retrieve, edit and delete the entry; it is kept verbatim.
type Entry struct {
	EntryParams

	ID      string
	EditURL string
	URL     string
	Author  string

	Published time.Time
	Updated   time.Time
}

func (ent Entry) String() string {
	var s strings.Builder

	s.WriteString("{Entry:[id:")
	s.WriteString(strconv.Quote(ent.ID))
	s.WriteString(", title:")
	s.WriteString(strconv.Quote(ent.Title))
	s.WriteString(", editURL:")
	s.WriteString(strconv.Quote(ent.EditURL))
	s.WriteString("]}")

	return s.String()
}

// Summary returns at most n runes of the entry's plain-text content.
func (ent Entry) Summary(n int) string {
	text := ent.Content.Text()
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// ResolveEditURL makes a relative edit link absolute against base, usually
// the URL the entry document was received from. Absolute links are kept
// verbatim.
func (ent *Entry) ResolveEditURL(base string) error {
	ref, err := url.Parse(ent.EditURL)
	if err != nil {
		return malformed("invalid edit link", err)
	}
	if ref.IsAbs() {
		return nil
	}

	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return malformed("edit link "+strconv.Quote(ent.EditURL)+" is relative", err)
	}

	ent.EditURL = b.ResolveReference(ref).String()

	return nil
}

//////////////////////////////////////////////////

// Validate reports characters that cannot be carried by an XML 1.0 document
// and category terms that would not survive decoding.
func (params EntryParams) Validate() error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", params.Title},
		{"content type", params.Content.Type},
		{"content", params.Content.Body},
	} {
		if err := checkXMLText(field.name, field.value); err != nil {
			return err
		}
	}

	for _, term := range params.Categories {
		if term == "" {
			return &InvalidParamsError{Field: "category", Reason: "empty term"}
		}
		if err := checkXMLText("category", term); err != nil {
			return err
		}
	}

	return nil
}

// ToXML builds an Atom entry document from params. Text is escaped by the
// serializer; carriage returns, tabs and newlines in attributes are written
// as character references so they survive parsing. Params are not
// validated, see EncodeEntry.
func ToXML(params EntryParams) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	entry := doc.CreateElement("entry")
	entry.CreateAttr("xmlns", AtomNamespace)
	entry.CreateAttr("xmlns:app", AppNamespace)

	entry.CreateElement("title").SetText(params.Title)

	contentType := params.Content.Type
	if contentType == "" {
		contentType = ContentTypeText
	}
	content := entry.CreateElement("content")
	content.CreateAttr("type", contentType)
	content.SetText(params.Content.Body)

	for _, term := range params.Categories {
		entry.CreateElement("category").CreateAttr("term", term)
	}

	if draft := params.Status.draftValue(); draft != "" {
		entry.CreateElement("app:control").CreateElement("app:draft").SetText(draft)
	}

	return doc
}

func EncodeEntry(params EntryParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return WriteDocument(ToXML(params))
}

// GetEntry decodes an entry element returned by the server. The edit link
// is required.
func GetEntry(root *etree.Element) (*Entry, error) {
	params, err := DecodeEntryParams(root)
	if err != nil {
		return nil, err
	}

	ent := &Entry{
		EntryParams: *params,
	}

	for _, el := range root.SelectElements("link") {
		href := strings.TrimSpace(el.SelectAttrValue("href", ""))
		if href == "" {
			continue
		}

		switch strings.ToLower(el.SelectAttrValue("rel", "alternate")) {
		case "edit":
			if ent.EditURL == "" {
				ent.EditURL = href
			}
		case "alternate":
			if ent.URL == "" && isValidURL(href) {
				ent.URL = href
			}
		}
	}
	if ent.EditURL == "" {
		return nil, malformed("missing edit link", nil)
	}

	if base := strings.TrimSpace(root.SelectAttrValue("xml:base", "")); isValidURL(base) {
		if err := ent.ResolveEditURL(base); err != nil {
			return nil, err
		}
	}

	if el := root.SelectElement("id"); el != nil {
		ent.ID = strings.TrimSpace(el.Text())
	}

	if el := root.SelectElement("author"); el != nil {
		if name := el.SelectElement("name"); name != nil {
			ent.Author = strings.TrimSpace(name.Text())
		}
	}

	for _, ts := range []struct {
		tag string
		dst *time.Time
	}{
		{"published", &ent.Published},
		{"updated", &ent.Updated},
	} {
		el := root.SelectElement(ts.tag)
		if el == nil {
			continue
		}

		t, err := parseDate(el.Text())
		if err != nil {
			return nil, malformed("invalid "+ts.tag+" timestamp", err)
		}
		*ts.dst = t
	}

	return ent, nil
}

// DecodeEntryParams reads the caller-controlled fields of an entry element.
// Repeated categories are kept in document order; categories without a
// term are skipped.
func DecodeEntryParams(root *etree.Element) (*EntryParams, error) {
	if root == nil {
		return nil, malformed("no root element", nil)
	}
	if root.Tag != "entry" {
		return nil, malformed("root element is <"+root.FullTag()+">, not <entry>", nil)
	}

	title := root.SelectElement("title")
	if title == nil {
		return nil, malformed("missing title element", nil)
	}

	content := root.SelectElement("content")
	if content == nil {
		return nil, malformed("missing content element", nil)
	}

	params := &EntryParams{
		Title: title.Text(),
		Content: Content{
			Type: content.SelectAttrValue("type", ContentTypeText),
			Body: content.Text(),
		},
	}

	for _, el := range root.SelectElements("category") {
		term := el.SelectAttrValue("term", "")
		if term == "" {
			continue
		}

		params.Categories = append(params.Categories, term)
	}

	if control := root.SelectElement("control"); control != nil {
		if draft := control.SelectElement("draft"); draft != nil {
			params.Status = parseDraftValue(draft.Text())
		}
	}

	return params, nil
}

func DecodeEntry(b []byte) (*Entry, error) {
	doc, err := ParseDocument(b)
	if err != nil {
		return nil, err
	}

	return GetEntry(doc.Root())
}
