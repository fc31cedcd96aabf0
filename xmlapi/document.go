package xmlapi

import (
	"bytes"
	"errors"

	"github.com/beevik/etree"
)

//////////////////////////////////////////////////

const (
	AtomNamespace = "http://www.w3.org/2005/Atom"
	AppNamespace  = "http://www.w3.org/2007/app"

	ContentTypeAtomEntry = "application/atom+xml;type=entry"
)

var (
	EmptyDocument = errors.New("document is empty")
	NoRootElement = errors.New("document has no root element")
)

func ParseDocument(b []byte) (*etree.Document, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, EmptyDocument
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, err
	}

	if doc.Root() == nil {
		return nil, NoRootElement
	}

	return doc, nil
}

func WriteDocument(doc *etree.Document) ([]byte, error) {
	if doc == nil || doc.Root() == nil {
		return nil, NoRootElement
	}

	return doc.WriteToBytes()
}
