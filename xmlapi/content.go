package xmlapi

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//////////////////////////////////////////////////

const (
	ContentTypeText  = "text"
	ContentTypeHTML  = "text/html"
	ContentTypePlain = "text/plain"
)

type Content struct {
	Type string
	Body string
}

func (c Content) IsHTML() bool {
	t := strings.ToLower(c.Type)

	return t == "html" || t == "xhtml" || strings.Contains(t, "html")
}

// Text returns the content as plain text, with markup stripped and
// whitespace collapsed for HTML content.
func (c Content) Text() string {
	if !c.IsHTML() {
		return c.Body
	}

	root, err := html.Parse(strings.NewReader(c.Body))
	if err != nil || root == nil {
		return c.Body
	}

	var s strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		for ; node != nil; node = node.NextSibling {
			switch node.Type {
			case html.TextNode:
				s.WriteString(node.Data)

			case html.ElementNode:
				if node.DataAtom == atom.Script || node.DataAtom == atom.Style {
					continue
				}
				walk(node.FirstChild)

				if blockElements[node.DataAtom] {
					s.WriteRune(' ')
				}

			default:
				walk(node.FirstChild)
			}
		}
	}
	walk(root)

	return strings.Join(strings.Fields(s.String()), " ")
}

var blockElements = map[atom.Atom]bool{
	atom.Br: true, atom.P: true, atom.Div: true, atom.Li: true,
	atom.Tr: true, atom.Td: true, atom.Th: true, atom.Blockquote: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

//////////////////////////////////////////////////

var (
	markdown     goldmark.Markdown
	markdownOnce sync.Once
)

func markdownRenderer() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	})

	return markdown
}

// MarkdownContent renders markdown source as HTML content.
func MarkdownContent(src []byte) (Content, error) {
	var buf bytes.Buffer
	if err := markdownRenderer().Convert(src, &buf); err != nil {
		return Content{}, fmt.Errorf("goldmark.Convert: %w", err)
	}

	return Content{
		Type: ContentTypeHTML,
		Body: buf.String(),
	}, nil
}
