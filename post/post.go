package post

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rubpy/livedoor-atompub/xmlapi"
)

//////////////////////////////////////////////////

// FrontMatter is the YAML header of a post file, delimited by "---" lines.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Categories  []string `yaml:"categories,omitempty"`
	Draft       *bool    `yaml:"draft,omitempty"`
	ContentType string   `yaml:"content_type,omitempty"`

	// Set once the post has been published.
	EditURL string `yaml:"edit_url,omitempty"`
}

type Post struct {
	FrontMatter

	Body []byte
}

var (
	MissingFrontMatter      = errors.New("post has no front matter")
	MissingTitle            = errors.New("post has no title")
	UnterminatedFrontMatter = errors.New("front matter is not terminated")
)

const delimiter = "---"

func Parse(b []byte) (*Post, error) {
	b = bytes.TrimPrefix(b, []byte("\ufeff"))

	head, body, ok := cutLine(b)
	if !ok || strings.TrimSpace(string(head)) != delimiter {
		return nil, MissingFrontMatter
	}

	var fm []byte
	for {
		var line []byte
		line, body, ok = cutLine(body)
		if strings.TrimSpace(string(line)) == delimiter {
			break
		}
		if !ok {
			return nil, UnterminatedFrontMatter
		}

		fm = append(fm, line...)
		fm = append(fm, '\n')
	}

	p := &Post{}
	if err := yaml.Unmarshal(fm, &p.FrontMatter); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if strings.TrimSpace(p.Title) == "" {
		return nil, MissingTitle
	}

	p.Body = bytes.TrimLeft(body, "\r\n")

	return p, nil
}

func ReadFile(path string) (*Post, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b)
}

// Marshal renders the post back into its file form.
func (p *Post) Marshal() ([]byte, error) {
	fm, err := yaml.Marshal(&p.FrontMatter)
	if err != nil {
		return nil, fmt.Errorf("yaml.Marshal: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(fm)
	buf.WriteString(delimiter + "\n\n")
	buf.Write(p.Body)

	return buf.Bytes(), nil
}

// Params converts the post into entry parameters. Markdown bodies (the
// default) are rendered to HTML.
func (p *Post) Params() (xmlapi.EntryParams, error) {
	params := xmlapi.EntryParams{
		Title:      p.Title,
		Categories: p.Categories,
	}

	if p.Draft != nil {
		if *p.Draft {
			params.Status = xmlapi.StatusDraft
		} else {
			params.Status = xmlapi.StatusPublished
		}
	}

	switch strings.ToLower(p.ContentType) {
	case "", "markdown", "md", "text/markdown", "text/x-markdown":
		content, err := xmlapi.MarkdownContent(p.Body)
		if err != nil {
			return xmlapi.EntryParams{}, err
		}
		params.Content = content

	case "html", xmlapi.ContentTypeHTML:
		params.Content = xmlapi.Content{Type: xmlapi.ContentTypeHTML, Body: string(p.Body)}

	default:
		params.Content = xmlapi.Content{Type: p.ContentType, Body: string(p.Body)}
	}

	return params, nil
}

func cutLine(b []byte) (line []byte, rest []byte, ok bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return bytes.TrimSuffix(b, []byte("\r")), nil, false
	}

	return bytes.TrimSuffix(b[:i], []byte("\r")), b[i+1:], true
}
