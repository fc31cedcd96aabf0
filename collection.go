package livedoor

import (
	"net/url"
	"strings"
)

//////////////////////////////////////////////////

// CollectionURIFunc maps a blog ID to the collection URI entries are
// created in.
type CollectionURIFunc func(blogID string) string

const LivedoorEndpoint = "https://livedoor.blogcms.jp/atom"

// LivedoorCollectionURI follows the livedoor Blog AtomPub URL scheme.
func LivedoorCollectionURI(blogID string) string {
	return CollectionURIAt(LivedoorEndpoint)(blogID)
}

// CollectionURIAt applies the livedoor URL scheme to another endpoint, e.g.
// a staging host.
func CollectionURIAt(endpoint string) CollectionURIFunc {
	endpoint = strings.TrimSuffix(endpoint, "/")

	return func(blogID string) string {
		var s strings.Builder
		s.WriteString(endpoint)
		s.WriteString("/blog/")
		s.WriteString(url.PathEscape(blogID))
		s.WriteString("/article")

		return s.String()
	}
}
