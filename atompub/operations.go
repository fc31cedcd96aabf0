package atompub

import (
	"context"
	"fmt"
	"net/http"

	"github.com/beevik/etree"

	"github.com/rubpy/livedoor-atompub/xmlapi"
)

//////////////////////////////////////////////////

// Requester is the part of Transport the operations depend on.
type Requester interface {
	Send(ctx context.Context, method string, url string, body []byte) (*Response, error)
}

var (
	postCollectionStatus = []int{http.StatusCreated, http.StatusOK}
	getMemberStatus      = []int{http.StatusOK}
	putMemberStatus      = []int{http.StatusOK}
	deleteMemberStatus   = []int{http.StatusOK, http.StatusNoContent}
)

// PostCollection creates a member by POSTing doc to the collection URI and
// returns the entry document the server answers with.
func PostCollection(ctx context.Context, r Requester, collectionURI string, doc *etree.Document) (*etree.Document, error) {
	return sendDocument(ctx, r, "postCollection", http.MethodPost, collectionURI, doc, postCollectionStatus)
}

// GetMember retrieves the member document at memberURI.
func GetMember(ctx context.Context, r Requester, memberURI string) (*etree.Document, error) {
	return sendDocument(ctx, r, "getMember", http.MethodGet, memberURI, nil, getMemberStatus)
}

// PutMember replaces the member at memberURI with doc and returns the
// updated document.
func PutMember(ctx context.Context, r Requester, memberURI string, doc *etree.Document) (*etree.Document, error) {
	return sendDocument(ctx, r, "putMember", http.MethodPut, memberURI, doc, putMemberStatus)
}

// DeleteMember deletes the member at memberURI. The response body is
// ignored.
func DeleteMember(ctx context.Context, r Requester, memberURI string) error {
	_, err := send(ctx, r, http.MethodDelete, memberURI, nil, deleteMemberStatus)
	return err
}

//////////////////////////////////////////////////

func sendDocument(ctx context.Context, r Requester, op string, method string, url string, doc *etree.Document, accept []int) (*etree.Document, error) {
	var body []byte
	if doc != nil {
		b, err := xmlapi.WriteDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("xmlapi.WriteDocument: %w", err)
		}

		body = b
	}

	resp, err := send(ctx, r, method, url, body, accept)
	if err != nil {
		return nil, err
	}

	res, err := xmlapi.ParseDocument(resp.Body)
	if err != nil {
		return nil, &ProtocolError{
			Op:  op,
			URL: url,
			Err: err,
		}
	}

	return res, nil
}

func send(ctx context.Context, r Requester, method string, url string, body []byte, accept []int) (*Response, error) {
	if r == nil {
		return nil, NilRequester
	}
	if url == "" {
		return nil, EmptyURL
	}

	resp, err := r.Send(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &TransportError{Method: method, URL: url, Err: NilResponse}
	}

	for _, code := range accept {
		if resp.StatusCode == code {
			return resp, nil
		}
	}

	return nil, &TransportError{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
	}
}
