package atompub

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubpy/livedoor-atompub/xmlapi"
)

type sendCall struct {
	method string
	url    string
	body   []byte
}

type stubRequester struct {
	calls []sendCall

	resp *Response
	err  error
}

func (r *stubRequester) Send(ctx context.Context, method string, url string, body []byte) (*Response, error) {
	r.calls = append(r.calls, sendCall{method, url, body})

	return r.resp, r.err
}

const memberURI = "https://host/atom/blog/1/article/42"

const memberDocument = `<?xml version="1.0" encoding="utf-8"?>
<entry xmlns="http://www.w3.org/2005/Atom">
  <title>Hello</title>
  <content type="text/html">A &amp; B</content>
  <link rel="edit" href="https://host/atom/blog/1/article/42"/>
</entry>`

func sampleParams() xmlapi.EntryParams {
	return xmlapi.EntryParams{
		Title:   "Hello",
		Content: xmlapi.Content{Type: xmlapi.ContentTypeHTML, Body: "A & B"},
	}
}

func TestPostCollection(t *testing.T) {
	r := &stubRequester{resp: &Response{StatusCode: http.StatusCreated, Body: []byte(memberDocument)}}

	doc, err := PostCollection(context.Background(), r, "https://host/atom/blog/1/article", xmlapi.ToXML(sampleParams()))
	require.NoError(t, err)
	assert.Equal(t, "entry", doc.Root().Tag)

	require.Len(t, r.calls, 1)
	assert.Equal(t, http.MethodPost, r.calls[0].method)
	assert.Equal(t, "https://host/atom/blog/1/article", r.calls[0].url)
	assert.Contains(t, string(r.calls[0].body), "<title>Hello</title>")
	assert.Contains(t, string(r.calls[0].body), "A &amp; B")
}

func TestGetMember(t *testing.T) {
	r := &stubRequester{resp: &Response{StatusCode: http.StatusOK, Body: []byte(memberDocument)}}

	doc, err := GetMember(context.Background(), r, memberURI)
	require.NoError(t, err)
	assert.NotNil(t, doc.Root())

	require.Len(t, r.calls, 1)
	assert.Equal(t, sendCall{http.MethodGet, memberURI, nil}, r.calls[0])
}

func TestPutMember(t *testing.T) {
	r := &stubRequester{resp: &Response{StatusCode: http.StatusOK, Body: []byte(memberDocument)}}

	doc, err := PutMember(context.Background(), r, memberURI, xmlapi.ToXML(sampleParams()))
	require.NoError(t, err)
	assert.NotNil(t, doc.Root())

	require.Len(t, r.calls, 1)
	assert.Equal(t, http.MethodPut, r.calls[0].method)
	assert.Equal(t, memberURI, r.calls[0].url)
	assert.NotEmpty(t, r.calls[0].body)
}

func TestDeleteMember(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusNoContent} {
		r := &stubRequester{resp: &Response{StatusCode: code}}

		require.NoError(t, DeleteMember(context.Background(), r, memberURI))

		require.Len(t, r.calls, 1)
		assert.Equal(t, sendCall{http.MethodDelete, memberURI, nil}, r.calls[0])
	}
}

func TestOperations_UnexpectedStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		op   func(r Requester) error
	}{
		{"postCollection", http.StatusBadRequest, func(r Requester) error {
			_, err := PostCollection(context.Background(), r, "https://host/c", xmlapi.ToXML(sampleParams()))
			return err
		}},
		{"getMember", http.StatusNotFound, func(r Requester) error {
			_, err := GetMember(context.Background(), r, memberURI)
			return err
		}},
		{"getMember created", http.StatusCreated, func(r Requester) error {
			_, err := GetMember(context.Background(), r, memberURI)
			return err
		}},
		{"putMember", http.StatusForbidden, func(r Requester) error {
			_, err := PutMember(context.Background(), r, memberURI, xmlapi.ToXML(sampleParams()))
			return err
		}},
		{"deleteMember", http.StatusInternalServerError, func(r Requester) error {
			return DeleteMember(context.Background(), r, memberURI)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRequester{resp: &Response{StatusCode: tt.code, Body: []byte(memberDocument)}}

			err := tt.op(r)

			var te *TransportError
			require.True(t, errors.As(err, &te), "got %v", err)
			assert.Equal(t, tt.code, te.StatusCode)
		})
	}
}

func TestOperations_TransportFailure(t *testing.T) {
	boom := &TransportError{Method: "X", URL: memberURI, Err: errors.New("dial tcp: refused")}

	ops := map[string]func(r Requester) error{
		"postCollection": func(r Requester) error {
			_, err := PostCollection(context.Background(), r, "https://host/c", xmlapi.ToXML(sampleParams()))
			return err
		},
		"getMember": func(r Requester) error {
			_, err := GetMember(context.Background(), r, memberURI)
			return err
		},
		"putMember": func(r Requester) error {
			_, err := PutMember(context.Background(), r, memberURI, xmlapi.ToXML(sampleParams()))
			return err
		},
		"deleteMember": func(r Requester) error {
			return DeleteMember(context.Background(), r, memberURI)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op(&stubRequester{err: boom})

			var te *TransportError
			require.True(t, errors.As(err, &te))
			assert.Same(t, boom, te)

			var pe *ProtocolError
			assert.False(t, errors.As(err, &pe))
		})
	}
}

func TestOperations_ProtocolError(t *testing.T) {
	for _, body := range []string{"", "not xml at all", "<entry><title>"} {
		r := &stubRequester{resp: &Response{StatusCode: http.StatusOK, Body: []byte(body)}}

		doc, err := GetMember(context.Background(), r, memberURI)
		assert.Nil(t, doc)

		var pe *ProtocolError
		require.True(t, errors.As(err, &pe), "body %q: got %v", body, err)
		assert.Equal(t, "getMember", pe.Op)
		assert.Equal(t, memberURI, pe.URL)
	}
}

func TestOperations_Arguments(t *testing.T) {
	_, err := GetMember(context.Background(), nil, memberURI)
	assert.ErrorIs(t, err, NilRequester)

	r := &stubRequester{}
	_, err = GetMember(context.Background(), r, "")
	assert.ErrorIs(t, err, EmptyURL)
	assert.Empty(t, r.calls)

	_, err = GetMember(context.Background(), r, memberURI)
	assert.ErrorIs(t, err, NilResponse)
}

func TestOperations_WithTransport(t *testing.T) {
	doer := &recordingDoer{resp: &Response{StatusCode: http.StatusCreated, Body: []byte(memberDocument)}}
	tr, err := NewTransport(doer, WSSECredentials("alice", "key"))
	require.NoError(t, err)

	doc, err := PostCollection(context.Background(), tr, "https://host/atom/blog/1/article", xmlapi.ToXML(sampleParams()))
	require.NoError(t, err)

	ent, err := xmlapi.GetEntry(doc.Root())
	require.NoError(t, err)
	assert.Equal(t, memberURI, ent.EditURL)
	assert.Equal(t, "A & B", ent.Content.Body)

	reqs := doer.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.NotEmpty(t, reqs[0].Header.Get("X-WSSE"))
}
