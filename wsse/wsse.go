package wsse

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

//////////////////////////////////////////////////

// Profile is the value of the Authorization header sent alongside X-WSSE.
const Profile = `WSSE profile="UsernameToken"`

const nonceSize = 16

type Token struct {
	Username       string
	PasswordDigest string
	Nonce          string // (base64)
	Created        string // (RFC3339, UTC)
}

func (t Token) String() string {
	var s strings.Builder

	s.WriteString(`UsernameToken Username="`)
	s.WriteString(t.Username)
	s.WriteString(`", PasswordDigest="`)
	s.WriteString(t.PasswordDigest)
	s.WriteString(`", Nonce="`)
	s.WriteString(t.Nonce)
	s.WriteString(`", Created="`)
	s.WriteString(t.Created)
	s.WriteString(`"`)

	return s.String()
}

// Verify recomputes the digest from the token's nonce and creation time and
// compares it with PasswordDigest.
func (t Token) Verify(secret string) bool {
	nonce, err := base64.StdEncoding.DecodeString(t.Nonce)
	if err != nil {
		return false
	}

	digest := passwordDigest(nonce, t.Created, secret)

	return subtle.ConstantTimeCompare([]byte(digest), []byte(t.PasswordDigest)) == 1
}

//////////////////////////////////////////////////

var (
	EmptyUsername   = errors.New("username is empty")
	InvalidUsername = errors.New("username contains a quote or control character")
	InvalidHeader   = errors.New("invalid X-WSSE header")
)

// Header returns a fresh X-WSSE header value. Each call draws a new nonce.
func Header(username string, secret string) (string, error) {
	token, err := NewToken(rand.Reader, username, secret, time.Now())
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

func NewToken(random io.Reader, username string, secret string, created time.Time) (Token, error) {
	if username == "" {
		return Token{}, EmptyUsername
	}
	if !validUsername(username) {
		return Token{}, InvalidUsername
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return Token{}, fmt.Errorf("nonce: %w", err)
	}

	createdStr := created.UTC().Format(time.RFC3339)

	return Token{
		Username:       username,
		PasswordDigest: passwordDigest(nonce, createdStr, secret),
		Nonce:          base64.StdEncoding.EncodeToString(nonce),
		Created:        createdStr,
	}, nil
}

func Parse(header string) (Token, error) {
	const prefix = "UsernameToken "

	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, prefix) {
		return Token{}, InvalidHeader
	}

	var t Token
	rest := strings.TrimSpace(header[len(prefix):])
	for rest != "" {
		k, v, ok := strings.Cut(rest, "=")
		if !ok {
			return Token{}, InvalidHeader
		}

		v = strings.TrimLeft(v, " ")
		if !strings.HasPrefix(v, `"`) {
			return Token{}, InvalidHeader
		}
		end := strings.IndexByte(v[1:], '"')
		if end < 0 {
			return Token{}, InvalidHeader
		}

		value := v[1 : end+1]
		rest = strings.TrimSpace(v[end+2:])
		if rest != "" {
			if rest[0] != ',' {
				return Token{}, InvalidHeader
			}
			rest = strings.TrimSpace(rest[1:])
		}

		switch strings.TrimSpace(k) {
		case "Username":
			t.Username = value
		case "PasswordDigest":
			t.PasswordDigest = value
		case "Nonce":
			t.Nonce = value
		case "Created":
			t.Created = value
		}
	}

	if t.Username == "" || t.PasswordDigest == "" || t.Nonce == "" || t.Created == "" {
		return Token{}, InvalidHeader
	}

	return t, nil
}

// Usernames are sent between double quotes without escaping.
func validUsername(username string) bool {
	for _, r := range username {
		if r == '"' || r < 0x20 || r == 0x7F {
			return false
		}
	}

	return true
}

// base64(sha1(nonce + created + secret))
func passwordDigest(nonce []byte, created string, secret string) string {
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(secret))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
