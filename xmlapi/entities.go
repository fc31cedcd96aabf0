package xmlapi

import (
	"strconv"
	"strings"
)

//////////////////////////////////////////////////

type PublishStatus uint

const (
	StatusUnspecified PublishStatus = iota
	StatusDraft
	StatusPublished
)

func (ps PublishStatus) String() string {
	switch ps {
	case StatusDraft:
		return "Draft"
	case StatusPublished:
		return "Published"
	}

	return ""
}

// Value of the app:draft element, or "" when the status is unspecified.
func (ps PublishStatus) draftValue() string {
	switch ps {
	case StatusDraft:
		return "yes"
	case StatusPublished:
		return "no"
	}

	return ""
}

func parseDraftValue(s string) PublishStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return StatusDraft
	case "no":
		return StatusPublished
	}

	return StatusUnspecified
}

//////////////////////////////////////////////////

type MalformedEntryError struct {
	Reason string
	Err    error
}

func (e *MalformedEntryError) Error() string {
	var s strings.Builder

	s.WriteString("malformed entry: ")
	s.WriteString(e.Reason)
	if e.Err != nil {
		s.WriteString(" (")
		s.WriteString(e.Err.Error())
		s.WriteString(")")
	}

	return s.String()
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

func malformed(reason string, err error) *MalformedEntryError {
	return &MalformedEntryError{Reason: reason, Err: err}
}

// InvalidParamsError reports entry params that cannot be encoded.
type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return "invalid entry " + e.Field + ": " + e.Reason
}

func invalidChar(field string, r rune) *InvalidParamsError {
	return &InvalidParamsError{
		Field:  field,
		Reason: "character " + strconv.QuoteRuneToASCII(r) + " is not allowed in XML",
	}
}
