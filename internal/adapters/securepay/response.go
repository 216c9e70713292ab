package securepay

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParsedResponse is the flattened reply: every leaf element keyed by its snake_case tag
type ParsedResponse struct {
	Fields map[string]string

	// Duplicates lists keys that occurred more than once. The last occurrence is kept.
	Duplicates []string

	// Err is set when the document could not be read to the end; Fields still holds
	// everything collected before the failure.
	Err error
}

// element is one open tag while walking the document
type element struct {
	name     string
	text     strings.Builder
	hasChild bool
}

// ParseResponse walks the XML reply depth-first. The root element is never recorded,
// non-leaf elements are descended into, and each leaf contributes one key.
func ParseResponse(body []byte) *ParsedResponse {
	resp := &ParsedResponse{Fields: make(map[string]string)}
	seen := make(map[string]bool)

	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel
	var stack []*element

	for {
		tok, err := decoder.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				resp.Err = err
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				stack[len(stack)-1].hasChild = true
			}
			stack = append(stack, &element{name: t.Name.Local})

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			// root (now at depth 0) and branches are not recorded
			if len(stack) == 0 || el.hasChild {
				continue
			}

			key := Underscore(el.name)
			if seen[key] {
				resp.Duplicates = append(resp.Duplicates, key)
			}
			seen[key] = true
			resp.Fields[key] = el.text.String()
		}
	}

	if resp.Err == nil && len(stack) > 0 {
		resp.Err = io.ErrUnexpectedEOF
	}

	return resp
}

var (
	acronymBoundary = regexp.MustCompile(`([A-Z\d]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Underscore converts an element name to a lower-case, underscore-separated key:
// responseCode -> response_code, txnID -> txn_id, CreditCardInfo -> credit_card_info
func Underscore(name string) string {
	s := acronymBoundary.ReplaceAllString(name, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}
