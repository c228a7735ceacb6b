package plist

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// Selector names the dictionaries that hold one kind of record.
type Selector struct {
	name string
	path []string
}

// Record selectors for the two shapes found in a library export.
var (
	// TrackRecords selects track dictionaries: plist > dict > dict (Tracks) > dict.
	TrackRecords = Selector{name: "tracks", path: []string{"plist", "dict", "dict", "dict"}}

	// PlaylistRecords selects playlist dictionaries: plist > dict > array (Playlists) > dict.
	PlaylistRecords = Selector{name: "playlists", path: []string{"plist", "dict", "array", "dict"}}
)

// String returns the selector name.
func (s Selector) String() string {
	return s.name
}

func (s Selector) matches(stack []string) bool {
	if len(stack) != len(s.path) {
		return false
	}
	for i := range stack {
		if stack[i] != s.path[i] {
			return false
		}
	}
	return true
}

// Walk streams r and yields one record per dictionary selected by sel, in
// document order. Iteration stops after the first error.
func Walk(r io.Reader, sel Selector) iter.Seq2[domain.RawRecord, error] {
	return func(yield func(domain.RawRecord, error) bool) {
		dec := xml.NewDecoder(r)
		var stack []string

		for {
			tok, err := dec.Token()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(domain.RawRecord{}, fmt.Errorf("reading export: %w", err))
				return
			}

			switch t := tok.(type) {
			case xml.StartElement:
				stack = append(stack, t.Name.Local)
				if !sel.matches(stack) {
					continue
				}
				rec, err := readRecord(dec)
				stack = stack[:len(stack)-1]
				if err != nil {
					line, _ := dec.InputPos()
					yield(domain.RawRecord{}, fmt.Errorf("%s record near line %d: %w", sel.name, line, err))
					return
				}
				if !yield(rec, nil) {
					return
				}
			case xml.EndElement:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
}

// readRecord consumes the children of an open <dict> up to its end element.
// Keys name the next value; blank text between elements is ignored.
func readRecord(dec *xml.Decoder) (domain.RawRecord, error) {
	b := domain.NewRecordBuilder()
	key := ""
	haveKey := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return domain.RawRecord{}, unexpected(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			return domain.RawRecord{}, fmt.Errorf("%w: stray text %q", domain.ErrUnsupportedNodeKind, string(t))
		case xml.StartElement:
			text, err := innerText(dec)
			if err != nil {
				return domain.RawRecord{}, err
			}
			tag := t.Name.Local
			if tag == tagKey {
				key = text
				haveKey = true
				continue
			}
			if !haveKey {
				return domain.RawRecord{}, fmt.Errorf("%w: <%s> before any key", domain.ErrUnsupportedNodeKind, tag)
			}
			v, ok, err := Coerce(key, tag, text)
			if err != nil {
				return domain.RawRecord{}, err
			}
			if ok {
				b.Set(key, v)
			}
		case xml.EndElement:
			return b.Build(), nil
		}
	}
}

// innerText consumes an open element up to its end element and returns the
// concatenated text of all its descendants.
func innerText(dec *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", unexpected(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			text.Write(t)
		}
	}
	return text.String(), nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
