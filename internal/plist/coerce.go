package plist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// Value element tags.
const (
	tagKey     = "key"
	tagString  = "string"
	tagDate    = "date"
	tagInteger = "integer"
	tagTrue    = "true"
	tagFalse   = "false"
	tagArray   = "array"
	tagData    = "data"
)

// trackIDPattern finds track references in the text of a Playlist Items array.
var trackIDPattern = regexp.MustCompile(`Track ID\s*(\d+)`)

// Coerce decodes a value element. tag is the element name, text its full
// inner text and key the field the value belongs to.
// ok is false for elements that contribute no field (<data>).
func Coerce(key, tag, text string) (v domain.Value, ok bool, err error) {
	switch tag {
	case tagString, tagDate:
		return domain.Text(text), true, nil
	case tagInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return domain.Value{}, false, fmt.Errorf("%w: %q under key %q", domain.ErrMalformedInteger, text, key)
		}
		return domain.Integer(n), true, nil
	case tagTrue:
		return domain.Boolean(true), true, nil
	case tagFalse:
		return domain.Boolean(false), true, nil
	case tagArray:
		if key != domain.FieldPlaylistItems {
			return domain.Value{}, false, fmt.Errorf("%w: <array> under key %q", domain.ErrUnsupportedNodeKind, key)
		}
		return domain.StringList(ScanTrackIDs(text)), true, nil
	case tagData:
		return domain.Value{}, false, nil
	default:
		return domain.Value{}, false, fmt.Errorf("%w: <%s> under key %q", domain.ErrUnsupportedNodeKind, tag, key)
	}
}

// ScanTrackIDs returns the digits of every "Track ID <digits>" occurrence in
// text, in order of appearance. Duplicates are kept.
func ScanTrackIDs(text string) []string {
	matches := trackIDPattern.FindAllStringSubmatch(text, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}
