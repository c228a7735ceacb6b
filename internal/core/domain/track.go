package domain

import (
	"strconv"
	"strings"
)

// Track field names as they appear in the library export and in the index.
const (
	FieldTrackID     = "Track ID"
	FieldTrackNumber = "Track Number"
	FieldYear        = "Year"
	FieldDateAdded   = "Date Added"
	FieldPlayCount   = "Play Count"
	FieldRating      = "Rating"
	FieldName        = "Name"
	FieldArtist      = "Artist"
	FieldAlbumArtist = "Album Artist"
	FieldAlbum       = "Album"
	FieldGenre       = "Genre"
	FieldLocation    = "Location"
	FieldCompilation = "Compilation"
	FieldDisabled    = "Disabled"
	FieldContent     = "content"

	// Source-only markers consulted during normalisation.
	FieldKind           = "Kind"
	FieldTrackType      = "Track Type"
	FieldRatingComputed = "Rating Computed"
)

// ContentFields lists, in order, the fields concatenated into the content field.
var ContentFields = []string{
	FieldTrackNumber,
	FieldYear,
	FieldName,
	FieldArtist,
	FieldAlbumArtist,
	FieldAlbum,
	FieldGenre,
}

// Flag is an attribute that is either set or absent.
// The export only emits such keys when they are true, so a Flag is never
// stored as an explicit false: the zero value is omitted from documents.
type Flag bool

// Set reports whether the flag is present.
func (f Flag) Set() bool {
	return bool(f)
}

// TrackDocument is the normalised, index-ready projection of a track record.
type TrackDocument struct {
	TrackID     int64  `json:"Track ID"`
	TrackNumber *int64 `json:"Track Number,omitempty"`
	Year        *int64 `json:"Year,omitempty"`
	DateAdded   string `json:"Date Added,omitempty"`
	PlayCount   *int64 `json:"Play Count,omitempty"`
	Rating      *int64 `json:"Rating,omitempty"`
	Name        string `json:"Name,omitempty"`
	Artist      string `json:"Artist,omitempty"`
	AlbumArtist string `json:"Album Artist,omitempty"`
	Album       string `json:"Album,omitempty"`
	Genre       string `json:"Genre,omitempty"`
	Location    string `json:"Location,omitempty"`
	Compilation Flag   `json:"Compilation,omitempty"`
	Disabled    Flag   `json:"Disabled,omitempty"`
	Content     string `json:"content"`
}

// Fields returns the document as a field map keyed by index field name.
// Absent optional fields are left out.
func (t *TrackDocument) Fields() map[string]any {
	fields := map[string]any{
		FieldTrackID: t.TrackID,
		FieldContent: t.Content,
	}
	putInt(fields, FieldTrackNumber, t.TrackNumber)
	putInt(fields, FieldYear, t.Year)
	putInt(fields, FieldPlayCount, t.PlayCount)
	putInt(fields, FieldRating, t.Rating)
	putString(fields, FieldDateAdded, t.DateAdded)
	putString(fields, FieldName, t.Name)
	putString(fields, FieldArtist, t.Artist)
	putString(fields, FieldAlbumArtist, t.AlbumArtist)
	putString(fields, FieldAlbum, t.Album)
	putString(fields, FieldGenre, t.Genre)
	putString(fields, FieldLocation, t.Location)
	putFlag(fields, FieldCompilation, t.Compilation)
	putFlag(fields, FieldDisabled, t.Disabled)
	return fields
}

// ContentOf joins the values of ContentFields into one whitespace separated
// string. Empty values are skipped and a value already emitted is not repeated.
func ContentOf(get func(field string) string) string {
	seen := make(map[string]struct{}, len(ContentFields))
	tokens := make([]string, 0, len(ContentFields))
	for _, field := range ContentFields {
		token := strings.TrimSpace(get(field))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return strings.Join(tokens, " ")
}

// Int64 returns a pointer to n.
func Int64(n int64) *int64 {
	return &n
}

// FormatID renders a document id.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func putInt(fields map[string]any, name string, v *int64) {
	if v != nil {
		fields[name] = *v
	}
}

func putString(fields map[string]any, name, v string) {
	if v != "" {
		fields[name] = v
	}
}

func putFlag(fields map[string]any, name string, f Flag) {
	if f.Set() {
		fields[name] = true
	}
}
