package plist

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

func collect(t *testing.T, doc string, sel Selector) ([]domain.RawRecord, error) {
	t.Helper()
	var records []domain.RawRecord
	for rec, err := range Walk(strings.NewReader(doc), sel) {
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/library.xml")
	require.NoError(t, err)
	return string(data)
}

func TestWalk_TrackRecords(t *testing.T) {
	records, err := collect(t, loadFixture(t), TrackRecords)
	require.NoError(t, err)
	require.Len(t, records, 4)

	first := records[0]
	id, ok := mustGet(t, first, "Track ID").AsInteger()
	require.True(t, ok)
	assert.Equal(t, int64(55), id)
	assert.Equal(t, "Foo", first.Text("Name"))
	assert.Equal(t, "2014-11-02T18:25:03Z", first.Text("Date Added"))
	assert.True(t, mustGet(t, first, "Rating Computed").IsTrue())
	assert.Equal(t, []string{
		"Track ID", "Name", "Artist", "Kind", "Size", "Total Time", "Date Added",
		"Rating", "Rating Computed", "Persistent ID", "Track Type", "Location",
	}, first.Keys())

	assert.Equal(t, "Hymn & Anthem", records[3].Text("Name"))
}

func TestWalk_PlaylistRecords(t *testing.T) {
	records, err := collect(t, loadFixture(t), PlaylistRecords)
	require.NoError(t, err)
	require.Len(t, records, 5)

	library := records[0]
	assert.Equal(t, "Library", library.Text("Name"))
	assert.True(t, mustGet(t, library, "Master").IsTrue())
	visible, ok := mustGet(t, library, "Visible").AsBoolean()
	require.True(t, ok)
	assert.False(t, visible)

	items, ok := mustGet(t, library, "Playlist Items").AsStringList()
	require.True(t, ok)
	assert.Equal(t, []string{"55", "58"}, items)

	roadTrip := records[3]
	assert.False(t, roadTrip.Has("Smart Info"), "data values contribute no field")
	items, _ = mustGet(t, roadTrip, "Playlist Items").AsStringList()
	assert.Equal(t, []string{"58", "55", "999"}, items)

	tones := records[1]
	items, ok = mustGet(t, tones, "Playlist Items").AsStringList()
	require.True(t, ok)
	assert.Empty(t, items)

	assert.False(t, records[4].Has("Playlist Items"))
}

func TestWalk_SelectorsDoNotOverlap(t *testing.T) {
	tracks, err := collect(t, loadFixture(t), TrackRecords)
	require.NoError(t, err)
	for _, rec := range tracks {
		assert.False(t, rec.Has("Playlist ID"))
	}

	playlists, err := collect(t, loadFixture(t), PlaylistRecords)
	require.NoError(t, err)
	for _, rec := range playlists {
		assert.False(t, rec.Has("Track ID"))
	}
}

func TestWalk_EmptyDocument(t *testing.T) {
	doc := `<?xml version="1.0"?><plist version="1.0"><dict></dict></plist>`
	records, err := collect(t, doc, TrackRecords)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWalk_UnsupportedNodeKind(t *testing.T) {
	doc := `<plist><dict><key>Tracks</key><dict>
		<key>1</key><dict>
			<key>Track ID</key><integer>1</integer>
			<key>Volume</key><real>0.5</real>
		</dict>
	</dict></dict></plist>`

	records, err := collect(t, doc, TrackRecords)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNodeKind)
	assert.Contains(t, err.Error(), "tracks record")
	assert.Empty(t, records)
}

func TestWalk_MalformedInteger(t *testing.T) {
	doc := `<plist><dict><key>Tracks</key><dict>
		<key>1</key><dict><key>Track ID</key><integer>abc</integer></dict>
	</dict></dict></plist>`

	_, err := collect(t, doc, TrackRecords)
	assert.ErrorIs(t, err, domain.ErrMalformedInteger)
}

func TestWalk_ValueWithoutKey(t *testing.T) {
	doc := `<plist><dict><key>Tracks</key><dict>
		<key>1</key><dict><string>orphan</string></dict>
	</dict></dict></plist>`

	_, err := collect(t, doc, TrackRecords)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNodeKind)
}

func TestWalk_StrayText(t *testing.T) {
	doc := `<plist><dict><key>Tracks</key><dict>
		<key>1</key><dict><key>Name</key>loose<string>x</string></dict>
	</dict></dict></plist>`

	_, err := collect(t, doc, TrackRecords)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNodeKind)
}

func TestWalk_TruncatedDocument(t *testing.T) {
	doc := `<plist><dict><key>Tracks</key><dict>
		<key>1</key><dict><key>Name</key><string>x</string>`

	_, err := collect(t, doc, TrackRecords)
	assert.Error(t, err)
}

func TestWalk_StopsWhenConsumerBreaks(t *testing.T) {
	count := 0
	for _, err := range Walk(strings.NewReader(loadFixture(t)), TrackRecords) {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestWalk_KeyAppliesToNextValueOnly(t *testing.T) {
	doc := `<plist><dict><key>Tracks</key><dict>
		<key>1</key><dict>
			<key>Name</key>

			<string>first</string>
			<key>Artist</key><string>second</string>
		</dict>
	</dict></dict></plist>`

	records, err := collect(t, doc, TrackRecords)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0].Text("Name"))
	assert.Equal(t, "second", records[0].Text("Artist"))
}

func TestSelector_String(t *testing.T) {
	assert.Equal(t, "tracks", TrackRecords.String())
	assert.Equal(t, "playlists", PlaylistRecords.String())
}

func mustGet(t *testing.T, rec domain.RawRecord, key string) domain.Value {
	t.Helper()
	v, ok := rec.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}
