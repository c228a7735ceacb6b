package domain

// Playlist field names as they appear in the library export and in the index.
const (
	FieldPlaylistID           = "Playlist ID"
	FieldPlaylistPersistentID = "Playlist Persistent ID"
	FieldParentPersistentID   = "Parent Persistent ID"
	FieldPlaylistItems        = "Playlist Items"
	FieldTracks               = "Tracks"
	FieldFolder               = "Folder"
	FieldMaster               = "Master"
	FieldMusic                = "Music"
	FieldTVShows              = "TV Shows"
)

// PlaylistDocument is the normalised, index-ready projection of a playlist.
type PlaylistDocument struct {
	PlaylistID         int64           `json:"Playlist ID"`
	PersistentID       string          `json:"Playlist Persistent ID,omitempty"`
	Name               string          `json:"Name,omitempty"`
	Folder             Flag            `json:"Folder,omitempty"`
	Master             Flag            `json:"Master,omitempty"`
	Music              Flag            `json:"Music,omitempty"`
	TVShows            Flag            `json:"TV Shows,omitempty"`
	ParentPersistentID string          `json:"Parent Persistent ID,omitempty"`
	Items              []string        `json:"Playlist Items,omitempty"`
	Tracks             []TrackDocument `json:"Tracks,omitempty"`
}

// IsTopLevelFolder reports whether the playlist is a folder with no parent.
// Such folders aggregate their children and never enumerate tracks themselves.
func (p *PlaylistDocument) IsTopLevelFolder() bool {
	return p.Folder.Set() && p.ParentPersistentID == ""
}

// Fields returns the document as a field map keyed by index field name.
func (p *PlaylistDocument) Fields() map[string]any {
	fields := map[string]any{
		FieldPlaylistID: p.PlaylistID,
	}
	putString(fields, FieldPlaylistPersistentID, p.PersistentID)
	putString(fields, FieldName, p.Name)
	putString(fields, FieldParentPersistentID, p.ParentPersistentID)
	putFlag(fields, FieldFolder, p.Folder)
	putFlag(fields, FieldMaster, p.Master)
	putFlag(fields, FieldMusic, p.Music)
	putFlag(fields, FieldTVShows, p.TVShows)
	if len(p.Items) > 0 {
		items := make([]string, len(p.Items))
		copy(items, p.Items)
		fields[FieldPlaylistItems] = items
	}
	if len(p.Tracks) > 0 {
		tracks := make([]map[string]any, 0, len(p.Tracks))
		for i := range p.Tracks {
			tracks = append(tracks, p.Tracks[i].Fields())
		}
		fields[FieldTracks] = tracks
	}
	return fields
}
