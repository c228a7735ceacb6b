package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tunesearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tunesearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tunesearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tunesearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// ErrInvalidQuery is returned for queries that are neither an id nor Field=value.
var ErrInvalidQuery = errors.New("enter a numeric id or Field=value")

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap
	help   help.Model
	input  *input.QueryInput

	kind     messages.LookupKind
	loading  bool
	track    *domain.TrackDocument
	playlist *domain.PlaylistDocument
	err      error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		help:   help.New(),
		input:  input.NewQueryInput(s),
		kind:   messages.LookupTrack,
	}, nil
}

// WithContext sets the context used for lookups.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		tea.SetWindowTitle("tunesearch"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.SetWidth(msg.Width)
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Lookup):
			query := strings.TrimSpace(a.input.Value())
			if query == "" || a.loading {
				return a, nil
			}
			a.loading = true
			return a, a.lookup(messages.LookupRequested{Kind: a.kind, Query: query})

		case key.Matches(msg, a.keys.Toggle):
			a.kind = a.kind.Next()
			placeholder := "55, or Artist=Bar"
			if a.kind == messages.LookupPlaylist {
				placeholder = "Playlist ID"
			}
			a.input.SetLabel(a.kind.String(), placeholder)
			a.clearResult()
			return a, nil

		case key.Matches(msg, a.keys.Clear):
			if a.input.Value() == "" && !a.hasResult() {
				return a, tea.Quit
			}
			a.input.Reset()
			a.clearResult()
			return a, nil
		}

	case messages.LookupCompleted:
		a.loading = false
		a.track = msg.Track
		a.playlist = msg.Playlist
		a.err = msg.Err
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("tunesearch"))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.loading:
		b.WriteString(a.styles.Muted.Render("Looking up..."))
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	case a.track != nil:
		b.WriteString(a.styles.Result.Render(a.renderTrack(a.track)))
	case a.playlist != nil:
		b.WriteString(a.styles.Result.Render(a.renderPlaylist(a.playlist)))
	default:
		b.WriteString(a.styles.Muted.Render("Enter a Track ID, or Field=value to match a track field exactly."))
	}

	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// Kind returns the current lookup kind.
func (a *App) Kind() messages.LookupKind {
	return a.kind
}

// Err returns the last lookup error.
func (a *App) Err() error {
	return a.err
}

// Track returns the last track found.
func (a *App) Track() *domain.TrackDocument {
	return a.track
}

// Playlist returns the last playlist found.
func (a *App) Playlist() *domain.PlaylistDocument {
	return a.playlist
}

func (a *App) hasResult() bool {
	return a.track != nil || a.playlist != nil || a.err != nil
}

func (a *App) clearResult() {
	a.track = nil
	a.playlist = nil
	a.err = nil
}

func (a *App) lookup(req messages.LookupRequested) tea.Cmd {
	ctx := a.ctx
	search := a.ports.Search
	return func() tea.Msg {
		done := messages.LookupCompleted{Query: req.Query}

		id, field, value, err := ParseQuery(req.Query)
		if err != nil {
			done.Err = err
			return done
		}

		switch {
		case req.Kind == messages.LookupPlaylist && field != "":
			done.Err = fmt.Errorf("%w: playlists are looked up by id", ErrInvalidQuery)
		case req.Kind == messages.LookupPlaylist:
			done.Playlist, done.Err = search.GetPlaylist(ctx, id)
		case field != "":
			done.Track, done.Err = search.FindTrack(ctx, field, value)
		default:
			done.Track, done.Err = search.GetTrack(ctx, id)
		}
		return done
	}
}

// ParseQuery splits a query into an id, or a field and value for "Field=value".
func ParseQuery(q string) (id int64, field, value string, err error) {
	q = strings.TrimSpace(q)
	if name, v, ok := strings.Cut(q, "="); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, "", "", ErrInvalidQuery
		}
		return 0, name, strings.TrimSpace(v), nil
	}
	id, err = strconv.ParseInt(q, 10, 64)
	if err != nil {
		return 0, "", "", ErrInvalidQuery
	}
	return id, "", "", nil
}

func (a *App) renderTrack(t *domain.TrackDocument) string {
	fields := t.Fields()
	rows := make([]string, 0, len(fields))
	for _, spec := range domain.TrackFields() {
		v, ok := fields[spec.Name]
		if !ok {
			continue
		}
		rows = append(rows, a.row(spec.Name, fmt.Sprint(v)))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderPlaylist(p *domain.PlaylistDocument) string {
	rows := []string{
		a.row(domain.FieldPlaylistID, domain.FormatID(p.PlaylistID)),
		a.row(domain.FieldName, p.Name),
	}
	if p.ParentPersistentID != "" {
		rows = append(rows, a.row("Parent", p.ParentPersistentID))
	}
	if p.Folder.Set() {
		rows = append(rows, a.row(domain.FieldFolder, "true"))
	}

	if len(p.Tracks) == 0 {
		rows = append(rows, "", a.styles.Muted.Render("(no tracks)"))
		return strings.Join(rows, "\n")
	}

	rows = append(rows, "", a.styles.Title.Render(fmt.Sprintf("Tracks (%d)", len(p.Tracks))))
	for i := range p.Tracks {
		t := p.Tracks[i]
		line := fmt.Sprintf("%6d  %s", t.TrackID, t.Name)
		if t.Artist != "" {
			line += a.styles.Muted.Render("  " + t.Artist)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (a *App) row(name, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.styles.FieldName.Render(name), value)
}
