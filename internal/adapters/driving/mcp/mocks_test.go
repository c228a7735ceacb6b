package mcp

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.LibrarySearch.
type mockSearchService struct {
	track    *domain.TrackDocument
	playlist *domain.PlaylistDocument
	err      error

	lastField string
	lastValue string
	lastID    int64
}

func (m *mockSearchService) GetTrack(_ context.Context, id int64) (*domain.TrackDocument, error) {
	m.lastID = id
	return m.track, m.err
}

func (m *mockSearchService) FindTrack(_ context.Context, field, value string) (*domain.TrackDocument, error) {
	m.lastField = field
	m.lastValue = value
	return m.track, m.err
}

func (m *mockSearchService) GetPlaylist(_ context.Context, id int64) (*domain.PlaylistDocument, error) {
	m.lastID = id
	return m.playlist, m.err
}

// mockRunHistory is a mock implementation of driving.RunHistory.
type mockRunHistory struct {
	runs []domain.Run
	err  error
}

func (m *mockRunHistory) Recent(_ context.Context, limit int) ([]domain.Run, error) {
	if limit < len(m.runs) {
		return m.runs[:limit], m.err
	}
	return m.runs, m.err
}

func (m *mockRunHistory) Latest(_ context.Context, op domain.Operation) (*domain.Run, error) {
	for i := range m.runs {
		if m.runs[i].Operation == op {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
