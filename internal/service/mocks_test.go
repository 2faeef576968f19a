package service

import (
	"context"
	"sync"
	"time"

	"github.com/basel-ax/wallgen/internal/domain"
	"github.com/basel-ax/wallgen/internal/repository"
)

// mockClient implements domain.WallpaperClient for controller tests
type mockClient struct {
	mu            sync.Mutex
	generateCalls int
	lastRequest   domain.GenerationRequest

	resp *domain.GenerationResponse
	err  error

	imageData []byte
	fetchErr  error

	// when non-nil, Generate blocks until the channel is closed
	block chan struct{}
}

func (m *mockClient) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	m.mu.Lock()
	m.generateCalls++
	m.lastRequest = req
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	return m.resp, m.err
}

func (m *mockClient) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return m.imageData, m.fetchErr
}

func (m *mockClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

func (m *mockClient) last() domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// mockHistory implements repository.HistoryRepository in memory
type mockHistory struct {
	mu      sync.Mutex
	entries []repository.HistoryEntry
	saveErr error
}

func (m *mockHistory) Save(ctx context.Context, entry repository.HistoryEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistory) Recent(ctx context.Context, limit int) ([]repository.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) > limit {
		return m.entries[len(m.entries)-limit:], nil
	}
	return m.entries, nil
}

func (m *mockHistory) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *mockHistory) saved() []repository.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
