package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/rs/zerolog"
)

// Mock implementations

type mockProfileCache struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
}

func newMockProfileCache() *mockProfileCache {
	return &mockProfileCache{profiles: make(map[string]domain.Profile)}
}

func (m *mockProfileCache) Get(userID string) (domain.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	return p, ok
}

func (m *mockProfileCache) Put(userID string, profile domain.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[userID] = profile
}

type mockProfileSource struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	fetches  int
	err      error
}

func (m *mockProfileSource) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, errors.New("unknown user " + userID)
	}
	return &p, nil
}

func (m *mockProfileSource) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func newProfileUsecase(source *mockProfileSource) *ProfileUsecase {
	return NewProfileUsecase(newMockProfileCache(), source, zerolog.Nop())
}

// Tests

func TestResolve_FetchOnMiss(t *testing.T) {
	source := &mockProfileSource{profiles: map[string]domain.Profile{
		"U123": {Username: "alice", AvatarURL: "https://example.com/alice.png"},
	}}
	uc := newProfileUsecase(source)

	profile, err := uc.Resolve(context.Background(), "U123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if profile.Username != "alice" {
		t.Errorf("Expected 'alice', got '%s'", profile.Username)
	}
	if source.fetchCount() != 1 {
		t.Errorf("Expected 1 fetch, got %d", source.fetchCount())
	}
}

func TestResolve_CacheIdempotence(t *testing.T) {
	source := &mockProfileSource{profiles: map[string]domain.Profile{
		"U123": {Username: "alice"},
	}}
	uc := newProfileUsecase(source)

	first, err := uc.Resolve(context.Background(), "U123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := uc.Resolve(context.Background(), "U123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
	if source.fetchCount() != 1 {
		t.Errorf("Expected exactly 1 fetch, got %d", source.fetchCount())
	}
}

func TestResolve_FetchError(t *testing.T) {
	source := &mockProfileSource{err: errors.New("slack unavailable")}
	uc := newProfileUsecase(source)

	_, err := uc.Resolve(context.Background(), "U123")
	if err == nil {
		t.Fatal("Expected error for failed fetch")
	}
}

func TestUpdate_OverridesCachedProfile(t *testing.T) {
	source := &mockProfileSource{profiles: map[string]domain.Profile{
		"U123": {Username: "alice"},
	}}
	uc := newProfileUsecase(source)

	if _, err := uc.Resolve(context.Background(), "U123"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	uc.Update("U123", domain.Profile{Username: "alice-renamed", AvatarURL: "https://example.com/new.png"})

	profile, err := uc.Resolve(context.Background(), "U123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if profile.Username != "alice-renamed" {
		t.Errorf("Expected 'alice-renamed', got '%s'", profile.Username)
	}
	if source.fetchCount() != 1 {
		t.Errorf("Update should not trigger a fetch, got %d fetches", source.fetchCount())
	}
}

func TestUpdate_CachesUnseenUser(t *testing.T) {
	source := &mockProfileSource{profiles: map[string]domain.Profile{}}
	uc := newProfileUsecase(source)

	uc.Update("U999", domain.Profile{Username: "carol"})

	profile, err := uc.Resolve(context.Background(), "U999")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if profile.Username != "carol" {
		t.Errorf("Expected 'carol', got '%s'", profile.Username)
	}
	if source.fetchCount() != 0 {
		t.Errorf("Expected no fetches, got %d", source.fetchCount())
	}
}

func TestResolve_ConcurrentMissesConverge(t *testing.T) {
	source := &mockProfileSource{profiles: map[string]domain.Profile{
		"U123": {Username: "alice"},
	}}
	uc := newProfileUsecase(source)

	var wg sync.WaitGroup
	results := make([]domain.Profile, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := uc.Resolve(context.Background(), "U123")
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			results[i] = p
		}()
	}
	wg.Wait()

	// Duplicate fetches are allowed under concurrency, but every caller must
	// see the same resolved value.
	for i, p := range results {
		if p.Username != "alice" {
			t.Errorf("Result %d: expected 'alice', got '%s'", i, p.Username)
		}
	}
}
