package oauth

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// FakeAccountLinks is an in-memory repository.AccountLinks implementation
// for tests and local development. Safe for concurrent use.
type FakeAccountLinks struct {
	mu    sync.RWMutex
	links map[string]*domain.AccountLink

	// FailWrites makes Upsert return ErrStoreUnavailable, simulating an
	// unreachable store.
	FailWrites bool
}

// NewFakeAccountLinks creates an empty fake store
func NewFakeAccountLinks() *FakeAccountLinks {
	return &FakeAccountLinks{links: make(map[string]*domain.AccountLink)}
}

func (f *FakeAccountLinks) Upsert(_ context.Context, link *domain.AccountLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWrites {
		return domain.ErrStoreUnavailable
	}

	key := cacheKey(link.SubjectID, link.Provider)
	stored := *link
	if existing, ok := f.links[key]; ok {
		stored.LinkedAt = existing.LinkedAt
	}
	stored.UpdatedAt = time.Now()
	f.links[key] = &stored
	return nil
}

func (f *FakeAccountLinks) Get(_ context.Context, subjectID int64, provider string) (*domain.AccountLink, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	link, ok := f.links[cacheKey(subjectID, provider)]
	if !ok {
		return nil, domain.ErrNotLinked
	}
	copied := *link
	return &copied, nil
}

func (f *FakeAccountLinks) Delete(_ context.Context, subjectID int64, provider string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := cacheKey(subjectID, provider)
	if _, ok := f.links[key]; !ok {
		return domain.ErrNotLinked
	}
	delete(f.links, key)
	return nil
}

func (f *FakeAccountLinks) ListProviders(_ context.Context, subjectID int64) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var providers []string
	for _, link := range f.links {
		if link.SubjectID == subjectID {
			providers = append(providers, link.Provider)
		}
	}
	sort.Strings(providers)
	return providers, nil
}
