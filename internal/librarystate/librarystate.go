// Package librarystate tracks the libraries the user belongs to and which
// one is the current browsing context. The selection persists across runs;
// when nothing is selected the first loaded library is chosen, preferring a
// previously persisted selection that is still valid.
package librarystate

import (
	"context"
	"sync"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/querycache"
)

// Cache tags invalidated when library membership changes
const (
	TagLibraries      = "libraries"
	TagLibraryMembers = "library-members"
)

// LibraryAPI is the slice of the API client this store uses
type LibraryAPI interface {
	ListLibraries(ctx context.Context) ([]api.Library, error)
}

// SelectionStore persists the current library id across runs
type SelectionStore interface {
	CurrentLibrary() (string, error)
	SaveCurrentLibrary(libraryID string) error
}

// Store holds the library list and the current selection.
// Invariant: the current library is always an element of the loaded list,
// or nil when the list is empty.
type Store struct {
	client    LibraryAPI
	cache     *querycache.Cache
	selection SelectionStore

	mu        sync.RWMutex
	libraries []api.Library
	current   *api.Library
}

// New creates a library selection store
func New(client LibraryAPI, cache *querycache.Cache, selection SelectionStore) *Store {
	return &Store{client: client, cache: cache, selection: selection}
}

// Refresh loads the caller's libraries through the query cache and
// reconciles the current selection against the fresh list.
func (s *Store) Refresh(ctx context.Context) error {
	value, err := s.cache.Fetch(ctx, "libraries", []string{TagLibraries}, func(ctx context.Context) (interface{}, error) {
		return s.client.ListLibraries(ctx)
	})
	if err != nil {
		return err
	}
	libraries := value.([]api.Library)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.libraries = libraries

	// Keep the current selection only while it is still a membership
	if s.current != nil {
		if found := findLibrary(libraries, s.current.ID); found != nil {
			s.current = found
		} else {
			s.current = nil
		}
	}

	if s.current == nil && len(libraries) > 0 {
		s.current = s.restoreOrFirst(libraries)
		_ = s.selection.SaveCurrentLibrary(s.current.ID)
	}
	return nil
}

// restoreOrFirst prefers the persisted selection when it is still in the
// list, otherwise the first library.
func (s *Store) restoreOrFirst(libraries []api.Library) *api.Library {
	if saved, err := s.selection.CurrentLibrary(); err == nil && saved != "" {
		if found := findLibrary(libraries, saved); found != nil {
			return found
		}
	}
	return &libraries[0]
}

// Select sets the current library to the matching loaded entry. An id that
// matches no loaded library leaves the selection unchanged; that is a
// no-op, not a failure.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := findLibrary(s.libraries, id)
	if found == nil {
		return
	}
	s.current = found
	_ = s.selection.SaveCurrentLibrary(found.ID)
}

// Current returns the selected library, or nil when none is selected
func (s *Store) Current() *api.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Libraries returns the loaded library list
func (s *Store) Libraries() []api.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.libraries
}

func findLibrary(libraries []api.Library, id string) *api.Library {
	for i := range libraries {
		if libraries[i].ID == id {
			return &libraries[i]
		}
	}
	return nil
}
