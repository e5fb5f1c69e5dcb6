package memoryStore

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements the media store interface using in-memory storage.
// Used only for testing.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// New creates a new memory-based store
func New() *MemoryStore {
	return &MemoryStore{
		files: make(map[string][]byte),
	}
}

// Store keeps the content in memory and returns a /media/ URL for it.
func (s *MemoryStore) Store(content []byte, ext, subdir string) (string, error) {
	url := "/media/" + subdir + "/" + uuid.New().String() + ext

	// Store a copy to prevent external modifications
	stored := make([]byte, len(content))
	copy(stored, content)

	s.mu.Lock()
	s.files[url] = stored
	s.mu.Unlock()

	return url, nil
}

// Get retrieves stored content by its URL.
func (s *MemoryStore) Get(url string) ([]byte, bool) {
	s.mu.RLock()
	content, exists := s.files[url]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	result := make([]byte, len(content))
	copy(result, content)

	return result, true
}

// Len reports the number of stored files.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.files)
}
