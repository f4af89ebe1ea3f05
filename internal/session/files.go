package session

import (
	"sync"

	"github.com/madhupandey29/shopy-admin-api/internal/draft"
)

// FileStore holds draft attachments in process memory until submission.
// Attachments do not survive a restart; the workflow accepts that loss rather
// than serializing binary data into the staged store.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]map[string]draft.Attachment
}

func NewFileStore() *FileStore {
	return &FileStore{files: make(map[string]map[string]draft.Attachment)}
}

// Put stashes one attachment under its media field, replacing any prior file
// for that field.
func (s *FileStore) Put(key, field string, att draft.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files[key] == nil {
		s.files[key] = make(map[string]draft.Attachment)
	}
	s.files[key][field] = att
}

// Get returns a copy of the session's attachments keyed by media field.
func (s *FileStore) Get(key string) map[string]draft.Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]draft.Attachment, len(s.files[key]))
	for field, att := range s.files[key] {
		out[field] = att
	}
	return out
}

// Clear drops every attachment for the session.
func (s *FileStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
}
