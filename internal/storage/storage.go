package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"snaplink/internal/entities"

	"go.uber.org/zap"
)

// Store defines the interface for URL record persistence.
//
// The store is best-effort by design: it is not a system of record, so
// every operation absorbs I/O and serialization failures internally. Reads
// degrade to empty, writes are silently skipped, and the failure is logged.
type Store interface {
	LoadAll() []*entities.URL
	FindByID(id string) (*entities.URL, bool)
	FindByCode(code string) (*entities.URL, bool)
	CodeInUse(code string) bool
	Append(url *entities.URL)
	Replace(url *entities.URL)
	Update(id string, fn func(*entities.URL))
	Delete(id string)
	ClearAll()
}

// FileStore keeps the full collection as a single JSON blob on disk and
// serves reads from in-memory indexes (id -> record, short code -> id)
// rebuilt at load time. Mutations update the indexes under a mutex and
// rewrite the blob atomically via a temp file + rename, so a single record
// update can never half-apply.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	byID   map[string]*entities.URL
	byCode map[string]string // short code -> id
	order  []string          // ids in insertion order, preserved across rewrites
}

// NewFileStore creates a FileStore and loads the blob at path. A missing
// file means an empty collection; an unreadable or corrupt one is logged
// and treated the same way.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		logger: logger,
		byID:   make(map[string]*entities.URL),
		byCode: make(map[string]string),
	}
	s.load()
	return s
}

// load reads and deserializes the blob into the in-memory indexes.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("failed to read URL storage, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	var urls []*entities.URL
	if err := json.Unmarshal(data, &urls); err != nil {
		s.logger.Error("failed to decode URL storage, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return
	}

	for _, u := range urls {
		s.byID[u.ID] = u
		s.byCode[u.ShortCode] = u.ID
		s.order = append(s.order, u.ID)
	}
}

// persist rewrites the whole blob. Must be called with the mutex held.
func (s *FileStore) persist() {
	urls := make([]*entities.URL, 0, len(s.order))
	for _, id := range s.order {
		urls = append(urls, s.byID[id])
	}

	data, err := json.Marshal(urls)
	if err != nil {
		s.logger.Error("failed to encode URL storage, write skipped", zap.Error(err))
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error("failed to create storage directory, write skipped",
				zap.String("dir", dir), zap.Error(err))
			return
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("failed to write URL storage, write skipped",
			zap.String("path", tmp), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("failed to replace URL storage, write skipped",
			zap.String("path", s.path), zap.Error(err))
	}
}

// LoadAll returns every stored record in insertion order.
func (s *FileStore) LoadAll() []*entities.URL {
	s.mu.Lock()
	defer s.mu.Unlock()

	urls := make([]*entities.URL, 0, len(s.order))
	for _, id := range s.order {
		urls = append(urls, cloneURL(s.byID[id]))
	}
	return urls
}

// FindByID returns the record with the given id, if present.
func (s *FileStore) FindByID(id string) (*entities.URL, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return cloneURL(u), true
}

// FindByCode returns the record with the given short code, if present.
// Expiration is not considered here; that is a read-time concern of the
// registry service.
func (s *FileStore) FindByCode(code string) (*entities.URL, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCode[code]
	if !ok {
		return nil, false
	}
	return cloneURL(s.byID[id]), true
}

// CodeInUse reports whether any stored record holds the given short code,
// expired records included.
func (s *FileStore) CodeInUse(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byCode[code]
	return ok
}

// Append adds a new record to the collection and rewrites the blob.
func (s *FileStore) Append(url *entities.URL) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := cloneURL(url)
	s.byID[u.ID] = u
	s.byCode[u.ShortCode] = u.ID
	s.order = append(s.order, u.ID)
	s.persist()
}

// Replace swaps the stored record with the same id. Silently a no-op when
// the id is unknown.
func (s *FileStore) Replace(url *entities.URL) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[url.ID]
	if !ok {
		return
	}

	u := cloneURL(url)
	delete(s.byCode, old.ShortCode)
	s.byID[u.ID] = u
	s.byCode[u.ShortCode] = u.ID
	s.persist()
}

// Update applies fn to the stored record with the given id while holding
// the store's lock, then rewrites the blob. Unlike a load-modify-Replace
// sequence, concurrent updates to the same record cannot overwrite each
// other. Unknown ids are a no-op. fn must not change the short code.
func (s *FileStore) Update(id string, fn func(*entities.URL)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return
	}

	fn(u)
	s.persist()
}

// Delete removes the record with the given id. Unknown ids are a no-op.
func (s *FileStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return
	}

	delete(s.byID, id)
	delete(s.byCode, u.ShortCode)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.persist()
}

// ClearAll drops the whole collection and removes the blob from disk.
func (s *FileStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]*entities.URL)
	s.byCode = make(map[string]string)
	s.order = nil

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("failed to remove URL storage", zap.String("path", s.path), zap.Error(err))
	}
}

// cloneURL deep-copies a record so callers and the store never share the
// clicks slice.
func cloneURL(u *entities.URL) *entities.URL {
	c := *u
	if u.Clicks != nil {
		c.Clicks = make([]entities.Click, len(u.Clicks))
		copy(c.Clicks, u.Clicks)
	}
	return &c
}
