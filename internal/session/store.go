package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sync"
)

// Store is durable key/value storage with JSON-serialized values. Reads
// degrade: a missing key or unparseable stored value reports false and
// leaves out untouched, so callers fall back to their typed defaults
// instead of failing session startup.
type Store interface {
	Write(key string, value any) error
	Read(key string, out any) bool
	Delete(key string) error
}

// FileStore keeps one JSON file per key inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FileStore) Read(key string, out any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	return decodeInto(data, out)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore is an in-process Store for tests and throwaway sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *MemoryStore) Read(key string, out any) bool {
	s.mu.Lock()
	data, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return decodeInto(data, out)
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// decodeInto unmarshals data into a fresh value and copies it to out only
// when the whole decode succeeds. json.Unmarshal fills its destination as
// it goes, so decoding straight into out would leave partial state behind
// on type-mismatched input.
func decodeInto(data []byte, out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	fresh := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		return false
	}
	rv.Elem().Set(fresh.Elem())
	return true
}
