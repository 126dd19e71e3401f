package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"Campos-App/internal/domain/model"
)

const cacheFileName = "CamposCache.json"

// CampoExtras cached supplementary details for a single campo.
type CampoExtras struct {
	Contribuciones []model.Contribucion `json:"contribuciones"`
	LastUpdated    time.Time            `json:"last_updated"`
}

// Payload full cache file contents.
type Payload struct {
	Campos      []model.Campo          `json:"campos"`
	LastUpdated time.Time              `json:"last_updated"`
	Extras      map[string]CampoExtras `json:"campo_extras"`
}

// CamposCacheStore file-backed cache of the campo catalog and per-campo
// extras. A latency/offline optimization only: never the system of record
// for visits or progress, so load failures degrade to a cache miss.
type CamposCacheStore struct {
	mu   sync.Mutex
	path string
}

func NewCamposCacheStore(dir string) *CamposCacheStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &CamposCacheStore{path: filepath.Join(dir, cacheFileName)}
}

// Load returns the cached payload, or nil on a miss (missing or corrupt
// file).
func (s *CamposCacheStore) Load() *Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *CamposCacheStore) loadLocked() *Payload {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	if payload.Extras == nil {
		payload.Extras = make(map[string]CampoExtras)
	}
	return &payload
}

// SaveCampos write-through of a fresh catalog fetch.
func (s *CamposCacheStore) SaveCampos(campos []model.Campo, lastUpdated time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload := s.loadLocked()
	if payload == nil {
		payload = &Payload{Extras: make(map[string]CampoExtras)}
	}
	payload.Campos = campos
	payload.LastUpdated = lastUpdated
	return s.writeLocked(payload)
}

// LoadExtras cached extras for one campo, nil on a miss.
func (s *CamposCacheStore) LoadExtras(campoID string) *CampoExtras {
	payload := s.Load()
	if payload == nil {
		return nil
	}
	if extras, ok := payload.Extras[campoID]; ok {
		return &extras
	}
	return nil
}

func (s *CamposCacheStore) SaveExtras(campoID string, extras CampoExtras) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload := s.loadLocked()
	if payload == nil {
		payload = &Payload{Extras: make(map[string]CampoExtras)}
	}
	payload.Extras[campoID] = extras
	return s.writeLocked(payload)
}

func (s *CamposCacheStore) RemoveExtras(campoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload := s.loadLocked()
	if payload == nil {
		return nil
	}
	delete(payload.Extras, campoID)
	return s.writeLocked(payload)
}

// Clear removes the cache file.
func (s *CamposCacheStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear campos cache: %w", err)
	}
	return nil
}

func (s *CamposCacheStore) writeLocked(payload *Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode campos cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write campos cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace campos cache: %w", err)
	}
	return nil
}
