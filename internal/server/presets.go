package server

import (
	"sync"

	"github.com/vearutop/tritone"
)

// presetStore holds the active preset set, swapped atomically on reload.
// A failed reload keeps the previous set.
type presetStore struct {
	path string

	mu  sync.RWMutex
	set *tritone.PresetSet
}

func newPresetStore(path string) (*presetStore, error) {
	ps := &presetStore{path: path, set: tritone.BuiltinPresets()}
	if path == "" {
		return ps, nil
	}
	if err := ps.reload(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (ps *presetStore) reload() error {
	set, err := tritone.LoadPresetsFile(ps.path)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	ps.set = set
	ps.mu.Unlock()

	return nil
}

func (ps *presetStore) get() *tritone.PresetSet {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return ps.set
}
