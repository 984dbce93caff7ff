// Package model loads entity models (trees, vehicles, NPC placeholders) from
// the asset root and hands out opaque cloneable handles. A missing asset is
// not an error for the engine: the caller skips the anchor and generation
// continues.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle is an opaque loaded model. Handles are shared; each placement clones
// an Instance positioned in the world.
type Handle interface {
	Name() string
	Clone(pos mgl32.Vec3) Instance
}

// Instance is one positioned copy of a model.
type Instance interface {
	Position() mgl32.Vec3
	Dispose()
}

// Loader resolves model names to handles.
type Loader interface {
	Load(name string) (Handle, error)
}

// ErrMissing reports that no asset exists for the requested model name.
var ErrMissing = fmt.Errorf("model asset missing")

// FileLoader reads model descriptors from <assetRoot>/models/<name>.json and
// caches handles by name.
type FileLoader struct {
	assetRoot string

	mu    sync.Mutex
	cache map[string]Handle
}

// NewFileLoader creates a loader rooted at assetRoot.
func NewFileLoader(assetRoot string) *FileLoader {
	return &FileLoader{
		assetRoot: assetRoot,
		cache:     make(map[string]Handle),
	}
}

// descriptor is the on-disk shape of an entity model.
type descriptor struct {
	Name   string     `json:"name"`
	Scale  float32    `json:"scale"`
	Meshes []struct {
		Mesh   string     `json:"mesh"`
		Offset [3]float32 `json:"offset"`
	} `json:"meshes"`
}

// Load resolves a handle for name. It returns ErrMissing when the descriptor
// file does not exist.
func (l *FileLoader) Load(name string) (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.cache[name]; ok {
		return h, nil
	}

	path := filepath.Join(l.assetRoot, "models", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissing
		}
		return nil, fmt.Errorf("read model %q: %w", name, err)
	}

	var desc descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decode model %q: %w", name, err)
	}
	if desc.Name == "" {
		desc.Name = name
	}

	h := &fileHandle{desc: desc}
	l.cache[name] = h
	return h, nil
}

type fileHandle struct {
	desc descriptor
}

func (h *fileHandle) Name() string { return h.desc.Name }

func (h *fileHandle) Clone(pos mgl32.Vec3) Instance {
	return &fileInstance{pos: pos}
}

type fileInstance struct {
	pos mgl32.Vec3
}

func (i *fileInstance) Position() mgl32.Vec3 { return i.pos }
func (i *fileInstance) Dispose()             {}

// NopLoader never finds an asset. Used headless and in tests, where every
// anchor degrades to a no-op.
type NopLoader struct{}

func (NopLoader) Load(string) (Handle, error) { return nil, ErrMissing }
