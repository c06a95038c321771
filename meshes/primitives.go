package meshes

import (
	"fmt"
	"path/filepath"

	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/renderer"
)

// PrimitiveFileName returns the model file expected for kind inside a primitives directory (e.g. "box.obj")
func PrimitiveFileName(kind renderer.PrimitiveKind) string {
	return kind.String() + ".obj"
}

// Library holds one uploaded mesh per primitive kind
type Library struct {
	meshes [len(renderer.PrimitiveKinds) + 1]*Mesh
}

// Get returns the mesh of kind, or nil if it isn't loaded
func (l *Library) Get(kind renderer.PrimitiveKind) *Mesh {

	if int(kind) >= len(l.meshes) {
		return nil
	}

	return l.meshes[kind]
}

// LoadAll loads every primitive from dir. Either all primitives load or none stay loaded.
func (l *Library) LoadAll(dir string) error {

	for _, kind := range renderer.PrimitiveKinds {

		path := filepath.Join(dir, PrimitiveFileName(kind))
		mesh, err := NewMesh(kind.String(), path, 0)
		if err != nil {
			l.DeleteAll()
			return fmt.Errorf("failed to load primitive '%s'. Err: %w", kind, err)
		}

		l.meshes[kind] = &mesh
	}

	logging.InfoLog.Printf("Loaded %d primitive meshes from '%s'\n", len(renderer.PrimitiveKinds), dir)
	return nil
}

func (l *Library) DeleteAll() {

	for i := 0; i < len(l.meshes); i++ {

		if l.meshes[i] == nil {
			continue
		}

		l.meshes[i].Delete()
		l.meshes[i] = nil
	}
}
