// Package images guarda las fotos del diario en un directorio local,
// un archivo por (mascota, slot). Re-subir pisa el archivo anterior en el
// mismo path; no hay versionado.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pet-growth-diary/internal/domain/photos"
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("images: dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("images: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(petName string, slot photos.Slot, r io.Reader) (string, error) {
	// siempre .jpg, como los paths que escribía la app original
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.jpg", sanitize(petName), slot))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("images: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("images: write file: %w", err)
	}
	return path, nil
}

// sanitize evita que un nombre de mascota con separadores escape del
// directorio de imágenes.
func sanitize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return name
}
