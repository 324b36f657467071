package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Workspace is a private scratch directory for one request
type Workspace struct {
	ID  string
	Dir string
}

// NewWorkspace creates root/<uuid>/
func NewWorkspace(root string) (*Workspace, error) {
	if root == "" {
		root = os.TempDir()
	}
	id := uuid.NewString()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Path returns a file path inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, filepath.Base(name))
}

// SaveUpload copies r into input<ext>, where ext comes from the client filename
func (w *Workspace) SaveUpload(r io.Reader, filename string) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	path := w.Path("input" + ext)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", n, fmt.Errorf("failed to write upload: %w", err)
	}
	return path, n, nil
}

// Cleanup removes the workspace and everything in it
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Dir)
}
