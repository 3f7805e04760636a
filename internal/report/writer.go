package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrab54/sleeper-db/internal/errors"
)

// Artifact file names under the output directory.
const (
	ReportFile = "api-analysis.md"
	RawFile    = "api-analysis-raw.json"
)

// SampleFileName maps a sample name to its file name.
func SampleFileName(name string) string {
	return fmt.Sprintf("sample_%s.json", name)
}

// Writer persists report artifacts under a single output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory (and parents) if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewOutputError(fmt.Sprintf("failed to create output directory %q", dir), err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the full path of an artifact.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteText writes a UTF-8 text artifact.
func (w *Writer) WriteText(name, contents string) error {
	if err := os.WriteFile(w.Path(name), []byte(contents), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write %q", name), err)
	}
	return nil
}

// WriteJSON writes v as two-space indented JSON.
func (w *Writer) WriteJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to encode %q", name), err)
	}
	return w.WriteText(name, string(data))
}
