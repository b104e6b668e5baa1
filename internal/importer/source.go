package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformedRow is wrapped by RowReader.Next when a single row cannot be
// split into cells. The reader stays usable and the row counts as rejected.
var ErrMalformedRow = errors.New("malformed row")

// RowReader yields the rows of a file in order, header included.
// Next returns io.EOF after the last row.
type RowReader interface {
	Next() ([]string, error)
	Close() error
}

// Source opens one file format as a RowReader.
type Source interface {
	Open(r io.Reader) (RowReader, error)
	Format() string
}

// Registry holds sources keyed by format name, which doubles as the file
// extension.
type Registry struct {
	sources map[string]Source
}

// FileInfo describes a file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds a source. Panics on duplicate format.
func (r *Registry) Register(s Source) {
	key := strings.ToLower(s.Format())
	if _, ok := r.sources[key]; ok {
		panic("duplicate source format: " + key)
	}
	r.sources[key] = s
}

// Get returns the source for format, or nil.
func (r *Registry) Get(format string) Source {
	return r.sources[strings.ToLower(format)]
}

// ForPath returns the source matching the extension of path, or nil.
func (r *Registry) ForPath(path string) Source {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	return r.Get(ext)
}

// DefaultRegistry returns a registry with the CSV and XLSX sources.
func DefaultRegistry(workbook WorkbookOptions) *Registry {
	r := NewRegistry()
	r.Register(CSVSource{})
	r.Register(&XLSXSource{Options: workbook})
	return r
}

// processedDir is the subdirectory of the import dir for finished files.
const processedDir = "processed"

// Scan returns the files in dir that some registered source can read.
// A missing dir yields no files.
func Scan(dir string, reg *Registry) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if reg.ForPath(e.Name()) == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
