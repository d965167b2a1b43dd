package parser

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path"
	"strings"
)

// ErrNoWorkbookEntry indicates a packaged workbook holds no .twb document.
var ErrNoWorkbookEntry = errors.New("no workbook document in archive")

// IsPackaged reports whether the path names a packaged (zipped) workbook.
func IsPackaged(p string) bool {
	return strings.EqualFold(path.Ext(p), ".twbx")
}

// ReadWorkbook returns the workbook XML bytes for a .twb file, or for the
// top-most .twb entry of a .twbx archive.
func ReadWorkbook(p string) ([]byte, error) {
	if !IsPackaged(p) {
		return os.ReadFile(p)
	}

	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	name := findWorkbookEntry(&r.Reader)
	if name == "" {
		return nil, ErrNoWorkbookEntry
	}
	return readZipFile(&r.Reader, name)
}

// findWorkbookEntry picks the .twb entry closest to the archive root.
func findWorkbookEntry(r *zip.Reader) string {
	best := ""
	bestDepth := -1
	for _, f := range r.File {
		if !strings.EqualFold(path.Ext(f.Name), ".twb") {
			continue
		}
		depth := strings.Count(f.Name, "/")
		if bestDepth < 0 || depth < bestDepth {
			best, bestDepth = f.Name, depth
		}
	}
	return best
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, ErrNoWorkbookEntry
}
