package scanner

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var discDirPattern = regexp.MustCompile(`^disc[0-9]+$`)

// RippedFile is a candidate file found under a session's disc directories
type RippedFile struct {
	Path string
	Ext  string // lowercased, no leading dot
}

// Discover walks sessionDir and returns every regular file that sits below a
// disc<K> directory and has an extension. Unreadable entries are skipped and
// a missing session directory yields no files.
func Discover(sessionDir string) []RippedFile {
	var files []RippedFile

	filepath.WalkDir(sessionDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if !underDiscDir(sessionDir, path) {
			return nil
		}

		ext, ok := fileExtension(d.Name())
		if !ok {
			return nil
		}

		files = append(files, RippedFile{Path: path, Ext: ext})
		return nil
	})

	SortFiles(files)
	return files
}

// SortFiles orders files by path, comparing one component at a time
func SortFiles(files []RippedFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return ComparePaths(files[i].Path, files[j].Path) < 0
	})
}

// ComparePaths orders two paths component by component. A path that is a
// prefix of the other sorts first.
func ComparePaths(a, b string) int {
	ac := splitComponents(a)
	bc := splitComponents(b)

	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := strings.Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	}
	return 0
}

func splitComponents(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))
	parts := strings.Split(path, "/")

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// underDiscDir reports whether any directory between sessionDir and the file
// is named disc<K>
func underDiscDir(sessionDir, path string) bool {
	rel, err := filepath.Rel(sessionDir, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}

	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if discDirPattern.MatchString(part) {
			return true
		}
	}
	return false
}

// fileExtension returns the lowercased extension of name. Names whose only dot
// is the leading one, and names ending in a dot, have none.
func fileExtension(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." || ext == name {
		return "", false
	}
	return strings.ToLower(ext[1:]), true
}
