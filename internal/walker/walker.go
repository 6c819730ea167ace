// Package walker lists the source files that make up a documentation site.
package walker

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the largest file rendered as a listing (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// File is one source file found under the root.
type File struct {
	Path     string // Absolute path on disk.
	RelPath  string // Slash-separated path relative to the root.
	Size     int64
	Language string // Chroma lexer name, "plaintext" when unknown.
}

// Dir returns the slash-separated directory of the file, "" at the root.
func (f File) Dir() string {
	d := path.Dir(f.RelPath)
	if d == "." {
		return ""
	}
	return d
}

// Options controls a walk.
type Options struct {
	Root        string
	Include     []string // doublestar globs; empty includes everything
	Exclude     []string // doublestar globs, also matched against directories
	MaxFileSize int64    // 0 uses DefaultMaxFileSize
}

// alwaysSkipped directories are never descended into.
var alwaysSkipped = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Walk returns every text file under opts.Root that passes the include and
// exclude globs and the root .gitignore, sorted by RelPath.
func Walk(opts Options) ([]File, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	ignored := readGitignore(filepath.Join(root, ".gitignore"))

	var files []File
	err = fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped rather than failing the site.
			return nil
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if alwaysSkipped[d.Name()] || matchDir(rel, opts.Exclude) || matchDir(rel, ignored) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if len(opts.Include) > 0 && !Match(rel, opts.Include) {
			return nil
		}
		if Match(rel, opts.Exclude) || Match(rel, ignored) {
			return nil
		}

		fi, err := d.Info()
		if err != nil || fi.Size() > maxSize {
			return nil
		}
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if isBinary(abs) {
			return nil
		}
		files = append(files, File{
			Path:     abs,
			RelPath:  rel,
			Size:     fi.Size(),
			Language: DetectLanguage(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// Match reports whether rel, or its base name, matches any pattern.
func Match(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// matchDir treats "dir/**" style patterns as matching the directory itself
// so whole subtrees are pruned.
func matchDir(rel string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.TrimSuffix(filepath.ToSlash(p), "/**")
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// DetectLanguage names the chroma lexer for a file.
func DetectLanguage(name string) string {
	if l := lexers.Match(path.Base(name)); l != nil {
		return l.Config().Name
	}
	return "plaintext"
}

// readGitignore turns the simple forms of .gitignore lines into globs.
// Negations are not supported and are dropped.
func readGitignore(p string) []string {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		if strings.HasPrefix(line, "/") {
			patterns = append(patterns, strings.TrimPrefix(line, "/"))
			continue
		}
		if !strings.Contains(line, "/") {
			patterns = append(patterns, "**/"+line)
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// isBinary sniffs the first 512 bytes for a NUL.
func isBinary(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
