package locale

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/roach88/transmerge/internal/tree"
)

// File is one locale's translation document.
type File struct {
	Name   string // base file name, e.g. "pt_BR.json"
	Format tree.Format
	Tag    language.Tag // language.Und when the name is not a BCP 47 tag
	Tree   *tree.Tree
}

// NewFile pairs a tree with a file name, deriving format and tag from it.
func NewFile(name string, t *tree.Tree) *File {
	return &File{
		Name:   name,
		Format: tree.FormatOf(name),
		Tag:    TagOf(name),
		Tree:   t,
	}
}

// Locale returns the BCP 47 form of the file's tag, or "" when unknown.
func (f *File) Locale() string {
	if f.Tag == language.Und {
		return ""
	}
	return f.Tag.String()
}

// TagOf parses the stem of a file name as a language tag.
// Underscores are accepted as separators ("pt_BR.json" is pt-BR).
func TagOf(name string) language.Tag {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	tag, err := language.Parse(strings.ReplaceAll(stem, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// IsDocument reports whether name has a translation document extension.
func IsDocument(name string) bool {
	return tree.FormatOf(name) != tree.FormatUnknown
}

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &IOError{Op: "stat", Path: dir, Err: errors.New("not a directory")}
	}
	return nil
}

// EnsureDir creates dir and its parents if needed.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// List returns the document file names directly inside dir, sorted.
// Subdirectories and files with other extensions are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Op: "list", Path: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsDocument(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

// Load reads and parses dir/name.
// Returns *IOError when the file cannot be read and *tree.ParseError when
// it is not a well-formed document.
func Load(dir, name string) (*File, error) {
	path := filepath.Join(dir, name)
	f := NewFile(name, nil)
	if f.Format == tree.FormatUnknown {
		return nil, &IOError{Op: "read", Path: path, Err: fmt.Errorf("unsupported file extension")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	t, err := tree.Parse(f.Format, data)
	if err != nil {
		var perr *tree.ParseError
		if errors.As(err, &perr) {
			perr.Source = path
		}
		return nil, err
	}
	f.Tree = t
	return f, nil
}

// LoadDir loads every document in dir, in List order.
func LoadDir(dir string) ([]*File, error) {
	names, err := List(dir)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(names))
	for _, name := range names {
		f, err := Load(dir, name)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Write serializes f in its own format to dir/f.Name and returns the path.
func Write(dir string, f *File) (string, error) {
	path := filepath.Join(dir, f.Name)
	data, err := tree.Marshal(f.Format, f.Tree)
	if err != nil {
		return "", &IOError{Op: "write", Path: path, Err: err}
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
