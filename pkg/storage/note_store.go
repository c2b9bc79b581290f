// Package storage resolves (user, note) pairs to filesystem locations and
// performs all durable I/O. The on-disk layout is a stable contract:
//
//	<root>/<user>/<note>/*.md             subsections
//	<root>/<user>/<note>/uploaded_files/* reference documents
//	<root>/<user>/<note>/chat/*.md        chat turns
//
// No cross-process locking is performed; at most one in-flight write per
// note is assumed.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"notesmd-be/pkg/apperrors"
)

const (
	SubfolderUploads = "uploaded_files"
	SubfolderChat    = "chat"
)

type WriteMode int

const (
	Overwrite WriteMode = iota
	Append
)

// NoteLocation is a resolved note directory.
type NoteLocation struct {
	User string
	Note string
	Dir  string
}

// SubsectionPath returns the absolute path of a subsection file.
func (l NoteLocation) SubsectionPath(filename string) string {
	return filepath.Join(l.Dir, filename)
}

// FilePath returns the absolute path of a file in a note subfolder.
func (l NoteLocation) FilePath(subfolder, filename string) string {
	return filepath.Join(l.Dir, subfolder, filename)
}

// NoteStore is constructed with an explicit storage root; there is no
// process-wide base directory.
type NoteStore struct {
	root string
}

func NewNoteStore(root string) (*NoteStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &NoteStore{root: root}, nil
}

func (s *NoteStore) Root() string {
	return s.root
}

// Locate resolves a (user, note) pair for a read path. It fails with
// NotFound when either directory is missing.
func (s *NoteStore) Locate(user, note string) (NoteLocation, error) {
	if err := validateSegment(user); err != nil {
		return NoteLocation{}, err
	}
	if err := validateSegment(note); err != nil {
		return NoteLocation{}, err
	}

	userDir := filepath.Join(s.root, user)
	if _, err := os.Stat(userDir); err != nil {
		if os.IsNotExist(err) {
			return NoteLocation{}, apperrors.NotFound("user %q not found", user)
		}
		return NoteLocation{}, fmt.Errorf("stat user directory: %w", err)
	}

	dir := filepath.Join(userDir, note)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return NoteLocation{}, apperrors.NotFound("note %q not found for user %q", note, user)
		}
		return NoteLocation{}, fmt.Errorf("stat note directory: %w", err)
	}

	return NoteLocation{User: user, Note: note, Dir: dir}, nil
}

// LocateEnsure resolves a (user, note) pair for a write path, creating
// missing directories instead of failing.
func (s *NoteStore) LocateEnsure(user, note string) (NoteLocation, error) {
	if err := validateSegment(user); err != nil {
		return NoteLocation{}, err
	}
	if err := validateSegment(note); err != nil {
		return NoteLocation{}, err
	}

	dir := filepath.Join(s.root, user, note)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NoteLocation{}, fmt.Errorf("create note directory: %w", err)
	}

	return NoteLocation{User: user, Note: note, Dir: dir}, nil
}

// ListNotes returns the note names of a user, sorted lexicographically.
func (s *NoteStore) ListNotes(user string) ([]string, error) {
	if err := validateSegment(user); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, user))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("user %q not found", user)
		}
		return nil, fmt.Errorf("read user directory: %w", err)
	}

	notes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			notes = append(notes, e.Name())
		}
	}
	sort.Strings(notes)
	return notes, nil
}

// ListSubsections returns the markdown filenames of a note in lexicographic
// order. Enumeration order is the deterministic order the context assembler
// relies on.
func (s *NoteStore) ListSubsections(loc NoteLocation) ([]string, error) {
	entries, err := os.ReadDir(loc.Dir)
	if err != nil {
		return nil, fmt.Errorf("read note directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListFiles returns the filenames in a note subfolder matching ext (empty
// ext matches everything), in lexicographic order. An absent subfolder is an
// empty result, not an error.
func (s *NoteStore) ListFiles(loc NoteLocation, subfolder, ext string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(loc.Dir, subfolder))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s directory: %w", subfolder, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext == "" || strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadText reads a file as a string, failing with NotFound when absent.
func (s *NoteStore) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NotFound("file %q not found", filepath.Base(path))
		}
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

// WriteText writes or appends content, creating parent directories as
// needed.
func (s *NoteStore) WriteText(path, content string, mode WriteMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if mode == Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// validateSegment rejects path segments that could escape the storage root.
func validateSegment(name string) error {
	if name == "" {
		return apperrors.MalformedInput("empty path segment")
	}
	if name == "." || name == ".." {
		return apperrors.MalformedInput("invalid path segment %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return apperrors.MalformedInput("path segment %q contains a separator", name)
	}
	return nil
}

// ValidateFilename applies the same traversal checks to user-supplied
// filenames (subsection names, upload names).
func ValidateFilename(name string) error {
	return validateSegment(name)
}
