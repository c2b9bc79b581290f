// Package notectx assembles the request-scoped text context fed to the
// generation backend: subsections, then uploaded reference files, then chat
// turns, each group in lexicographic filename order.
package notectx

import (
	"fmt"
	"strings"

	"notesmd-be/pkg/storage"
)

// Assembler gathers on-disk note content into one labeled blob. The
// assembled context is never persisted.
type Assembler struct {
	store *storage.NoteStore

	// maxBytes is an extension point. Zero keeps the default unbounded
	// behavior; when set, trailing files that would push the blob past the
	// limit are skipped whole.
	maxBytes int
}

type Option func(*Assembler)

func WithMaxBytes(n int) Option {
	return func(a *Assembler) { a.maxBytes = n }
}

func NewAssembler(store *storage.NoteStore, opts ...Option) *Assembler {
	a := &Assembler{store: store}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Assemble concatenates all subsection files, all uploaded reference files,
// and, when includeChat is set, all chat-turn files. Absent optional
// subfolders contribute an empty segment. There is no size cap by default;
// the assembled context may be arbitrarily large.
func (a *Assembler) Assemble(loc storage.NoteLocation, includeChat bool) (string, error) {
	var b strings.Builder

	subsections, err := a.store.ListSubsections(loc)
	if err != nil {
		return "", fmt.Errorf("list subsections: %w", err)
	}
	for _, name := range subsections {
		if err := a.writeSection(&b, name, loc.SubsectionPath(name)); err != nil {
			return "", err
		}
	}

	uploads, err := a.store.ListFiles(loc, storage.SubfolderUploads, "")
	if err != nil {
		return "", fmt.Errorf("list uploads: %w", err)
	}
	for _, name := range uploads {
		if err := a.writeSection(&b, name, loc.FilePath(storage.SubfolderUploads, name)); err != nil {
			return "", err
		}
	}

	if includeChat {
		turns, err := a.store.ListFiles(loc, storage.SubfolderChat, ".md")
		if err != nil {
			return "", fmt.Errorf("list chat turns: %w", err)
		}
		for _, name := range turns {
			if err := a.writeSection(&b, name, loc.FilePath(storage.SubfolderChat, name)); err != nil {
				return "", err
			}
		}
	}

	return b.String(), nil
}

func (a *Assembler) writeSection(b *strings.Builder, name, path string) error {
	content, err := a.store.ReadText(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	section := fmt.Sprintf("===== %s =====\n%s\n\n", name, content)
	if a.maxBytes > 0 && b.Len()+len(section) > a.maxBytes {
		return nil
	}
	b.WriteString(section)
	return nil
}
