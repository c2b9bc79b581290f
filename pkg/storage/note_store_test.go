package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesmd-be/pkg/apperrors"
)

func newTestStore(t *testing.T) *NoteStore {
	t.Helper()
	store, err := NewNoteStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocateMissingUser(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Locate("nobody", "biology")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLocateMissingNote(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(store.Root(), "alice"), 0o755))

	_, err := store.Locate("alice", "biology")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

// Stat failures other than a missing directory must not masquerade as
// NotFound. An over-long path segment fails stat with ENAMETOOLONG.
func TestLocatePropagatesNonMissingStatErrors(t *testing.T) {
	store := newTestStore(t)
	user := strings.Repeat("a", 300)

	_, err := store.Locate(user, "biology")
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestLocateEnsureCreatesDirectories(t *testing.T) {
	store := newTestStore(t)

	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)
	assert.DirExists(t, loc.Dir)

	// The read path now succeeds too.
	_, err = store.Locate("alice", "biology")
	assert.NoError(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	content := "# Cells\n\nMitochondria are organelles.\n"
	path := loc.SubsectionPath("cell.md")
	require.NoError(t, store.WriteText(path, content, Overwrite))

	got, err := store.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteTextAppend(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	path := loc.SubsectionPath("cell.md")
	require.NoError(t, store.WriteText(path, "first", Overwrite))
	require.NoError(t, store.WriteText(path, "\nsecond", Append))

	got, err := store.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)
}

func TestWriteTextOverwriteReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	path := loc.SubsectionPath("cell.md")
	require.NoError(t, store.WriteText(path, "a much longer original text", Overwrite))
	require.NoError(t, store.WriteText(path, "short", Overwrite))

	got, err := store.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestReadTextMissingFile(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	_, err = store.ReadText(loc.SubsectionPath("nope.md"))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListSubsectionsSortedMarkdownOnly(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	require.NoError(t, store.WriteText(loc.SubsectionPath("membrane.md"), "m", Overwrite))
	require.NoError(t, store.WriteText(loc.SubsectionPath("cell.md"), "c", Overwrite))
	require.NoError(t, store.WriteText(loc.SubsectionPath("activity.json"), "{}", Overwrite))
	require.NoError(t, os.MkdirAll(filepath.Join(loc.Dir, SubfolderChat), 0o755))

	names, err := store.ListSubsections(loc)
	require.NoError(t, err)
	assert.Equal(t, []string{"cell.md", "membrane.md"}, names)
}

func TestListFilesAbsentSubfolderIsEmpty(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	names, err := store.ListFiles(loc, SubfolderUploads, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListFilesExtensionFilter(t *testing.T) {
	store := newTestStore(t)
	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	require.NoError(t, store.WriteText(loc.FilePath(SubfolderChat, "b.md"), "b", Overwrite))
	require.NoError(t, store.WriteText(loc.FilePath(SubfolderChat, "a.md"), "a", Overwrite))
	require.NoError(t, store.WriteText(loc.FilePath(SubfolderChat, "notes.txt"), "t", Overwrite))

	names, err := store.ListFiles(loc, SubfolderChat, ".md")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, names)
}

func TestListNotes(t *testing.T) {
	store := newTestStore(t)
	_, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)
	_, err = store.LocateEnsure("alice", "algebra")
	require.NoError(t, err)

	notes, err := store.ListNotes("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"algebra", "biology"}, notes)

	_, err = store.ListNotes("nobody")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPathSegmentValidation(t *testing.T) {
	store := newTestStore(t)

	for _, bad := range []string{"", "..", ".", "a/b", `a\b`} {
		_, err := store.Locate(bad, "note")
		assert.Equal(t, apperrors.KindMalformedInput, apperrors.KindOf(err), "segment %q", bad)

		_, err = store.LocateEnsure("alice", bad)
		assert.Equal(t, apperrors.KindMalformedInput, apperrors.KindOf(err), "segment %q", bad)
	}
}
