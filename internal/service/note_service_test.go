package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesmd-be/internal/dto"
	"notesmd-be/internal/pkg/logger"
	"notesmd-be/pkg/apperrors"
	"notesmd-be/pkg/storage"
)

func newTestNoteService(t *testing.T) (INoteService, *storage.NoteStore) {
	t.Helper()
	store, err := storage.NewNoteStore(t.TempDir())
	require.NoError(t, err)
	return NewNoteService(store, logger.NewNop()), store
}

func TestUpdateThenShowRoundTrip(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	content := "# Cells\n\nMitochondria are organelles.\n"
	updated, err := svc.UpdateSubsection(ctx, "alice", "biology", "cell", &dto.UpdateSubsectionRequest{Content: content})
	require.NoError(t, err)
	assert.Equal(t, "cell.md", updated.Name)

	// Route segment works with or without the .md suffix.
	for _, section := range []string{"cell", "cell.md"} {
		shown, err := svc.ShowSubsection(ctx, "alice", "biology", section)
		require.NoError(t, err)
		assert.Equal(t, "cell.md", shown.Name)
		assert.Equal(t, content, shown.Content)
	}

	listed, err := svc.ListSubsections(ctx, "alice", "biology")
	require.NoError(t, err)
	assert.Equal(t, []string{"cell.md"}, listed.Subsections)
}

func TestUpdateOverwritesWholesale(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	_, err := svc.UpdateSubsection(ctx, "alice", "biology", "cell", &dto.UpdateSubsectionRequest{Content: "old content"})
	require.NoError(t, err)
	_, err = svc.UpdateSubsection(ctx, "alice", "biology", "cell", &dto.UpdateSubsectionRequest{Content: "new"})
	require.NoError(t, err)

	shown, err := svc.ShowSubsection(ctx, "alice", "biology", "cell")
	require.NoError(t, err)
	assert.Equal(t, "new", shown.Content)
}

func TestAppendRequiresExistingSubsection(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	_, err := svc.UpdateSubsection(ctx, "alice", "biology", "cell", &dto.UpdateSubsectionRequest{Content: "base"})
	require.NoError(t, err)

	_, err = svc.AppendSubsection(ctx, "alice", "biology", "cell", &dto.AppendSubsectionRequest{Content: "more"})
	require.NoError(t, err)

	shown, err := svc.ShowSubsection(ctx, "alice", "biology", "cell")
	require.NoError(t, err)
	assert.Equal(t, "base\nmore", shown.Content)

	_, err = svc.AppendSubsection(ctx, "alice", "biology", "missing", &dto.AppendSubsectionRequest{Content: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListNotesPerUser(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	for _, note := range []string{"zoology", "biology"} {
		_, err := svc.UpdateSubsection(ctx, "alice", note, "intro", &dto.UpdateSubsectionRequest{Content: "x"})
		require.NoError(t, err)
	}

	listed, err := svc.ListNotes(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"biology", "zoology"}, listed.Notes)

	_, err = svc.ListNotes(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestShowSubsectionMissingNote(t *testing.T) {
	svc, _ := newTestNoteService(t)

	_, err := svc.ShowSubsection(context.Background(), "alice", "biology", "cell")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUploadReferenceCreatesDirectories(t *testing.T) {
	svc, store := newTestNoteService(t)
	ctx := context.Background()

	data := []byte("%PDF-1.4 pretend payload")
	res, err := svc.UploadReference(ctx, "bob", "fresh", "paper.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, "paper.pdf", res.Filename)

	loc, err := store.Locate("bob", "fresh")
	require.NoError(t, err)
	files, err := store.ListFiles(loc, storage.SubfolderUploads, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"paper.pdf"}, files)

	content, err := store.ReadText(loc.FilePath(storage.SubfolderUploads, "paper.pdf"))
	require.NoError(t, err)
	assert.Equal(t, string(data), content)
}

func TestUploadReferenceRejectsTraversal(t *testing.T) {
	svc, _ := newTestNoteService(t)

	for _, name := range []string{"..", "a/b.pdf", ""} {
		_, err := svc.UploadReference(context.Background(), "bob", "fresh", name, []byte("x"))
		require.Error(t, err, "filename %q", name)
		assert.Equal(t, apperrors.KindMalformedInput, apperrors.KindOf(err))
	}
}

func TestListChatTurnsReadsContent(t *testing.T) {
	svc, store := newTestNoteService(t)
	ctx := context.Background()

	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)
	turn := "**Q:** hi\n\n**A:** hello\n"
	require.NoError(t, store.WriteText(loc.FilePath(storage.SubfolderChat, "20240501_103005_hi.md"), turn, storage.Overwrite))

	listed, err := svc.ListChatTurns(ctx, "alice", "biology")
	require.NoError(t, err)
	require.Len(t, listed.Turns, 1)
	assert.Equal(t, "20240501_103005_hi.md", listed.Turns[0].Filename)
	assert.Equal(t, turn, listed.Turns[0].Content)
}

func TestListChatTurnsEmptyWithoutFolder(t *testing.T) {
	svc, store := newTestNoteService(t)

	_, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)

	listed, err := svc.ListChatTurns(context.Background(), "alice", "biology")
	require.NoError(t, err)
	assert.Empty(t, listed.Turns)
}
