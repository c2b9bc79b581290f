package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesmd-be/internal/pkg/logger"
	"notesmd-be/pkg/events"
	"notesmd-be/pkg/storage"
)

func newTestConsumer(t *testing.T) (*consumerService, *storage.NoteStore) {
	t.Helper()
	store, err := storage.NewNoteStore(t.TempDir())
	require.NoError(t, err)
	return NewConsumerService(nil, "NOTE_ACTIVITY", store, logger.NewNop()).(*consumerService), store
}

func activityMessage(t *testing.T, activity events.NoteActivity) *message.Message {
	t.Helper()
	payload, err := json.Marshal(activity)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func readSummary(t *testing.T, store *storage.NoteStore, user, note string) noteActivitySummary {
	t.Helper()
	loc, err := store.Locate(user, note)
	require.NoError(t, err)
	raw, err := store.ReadText(loc.SubsectionPath(activityFilename))
	require.NoError(t, err)
	var summary noteActivitySummary
	require.NoError(t, json.Unmarshal([]byte(raw), &summary))
	return summary
}

func TestProcessMessageCountsActivity(t *testing.T) {
	consumer, store := newTestConsumer(t)
	occurred := time.Date(2024, 5, 1, 10, 30, 5, 0, time.UTC)

	first := activityMessage(t, events.NoteActivity{
		Type:       events.TypeNoteAppended,
		User:       "alice",
		Note:       "biology",
		Filename:   "20240501_103005_cells.md",
		OccurredAt: occurred,
	})
	consumer.processMessage(first)
	assertAcked(t, first)

	second := activityMessage(t, events.NoteActivity{
		Type:       events.TypeChatTurnSaved,
		User:       "alice",
		Note:       "biology",
		Filename:   "20240501_103105_hi.md",
		OccurredAt: occurred.Add(time.Minute),
	})
	consumer.processMessage(second)
	assertAcked(t, second)

	summary := readSummary(t, store, "alice", "biology")
	assert.Equal(t, 1, summary.GeneratedSections)
	assert.Equal(t, 1, summary.ChatTurns)
	assert.Equal(t, "20240501_103105_hi.md", summary.LastFilename)
	assert.True(t, summary.UpdatedAt.Equal(occurred.Add(time.Minute)))
}

func TestProcessMessageAcksInvalidPayload(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	consumer.processMessage(msg)
	assertAcked(t, msg)
}

func TestProcessMessageRecoversFromCorruptSummary(t *testing.T) {
	consumer, store := newTestConsumer(t)

	loc, err := store.LocateEnsure("alice", "biology")
	require.NoError(t, err)
	require.NoError(t, store.WriteText(loc.SubsectionPath(activityFilename), "{broken", storage.Overwrite))

	msg := activityMessage(t, events.NoteActivity{
		Type:       events.TypeNoteAppended,
		User:       "alice",
		Note:       "biology",
		Filename:   "20240501_103005_cells.md",
		OccurredAt: time.Now(),
	})
	consumer.processMessage(msg)
	assertAcked(t, msg)

	summary := readSummary(t, store, "alice", "biology")
	assert.Equal(t, 1, summary.GeneratedSections)
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	default:
		t.Fatal("message was not acked")
	}
}
