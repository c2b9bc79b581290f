package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notesmd-be/internal/pkg/logger"
	"notesmd-be/pkg/events"
	"notesmd-be/pkg/storage"
)

const activityFilename = "activity.json"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService maintains each note's activity.json sidecar from the
// events the generation and chat flows publish. The sidecar is additive to
// the layout contract; other tooling may ignore it.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     *storage.NoteStore
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	store *storage.NoteStore,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

type noteActivitySummary struct {
	GeneratedSections int       `json:"generated_sections"`
	ChatTurns         int       `json:"chat_turns"`
	LastFilename      string    `json:"last_filename"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var activity events.NoteActivity
	if err := json.Unmarshal(msg.Payload, &activity); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal activity event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would retry forever
		return
	}

	loc, err := cs.store.LocateEnsure(activity.User, activity.Note)
	if err != nil {
		cs.logger.Error("consumer", "failed to locate note for activity", map[string]interface{}{
			"user": activity.User, "note": activity.Note, "error": err.Error(),
		})
		msg.Nack()
		return
	}

	summary := noteActivitySummary{}
	path := loc.SubsectionPath(activityFilename)
	if raw, err := cs.store.ReadText(path); err == nil {
		// A corrupt sidecar starts over from zero.
		_ = json.Unmarshal([]byte(raw), &summary)
	}

	switch activity.Type {
	case events.TypeNoteAppended:
		summary.GeneratedSections++
	case events.TypeChatTurnSaved:
		summary.ChatTurns++
	}
	summary.LastFilename = activity.Filename
	summary.UpdatedAt = activity.OccurredAt

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		cs.logger.Error("consumer", "failed to encode activity summary", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	if err := cs.store.WriteText(path, string(encoded), storage.Overwrite); err != nil {
		cs.logger.Error("consumer", "failed to write activity summary", map[string]interface{}{
			"user": activity.User, "note": activity.Note, "error": err.Error(),
		})
		msg.Nack() // retriable
		return
	}

	msg.Ack()
}
