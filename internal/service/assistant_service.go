package service

import (
	"context"
	"time"

	"notesmd-be/internal/dto"
	"notesmd-be/internal/pkg/logger"
	"notesmd-be/pkg/apperrors"
	"notesmd-be/pkg/events"
	"notesmd-be/pkg/llm"
	"notesmd-be/pkg/notectx"
	"notesmd-be/pkg/persona"
	"notesmd-be/pkg/postprocess"
	"notesmd-be/pkg/prompt"
	"notesmd-be/pkg/storage"
)

// IAssistantService runs the context-assembly and persona-driven generation
// pipeline: gather context, pick the persona, compose the prompt, invoke the
// backend, parse structured output, persist the result.
type IAssistantService interface {
	Ask(ctx context.Context, user, note string, req *dto.AskRequest) (*dto.AskResponse, error)
	Diagram(ctx context.Context, user, note, section string) (*dto.DiagramResponse, error)
	Chat(ctx context.Context, mode persona.Mode, user, note string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type assistantService struct {
	store     *storage.NoteStore
	assembler *notectx.Assembler
	personas  *persona.Registry
	provider  llm.Provider
	publisher IPublisherService
	logger    logger.ILogger

	// now is swappable so tests can pin filename timestamps.
	now func() time.Time
}

func NewAssistantService(
	store *storage.NoteStore,
	assembler *notectx.Assembler,
	personas *persona.Registry,
	provider llm.Provider,
	publisher IPublisherService,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		store:     store,
		assembler: assembler,
		personas:  personas,
		provider:  provider,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Ask generates further notes from the assembled context and the query,
// using the default persona, and persists the raw answer as a new
// subsection. The note must already exist: with nothing on disk there is
// nothing to answer from.
func (s *assistantService) Ask(ctx context.Context, user, note string, req *dto.AskRequest) (*dto.AskResponse, error) {
	loc, err := s.store.Locate(user, note)
	if err != nil {
		return nil, err
	}

	assembled, err := s.assembler.Assemble(loc, false)
	if err != nil {
		return nil, err
	}

	template, err := s.personas.Resolve(persona.ModeDefault)
	if err != nil {
		return nil, err
	}

	builder := prompt.NewBuilder(template, assembled, req.Query).WithLevel(req.Level)
	if req.WantDiagram {
		builder.WithDiagram()
	}

	answer, err := s.provider.Chat(ctx, builder.Build())
	if err != nil {
		return nil, apperrors.Generation("generate answer: %w", err)
	}

	var diagram *string
	if req.WantDiagram {
		if d, found := postprocess.ExtractMermaid(answer); found {
			diagram = &d
		}
	}

	filename := postprocess.DeriveFilename(req.Query, s.now())
	persisted := s.persist(ctx, loc, loc.SubsectionPath(filename), answer, events.TypeNoteAppended, filename)

	return &dto.AskResponse{
		Query:     req.Query,
		Answer:    answer,
		Diagram:   diagram,
		Filename:  filename,
		Persisted: persisted,
	}, nil
}

// Diagram asks the diagram-only persona for at most two mermaid diagrams
// derived from one subsection, independent of any user query, and appends
// the result to that subsection.
func (s *assistantService) Diagram(ctx context.Context, user, note, section string) (*dto.DiagramResponse, error) {
	loc, err := s.store.Locate(user, note)
	if err != nil {
		return nil, err
	}

	name, err := markdownName(section)
	if err != nil {
		return nil, err
	}

	content, err := s.store.ReadText(loc.SubsectionPath(name))
	if err != nil {
		return nil, err
	}

	template, err := s.personas.Resolve(persona.ModeDiagramOnly)
	if err != nil {
		return nil, err
	}

	answer, err := s.provider.Chat(ctx, prompt.NewBuilder(template, content, "").Build())
	if err != nil {
		return nil, apperrors.Generation("generate diagrams: %w", err)
	}

	var diagram *string
	if d, found := postprocess.ExtractMermaid(answer); found {
		diagram = &d
	}

	persisted := true
	if err := s.store.WriteText(loc.SubsectionPath(name), "\n\n**Merm:** "+answer+"\n", storage.Append); err != nil {
		s.logger.Warn("assistant", "diagram generated but not persisted", map[string]interface{}{
			"user": user, "note": note, "section": name, "error": err.Error(),
		})
		persisted = false
	}

	return &dto.DiagramResponse{
		Answer:    answer,
		Diagram:   diagram,
		Persisted: persisted,
	}, nil
}

// Chat runs one tutor or business persona exchange. The chat subfolder is
// created on first use; prior turns are part of the assembled context, and
// the new turn is persisted as its own file.
func (s *assistantService) Chat(ctx context.Context, mode persona.Mode, user, note string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	template, err := s.personas.Resolve(mode)
	if err != nil {
		return nil, err
	}
	if !template.ChatMode {
		return nil, apperrors.MalformedInput("persona %q is not a chat mode", string(mode))
	}

	loc, err := s.store.LocateEnsure(user, note)
	if err != nil {
		return nil, err
	}

	assembled, err := s.assembler.Assemble(loc, true)
	if err != nil {
		return nil, err
	}

	answer, err := s.provider.Chat(ctx, prompt.NewBuilder(template, assembled, req.Query).Build())
	if err != nil {
		return nil, apperrors.Generation("generate chat reply: %w", err)
	}

	filename := postprocess.DeriveFilename(req.Query, s.now())
	turn := "**Q:** " + req.Query + "\n\n**A:** " + answer + "\n"
	path := loc.FilePath(storage.SubfolderChat, filename)
	persisted := s.persist(ctx, loc, path, turn, events.TypeChatTurnSaved, filename)

	return &dto.ChatResponse{
		Query:     req.Query,
		Answer:    answer,
		Filename:  filename,
		Persisted: persisted,
	}, nil
}

// persist writes generated content and publishes the matching activity
// event. A failed write is reported, not hidden: the answer still goes back
// to the caller with persisted=false.
func (s *assistantService) persist(ctx context.Context, loc storage.NoteLocation, path, content, eventType, filename string) bool {
	if err := s.store.WriteText(path, content, storage.Overwrite); err != nil {
		s.logger.Warn("assistant", "answer generated but not persisted", map[string]interface{}{
			"user": loc.User, "note": loc.Note, "filename": filename, "error": err.Error(),
		})
		return false
	}

	if s.publisher != nil {
		activity := events.NoteActivity{
			Type:       eventType,
			User:       loc.User,
			Note:       loc.Note,
			Filename:   filename,
			OccurredAt: s.now(),
		}
		// Activity tracking is auxiliary; a publish failure never fails the
		// request.
		if err := s.publisher.PublishActivity(ctx, activity); err != nil {
			s.logger.Warn("assistant", "failed to publish activity event", map[string]interface{}{
				"type": eventType, "error": err.Error(),
			})
		}
	}

	return true
}
