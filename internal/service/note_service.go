package service

import (
	"context"
	"strings"

	"notesmd-be/internal/dto"
	"notesmd-be/internal/pkg/logger"
	"notesmd-be/pkg/storage"
)

type INoteService interface {
	ListNotes(ctx context.Context, user string) (*dto.ListNotesResponse, error)
	ListSubsections(ctx context.Context, user, note string) (*dto.ListSubsectionsResponse, error)
	ShowSubsection(ctx context.Context, user, note, section string) (*dto.ShowSubsectionResponse, error)
	UpdateSubsection(ctx context.Context, user, note, section string, req *dto.UpdateSubsectionRequest) (*dto.UpdateSubsectionResponse, error)
	AppendSubsection(ctx context.Context, user, note, section string, req *dto.AppendSubsectionRequest) (*dto.AppendSubsectionResponse, error)
	UploadReference(ctx context.Context, user, note, filename string, data []byte) (*dto.UploadReferenceResponse, error)
	ListChatTurns(ctx context.Context, user, note string) (*dto.ListChatTurnsResponse, error)
}

type noteService struct {
	store  *storage.NoteStore
	logger logger.ILogger
}

func NewNoteService(store *storage.NoteStore, log logger.ILogger) INoteService {
	return &noteService{
		store:  store,
		logger: log,
	}
}

func (s *noteService) ListNotes(_ context.Context, user string) (*dto.ListNotesResponse, error) {
	notes, err := s.store.ListNotes(user)
	if err != nil {
		return nil, err
	}
	return &dto.ListNotesResponse{Notes: notes}, nil
}

func (s *noteService) ListSubsections(_ context.Context, user, note string) (*dto.ListSubsectionsResponse, error) {
	loc, err := s.store.Locate(user, note)
	if err != nil {
		return nil, err
	}

	names, err := s.store.ListSubsections(loc)
	if err != nil {
		return nil, err
	}
	return &dto.ListSubsectionsResponse{Subsections: names}, nil
}

func (s *noteService) ShowSubsection(_ context.Context, user, note, section string) (*dto.ShowSubsectionResponse, error) {
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
	return &dto.ShowSubsectionResponse{Name: name, Content: content}, nil
}

// UpdateSubsection overwrites a subsection wholesale. Notes come into
// existence when their first subsection is written, so missing directories
// are created here.
func (s *noteService) UpdateSubsection(_ context.Context, user, note, section string, req *dto.UpdateSubsectionRequest) (*dto.UpdateSubsectionResponse, error) {
	loc, err := s.store.LocateEnsure(user, note)
	if err != nil {
		return nil, err
	}

	name, err := markdownName(section)
	if err != nil {
		return nil, err
	}

	if err := s.store.WriteText(loc.SubsectionPath(name), req.Content, storage.Overwrite); err != nil {
		return nil, err
	}

	s.logger.Info("note", "subsection updated", map[string]interface{}{
		"user": user, "note": note, "section": name,
	})
	return &dto.UpdateSubsectionResponse{Name: name}, nil
}

// AppendSubsection adds content to an existing subsection; the target must
// already exist.
func (s *noteService) AppendSubsection(_ context.Context, user, note, section string, req *dto.AppendSubsectionRequest) (*dto.AppendSubsectionResponse, error) {
	loc, err := s.store.Locate(user, note)
	if err != nil {
		return nil, err
	}

	name, err := markdownName(section)
	if err != nil {
		return nil, err
	}

	path := loc.SubsectionPath(name)
	if _, err := s.store.ReadText(path); err != nil {
		return nil, err
	}

	if err := s.store.WriteText(path, "\n"+req.Content, storage.Append); err != nil {
		return nil, err
	}
	return &dto.AppendSubsectionResponse{Name: name}, nil
}

// UploadReference stores an opaque reference document. Missing user/note
// directories are created, not reported.
func (s *noteService) UploadReference(_ context.Context, user, note, filename string, data []byte) (*dto.UploadReferenceResponse, error) {
	if err := storage.ValidateFilename(filename); err != nil {
		return nil, err
	}

	loc, err := s.store.LocateEnsure(user, note)
	if err != nil {
		return nil, err
	}

	path := loc.FilePath(storage.SubfolderUploads, filename)
	if err := s.store.WriteText(path, string(data), storage.Overwrite); err != nil {
		return nil, err
	}

	s.logger.Info("note", "reference file uploaded", map[string]interface{}{
		"user": user, "note": note, "filename": filename, "bytes": len(data),
	})
	return &dto.UploadReferenceResponse{Filename: filename}, nil
}

func (s *noteService) ListChatTurns(_ context.Context, user, note string) (*dto.ListChatTurnsResponse, error) {
	loc, err := s.store.Locate(user, note)
	if err != nil {
		return nil, err
	}

	names, err := s.store.ListFiles(loc, storage.SubfolderChat, ".md")
	if err != nil {
		return nil, err
	}

	turns := make([]dto.ChatTurnDTO, 0, len(names))
	for _, name := range names {
		content, err := s.store.ReadText(loc.FilePath(storage.SubfolderChat, name))
		if err != nil {
			return nil, err
		}
		turns = append(turns, dto.ChatTurnDTO{Filename: name, Content: content})
	}
	return &dto.ListChatTurnsResponse{Turns: turns}, nil
}

// markdownName normalizes a section route segment to its on-disk filename.
func markdownName(section string) (string, error) {
	if err := storage.ValidateFilename(section); err != nil {
		return "", err
	}
	if strings.HasSuffix(section, ".md") {
		return section, nil
	}
	return section + ".md", nil
}
