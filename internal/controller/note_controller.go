package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"notesmd-be/internal/dto"
	"notesmd-be/internal/pkg/serverutils"
	"notesmd-be/internal/service"
	"notesmd-be/pkg/apperrors"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	ListNotes(ctx *fiber.Ctx) error
	ListSubsections(ctx *fiber.Ctx) error
	ShowSubsection(ctx *fiber.Ctx) error
	UpdateSubsection(ctx *fiber.Ctx) error
	AppendSubsection(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	ListChatTurns(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users/:username/notes")
	h.Get("", c.ListNotes)
	h.Get("/:note", c.ListSubsections)
	h.Get("/:note/chat", c.ListChatTurns)
	h.Post("/:note/upload", c.Upload)
	h.Get("/:note/sections/:section", c.ShowSubsection)
	h.Put("/:note/sections/:section", c.UpdateSubsection)
	h.Post("/:note/sections/:section", c.AppendSubsection)
}

func (c *noteController) ListNotes(ctx *fiber.Ctx) error {
	res, err := c.noteService.ListNotes(ctx.Context(), ctx.Params("username"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) ListSubsections(ctx *fiber.Ctx) error {
	res, err := c.noteService.ListSubsections(ctx.Context(), ctx.Params("username"), ctx.Params("note"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list subsections", res))
}

func (c *noteController) ShowSubsection(ctx *fiber.Ctx) error {
	res, err := c.noteService.ShowSubsection(ctx.Context(), ctx.Params("username"), ctx.Params("note"), ctx.Params("section"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show subsection", res))
}

func (c *noteController) UpdateSubsection(ctx *fiber.Ctx) error {
	var req dto.UpdateSubsectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.MalformedInput("parse request body: %w", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.UpdateSubsection(ctx.Context(), ctx.Params("username"), ctx.Params("note"), ctx.Params("section"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update subsection", res))
}

func (c *noteController) AppendSubsection(ctx *fiber.Ctx) error {
	var req dto.AppendSubsectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.MalformedInput("parse request body: %w", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.AppendSubsection(ctx.Context(), ctx.Params("username"), ctx.Params("note"), ctx.Params("section"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success append to subsection", res))
}

func (c *noteController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.MalformedInput("missing uploaded file: %w", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return apperrors.MalformedInput("open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apperrors.MalformedInput("read uploaded file: %w", err)
	}

	res, err := c.noteService.UploadReference(ctx.Context(), ctx.Params("username"), ctx.Params("note"), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload reference file", res))
}

func (c *noteController) ListChatTurns(ctx *fiber.Ctx) error {
	res, err := c.noteService.ListChatTurns(ctx.Context(), ctx.Params("username"), ctx.Params("note"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list chat turns", res))
}
