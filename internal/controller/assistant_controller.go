package controller

import (
	"github.com/gofiber/fiber/v2"

	"notesmd-be/internal/dto"
	"notesmd-be/internal/pkg/serverutils"
	"notesmd-be/internal/service"
	"notesmd-be/pkg/apperrors"
	"notesmd-be/pkg/persona"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Diagram(ctx *fiber.Ctx) error
	TutorChat(ctx *fiber.Ctx) error
	BusinessChat(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users/:username/notes/:note")
	h.Post("/ask", c.Ask)
	h.Post("/tutor", c.TutorChat)
	h.Post("/business", c.BusinessChat)
	h.Post("/sections/:section/diagram", c.Diagram)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.MalformedInput("parse request body: %w", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), ctx.Params("username"), ctx.Params("note"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate notes", res))
}

func (c *assistantController) Diagram(ctx *fiber.Ctx) error {
	res, err := c.assistantService.Diagram(ctx.Context(), ctx.Params("username"), ctx.Params("note"), ctx.Params("section"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate diagrams", res))
}

func (c *assistantController) TutorChat(ctx *fiber.Ctx) error {
	return c.chat(ctx, persona.ModeTutor, "Success tutor chat")
}

func (c *assistantController) BusinessChat(ctx *fiber.Ctx) error {
	return c.chat(ctx, persona.ModeBusiness, "Success business chat")
}

func (c *assistantController) chat(ctx *fiber.Ctx, mode persona.Mode, successMessage string) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.MalformedInput("parse request body: %w", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), mode, ctx.Params("username"), ctx.Params("note"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(successMessage, res))
}
