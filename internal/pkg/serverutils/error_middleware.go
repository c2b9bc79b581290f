package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"notesmd-be/pkg/apperrors"
)

// ErrorHandlerMiddleware translates service errors to HTTP status codes.
// Storage and generation failures are not swallowed; the response body
// carries the error kind plus the underlying message so callers can tell
// "nothing to answer from" apart from "could not get an answer".
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := statusFor(apperrors.KindOf(err))
		body := ErrorResponse(status, err.Error())
		body.Message = apperrors.KindOf(err).String() + ": " + err.Error()
		return ctx.Status(status).JSON(body)
	}
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindMalformedInput:
		return fiber.StatusUnprocessableEntity
	case apperrors.KindGeneration, apperrors.KindConfiguration:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
