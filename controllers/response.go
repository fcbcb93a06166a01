package controllers

import (
	"errors"

	"deutschklasse_go/repository"

	"github.com/gofiber/fiber/v2"
)

// All endpoints answer with the same envelope the frontend expects:
// {"code": ..., "message": ..., "data": ...}.

func ok(c *fiber.Ctx, data interface{}, message string) error {
	if message == "" {
		message = "success"
	}
	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"message": message,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":    status,
		"message": message,
		"data":    nil,
	})
}

// failFromErr maps repository error taxonomy onto HTTP statuses.
func failFromErr(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		status = fiber.StatusConflict
	case errors.Is(err, repository.ErrValidation):
		status = fiber.StatusUnprocessableEntity
	}
	return fail(c, status, message+": "+err.Error())
}
