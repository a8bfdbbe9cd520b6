package utils

import "github.com/gofiber/fiber/v2"

// Envelope is the body shape of every HTTP response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type Page[T any] struct {
	Items          []T    `json:"items"`
	TotalData      int    `json:"totalData"`
	PageNumber     int    `json:"pageNumber"`
	PageSize       int    `json:"pageSize"`
	OrderBy        string `json:"orderBy"`
	OrderDirection string `json:"orderDirection"`
}

func NewPage[T any](items []T, total int, options ListOptions) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{
		Items:          items,
		TotalData:      total,
		PageNumber:     options.Page,
		PageSize:       options.Limit,
		OrderBy:        options.SortBy,
		OrderDirection: options.SortOrder,
	}
}

func Respond(c *fiber.Ctx, status int, body Envelope) error {
	body.Success = status < fiber.StatusBadRequest
	return c.Status(status).JSON(body)
}

func RespondOK(c *fiber.Ctx, message string, data interface{}) error {
	return Respond(c, fiber.StatusOK, Envelope{Message: message, Data: data})
}

func RespondCreated(c *fiber.Ctx, message string, data interface{}) error {
	return Respond(c, fiber.StatusCreated, Envelope{Message: message, Data: data})
}

func RespondBadRequest(c *fiber.Ctx, message string, details interface{}) error {
	return Respond(c, fiber.StatusBadRequest, Envelope{Message: message, Error: details})
}

func RespondNotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, Envelope{Message: message})
}

func RespondUnauthenticated(c *fiber.Ctx) error {
	return Respond(c, fiber.StatusUnauthorized, Envelope{Message: "You are not authenticated"})
}
