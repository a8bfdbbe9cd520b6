package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
)

const invalidParameters = "Invalid parameters"

// Options carries the service level settings shared entity controllers need.
type Options struct {
	BootstrapRoleId int64
	FlatContracts   bool
}

// parseBody binds and validates a request body. A nil error with ok false
// means a response has already been written.
func parseBody(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, utils.StandardCouldNotParse(c)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return false, utils.RespondBadRequest(c, invalidParameters, errs)
	}
	return true, nil
}

func parseListOptions(c *fiber.Ctx, columns utils.SortColumns) (utils.ListOptions, bool, error) {
	options, err := utils.ListOptionsFromQuery(c, columns)
	if err != nil {
		return options, false, utils.RespondBadRequest(c, invalidParameters, fiber.Map{"sortBy": c.Query("sortBy")})
	}
	return options, true, nil
}

// queryId reads an optional positive integer query parameter.
func queryId(c *fiber.Ctx, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

// repoError converts repository failures into envelope responses.
func repoError(c *fiber.Ctx, err error, notFound string, failure string) error {
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return utils.RespondNotFound(c, notFound)
	case errors.Is(err, repos.ErrInvalidReference):
		return utils.RespondBadRequest(c, invalidParameters, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return utils.StandardInternalError(c, "Request timed out", err)
	}
	return utils.StandardInternalError(c, failure, err)
}
