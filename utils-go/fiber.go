package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	authScheme = "Bearer"
	claimsKey  = "claims"

	// AccessCookie carries the session token for browser clients.
	AccessCookie = "accessToken"
)

type Router struct {
	fiber.Router
	Session fiber.Handler
}

type JwtMiddlewareConfig struct {
	// ReadFrom lists token locations ("header", "cookie") separated by
	// commas, tried in order.
	ReadFrom string
	Subject  string
	Keys     *JwtKeys
}

func GetDefaultRouter(app *fiber.App, keys *JwtKeys) *Router {
	return &Router{
		Router: app.Group("/api"),
		Session: Protected(JwtMiddlewareConfig{
			ReadFrom: "header,cookie",
			Subject:  SubjectAccess,
			Keys:     keys,
		}),
	}
}

func readToken(c *fiber.Ctx, from string) (string, error) {
	err := errors.New("invalid token read location")
	for _, location := range strings.Split(from, ",") {
		var token string
		if token, err = readTokenFrom(c, strings.TrimSpace(location)); err == nil {
			return token, nil
		}
	}
	return "", err
}

func readTokenFrom(c *fiber.Ctx, from string) (string, error) {
	switch from {
	case "header":
		auth := c.Get(fiber.HeaderAuthorization)
		l := len(authScheme)
		if len(auth) > l+1 && strings.EqualFold(auth[:l], authScheme) {
			return strings.TrimSpace(auth[l+1:]), nil
		}
		return "", errors.New("missing or malformed JWT")
	case "cookie":
		token := c.Cookies(AccessCookie)
		if token == "" {
			return "", errors.New("missing or malformed JWT")
		}
		return token, nil
	}
	return "", errors.New("invalid token read location")
}

// Protected rejects requests without a valid session token and stores the
// verified claims for the handlers behind it.
func Protected(config JwtMiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawToken, err := readToken(c, config.ReadFrom)
		if err != nil {
			return RespondUnauthenticated(c)
		}

		if config.Keys == nil || config.Keys.Public == nil {
			log.Error().Msg("Session guard has no public key configured")
			return RespondUnauthenticated(c)
		}

		claims, err := ParseJwt(rawToken, config.Subject, config.Keys.Public)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected session token")
			return RespondUnauthenticated(c)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// ParseId reads a positive integer path parameter.
func ParseId(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func StandardInternalError(c *fiber.Ctx, message string, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg(message)
	return Respond(c, fiber.StatusInternalServerError, Envelope{
		Message: message,
		Error:   "Internal server error",
	})
}

func StandardCouldNotParse(c *fiber.Ctx) error {
	return RespondBadRequest(c, "Could not parse request", nil)
}
