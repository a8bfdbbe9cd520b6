package server

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateServer(t *testing.T) {
	app := CreateServer(&Config{AppName: "test", Timeout: 5, IsProduction: true})

	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		return utils.RespondOK(c, "ok", fiber.Map{"deadline": ok})
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	decode := func(t *testing.T, path string) (int, utils.Envelope) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body utils.Envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	t.Run("unknown route keeps the envelope", func(t *testing.T) {
		status, body := decode(t, "/nope")

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.False(t, body.Success)
		assert.NotEmpty(t, body.Message)
	})

	t.Run("handlers see a bounded context", func(t *testing.T) {
		status, body := decode(t, "/deadline")

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, map[string]interface{}{"deadline": true}, body.Data)
	})

	t.Run("panics become internal errors", func(t *testing.T) {
		status, body := decode(t, "/panic")

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body.Message)
	})
}

func TestCreateServer_EncryptedSessionCookie(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keys := &utils.JwtKeys{Private: key, Public: &key.PublicKey}

	app := CreateServer(&Config{AppName: "test", IsProduction: true, CookieKey: encryptcookie.GenerateKey()})
	r := utils.GetDefaultRouter(app, keys)

	token, err := utils.CreateJwt(utils.JwtConfig{Member: 3, Subject: utils.SubjectAccess, ExpireIn: time.Hour, Keys: keys})
	require.NoError(t, err)

	r.Post("/session", func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{Name: utils.AccessCookie, Value: token, HTTPOnly: true})
		return utils.RespondOK(c, "ok", nil)
	})
	r.Get("/whoami", r.Session, func(c *fiber.Ctx) error {
		claims, _ := utils.GetClaims(c)
		return utils.RespondOK(c, "ok", fiber.Map{"id": claims.Id})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/session", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == utils.AccessCookie {
			session = cookie
		}
	}
	require.NotNil(t, session)
	assert.NotEqual(t, token, session.Value)

	whoami := func(cookie *http.Cookie) int {
		req := httptest.NewRequest(fiber.MethodGet, "/api/whoami", nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, whoami(session))
	assert.Equal(t, fiber.StatusUnauthorized, whoami(&http.Cookie{Name: utils.AccessCookie, Value: token}))
}
