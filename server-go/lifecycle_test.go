package server

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx/fxtest"
)

func TestRun(t *testing.T) {
	t.Run("starts and stops", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		app := fiber.New(fiber.Config{DisableStartupMessage: true})

		Run(app, &Config{Port: "127.0.0.1:0"}, lc)

		lc.RequireStart()
		lc.RequireStop()
	})

	t.Run("bind failure fails start", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		app := fiber.New(fiber.Config{DisableStartupMessage: true})

		Run(app, &Config{Port: "127.0.0.1:not-a-port"}, lc)

		assert.Error(t, lc.Start(context.Background()))
	})
}
