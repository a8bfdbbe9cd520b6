package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

// listenGrace is how long OnStart waits for an immediate bind failure.
const listenGrace = 100 * time.Millisecond

// Run binds app to the fx lifecycle: listen on start, shut down on stop.
func Run(app *fiber.App, config *Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			errChan := make(chan error, 1)

			go func() {
				errChan <- app.Listen(config.Port)
			}()

			select {
			case err := <-errChan:
				return err
			case <-time.After(listenGrace):
				return nil
			}
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}
