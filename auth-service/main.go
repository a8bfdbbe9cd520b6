package main

import (
	"github.com/sigap/sigap-server/auth-service/config"
	"github.com/sigap/sigap-server/auth-service/controllers"
	"github.com/sigap/sigap-server/models"
	"github.com/sigap/sigap-server/providers/email"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/server-go"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

func main() {

	opts := []fx.Option{}
	opts = append(opts, provideOptions()...)
	opts = append(opts, fx.Invoke(server.Run))

	app := fx.New(opts...)

	app.Run()
}

func provideOptions() []fx.Option {
	return []fx.Option{
		fx.Provide(config.Parse),
		fx.Invoke(func(config *config.Config) {
			utils.ConfigureLogger(config)
		}),
		fx.Provide(utils.ConvertConfig[*config.Config, server.Config]),
		fx.Provide(utils.ConvertConfig[*config.Config, utils.PostgresConfig]),
		fx.Provide(utils.ConvertConfig[*config.Config, utils.RedisConfig]),
		fx.Provide(config.ProvideJwtKeys),
		fx.Provide(config.ProvideEmail),
		fx.Provide(config.ProvideStatusPolicy),
		fx.Provide(utils.ProvidePostgres),
		fx.Provide(utils.ProvideRedis),
		fx.Provide(server.CreateServer),
		fx.Provide(utils.GetDefaultRouter),
		fx.Invoke(models.InitModelRegistrations),
		fx.Provide(email.NewSender),
		fx.Provide(fx.Annotate(email.NewMailer, fx.As(new(controllers.ResetMailer)))),
		fx.Provide(fx.Annotate(repos.NewMemberRepo, fx.As(new(controllers.MemberStore)))),
		fx.Provide(fx.Annotate(repos.NewResetTokenRepo, fx.As(new(controllers.TokenStore)))),
		fx.Invoke(controllers.RegisterAuthController),
	}
}
