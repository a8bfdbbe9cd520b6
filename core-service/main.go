package main

import (
	"github.com/sigap/sigap-server/controllers"
	"github.com/sigap/sigap-server/core-service/config"
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
		fx.Provide(config.ProvideJwtKeys),
		fx.Provide(config.ProvideEmail),
		fx.Provide(config.ProvideStatusPolicy),
		fx.Provide(config.ProvideControllerOptions),
		fx.Provide(utils.ProvidePostgres),
		fx.Provide(server.CreateServer),
		fx.Provide(utils.GetDefaultRouter),
		fx.Invoke(models.InitModelRegistrations),
		fx.Provide(email.NewSender),
		fx.Provide(fx.Annotate(email.NewMailer, fx.As(new(controllers.WelcomeMailer)))),
		fx.Provide(fx.Annotate(repos.NewTeamRepo, fx.As(new(controllers.TeamStore)))),
		fx.Provide(fx.Annotate(repos.NewContractRepo, fx.As(new(controllers.ContractStore)))),
		fx.Provide(fx.Annotate(repos.NewMemberRepo, fx.As(new(controllers.MemberStore)))),
		fx.Provide(fx.Annotate(repos.NewRoleRepo, fx.As(new(controllers.RoleStore)))),
		fx.Provide(fx.Annotate(repos.NewMenuRepo, fx.As(new(controllers.MenuStore)))),
		fx.Provide(fx.Annotate(repos.NewPackageRepo, fx.As(new(controllers.PackageStore)))),
		fx.Invoke(controllers.RegisterTeamsController),
		fx.Invoke(controllers.RegisterContractsController),
		fx.Invoke(controllers.RegisterMembersController),
		fx.Invoke(controllers.RegisterRolesController),
		fx.Invoke(controllers.RegisterMenusController),
		fx.Invoke(controllers.RegisterPackagesController),
	}
}
