package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
	"github.com/sigap/sigap-server/models"
	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

type Config struct {
	Dsn string `env:"DSN,required"`
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func main() {
	utils.ParseFlags()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse env config")
	}

	db, err := utils.OpenPostgres(&utils.PostgresConfig{Dsn: cfg.Dsn, IsProduction: true})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to postgres")
	}
	defer db.Close()

	models.InitModelRegistrations(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}

func seed(ctx context.Context, db *bun.DB) error {
	roles := []*rbac.Role{
		{Id: 1, Name: "Admin", Description: "Administrator with full access", AuthorizedMenu: json.RawMessage(`{}`), Status: utils.StatusActive},
		{Id: 2, Name: "User", Description: "Regular user with limited access", AuthorizedMenu: json.RawMessage(`["Dashboard"]`), Status: utils.StatusActive},
	}
	if _, err := db.NewInsert().Model(&roles).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return err
	}
	log.Info().Int("count", len(roles)).Msg("Roles seeded")

	menus := []*rbac.Menu{
		{Id: 1, Name: "Teams", Description: "View overall stats and metrics", UrlMenu: "/teams", IconMenu: "dashboard-icon", Category: "Main", OrderingNumber: 1, ParentMenu: json.RawMessage(`{}`), Status: utils.StatusActive},
		{Id: 2, Name: "Package", Description: "Manage system settings", UrlMenu: "/packages", IconMenu: "package-icon", Category: "Main", OrderingNumber: 2, ParentMenu: json.RawMessage(`{}`), Status: utils.StatusActive},
		{Id: 3, Name: "Menu", Description: "Manage menus", UrlMenu: "/menus", IconMenu: "menu-icon", Category: "Main", OrderingNumber: 3, ParentMenu: json.RawMessage(`{}`), Status: utils.StatusActive},
		{Id: 4, Name: "Roles", Description: "Manage roles", UrlMenu: "/roles", IconMenu: "roles-icon", Category: "Main", OrderingNumber: 4, ParentMenu: json.RawMessage(`{}`), Status: utils.StatusActive},
	}
	if _, err := db.NewInsert().Model(&menus).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return err
	}
	log.Info().Int("count", len(menus)).Msg("Menus seeded")

	packages := []*billing.Package{
		{Id: 1, Name: "Basic Package", Description: "Access to basic features", ImageUrl: "/images/basic-package.png", SelectedMenu: []int64{1, 2}, Status: utils.StatusActive},
		{Id: 2, Name: "Premium Package", Description: "Access to all features", ImageUrl: "/images/premium-package.png", SelectedMenu: []int64{1}, Status: utils.StatusActive},
	}
	if _, err := db.NewInsert().Model(&packages).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return err
	}
	log.Info().Int("count", len(packages)).Msg("Packages seeded")

	// Explicit ids bypass the serial sequences.
	for _, table := range []string{"rbac.roles", "rbac.menus", "billing.packages"} {
		if _, err := db.ExecContext(ctx, "SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT MAX(id) FROM "+table+"))", table); err != nil {
			return err
		}
	}

	team := &userdata.Team{
		TeamName:        "Development Team",
		CompanyName:     "Tech Solutions Ltd.",
		HqAddress:       "123 Main Street, Cityville",
		ManagerFullName: "John Doe",
		ManagerEmail:    "john.doe@techsolutions.com",
		ManagerPhone:    "1234567890",
		ImageUrl:        "/images/development-team.png",
		Status:          utils.StatusActive,
	}
	if _, err := db.NewInsert().Model(team).On("CONFLICT (team_name) DO UPDATE").Set("updated_at = EXCLUDED.updated_at").Returning("id").Exec(ctx); err != nil {
		return err
	}
	log.Info().Str("team", team.TeamName).Msg("Team seeded")

	contract := &billing.TeamContract{
		ContractNumber:    "DEV-2025-001",
		TeamId:            team.Id,
		ActivePeriodStart: date("2025-01-01"),
		ActivePeriodEnd:   date("2025-12-31"),
		MemberQuota:       15,
		PackageId:         1,
		Status:            utils.StatusActive,
	}
	if _, err := db.NewInsert().Model(contract).On("CONFLICT (contract_number) DO NOTHING").Exec(ctx); err != nil {
		return err
	}
	log.Info().Str("contract", contract.ContractNumber).Msg("Contract seeded")

	exists, err := db.NewSelect().Model((*userdata.Member)(nil)).Where("email = ?", "admin@example.com").Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Msg("Admin member already present")
		return nil
	}

	hash, err := utils.HashPassword("1234")
	if err != nil {
		return err
	}

	member := &userdata.Member{
		Email:          "admin@example.com",
		Password:       hash,
		PhoneNumber:    "0987654321",
		Name:           "Admin User",
		FullName:       "Admin User",
		EmployeeNumber: "EMP001",
		JoinedDate:     date("2023-01-01"),
		HomeAddress:    "789 Main Street, Cityville",
		District:       "Downtown",
		SubDistrict:    "North District",
		BirthPlace:     "Cityville",
		BirthDate:      date("1990-01-01"),
		Gender:         "Male",
		Nationality:    "Countryland",
		Religion:       "None",
		TeamId:         &team.Id,
		RoleId:         1,
	}
	admin := &userdata.MemberAdministration{
		TaxNumber:                "TAX-1234",
		IdentityNumber:           "P1234567",
		IdentityNumberAttachment: "/documents/nationality-card.png",
	}
	relatives := []*userdata.MemberRelative{
		{FullName: "Jane Doe", RelationType: "Spouse", PhoneNumber: "9876543210", IsEmergency: true},
	}

	if err := repos.NewMemberRepo(db, utils.ExcludeNonActive).CreateComposite(ctx, member, admin, relatives); err != nil {
		return err
	}
	log.Info().Str("member", member.Email).Str("uid", member.Uid).Msg("Admin member seeded")
	return nil
}
