package controllers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

const temporaryPasswordLength = 10

type TeamStore interface {
	ListTeams(ctx context.Context, options utils.ListOptions, filter repos.TeamFilter) ([]*userdata.Team, int, error)
	GetTeam(ctx context.Context, id int64) (*userdata.Team, error)
	CreateWithContractAndManager(ctx context.Context, team *userdata.Team, contract *billing.TeamContract, manager *userdata.Member) error
	UpdateTeam(ctx context.Context, id int64, patch repos.TeamPatch) (*userdata.Team, error)
	DeleteTeam(ctx context.Context, id int64) (*userdata.Team, error)
}

type WelcomeMailer interface {
	SendWelcome(ctx context.Context, team *userdata.Team, manager *userdata.Member, password string) error
}

type TeamsController struct {
	fx.In

	Repo    TeamStore
	Mailer  WelcomeMailer
	Options *Options
}

type createTeamRequest struct {
	TeamName          string          `json:"teamName" validate:"required,max=255"`
	CompanyName       string          `json:"companyName" validate:"max=255"`
	HqAddress         string          `json:"hqAddress"`
	ManagerFirstName  string          `json:"managerFirstName" validate:"max=255"`
	ManagerLastName   string          `json:"managerLastName" validate:"max=255"`
	ManagerEmail      string          `json:"managerEmail" validate:"required,email"`
	ManagerPhone      string          `json:"managerPhone" validate:"max=32"`
	ImageUrl          string          `json:"imageUrl"`
	ContractNumber    string          `json:"contractNumber" validate:"max=255"`
	ActivePeriodStart *utils.FlexTime `json:"activePeriodStart"`
	ActivePeriodEnd   *utils.FlexTime `json:"activePeriodEnd" validate:"required"`
	MemberQuota       int             `json:"memberQuota" validate:"gte=0"`
	PackageId         int64           `json:"packageId" validate:"required,gt=0"`
}

type updateTeamRequest struct {
	TeamName         *string `json:"teamName" validate:"omitempty,min=1,max=255"`
	CompanyName      *string `json:"companyName" validate:"omitempty,max=255"`
	HqAddress        *string `json:"hqAddress"`
	ManagerFirstName *string `json:"managerFirstName" validate:"omitempty,max=255"`
	ManagerLastName  *string `json:"managerLastName" validate:"omitempty,max=255"`
	ManagerEmail     *string `json:"managerEmail" validate:"omitempty,email"`
	ManagerPhone     *string `json:"managerPhone" validate:"omitempty,max=32"`
	ImageUrl         *string `json:"imageUrl"`
}

func RegisterTeamsController(r *utils.Router, c TeamsController) {
	teams := r.Group("/teams")

	teams.Get("/", r.Session, c.listTeams)
	teams.Get("/:id", r.Session, c.getTeam)
	teams.Post("/", r.Session, c.createTeam)
	teams.Put("/:id", r.Session, c.updateTeam)
	teams.Delete("/:id", r.Session, c.deleteTeam)
}

func (r *TeamsController) listTeams(c *fiber.Ctx) error {
	options, ok, err := parseListOptions(c, repos.TeamSortColumns)
	if !ok {
		return err
	}

	teams, total, err := r.Repo.ListTeams(c.UserContext(), options, repos.TeamFilter{TeamName: c.Query("teamName")})
	if err != nil {
		return utils.StandardInternalError(c, "Failed to retrieve teams", err)
	}

	for _, team := range teams {
		team.SanitizeMembers()
	}

	return utils.RespondOK(c, "Teams retrieved successfully", utils.NewPage(teams, total, options))
}

func (r *TeamsController) getTeam(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Team not found")
	}

	team, err := r.Repo.GetTeam(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Team not found", "Failed to retrieve team")
	}

	team.SanitizeMembers()
	return utils.RespondOK(c, "Team retrieved successfully", team)
}

func (r *TeamsController) createTeam(c *fiber.Ctx) error {
	req := new(createTeamRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	password := utils.GeneratePassword(temporaryPasswordLength)
	hash, err := utils.HashPassword(password)
	if err != nil {
		return utils.StandardInternalError(c, "Failed to create team", err)
	}

	managerFullName := strings.TrimSpace(req.ManagerFirstName + " " + req.ManagerLastName)

	team := &userdata.Team{
		TeamName:         req.TeamName,
		CompanyName:      req.CompanyName,
		HqAddress:        req.HqAddress,
		ManagerFirstName: req.ManagerFirstName,
		ManagerLastName:  req.ManagerLastName,
		ManagerFullName:  managerFullName,
		ManagerEmail:     req.ManagerEmail,
		ManagerPhone:     req.ManagerPhone,
		ImageUrl:         req.ImageUrl,
	}

	contract := &billing.TeamContract{
		ContractNumber:    req.ContractNumber,
		ActivePeriodStart: req.ActivePeriodStart.Ptr(),
		ActivePeriodEnd:   req.ActivePeriodEnd.Ptr(),
		MemberQuota:       req.MemberQuota,
		PackageId:         req.PackageId,
	}

	manager := &userdata.Member{
		Uid:         utils.GenerateNumericId(repos.UidLength),
		Email:       req.ManagerEmail,
		Password:    hash,
		PhoneNumber: req.ManagerPhone,
		FirstName:   req.ManagerFirstName,
		LastName:    req.ManagerLastName,
		FullName:    managerFullName,
		RoleId:      r.Options.BootstrapRoleId,
	}

	if err := r.Repo.CreateWithContractAndManager(c.UserContext(), team, contract, manager); err != nil {
		return repoError(c, err, "Team not found", "Failed to create team")
	}

	if err := r.Mailer.SendWelcome(c.UserContext(), team, manager, password); err != nil {
		log.Error().Err(err).Int64("team", team.Id).Str("email", manager.Email).Msg("Failed to send welcome email")
	}

	team.SanitizeMembers()
	return utils.RespondCreated(c, "Team created successfully", team)
}

func (r *TeamsController) updateTeam(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Team not found")
	}

	req := new(updateTeamRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	team, err := r.Repo.UpdateTeam(c.UserContext(), id, repos.TeamPatch{
		TeamName:         req.TeamName,
		CompanyName:      req.CompanyName,
		HqAddress:        req.HqAddress,
		ManagerFirstName: req.ManagerFirstName,
		ManagerLastName:  req.ManagerLastName,
		ManagerEmail:     req.ManagerEmail,
		ManagerPhone:     req.ManagerPhone,
		ImageUrl:         req.ImageUrl,
	})
	if err != nil {
		return repoError(c, err, "Team not found", "Failed to update team")
	}

	return utils.RespondOK(c, "Team updated successfully", team)
}

func (r *TeamsController) deleteTeam(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Team not found")
	}

	team, err := r.Repo.DeleteTeam(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Team not found", "Failed to delete team")
	}

	return utils.RespondOK(c, "Team deleted successfully", team)
}
