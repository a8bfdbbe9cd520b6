package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/models/billing"
	joined_models "github.com/sigap/sigap-server/models/joined-models"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

type ContractStore interface {
	ListContracts(ctx context.Context, options utils.ListOptions, filter repos.ContractFilter) ([]*billing.TeamContract, int, error)
	GetContract(ctx context.Context, id int64, filter repos.ContractFilter) (*joined_models.ContractWithTeam, error)
	CreateContract(ctx context.Context, contract *billing.TeamContract) error
	UpdateContract(ctx context.Context, id int64, filter repos.ContractFilter, patch repos.ContractPatch) (*billing.TeamContract, error)
	DeleteContract(ctx context.Context, id int64, filter repos.ContractFilter) (*billing.TeamContract, error)
}

type ContractsController struct {
	fx.In

	Repo    ContractStore
	Options *Options
}

type createContractRequest struct {
	TeamId            int64           `json:"teamId"`
	ContractNumber    string          `json:"contractNumber" validate:"max=255"`
	ActivePeriodStart *utils.FlexTime `json:"activePeriodStart"`
	ActivePeriodEnd   *utils.FlexTime `json:"activePeriodEnd" validate:"required"`
	MemberQuota       int             `json:"memberQuota" validate:"gte=0"`
	PackageId         int64           `json:"packageId" validate:"required,gt=0"`
}

type updateContractRequest struct {
	ContractNumber    *string         `json:"contractNumber" validate:"omitempty,max=255"`
	ActivePeriodStart *utils.FlexTime `json:"activePeriodStart"`
	ActivePeriodEnd   *utils.FlexTime `json:"activePeriodEnd"`
	MemberQuota       *int            `json:"memberQuota" validate:"omitempty,gte=0"`
	PackageId         *int64          `json:"packageId" validate:"omitempty,gt=0"`
}

func RegisterContractsController(r *utils.Router, c ContractsController) {
	nested := r.Group("/teams/:id/contracts")

	nested.Get("/", r.Session, c.listContracts)
	nested.Get("/:contractId", r.Session, c.getContract)
	nested.Post("/", r.Session, c.createContract)
	nested.Put("/:contractId", r.Session, c.updateContract)
	nested.Delete("/:contractId", r.Session, c.deleteContract)

	if !c.Options.FlatContracts {
		return
	}

	contracts := r.Group("/contracts")

	contracts.Get("/", r.Session, c.listContracts)
	contracts.Get("/:contractId", r.Session, c.getContract)
	contracts.Post("/", r.Session, c.createContract)
	contracts.Put("/:contractId", r.Session, c.updateContract)
	contracts.Delete("/:contractId", r.Session, c.deleteContract)
}

// contractScope resolves the owning team from the nested path, or from the
// teamId query parameter on the flat routes.
func contractScope(c *fiber.Ctx) (repos.ContractFilter, bool) {
	if c.Params("id") != "" {
		id, ok := utils.ParseId(c, "id")
		if !ok {
			return repos.ContractFilter{}, false
		}
		return repos.ContractFilter{TeamId: &id}, true
	}

	teamId, ok := queryId(c, "teamId")
	return repos.ContractFilter{TeamId: teamId}, ok
}

func (r *ContractsController) listContracts(c *fiber.Ctx) error {
	filter, ok := contractScope(c)
	if !ok {
		return utils.RespondNotFound(c, "Team not found")
	}

	options, ok, err := parseListOptions(c, repos.ContractSortColumns)
	if !ok {
		return err
	}

	contracts, total, err := r.Repo.ListContracts(c.UserContext(), options, filter)
	if err != nil {
		return utils.StandardInternalError(c, "Failed to retrieve contracts", err)
	}

	return utils.RespondOK(c, "Contracts retrieved successfully", utils.NewPage(contracts, total, options))
}

func (r *ContractsController) getContract(c *fiber.Ctx) error {
	filter, ok := contractScope(c)
	if !ok {
		return utils.RespondNotFound(c, "Contract not found")
	}

	id, ok := utils.ParseId(c, "contractId")
	if !ok {
		return utils.RespondNotFound(c, "Contract not found")
	}

	contract, err := r.Repo.GetContract(c.UserContext(), id, filter)
	if err != nil {
		return repoError(c, err, "Contract not found", "Failed to retrieve contract")
	}

	contract.Team.Redact()
	return utils.RespondOK(c, "Contract retrieved successfully", contract)
}

func (r *ContractsController) createContract(c *fiber.Ctx) error {
	filter, ok := contractScope(c)
	if !ok {
		return utils.RespondNotFound(c, "Team not found")
	}

	req := new(createContractRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	if filter.TeamId != nil {
		req.TeamId = *filter.TeamId
	}
	if req.TeamId <= 0 {
		return utils.RespondBadRequest(c, invalidParameters, []*utils.ErrorResponse{{FailedField: "teamId", Tag: "required"}})
	}

	contract := &billing.TeamContract{
		TeamId:            req.TeamId,
		ContractNumber:    req.ContractNumber,
		ActivePeriodStart: req.ActivePeriodStart.Ptr(),
		ActivePeriodEnd:   req.ActivePeriodEnd.Ptr(),
		MemberQuota:       req.MemberQuota,
		PackageId:         req.PackageId,
	}

	if err := r.Repo.CreateContract(c.UserContext(), contract); err != nil {
		if errors.Is(err, repos.ErrInvalidReference) && filter.TeamId != nil {
			return utils.RespondNotFound(c, "Team not found")
		}
		return repoError(c, err, "Team not found", "Failed to create contract")
	}

	return utils.RespondCreated(c, "Contract created successfully", contract)
}

func (r *ContractsController) updateContract(c *fiber.Ctx) error {
	filter, ok := contractScope(c)
	if !ok {
		return utils.RespondNotFound(c, "Contract not found")
	}

	id, ok := utils.ParseId(c, "contractId")
	if !ok {
		return utils.RespondNotFound(c, "Contract not found")
	}

	req := new(updateContractRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	contract, err := r.Repo.UpdateContract(c.UserContext(), id, filter, repos.ContractPatch{
		ContractNumber:    req.ContractNumber,
		ActivePeriodStart: req.ActivePeriodStart.Ptr(),
		ActivePeriodEnd:   req.ActivePeriodEnd.Ptr(),
		MemberQuota:       req.MemberQuota,
		PackageId:         req.PackageId,
	})
	if err != nil {
		return repoError(c, err, "Contract not found", "Failed to update contract")
	}

	return utils.RespondOK(c, "Contract updated successfully", contract)
}

func (r *ContractsController) deleteContract(c *fiber.Ctx) error {
	filter, ok := contractScope(c)
	if !ok {
		return utils.RespondNotFound(c, "Contract not found")
	}

	id, ok := utils.ParseId(c, "contractId")
	if !ok {
		return utils.RespondNotFound(c, "Contract not found")
	}

	contract, err := r.Repo.DeleteContract(c.UserContext(), id, filter)
	if err != nil {
		return repoError(c, err, "Contract not found", "Failed to delete contract")
	}

	return utils.RespondOK(c, "Contract deleted successfully", contract)
}
