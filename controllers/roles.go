package controllers

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

type RoleStore interface {
	ListRoles(ctx context.Context, options utils.ListOptions, filter repos.RoleFilter) ([]*rbac.Role, int, error)
	GetRole(ctx context.Context, id int64) (*rbac.Role, error)
	CreateRole(ctx context.Context, role *rbac.Role) error
	UpdateRole(ctx context.Context, id int64, patch repos.RolePatch) (*rbac.Role, error)
	DeleteRole(ctx context.Context, id int64) (*rbac.Role, error)
}

type RolesController struct {
	fx.In

	Repo RoleStore
}

type roleRequest struct {
	Name           *string         `json:"name" validate:"omitempty,max=255"`
	Description    *string         `json:"description"`
	AuthorizedMenu json.RawMessage `json:"authorizedMenu"`
}

func RegisterRolesController(r *utils.Router, c RolesController) {
	roles := r.Group("/roles")

	roles.Get("/", r.Session, c.listRoles)
	roles.Get("/:id", r.Session, c.getRole)
	roles.Post("/", r.Session, c.createRole)
	roles.Put("/:id", r.Session, c.updateRole)
	roles.Delete("/:id", r.Session, c.deleteRole)
}

func isEmptyJson(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// missingRoleFields lists the role fields that are absent or empty.
func (req *roleRequest) missingRoleFields() []*utils.ErrorResponse {
	var missing []*utils.ErrorResponse
	if req.Name == nil || *req.Name == "" {
		missing = append(missing, &utils.ErrorResponse{FailedField: "name", Tag: "required"})
	}
	if req.Description == nil || *req.Description == "" {
		missing = append(missing, &utils.ErrorResponse{FailedField: "description", Tag: "required"})
	}
	if isEmptyJson(req.AuthorizedMenu) {
		missing = append(missing, &utils.ErrorResponse{FailedField: "authorizedMenu", Tag: "required"})
	}
	return missing
}

func (r *RolesController) listRoles(c *fiber.Ctx) error {
	options, ok, err := parseListOptions(c, repos.RoleSortColumns)
	if !ok {
		return err
	}

	roles, total, err := r.Repo.ListRoles(c.UserContext(), options, repos.RoleFilter{
		Name:        c.Query("name"),
		Description: c.Query("description"),
	})
	if err != nil {
		return utils.StandardInternalError(c, "Failed to retrieve roles", err)
	}

	return utils.RespondOK(c, "Roles retrieved successfully", utils.NewPage(roles, total, options))
}

func (r *RolesController) getRole(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Role not found")
	}

	role, err := r.Repo.GetRole(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Role not found", "Failed to retrieve role")
	}

	return utils.RespondOK(c, "Role retrieved successfully", role)
}

func (r *RolesController) createRole(c *fiber.Ctx) error {
	req := new(roleRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	if missing := req.missingRoleFields(); len(missing) > 0 {
		return utils.RespondBadRequest(c, invalidParameters, missing)
	}

	role := &rbac.Role{
		Name:           *req.Name,
		Description:    *req.Description,
		AuthorizedMenu: req.AuthorizedMenu,
	}

	if err := r.Repo.CreateRole(c.UserContext(), role); err != nil {
		return repoError(c, err, "Role not found", "Failed to create role")
	}

	return utils.RespondCreated(c, "Role created successfully", role)
}

func (r *RolesController) updateRole(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Role not found")
	}

	req := new(roleRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	if (req.Name != nil && *req.Name == "") || (req.AuthorizedMenu != nil && isEmptyJson(req.AuthorizedMenu)) {
		return utils.RespondBadRequest(c, invalidParameters, nil)
	}

	patch := repos.RolePatch{Name: req.Name, Description: req.Description}
	if req.AuthorizedMenu != nil {
		patch.AuthorizedMenu = req.AuthorizedMenu
	}

	role, err := r.Repo.UpdateRole(c.UserContext(), id, patch)
	if err != nil {
		return repoError(c, err, "Role not found", "Failed to update role")
	}

	return utils.RespondOK(c, "Role updated successfully", role)
}

func (r *RolesController) deleteRole(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Role not found")
	}

	role, err := r.Repo.DeleteRole(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Role not found", "Failed to delete role")
	}

	return utils.RespondOK(c, "Role deleted successfully", role)
}
