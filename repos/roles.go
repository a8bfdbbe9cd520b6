package repos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

var RoleSortColumns = utils.BaseSortColumns.With(utils.SortColumns{
	"name":        "name",
	"description": "description",
})

type RoleRepo struct {
	db     *bun.DB
	policy utils.StatusPolicy
}

type RoleFilter struct {
	Name        string
	Description string
}

type RolePatch struct {
	Name           *string
	Description    *string
	AuthorizedMenu json.RawMessage
}

func (p RolePatch) apply(r *rbac.Role) []string {
	var columns []string
	columns = setString(&r.Name, p.Name, "name", columns)
	columns = setString(&r.Description, p.Description, "description", columns)
	if p.AuthorizedMenu != nil {
		r.AuthorizedMenu = p.AuthorizedMenu
		columns = append(columns, "authorized_menu")
	}
	return columns
}

func NewRoleRepo(db *bun.DB, policy utils.StatusPolicy) *RoleRepo {
	return &RoleRepo{db: db, policy: policy}
}

func (c *RoleRepo) ListRoles(ctx context.Context, options utils.ListOptions, filter RoleFilter) ([]*rbac.Role, int, error) {
	return listVisible[rbac.Role](ctx, c.db, c.policy, options, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.Name != "" {
			q = q.Where(contains("name", filter.Name))
		}
		if filter.Description != "" {
			q = q.Where(contains("description", filter.Description))
		}
		return q
	}, nil)
}

func (c *RoleRepo) GetRole(ctx context.Context, id int64) (*rbac.Role, error) {
	return getVisible[rbac.Role](ctx, c.db, c.policy, id)
}

func (c *RoleRepo) CreateRole(ctx context.Context, role *rbac.Role) error {
	role.Status = utils.StatusActive
	_, err := c.db.NewInsert().Model(role).Returning("*").Exec(ctx)
	return err
}

func (c *RoleRepo) UpdateRole(ctx context.Context, id int64, patch RolePatch) (*rbac.Role, error) {
	role, err := c.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	role.UpdatedAt = time.Now()
	if err := updateColumns(ctx, c.db, role, patch.apply(role)); err != nil {
		return nil, err
	}
	return role, nil
}

func (c *RoleRepo) DeleteRole(ctx context.Context, id int64) (*rbac.Role, error) {
	return softDelete[rbac.Role](ctx, c.db, c.policy, id)
}
