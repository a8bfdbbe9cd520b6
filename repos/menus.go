package repos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

var MenuSortColumns = utils.BaseSortColumns.With(utils.SortColumns{
	"name":           "name",
	"category":       "category",
	"orderingNumber": "ordering_number",
})

type MenuRepo struct {
	db     *bun.DB
	policy utils.StatusPolicy
}

type MenuFilter struct {
	Name     string
	Category string
}

type MenuPatch struct {
	Name           *string
	Description    *string
	UrlMenu        *string
	IconMenu       *string
	Category       *string
	OrderingNumber *int
	ParentMenu     json.RawMessage
}

func (p MenuPatch) apply(m *rbac.Menu) []string {
	var columns []string
	columns = setString(&m.Name, p.Name, "name", columns)
	columns = setString(&m.Description, p.Description, "description", columns)
	columns = setString(&m.UrlMenu, p.UrlMenu, "url_menu", columns)
	columns = setString(&m.IconMenu, p.IconMenu, "icon_menu", columns)
	columns = setString(&m.Category, p.Category, "category", columns)
	if p.OrderingNumber != nil {
		m.OrderingNumber = *p.OrderingNumber
		columns = append(columns, "ordering_number")
	}
	if p.ParentMenu != nil {
		m.ParentMenu = p.ParentMenu
		columns = append(columns, "parent_menu")
	}
	return columns
}

func NewMenuRepo(db *bun.DB, policy utils.StatusPolicy) *MenuRepo {
	return &MenuRepo{db: db, policy: policy}
}

func (c *MenuRepo) ListMenus(ctx context.Context, options utils.ListOptions, filter MenuFilter) ([]*rbac.Menu, int, error) {
	return listVisible[rbac.Menu](ctx, c.db, c.policy, options, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.Name != "" {
			q = q.Where(contains("name", filter.Name))
		}
		if filter.Category != "" {
			q = q.Where(contains("category", filter.Category))
		}
		return q
	}, nil)
}

func (c *MenuRepo) GetMenu(ctx context.Context, id int64) (*rbac.Menu, error) {
	return getVisible[rbac.Menu](ctx, c.db, c.policy, id)
}

func (c *MenuRepo) CreateMenu(ctx context.Context, menu *rbac.Menu) error {
	menu.Status = utils.StatusActive
	_, err := c.db.NewInsert().Model(menu).Returning("*").Exec(ctx)
	return err
}

func (c *MenuRepo) UpdateMenu(ctx context.Context, id int64, patch MenuPatch) (*rbac.Menu, error) {
	menu, err := c.GetMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	menu.UpdatedAt = time.Now()
	if err := updateColumns(ctx, c.db, menu, patch.apply(menu)); err != nil {
		return nil, err
	}
	return menu, nil
}

func (c *MenuRepo) DeleteMenu(ctx context.Context, id int64) (*rbac.Menu, error) {
	return softDelete[rbac.Menu](ctx, c.db, c.policy, id)
}
