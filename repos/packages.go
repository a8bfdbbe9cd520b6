package repos

import (
	"context"
	"time"

	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

var PackageSortColumns = utils.BaseSortColumns.With(utils.SortColumns{
	"name": "name",
})

type PackageRepo struct {
	db     *bun.DB
	policy utils.StatusPolicy
}

type PackageFilter struct {
	Name string
}

type PackagePatch struct {
	Name         *string
	Description  *string
	ImageUrl     *string
	SelectedMenu *[]int64
}

func (p PackagePatch) apply(pkg *billing.Package) []string {
	var columns []string
	columns = setString(&pkg.Name, p.Name, "name", columns)
	columns = setString(&pkg.Description, p.Description, "description", columns)
	columns = setString(&pkg.ImageUrl, p.ImageUrl, "image_url", columns)
	if p.SelectedMenu != nil {
		pkg.SelectedMenu = *p.SelectedMenu
		if pkg.SelectedMenu == nil {
			pkg.SelectedMenu = []int64{}
		}
		columns = append(columns, "selected_menu")
	}
	return columns
}

func NewPackageRepo(db *bun.DB, policy utils.StatusPolicy) *PackageRepo {
	return &PackageRepo{db: db, policy: policy}
}

func (c *PackageRepo) ListPackages(ctx context.Context, options utils.ListOptions, filter PackageFilter) ([]*billing.Package, int, error) {
	return listVisible[billing.Package](ctx, c.db, c.policy, options, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.Name != "" {
			q = q.Where(contains("name", filter.Name))
		}
		return q
	}, nil)
}

func (c *PackageRepo) GetPackage(ctx context.Context, id int64) (*billing.Package, error) {
	return getVisible[billing.Package](ctx, c.db, c.policy, id)
}

func (c *PackageRepo) CreatePackage(ctx context.Context, pkg *billing.Package) error {
	pkg.Status = utils.StatusActive
	if pkg.SelectedMenu == nil {
		pkg.SelectedMenu = []int64{}
	}
	_, err := c.db.NewInsert().Model(pkg).Returning("*").Exec(ctx)
	return err
}

func (c *PackageRepo) UpdatePackage(ctx context.Context, id int64, patch PackagePatch) (*billing.Package, error) {
	pkg, err := c.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg.UpdatedAt = time.Now()
	if err := updateColumns(ctx, c.db, pkg, patch.apply(pkg)); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (c *PackageRepo) DeletePackage(ctx context.Context, id int64) (*billing.Package, error) {
	return softDelete[billing.Package](ctx, c.db, c.policy, id)
}
