package repos

import (
	"context"
	"time"

	"github.com/sigap/sigap-server/models/billing"
	joined_models "github.com/sigap/sigap-server/models/joined-models"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

var ContractSortColumns = utils.BaseSortColumns.With(utils.SortColumns{
	"contractNumber":    "contract_number",
	"activePeriodStart": "active_period_start",
	"activePeriodEnd":   "active_period_end",
	"memberQuota":       "member_quota",
})

type ContractRepo struct {
	db     *bun.DB
	policy utils.StatusPolicy
}

// ContractFilter narrows contracts to one team when TeamId is set.
type ContractFilter struct {
	TeamId *int64
}

func (f ContractFilter) where(q *bun.SelectQuery) *bun.SelectQuery {
	if f.TeamId != nil {
		q = q.Where("?TableAlias.team_id = ?", *f.TeamId)
	}
	return q
}

type ContractPatch struct {
	ContractNumber    *string
	ActivePeriodStart *time.Time
	ActivePeriodEnd   *time.Time
	MemberQuota       *int
	PackageId         *int64
}

func (p ContractPatch) apply(t *billing.TeamContract) []string {
	var columns []string
	columns = setString(&t.ContractNumber, p.ContractNumber, "contract_number", columns)
	if p.ActivePeriodStart != nil {
		t.ActivePeriodStart = p.ActivePeriodStart
		columns = append(columns, "active_period_start")
	}
	if p.ActivePeriodEnd != nil {
		t.ActivePeriodEnd = p.ActivePeriodEnd
		columns = append(columns, "active_period_end")
	}
	if p.MemberQuota != nil {
		t.MemberQuota = *p.MemberQuota
		columns = append(columns, "member_quota")
	}
	if p.PackageId != nil {
		t.PackageId = *p.PackageId
		columns = append(columns, "package_id")
	}
	return columns
}

func NewContractRepo(db *bun.DB, policy utils.StatusPolicy) *ContractRepo {
	return &ContractRepo{db: db, policy: policy}
}

func (c *ContractRepo) ListContracts(ctx context.Context, options utils.ListOptions, filter ContractFilter) ([]*billing.TeamContract, int, error) {
	return listVisible[billing.TeamContract](ctx, c.db, c.policy, options, filter.where, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Package")
	})
}

func (c *ContractRepo) GetContract(ctx context.Context, id int64, filter ContractFilter) (*joined_models.ContractWithTeam, error) {
	contract := new(joined_models.ContractWithTeam)
	q := c.db.NewSelect().
		Model(contract).
		Where("?TableAlias.id = ?", id).
		Where(c.policy.Predicate()).
		Relation("Package").
		Relation("Team")

	if err := filter.where(q).Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return contract, nil
}

// CreateContract requires the owning team to be visible.
func (c *ContractRepo) CreateContract(ctx context.Context, contract *billing.TeamContract) error {
	ok, err := exists[userdata.Team](ctx, c.db, c.policy, contract.TeamId)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidReference
	}

	contract.Status = utils.StatusActive
	_, err = c.db.NewInsert().Model(contract).Returning("*").Exec(ctx)
	return err
}

func (c *ContractRepo) UpdateContract(ctx context.Context, id int64, filter ContractFilter, patch ContractPatch) (*billing.TeamContract, error) {
	contract := new(billing.TeamContract)
	q := c.db.NewSelect().Model(contract).Where("?TableAlias.id = ?", id).Where(c.policy.Predicate())
	if err := filter.where(q).Scan(ctx); err != nil {
		return nil, notFound(err)
	}

	contract.UpdatedAt = time.Now()
	if err := updateColumns(ctx, c.db, contract, patch.apply(contract)); err != nil {
		return nil, err
	}
	return contract, nil
}

func (c *ContractRepo) DeleteContract(ctx context.Context, id int64, filter ContractFilter) (*billing.TeamContract, error) {
	if filter.TeamId != nil {
		if _, err := c.GetContract(ctx, id, filter); err != nil {
			return nil, err
		}
	}
	return softDelete[billing.TeamContract](ctx, c.db, c.policy, id)
}
