package repos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

var TeamSortColumns = utils.BaseSortColumns.With(utils.SortColumns{
	"teamName":    "team_name",
	"companyName": "company_name",
})

type TeamRepo struct {
	db     *bun.DB
	policy utils.StatusPolicy
}

type TeamFilter struct {
	TeamName string
}

type TeamPatch struct {
	TeamName         *string
	CompanyName      *string
	HqAddress        *string
	ManagerFirstName *string
	ManagerLastName  *string
	ManagerEmail     *string
	ManagerPhone     *string
	ImageUrl         *string
}

func (p TeamPatch) apply(t *userdata.Team) []string {
	var columns []string
	columns = setString(&t.TeamName, p.TeamName, "team_name", columns)
	columns = setString(&t.CompanyName, p.CompanyName, "company_name", columns)
	columns = setString(&t.HqAddress, p.HqAddress, "hq_address", columns)
	columns = setString(&t.ManagerFirstName, p.ManagerFirstName, "manager_first_name", columns)
	columns = setString(&t.ManagerLastName, p.ManagerLastName, "manager_last_name", columns)
	columns = setString(&t.ManagerEmail, p.ManagerEmail, "manager_email", columns)
	columns = setString(&t.ManagerPhone, p.ManagerPhone, "manager_phone", columns)
	columns = setString(&t.ImageUrl, p.ImageUrl, "image_url", columns)

	if p.ManagerFirstName != nil || p.ManagerLastName != nil {
		t.ManagerFullName = strings.TrimSpace(t.ManagerFirstName + " " + t.ManagerLastName)
		columns = append(columns, "manager_full_name")
	}
	return columns
}

func NewTeamRepo(db *bun.DB, policy utils.StatusPolicy) *TeamRepo {
	return &TeamRepo{db: db, policy: policy}
}

func (c *TeamRepo) visibleMembers(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where(c.policy.Predicate())
}

func (c *TeamRepo) ListTeams(ctx context.Context, options utils.ListOptions, filter TeamFilter) ([]*userdata.Team, int, error) {
	return listVisible[userdata.Team](ctx, c.db, c.policy, options, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.TeamName != "" {
			q = q.Where(contains("team_name", filter.TeamName))
		}
		return q
	}, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Members", c.visibleMembers).Relation("Members.Role")
	})
}

func (c *TeamRepo) GetTeam(ctx context.Context, id int64) (*userdata.Team, error) {
	team := new(userdata.Team)
	err := c.db.NewSelect().
		Model(team).
		Where("?TableAlias.id = ?", id).
		Where(c.policy.Predicate()).
		Relation("Members", c.visibleMembers).
		Relation("Members.Role").
		Relation("Contracts", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where(c.policy.Predicate()).OrderExpr("?TableAlias.id ASC")
		}).
		Relation("Contracts.Package").
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return team, nil
}

// CreateWithContractAndManager inserts the team, its first contract and its manager member in
// one transaction. On success the created contract and manager are attached to
// team.
func (c *TeamRepo) CreateWithContractAndManager(ctx context.Context, team *userdata.Team, contract *billing.TeamContract, manager *userdata.Member) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		team.Status = utils.StatusActive
		if _, err := tx.NewInsert().Model(team).Returning("*").Exec(ctx); err != nil {
			return err
		}

		contract.TeamId = team.Id
		contract.Status = utils.StatusActive
		if _, err := tx.NewInsert().Model(contract).Returning("*").Exec(ctx); err != nil {
			return err
		}

		manager.TeamId = &team.Id
		manager.Status = utils.StatusActive
		if _, err := tx.NewInsert().Model(manager).Returning("*").Exec(ctx); err != nil {
			return err
		}

		team.Contracts = []*billing.TeamContract{contract}
		team.Members = []*userdata.Member{manager}
		return nil
	})
}

func (c *TeamRepo) UpdateTeam(ctx context.Context, id int64, patch TeamPatch) (*userdata.Team, error) {
	team, err := getVisible[userdata.Team](ctx, c.db, c.policy, id)
	if err != nil {
		return nil, err
	}

	team.UpdatedAt = time.Now()
	if err := updateColumns(ctx, c.db, team, patch.apply(team)); err != nil {
		return nil, err
	}
	return team, nil
}

func (c *TeamRepo) DeleteTeam(ctx context.Context, id int64) (*userdata.Team, error) {
	return softDelete[userdata.Team](ctx, c.db, c.policy, id)
}
