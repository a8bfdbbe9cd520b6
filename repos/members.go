package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

const UidLength = 9

var MemberSortColumns = utils.BaseSortColumns.With(utils.SortColumns{
	"uid":            "uid",
	"email":          "email",
	"name":           "name",
	"fullName":       "full_name",
	"firstName":      "first_name",
	"lastName":       "last_name",
	"employeeNumber": "employee_number",
	"joinedDate":     "joined_date",
})

type MemberRepo struct {
	db     *bun.DB
	policy utils.StatusPolicy
}

type MemberFilter struct {
	TeamId *int64
}

type MemberPatch struct {
	PhoneNumber   *string
	FirstName     *string
	LastName      *string
	FullName      *string
	Name          *string
	HomeAddress   *string
	District      *string
	SubDistrict   *string
	BirthPlace    *string
	Gender        *string
	Nationality   *string
	Religion      *string
	MaritalStatus *string
	ProfileImage  *string
	JoinedDate    *time.Time
	ResignedDate  *time.Time
	BirthDate     *time.Time
	TeamId        *int64
	RoleId        *int64
}

func (p MemberPatch) apply(m *userdata.Member) []string {
	var columns []string
	columns = setString(&m.PhoneNumber, p.PhoneNumber, "phone_number", columns)
	columns = setString(&m.FirstName, p.FirstName, "first_name", columns)
	columns = setString(&m.LastName, p.LastName, "last_name", columns)
	columns = setString(&m.Name, p.Name, "name", columns)
	columns = setString(&m.HomeAddress, p.HomeAddress, "home_address", columns)
	columns = setString(&m.District, p.District, "district", columns)
	columns = setString(&m.SubDistrict, p.SubDistrict, "sub_district", columns)
	columns = setString(&m.BirthPlace, p.BirthPlace, "birth_place", columns)
	columns = setString(&m.Gender, p.Gender, "gender", columns)
	columns = setString(&m.Nationality, p.Nationality, "nationality", columns)
	columns = setString(&m.Religion, p.Religion, "religion", columns)
	columns = setString(&m.MaritalStatus, p.MaritalStatus, "marital_status", columns)
	columns = setString(&m.ProfileImage, p.ProfileImage, "profile_image", columns)

	if p.FullName != nil {
		m.FullName = *p.FullName
		columns = append(columns, "full_name")
	} else if p.FirstName != nil || p.LastName != nil {
		m.FullName = strings.TrimSpace(m.FirstName + " " + m.LastName)
		columns = append(columns, "full_name")
	}

	if p.JoinedDate != nil {
		m.JoinedDate = p.JoinedDate
		columns = append(columns, "joined_date")
	}
	if p.ResignedDate != nil {
		m.ResignedDate = p.ResignedDate
		columns = append(columns, "resigned_date")
	}
	if p.BirthDate != nil {
		m.BirthDate = p.BirthDate
		columns = append(columns, "birth_date")
	}
	if p.TeamId != nil {
		m.TeamId = p.TeamId
		columns = append(columns, "team_id")
	}
	if p.RoleId != nil {
		m.RoleId = *p.RoleId
		columns = append(columns, "role_id")
	}
	return columns
}

type AdministrationPatch struct {
	TaxNumber                *string
	TaxNumberAttachment      *string
	IdentityNumber           *string
	IdentityNumberAttachment *string
}

func (p AdministrationPatch) empty() bool {
	return p.TaxNumber == nil && p.TaxNumberAttachment == nil && p.IdentityNumber == nil && p.IdentityNumberAttachment == nil
}

func (p AdministrationPatch) apply(a *userdata.MemberAdministration) {
	assign(&a.TaxNumber, p.TaxNumber)
	assign(&a.TaxNumberAttachment, p.TaxNumberAttachment)
	assign(&a.IdentityNumber, p.IdentityNumber)
	assign(&a.IdentityNumberAttachment, p.IdentityNumberAttachment)
}

// MemberUpdate groups the member row changes with its owned records. A nil
// Relatives keeps the existing set; a non-nil one replaces it, even when empty.
type MemberUpdate struct {
	Member         MemberPatch
	Administration AdministrationPatch
	Relatives      *[]*userdata.MemberRelative
}

func NewMemberRepo(db *bun.DB, policy utils.StatusPolicy) *MemberRepo {
	return &MemberRepo{db: db, policy: policy}
}

func (c *MemberRepo) ListMembers(ctx context.Context, options utils.ListOptions, filter MemberFilter) ([]*userdata.Member, int, error) {
	return listVisible[userdata.Member](ctx, c.db, c.policy, options, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.TeamId != nil {
			q = q.Where("?TableAlias.team_id = ?", *filter.TeamId)
		}
		return q
	}, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Team").Relation("Role")
	})
}

func (c *MemberRepo) GetMember(ctx context.Context, id int64) (*userdata.Member, error) {
	return getVisible[userdata.Member](ctx, c.db, c.policy, id, "Team", "Role", "Administration", "Relatives", "ActivityLogs")
}

func (c *MemberRepo) GetMemberByEmail(ctx context.Context, email string) (*userdata.Member, error) {
	member := new(userdata.Member)
	err := c.db.NewSelect().
		Model(member).
		Where("lower(?TableAlias.email) = lower(?)", strings.TrimSpace(email)).
		Where(c.policy.Predicate()).
		Relation("Team").
		Relation("Role").
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return member, nil
}

func (c *MemberRepo) checkReferences(ctx context.Context, db bun.IDB, roleId *int64, teamId *int64) error {
	if roleId != nil {
		ok, err := exists[rbac.Role](ctx, db, c.policy, *roleId)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidReference
		}
	}

	if teamId != nil {
		ok, err := exists[userdata.Team](ctx, db, c.policy, *teamId)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidReference
		}
	}
	return nil
}

// CreateComposite inserts the member with its administration record and
// relatives atomically.
func (c *MemberRepo) CreateComposite(ctx context.Context, member *userdata.Member, admin *userdata.MemberAdministration, relatives []*userdata.MemberRelative) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := c.checkReferences(ctx, tx, &member.RoleId, member.TeamId); err != nil {
			return err
		}

		if member.Uid == "" {
			member.Uid = utils.GenerateNumericId(UidLength)
		}
		member.Status = utils.StatusActive
		if _, err := tx.NewInsert().Model(member).Returning("*").Exec(ctx); err != nil {
			return err
		}

		if admin == nil {
			admin = new(userdata.MemberAdministration)
		}
		admin.MemberId = member.Id
		if _, err := tx.NewInsert().Model(admin).Returning("*").Exec(ctx); err != nil {
			return err
		}
		member.Administration = admin

		if len(relatives) > 0 {
			for _, r := range relatives {
				r.MemberId = member.Id
			}
			if _, err := tx.NewInsert().Model(&relatives).Returning("*").Exec(ctx); err != nil {
				return err
			}
		}
		member.Relatives = relatives
		return nil
	})
}

// UpdateComposite applies a partial member update, upserts the administration
// record when any of its fields are present and replaces the relatives when
// requested, all in one transaction.
func (c *MemberRepo) UpdateComposite(ctx context.Context, id int64, update MemberUpdate) (*userdata.Member, error) {
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		member, err := getVisible[userdata.Member](ctx, tx, c.policy, id)
		if err != nil {
			return err
		}

		if err := c.checkReferences(ctx, tx, update.Member.RoleId, update.Member.TeamId); err != nil {
			return err
		}

		member.UpdatedAt = time.Now()
		if err := updateColumns(ctx, tx, member, update.Member.apply(member)); err != nil {
			return err
		}

		if !update.Administration.empty() {
			if err := c.upsertAdministration(ctx, tx, id, update.Administration); err != nil {
				return err
			}
		}

		if update.Relatives != nil {
			if err := c.replaceRelatives(ctx, tx, id, *update.Relatives); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.GetMember(ctx, id)
}

func (c *MemberRepo) upsertAdministration(ctx context.Context, db bun.IDB, memberId int64, patch AdministrationPatch) error {
	admin := new(userdata.MemberAdministration)
	err := db.NewSelect().Model(admin).Where("?TableAlias.member_id = ?", memberId).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	patch.apply(admin)
	admin.Id = 0
	admin.MemberId = memberId
	admin.UpdatedAt = time.Now()

	_, err = db.NewInsert().
		Model(admin).
		On("CONFLICT (member_id) DO UPDATE").
		Set("tax_number = EXCLUDED.tax_number").
		Set("tax_number_attachment = EXCLUDED.tax_number_attachment").
		Set("identity_number = EXCLUDED.identity_number").
		Set("identity_number_attachment = EXCLUDED.identity_number_attachment").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	return err
}

func (c *MemberRepo) replaceRelatives(ctx context.Context, db bun.IDB, memberId int64, relatives []*userdata.MemberRelative) error {
	if _, err := db.NewDelete().Model((*userdata.MemberRelative)(nil)).Where("member_id = ?", memberId).Exec(ctx); err != nil {
		return err
	}

	if len(relatives) == 0 {
		return nil
	}

	for _, r := range relatives {
		r.Id = 0
		r.MemberId = memberId
	}
	_, err := db.NewInsert().Model(&relatives).Returning("*").Exec(ctx)
	return err
}

// UpdateProfile changes the caller's own contact fields.
func (c *MemberRepo) UpdateProfile(ctx context.Context, id int64, patch MemberPatch) (*userdata.Member, error) {
	member, err := getVisible[userdata.Member](ctx, c.db, c.policy, id, "Team", "Role")
	if err != nil {
		return nil, err
	}

	patch.TeamId = nil
	patch.RoleId = nil
	member.UpdatedAt = time.Now()
	if err := updateColumns(ctx, c.db, member, patch.apply(member)); err != nil {
		return nil, err
	}
	return member, nil
}

func (c *MemberRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	res, err := c.db.NewUpdate().
		Model((*userdata.Member)(nil)).
		Set("password = ?", hash).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Where(c.policy.Predicate()).
		Exec(ctx)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MemberRepo) DeleteMember(ctx context.Context, id int64) (*userdata.Member, error) {
	return softDelete[userdata.Member](ctx, c.db, c.policy, id)
}
