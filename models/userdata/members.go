package userdata

import (
	"strings"
	"time"

	"github.com/sigap/sigap-server/models/rbac"
	"github.com/uptrace/bun"
)

type Member struct {
	bun.BaseModel `bun:"table:userdata.members,alias:member"`

	Id             int64                 `bun:",pk,autoincrement" json:"id"`
	Uid            string                `bun:",notnull,unique" json:"uid"`
	Email          string                `bun:",notnull,unique" json:"email"`
	Password       string                `bun:",nullzero" json:"-"`
	PhoneNumber    string                `bun:",nullzero" json:"phoneNumber,omitempty"`
	FirstName      string                `bun:",nullzero" json:"firstName,omitempty"`
	LastName       string                `bun:",nullzero" json:"lastName,omitempty"`
	FullName       string                `bun:",nullzero" json:"fullName,omitempty"`
	Name           string                `bun:",nullzero" json:"name,omitempty"`
	EmployeeNumber string                `bun:",nullzero" json:"employeeNumber,omitempty"`
	JoinedDate     *time.Time            `bun:",nullzero" json:"joinedDate,omitempty"`
	ResignedDate   *time.Time            `bun:",nullzero" json:"resignedDate,omitempty"`
	HomeAddress    string                `bun:",nullzero" json:"homeAddress,omitempty"`
	District       string                `bun:",nullzero" json:"district,omitempty"`
	SubDistrict    string                `bun:",nullzero" json:"subDistrict,omitempty"`
	BirthPlace     string                `bun:",nullzero" json:"birthPlace,omitempty"`
	BirthDate      *time.Time            `bun:",nullzero" json:"birthDate,omitempty"`
	Gender         string                `bun:",nullzero" json:"gender,omitempty"`
	Nationality    string                `bun:",nullzero" json:"nationality,omitempty"`
	Religion       string                `bun:",nullzero" json:"religion,omitempty"`
	MaritalStatus  string                `bun:",nullzero" json:"maritalStatus,omitempty"`
	ProfileImage   string                `bun:",nullzero" json:"profileImage,omitempty"`
	TeamId         *int64                `bun:",nullzero" json:"teamId,omitempty"`
	RoleId         int64                 `bun:",notnull" json:"roleId"`
	Status         string                `bun:",notnull,default:'active'" json:"status"`
	CreatedAt      time.Time             `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time             `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
	Team           *Team                 `bun:"rel:belongs-to,join:team_id=id" json:"team,omitempty"`
	Role           *rbac.Role            `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
	Administration *MemberAdministration `bun:"rel:has-one,join:id=member_id" json:"administration,omitempty"`
	Relatives      []*MemberRelative     `bun:"rel:has-many,join:id=member_id" json:"relatives,omitempty"`
	ActivityLogs   []*ActivityLog        `bun:"rel:has-many,join:id=member_id" json:"activityLogs,omitempty"`
}

// Sanitize clears the credential and redacts nested role and team payloads.
func (m *Member) Sanitize() {
	if m == nil {
		return
	}
	m.Password = ""
	m.Role.Redact()
	m.Team.Redact()
}

func (m *Member) DisplayName() string {
	if m.FullName != "" {
		return m.FullName
	}
	if m.Name != "" {
		return m.Name
	}
	if name := strings.TrimSpace(m.FirstName + " " + m.LastName); name != "" {
		return name
	}
	return m.Email
}

func (m *Member) ToMap() map[string]string {
	return map[string]string{
		"{{member.name}}":  m.DisplayName(),
		"{{member.email}}": m.Email,
		"{{member.uid}}":   m.Uid,
	}
}
