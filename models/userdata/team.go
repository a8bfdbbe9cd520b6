package userdata

import (
	"time"

	"github.com/sigap/sigap-server/models/billing"
	"github.com/uptrace/bun"
)

type Team struct {
	bun.BaseModel `bun:"table:userdata.teams,alias:team"`

	Id               int64                   `bun:",pk,autoincrement" json:"id"`
	TeamName         string                  `bun:",notnull,unique" json:"teamName"`
	CompanyName      string                  `bun:",nullzero" json:"companyName,omitempty"`
	HqAddress        string                  `bun:",nullzero" json:"hqAddress,omitempty"`
	ManagerFirstName string                  `bun:",nullzero" json:"managerFirstName,omitempty"`
	ManagerLastName  string                  `bun:",nullzero" json:"managerLastName,omitempty"`
	ManagerFullName  string                  `bun:",nullzero" json:"managerFullName,omitempty"`
	ManagerEmail     string                  `bun:",nullzero" json:"managerEmail,omitempty"`
	ManagerPhone     string                  `bun:",nullzero" json:"managerPhone,omitempty"`
	ImageUrl         string                  `bun:",nullzero" json:"imageUrl,omitempty"`
	Status           string                  `bun:",notnull,default:'active'" json:"status"`
	CreatedAt        time.Time               `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time               `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
	Members          []*Member               `bun:"rel:has-many,join:id=team_id" json:"members,omitempty"`
	Contracts        []*billing.TeamContract `bun:"rel:has-many,join:id=team_id" json:"contracts,omitempty"`
}

// Redact strips the headquarters and manager contact details. Used when the
// team is embedded in another entity's payload.
func (t *Team) Redact() {
	if t == nil {
		return
	}
	t.HqAddress = ""
	t.ManagerFirstName = ""
	t.ManagerLastName = ""
	t.ManagerFullName = ""
	t.ManagerEmail = ""
	t.ManagerPhone = ""
}

func (t *Team) SanitizeMembers() {
	for _, m := range t.Members {
		m.Sanitize()
	}
}
