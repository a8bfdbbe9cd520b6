package billing

import (
	"time"

	"github.com/uptrace/bun"
)

type TeamContract struct {
	bun.BaseModel `bun:"table:billing.team_contracts,alias:contract"`

	Id                int64      `bun:",pk,autoincrement" json:"id"`
	ContractNumber    string     `bun:",nullzero,unique" json:"contractNumber,omitempty"`
	TeamId            int64      `bun:",notnull" json:"teamId"`
	ActivePeriodStart *time.Time `bun:",nullzero" json:"activePeriodStart,omitempty"`
	ActivePeriodEnd   *time.Time `bun:",nullzero" json:"activePeriodEnd,omitempty"`
	MemberQuota       int        `json:"memberQuota"`
	PackageId         int64      `bun:",notnull" json:"packageId"`
	Package           *Package   `bun:"rel:belongs-to,join:package_id=id" json:"package,omitempty"`
	Status            string     `bun:",notnull,default:'active'" json:"status"`
	CreatedAt         time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
