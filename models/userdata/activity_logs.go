package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

type ActivityLog struct {
	bun.BaseModel `bun:"table:userdata.activity_logs,alias:activity"`

	Id          int64     `bun:",pk,autoincrement" json:"id"`
	MemberId    int64     `bun:",notnull" json:"memberId"`
	Activity    string    `bun:",notnull" json:"activity"`
	Description string    `bun:",nullzero" json:"description,omitempty"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
