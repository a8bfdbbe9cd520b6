package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

type MemberRelative struct {
	bun.BaseModel `bun:"table:userdata.member_relatives,alias:relative"`

	Id           int64     `bun:",pk,autoincrement" json:"id"`
	MemberId     int64     `bun:",notnull" json:"memberId"`
	FullName     string    `bun:",notnull" json:"fullName"`
	RelationType string    `bun:",nullzero" json:"relationType,omitempty"`
	PhoneNumber  string    `bun:",nullzero" json:"phoneNumber,omitempty"`
	IsEmergency  bool      `bun:",notnull" json:"isEmergency"`
	CreatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
