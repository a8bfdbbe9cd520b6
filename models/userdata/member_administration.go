package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

type MemberAdministration struct {
	bun.BaseModel `bun:"table:userdata.member_administrations,alias:administration"`

	Id                       int64     `bun:",pk,autoincrement" json:"id"`
	MemberId                 int64     `bun:",notnull,unique" json:"memberId"`
	TaxNumber                string    `bun:",nullzero" json:"taxNumber,omitempty"`
	TaxNumberAttachment      string    `bun:",nullzero" json:"taxNumberAttachment,omitempty"`
	IdentityNumber           string    `bun:",nullzero" json:"identityNumber,omitempty"`
	IdentityNumberAttachment string    `bun:",nullzero" json:"identityNumberAttachment,omitempty"`
	CreatedAt                time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt                time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
