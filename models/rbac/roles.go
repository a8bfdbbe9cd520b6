package rbac

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type Role struct {
	bun.BaseModel `bun:"table:rbac.roles,alias:role"`

	Id             int64           `bun:",pk,autoincrement" json:"id"`
	Name           string          `bun:",notnull" json:"name"`
	Description    string          `bun:",nullzero" json:"description,omitempty"`
	AuthorizedMenu json.RawMessage `bun:"type:jsonb" json:"authorizedMenu,omitempty"`
	Status         string          `bun:",notnull,default:'active'" json:"status"`
	CreatedAt      time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Redact removes the menu grant so the role can be embedded in member payloads.
func (r *Role) Redact() {
	if r == nil {
		return
	}
	r.AuthorizedMenu = nil
}
