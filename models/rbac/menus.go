package rbac

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type Menu struct {
	bun.BaseModel `bun:"table:rbac.menus,alias:menu"`

	Id             int64           `bun:",pk,autoincrement" json:"id"`
	Name           string          `bun:",notnull" json:"name"`
	Description    string          `bun:",nullzero" json:"description,omitempty"`
	UrlMenu        string          `bun:",nullzero" json:"urlMenu,omitempty"`
	IconMenu       string          `bun:",nullzero" json:"iconMenu,omitempty"`
	Category       string          `bun:",nullzero" json:"category,omitempty"`
	OrderingNumber int             `json:"orderingNumber"`
	ParentMenu     json.RawMessage `bun:"type:jsonb" json:"parentMenu,omitempty"`
	Status         string          `bun:",notnull,default:'active'" json:"status"`
	CreatedAt      time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
