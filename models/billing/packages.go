package billing

import (
	"time"

	"github.com/uptrace/bun"
)

type Package struct {
	bun.BaseModel `bun:"table:billing.packages,alias:pkg"`

	Id           int64     `bun:",pk,autoincrement" json:"id"`
	Name         string    `bun:",notnull" json:"name"`
	Description  string    `bun:",nullzero" json:"description,omitempty"`
	ImageUrl     string    `bun:",nullzero" json:"imageUrl,omitempty"`
	SelectedMenu []int64   `bun:",array" json:"selectedMenu"`
	Status       string    `bun:",notnull,default:'active'" json:"status"`
	CreatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
