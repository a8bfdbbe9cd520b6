package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
)

const (
	StatusActive    = "active"
	StatusNonActive = "non-active"

	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "createdAt"
)

var ErrInvalidSortField = errors.New("invalid sort field")

// SortColumns maps the camelCase sortBy values a client may send to the
// column they order by.
type SortColumns map[string]string

var BaseSortColumns = SortColumns{
	"id":        "id",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (s SortColumns) With(extra SortColumns) SortColumns {
	merged := make(SortColumns, len(s)+len(extra))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

type ListOptions struct {
	Page       int
	Limit      int
	SortBy     string
	SortColumn string
	SortOrder  string
}

func ParseListOptions(page, limit, sortBy, sortOrder string, columns SortColumns) (ListOptions, error) {
	options := ListOptions{
		Page:      atLeastOne(page, DefaultPage),
		Limit:     atLeastOne(limit, DefaultLimit),
		SortBy:    DefaultSortBy,
		SortOrder: "asc",
	}

	if sortBy != "" {
		options.SortBy = sortBy
	}

	column, ok := columns[options.SortBy]
	if !ok {
		return options, ErrInvalidSortField
	}
	options.SortColumn = column

	if strings.EqualFold(sortOrder, "desc") {
		options.SortOrder = "desc"
	}

	return options, nil
}

func ListOptionsFromQuery(c *fiber.Ctx, columns SortColumns) (ListOptions, error) {
	return ParseListOptions(c.Query("page"), c.Query("limit"), c.Query("sortBy"), c.Query("sortOrder"), columns)
}

// atLeastOne falls back for missing, unparsable or zero values and floors
// negative ones at 1.
func atLeastOne(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return fallback
	}
	if n < 1 {
		return 1
	}
	return n
}

// Offset saturates at math.MaxInt instead of wrapping for huge pages.
func (o ListOptions) Offset() int {
	if o.Page <= 1 || o.Limit <= 0 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// Apply adds ordering and the page window to q.
func (o ListOptions) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	order := "?TableAlias.? ASC"
	if o.SortOrder == "desc" {
		order = "?TableAlias.? DESC"
	}
	return q.OrderExpr(order, bun.Ident(o.SortColumn)).Offset(o.Offset()).Limit(o.Limit)
}

// StatusPolicy decides which rows count as visible.
type StatusPolicy string

const (
	ExcludeNonActive StatusPolicy = "exclude-non-active"
	OnlyActive       StatusPolicy = "only-active"
)

func ParseStatusPolicy(raw string) StatusPolicy {
	if StatusPolicy(strings.ToLower(raw)) == OnlyActive {
		return OnlyActive
	}
	return ExcludeNonActive
}

// Predicate returns a Where clause for the current table alias.
func (p StatusPolicy) Predicate() (string, interface{}) {
	if p == OnlyActive {
		return "?TableAlias.status = ?", StatusActive
	}
	return "lower(?TableAlias.status) <> ?", StatusNonActive
}
