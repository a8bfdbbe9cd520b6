package repos

import (
	"context"
	"time"

	"github.com/sigap/sigap-server/utils-go"
	"github.com/uptrace/bun"
)

// getVisible loads a single row by id that the status policy allows.
func getVisible[T any](ctx context.Context, db bun.IDB, policy utils.StatusPolicy, id int64, relations ...string) (*T, error) {
	model := new(T)
	q := db.NewSelect().Model(model).Where("?TableAlias.id = ?", id).Where(policy.Predicate())
	for _, r := range relations {
		q = q.Relation(r)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return model, nil
}

// listVisible counts and then scans one page of rows. filter may add
// conditions shared by both queries; prepare may add relations to the scan.
func listVisible[T any](ctx context.Context, db bun.IDB, policy utils.StatusPolicy, options utils.ListOptions, filter func(*bun.SelectQuery) *bun.SelectQuery, prepare func(*bun.SelectQuery) *bun.SelectQuery) ([]*T, int, error) {
	items := make([]*T, 0)

	q := db.NewSelect().Model(&items).Where(policy.Predicate())
	if filter != nil {
		q = filter(q)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	q = options.Apply(q)
	if prepare != nil {
		q = prepare(q)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// updateColumns writes the given columns of a loaded model back by primary
// key. Callers stamp UpdatedAt on the model beforehand.
func updateColumns[T any](ctx context.Context, db bun.IDB, model *T, columns []string) error {
	if len(columns) == 0 {
		return nil
	}

	_, err := db.NewUpdate().Model(model).Column(append(columns, "updated_at")...).WherePK().Exec(ctx)
	return err
}

// softDelete flips a visible row to non-active and returns its final state.
func softDelete[T any](ctx context.Context, db bun.IDB, policy utils.StatusPolicy, id int64) (*T, error) {
	model := new(T)
	res, err := db.NewUpdate().
		Model(model).
		Set("status = ?", utils.StatusNonActive).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Where(policy.Predicate()).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return model, nil
}

func exists[T any](ctx context.Context, db bun.IDB, policy utils.StatusPolicy, id int64) (bool, error) {
	return db.NewSelect().Model((*T)(nil)).Where("?TableAlias.id = ?", id).Where(policy.Predicate()).Exists(ctx)
}

func contains(column string, value string) (string, string) {
	return "?TableAlias." + column + " ILIKE ?", "%" + value + "%"
}

func assign(dst *string, src *string) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

func setString(dst *string, src *string, column string, columns []string) []string {
	if assign(dst, src) {
		return append(columns, column)
	}
	return columns
}
