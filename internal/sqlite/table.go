package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/rpggio/fleetview/internal/repository"
)

type scanner interface {
	Scan(dest ...any) error
}

// table holds the read queries shared by the entity repositories.
type table[T any] struct {
	db            *DB
	name          string
	columns       string
	searchColumns []string
	scan          func(scanner) (T, error)
	// attach fills nested child rows after the parent rows are read.
	attach func(context.Context, []T) error
}

func (t table[T]) fetchAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", t.columns, t.name)
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	items, err := t.collect(rows)
	if err != nil {
		return nil, err
	}
	if err := t.withChildren(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (t table[T]) fetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[T], error) {
	if err := recordsource.ValidatePage(q); err != nil {
		return listview.SourcePage[T]{}, err
	}

	where, args := searchWhere(t.searchColumns, q)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", t.name, where)
	if err := t.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return listview.SourcePage[T]{}, fmt.Errorf("failed to count %s: %w", t.name, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id LIMIT ? OFFSET ?", t.columns, t.name, where)
	pageArgs := append(args, q.Limit, (q.Page-1)*q.Limit)
	rows, err := t.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return listview.SourcePage[T]{}, fmt.Errorf("failed to page %s: %w", t.name, err)
	}

	items, err := t.collect(rows)
	if err != nil {
		return listview.SourcePage[T]{}, err
	}
	if err := t.withChildren(ctx, items); err != nil {
		return listview.SourcePage[T]{}, err
	}
	return listview.SourcePage[T]{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		TotalPages: listview.TotalPages(total, q.Limit),
	}, nil
}

func (t table[T]) get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.columns, t.name)
	item, err := t.scan(t.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", t.name, id, err)
	}
	items := []T{item}
	if err := t.withChildren(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (t table[T]) count(ctx context.Context) (int, error) {
	var n int
	if err := t.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.name, err)
	}
	return n, nil
}

// collect scans and closes rows. The connection pool holds a single
// connection, so rows must be closed before child rows are queried.
func (t table[T]) collect(rows *sql.Rows) ([]T, error) {
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", t.name, err)
	}
	return items, nil
}

func (t table[T]) withChildren(ctx context.Context, items []T) error {
	if t.attach == nil || len(items) == 0 {
		return nil
	}
	return t.attach(ctx, items)
}

// searchWhere builds a case-insensitive LIKE over columns plus an optional
// status match. SQLite's LOWER only folds ASCII, so the arguments are folded
// the same way.
func searchWhere(columns []string, q recordsource.Query) (string, []any) {
	var clauses []string
	var args []any

	if q.Search != "" && len(columns) > 0 {
		pattern := "%" + escapeLike(lowerASCII(q.Search)) + "%"
		ors := make([]string, 0, len(columns))
		for _, col := range columns {
			ors = append(ors, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if q.Status != "" {
		clauses = append(clauses, "LOWER(TRIM(status)) = ?")
		args = append(args, lowerASCII(strings.TrimSpace(q.Status)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
