package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you-humble/workshop/internal/model"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

var journalColumns = []string{
	"id", "entity_kind", "entity_id", "actor_id", "actor_role", "action", "total", "line_count", "created_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewJournalRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Append stores one committed mutation. Entries are never updated.
func (r *repository) Append(ctx context.Context, e model.JournalEntry) error {
	if e.Parent.Kind == "" || e.Parent.ID == 0 {
		return errors.New("journal entry without parent")
	}

	q := r.sb.
		Insert("ledger_journal").
		Columns(journalColumns...).
		Values(
			e.ID,
			string(e.Parent.Kind),
			e.Parent.ID,
			e.ActorID,
			string(e.Role),
			string(e.Action),
			e.Total,
			e.LineCount,
			e.CreatedAt,
		)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}

// List returns the newest entries first.
func (r *repository) List(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, error) {
	limit := filter.Limit
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}

	q := r.sb.
		Select(journalColumns...).
		From("ledger_journal").
		OrderBy("created_at DESC").
		Limit(limit)

	if filter.Parent != nil {
		q = q.Where(sq.Eq{
			"entity_kind": string(filter.Parent.Kind),
			"entity_id":   filter.Parent.ID,
		})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.JournalEntry, 0, limit)
	for rows.Next() {
		var (
			e                  model.JournalEntry
			kind, role, action string
		)
		if err := rows.Scan(
			&e.ID,
			&kind,
			&e.Parent.ID,
			&e.ActorID,
			&role,
			&action,
			&e.Total,
			&e.LineCount,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		e.Parent.Kind = model.ParentKind(kind)
		e.Role = model.Role(role)
		e.Action = model.Action(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
