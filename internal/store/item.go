package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/types"
)

// ItemRepository handles persistence for to-do items. Every lookup and
// mutation is scoped to the owning user inside the query itself, so a
// record owned by someone else is indistinguishable from a missing one.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int) ([]types.Item, error) {
	const query = `
		SELECT id, user_id, text, completed, created_at, updated_at
		FROM items
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Text,
			&item.Completed,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ItemRepository) GetByOwner(ctx context.Context, ownerID, id int) (types.Item, error) {
	const query = `
		SELECT id, user_id, text, completed, created_at, updated_at
		FROM items
		WHERE id = $1 AND user_id = $2`
	var item types.Item
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&item.ID,
		&item.UserID,
		&item.Text,
		&item.Completed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Item{}, ErrNotFound
		}
		return types.Item{}, err
	}
	return item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item types.Item) (types.Item, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `
		INSERT INTO items (user_id, text, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.UserID,
		item.Text,
		item.Completed,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID); err != nil {
		return types.Item{}, err
	}
	return item, nil
}

// UpdateFields applies the non-nil fields of the patch in a single UPDATE
// and returns the resulting row. ErrNotFound covers both a missing row and
// one owned by another user.
func (r *ItemRepository) UpdateFields(ctx context.Context, ownerID, id int, patch types.ItemPatch) (types.Item, error) {
	assignments := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if patch.Text != nil {
		args = append(args, *patch.Text)
		assignments = append(assignments, fmt.Sprintf("text = $%d", len(args)))
	}
	if patch.Completed != nil {
		args = append(args, *patch.Completed)
		assignments = append(assignments, fmt.Sprintf("completed = $%d", len(args)))
	}

	args = append(args, time.Now())
	assignments = append(assignments, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	idArg := len(args)
	args = append(args, ownerID)
	ownerArg := len(args)

	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, text, completed, created_at, updated_at`,
		strings.Join(assignments, ", "), idArg, ownerArg)

	var item types.Item
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.UserID,
		&item.Text,
		&item.Completed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Item{}, ErrNotFound
		}
		return types.Item{}, err
	}
	return item, nil
}

func (r *ItemRepository) DeleteByOwner(ctx context.Context, ownerID, id int) error {
	const query = `DELETE FROM items WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
