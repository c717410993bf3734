package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhive/backend/internal/model"
)

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

func (db *Postgres) CreateTask(ctx context.Context, owner uuid.UUID, title string, description *string) (*model.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + taskColumns
	return db.scanTask(db.Pool.QueryRow(ctx, query, owner, title, description))
}

func (db *Postgres) GetTask(ctx context.Context, owner uuid.UUID, id int64) (*model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	return db.scanTask(db.Pool.QueryRow(ctx, query, id, owner))
}

func (db *Postgres) ListTasks(ctx context.Context, owner uuid.UUID, completed *bool, limit, offset int) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND ($2::boolean IS NULL OR completed = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := db.Pool.Query(ctx, query, owner, completed, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CountTasks counts the filtered set, independent of pagination.
func (db *Postgres) CountTasks(ctx context.Context, owner uuid.UUID, completed *bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tasks
		WHERE user_id = $1 AND ($2::boolean IS NULL OR completed = $2)
	`
	var total int
	if err := db.Pool.QueryRow(ctx, query, owner, completed).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateTask applies the non-nil fields in one atomic write and always
// refreshes updated_at. Returns pgx.ErrNoRows when the task does not exist
// in the owner's partition.
func (db *Postgres) UpdateTask(ctx context.Context, owner uuid.UUID, id int64, title, description *string, completed *bool) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    completed = COALESCE($5, completed),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	return db.scanTask(db.Pool.QueryRow(ctx, query, id, owner, title, description, completed))
}

// SetTaskCompletion sets the flag, or flips it when completed is nil.
func (db *Postgres) SetTaskCompletion(ctx context.Context, owner uuid.UUID, id int64, completed *bool) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET completed = CASE WHEN $3::boolean IS NULL THEN NOT completed ELSE $3 END,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	return db.scanTask(db.Pool.QueryRow(ctx, query, id, owner, completed))
}

func (db *Postgres) DeleteTask(ctx context.Context, owner uuid.UUID, id int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *Postgres) scanTask(row rowScanner) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
