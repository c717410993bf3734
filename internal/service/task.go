package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taskhive/backend/internal/db"
	"github.com/taskhive/backend/internal/model"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000

	maxListLimit = 1000
)

// TaskStore is the owner-partitioned persistence surface for tasks. Every
// method takes the owner identity; rows outside the owner's partition behave
// as if they do not exist.
type TaskStore interface {
	CreateTask(ctx context.Context, owner uuid.UUID, title string, description *string) (*model.Task, error)
	GetTask(ctx context.Context, owner uuid.UUID, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, owner uuid.UUID, completed *bool, limit, offset int) ([]model.Task, error)
	CountTasks(ctx context.Context, owner uuid.UUID, completed *bool) (int, error)
	UpdateTask(ctx context.Context, owner uuid.UUID, id int64, title, description *string, completed *bool) (*model.Task, error)
	SetTaskCompletion(ctx context.Context, owner uuid.UUID, id int64, completed *bool) (*model.Task, error)
	DeleteTask(ctx context.Context, owner uuid.UUID, id int64) (bool, error)
}

// TaskService performs owner-scoped task operations. The ownership check
// against the token subject has already happened by the time these run; the
// owner argument only partitions the store.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// List returns one page of the owner's tasks, newest first, plus the total
// count of the filtered set (not the page).
func (s *TaskService) List(ctx context.Context, owner uuid.UUID, completed *bool, limit, offset int) ([]model.Task, int, error) {
	if limit < 1 || limit > maxListLimit {
		return nil, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxListLimit)
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}

	tasks, err := s.store.ListTasks(ctx, owner, completed, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountTasks(ctx, owner, completed)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *TaskService) Create(ctx context.Context, owner uuid.UUID, title string, description *string) (*model.Task, error) {
	if err := validateTaskFields(&title, description); err != nil {
		return nil, err
	}
	return s.store.CreateTask(ctx, owner, title, description)
}

func (s *TaskService) Get(ctx context.Context, owner uuid.UUID, id int64) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, owner, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// Update applies the supplied fields only. updated_at is refreshed on every
// successful update, including one with no fields.
func (s *TaskService) Update(ctx context.Context, owner uuid.UUID, id int64, req model.TaskUpdateRequest) (*model.Task, error) {
	if err := validateTaskFields(req.Title, req.Description); err != nil {
		return nil, err
	}
	task, err := s.store.UpdateTask(ctx, owner, id, req.Title, req.Description, req.Completed)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	deleted, err := s.store.DeleteTask(ctx, owner, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SetCompletion sets the completion flag, or flips it when value is nil.
func (s *TaskService) SetCompletion(ctx context.Context, owner uuid.UUID, id int64, value *bool) (*model.Task, error) {
	task, err := s.store.SetTaskCompletion(ctx, owner, id, value)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func validateTaskFields(title, description *string) error {
	if title != nil {
		length := utf8.RuneCountInString(*title)
		if length < 1 || length > maxTitleLength {
			return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, maxTitleLength)
		}
	}
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLength)
	}
	return nil
}
