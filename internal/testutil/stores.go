// Package testutil provides in-memory store fakes for service and handler
// tests. They mirror the persistence contract: absent rows are pgx.ErrNoRows
// and duplicate emails surface as a pgconn unique violation.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskhive/backend/internal/model"
)

type FakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{users: make(map[uuid.UUID]*model.User)}
}

func (s *FakeUserStore) CreateUser(_ context.Context, email, passwordHash string, name *string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (s *FakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *FakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

// DeleteUser removes an account directly, simulating deletion behind a still
// valid token.
func (s *FakeUserStore) DeleteUser(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type FakeTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*model.Task
}

func NewFakeTaskStore() *FakeTaskStore {
	return &FakeTaskStore{tasks: make(map[int64]*model.Task)}
}

func (s *FakeTaskStore) CreateTask(_ context.Context, owner uuid.UUID, title string, description *string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	task := &model.Task{
		ID:          s.nextID,
		OwnerID:     owner,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	copied := *task
	return &copied, nil
}

func (s *FakeTaskStore) GetTask(_ context.Context, owner uuid.UUID, id int64) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(owner, id)
}

func (s *FakeTaskStore) ListTasks(_ context.Context, owner uuid.UUID, completed *bool, limit, offset int) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.filter(owner, completed)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []model.Task{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *FakeTaskStore) CountTasks(_ context.Context, owner uuid.UUID, completed *bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filter(owner, completed)), nil
}

func (s *FakeTaskStore) UpdateTask(_ context.Context, owner uuid.UUID, id int64, title, description *string, completed *bool) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.findRef(owner, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		task.Title = *title
	}
	if description != nil {
		task.Description = description
	}
	if completed != nil {
		task.Completed = *completed
	}
	task.UpdatedAt = time.Now()
	copied := *task
	return &copied, nil
}

func (s *FakeTaskStore) SetTaskCompletion(_ context.Context, owner uuid.UUID, id int64, completed *bool) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.findRef(owner, id)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		task.Completed = !task.Completed
	} else {
		task.Completed = *completed
	}
	task.UpdatedAt = time.Now()
	copied := *task
	return &copied, nil
}

func (s *FakeTaskStore) DeleteTask(_ context.Context, owner uuid.UUID, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findRef(owner, id); err != nil {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

func (s *FakeTaskStore) find(owner uuid.UUID, id int64) (*model.Task, error) {
	task, err := s.findRef(owner, id)
	if err != nil {
		return nil, err
	}
	copied := *task
	return &copied, nil
}

func (s *FakeTaskStore) findRef(owner uuid.UUID, id int64) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok || task.OwnerID != owner {
		return nil, pgx.ErrNoRows
	}
	return task, nil
}

func (s *FakeTaskStore) filter(owner uuid.UUID, completed *bool) []model.Task {
	var matched []model.Task
	for _, t := range s.tasks {
		if t.OwnerID != owner {
			continue
		}
		if completed != nil && t.Completed != *completed {
			continue
		}
		matched = append(matched, *t)
	}
	return matched
}
