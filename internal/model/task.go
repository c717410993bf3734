package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          int64
	OwnerID     uuid.UUID
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TaskCreateRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// TaskUpdateRequest carries a partial update; nil fields are left unchanged.
type TaskUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool   `json:"completed"`
}

// TaskCompletionRequest sets the completion flag; a nil value toggles it.
type TaskCompletionRequest struct {
	Completed *bool `json:"completed"`
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

func NewTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
