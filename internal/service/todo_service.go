package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tomlord1122/todolist/internal/apperror"
	"github.com/Tomlord1122/todolist/internal/domain"
	"github.com/Tomlord1122/todolist/internal/repository"
)

// CreateTodoRequest is the body of POST /todos. The owner never comes from the
// body; it is passed separately from the authenticated identity.
type CreateTodoRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
}

// UpdateTodoRequest is the body of PATCH /todos/{id}. Any subset of fields may
// be present; a null description clears it.
type UpdateTodoRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
}

type ListTodosRequest struct {
	Status string
}

// TodoResponse is the wire representation of a todo.
type TodoResponse struct {
	ID          uint64  `json:"id"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// TodoService holds the todo rules: validation, owner scoping and timestamps.
type TodoService interface {
	// ListTodos returns the caller's todos, newest first.
	ListTodos(ctx context.Context, userID string, req ListTodosRequest) ([]TodoResponse, error)

	// GetTodo returns apperror.ErrNotFound unless the todo exists and is owned by userID.
	GetTodo(ctx context.Context, id uint64, userID string) (*TodoResponse, error)

	CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*TodoResponse, error)

	// UpdateTodo merges the supplied fields and refreshes UpdatedAt.
	UpdateTodo(ctx context.Context, id uint64, userID string, req UpdateTodoRequest) (*TodoResponse, error)

	DeleteTodo(ctx context.Context, id uint64, userID string) error
}

// Clock supplies the current time.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

type todoService struct {
	repo repository.TodoRepository
	now  Clock
}

func NewTodoService(repo repository.TodoRepository, clock Clock) TodoService {
	if clock == nil {
		clock = SystemClock
	}
	return &todoService{
		repo: repo,
		now:  clock,
	}
}

// timestamp is UTC at microsecond precision so values survive a round trip
// through PostgreSQL unchanged.
func (s *todoService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *todoService) ListTodos(ctx context.Context, userID string, req ListTodosRequest) ([]TodoResponse, error) {
	filter, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	todos, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, toTodoResponse(&todos[i]))
	}
	return responses, nil
}

func (s *todoService) GetTodo(ctx context.Context, id uint64, userID string) (*TodoResponse, error) {
	todo, err := s.find(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := toTodoResponse(todo)
	return &resp, nil
}

func (s *todoService) CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*TodoResponse, error) {
	in, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	todo := &domain.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	resp := toTodoResponse(todo)
	return &resp, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, id uint64, userID string, req UpdateTodoRequest) (*TodoResponse, error) {
	changes, err := validateUpdate(req)
	if err != nil {
		return nil, err
	}

	todo, err := s.find(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		todo.Title = *changes.Title
	}
	if changes.Description.Set {
		if changes.Description.Null {
			todo.Description = nil
		} else {
			d := changes.Description.Value
			todo.Description = &d
		}
	}
	if changes.Completed != nil {
		todo.Completed = *changes.Completed
	}

	// UpdatedAt must move forward even if the clock has not.
	now := s.timestamp()
	if !now.After(todo.UpdatedAt) {
		now = todo.UpdatedAt.Add(time.Microsecond)
	}
	todo.UpdatedAt = now

	if err := s.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, apperror.NotFound("todo")
		}
		return nil, fmt.Errorf("updating todo %d: %w", id, err)
	}

	resp := toTodoResponse(todo)
	return &resp, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id uint64, userID string) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	if !deleted {
		return apperror.NotFound("todo")
	}
	return nil
}

func (s *todoService) find(ctx context.Context, id uint64, userID string) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, apperror.NotFound("todo")
		}
		return nil, fmt.Errorf("fetching todo %d: %w", id, err)
	}
	return todo, nil
}

func toTodoResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		UserID:      todo.UserID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   formatTime(todo.CreatedAt),
		UpdatedAt:   formatTime(todo.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
