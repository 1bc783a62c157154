package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todolist/internal/domain"
)

// ErrTodoNotFound means no todo with that id is owned by the caller, whether
// the row is missing or belongs to someone else.
var ErrTodoNotFound = errors.New("todo not found")

// TodoFilter narrows List. A nil Completed lists every todo.
type TodoFilter struct {
	Completed *bool
}

// TodoRepository is the only component that reads or writes todo rows. Every
// method is scoped to the owning user.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id uint64, userID string) (*domain.Todo, error)
	List(ctx context.Context, userID string, filter TodoFilter) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id uint64, userID string) (bool, error)
}

type gormTodoRepository struct {
	db *gorm.DB
}

func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

// Create inserts the todo; the store assigns ID.
func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint64, userID string) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("select todo %d: %w", id, err)
	}
	return &todo, nil
}

// List returns the user's todos newest first. Ties on created_at fall back to
// the id so the order is stable.
func (r *gormTodoRepository) List(ctx context.Context, userID string, filter TodoFilter) ([]domain.Todo, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	todos := make([]domain.Todo, 0)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	return todos, nil
}

// Update writes the mutable columns of todo. The row must be owned by
// todo.UserID, otherwise ErrTodoNotFound is returned and nothing changes.
func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("id = ? AND user_id = ?", todo.ID, todo.UserID).
		Updates(map[string]any{
			"title":       todo.Title,
			"description": todo.Description,
			"completed":   todo.Completed,
			"updated_at":  todo.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// Delete permanently removes the todo and reports whether a row was removed.
func (r *gormTodoRepository) Delete(ctx context.Context, id uint64, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Todo{})
	if result.Error != nil {
		return false, fmt.Errorf("delete todo %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
