package service

import (
	"strings"

	"github.com/Tomlord1122/todolist/internal/apperror"
	"github.com/Tomlord1122/todolist/internal/repository"
)

// Status values accepted by ListTodos.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// newTodo is a create request that passed validation.
type newTodo struct {
	Title       string
	Description *string
	Completed   bool
}

// todoChanges is an update request that passed validation. Nil pointers and an
// unset Description mean "leave as is".
type todoChanges struct {
	Title       *string
	Description Optional[string]
	Completed   *bool
}

func validateCreate(req CreateTodoRequest) (newTodo, error) {
	if !req.Title.Set {
		return newTodo{}, apperror.ValidationFailed("title", "title is required")
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return newTodo{}, err
	}
	if req.Completed.Set && req.Completed.Null {
		return newTodo{}, apperror.ValidationFailed("completed", "completed must be a boolean")
	}

	out := newTodo{Title: title, Completed: req.Completed.Value}
	if req.Description.Set && !req.Description.Null {
		d := req.Description.Value
		out.Description = &d
	}
	return out, nil
}

func validateUpdate(req UpdateTodoRequest) (todoChanges, error) {
	var out todoChanges

	if req.Title.Set {
		title, err := validateTitle(req.Title)
		if err != nil {
			return todoChanges{}, err
		}
		out.Title = &title
	}
	if req.Completed.Set {
		if req.Completed.Null {
			return todoChanges{}, apperror.ValidationFailed("completed", "completed must be a boolean")
		}
		c := req.Completed.Value
		out.Completed = &c
	}
	out.Description = req.Description

	return out, nil
}

func validateTitle(title Optional[string]) (string, error) {
	if title.Null {
		return "", apperror.ValidationFailed("title", "title must be a string")
	}
	if title.Value == "" {
		return "", apperror.ValidationFailed("title", "title must not be empty")
	}
	return title.Value, nil
}

func parseStatus(status string) (repository.TodoFilter, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", StatusAll:
		return repository.TodoFilter{}, nil
	case StatusActive:
		completed := false
		return repository.TodoFilter{Completed: &completed}, nil
	case StatusCompleted:
		completed := true
		return repository.TodoFilter{Completed: &completed}, nil
	default:
		return repository.TodoFilter{}, apperror.ValidationFailed("status", "status must be one of all, active, completed")
	}
}
