package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todolist/internal/domain"
)

var base = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func createTodo(t *testing.T, repo TodoRepository, userID, title string, at time.Time) *domain.Todo {
	t.Helper()
	todo := &domain.Todo{UserID: userID, Title: title, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, repo.Create(context.Background(), todo))
	return todo
}

// runTodoRepositoryContract exercises the owner scoping and ordering rules.
// newDB must return an empty, migrated database for every call.
func runTodoRepositoryContract(t *testing.T, newDB func(t *testing.T) *gorm.DB) {
	ctx := context.Background()

	t.Run("create assigns unique ids and round trips", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))

		a := &domain.Todo{UserID: "alice", Title: "Buy milk", Description: strPtr("2 litres"), CreatedAt: base, UpdatedAt: base}
		b := &domain.Todo{UserID: "bob", Title: "Walk dog", Completed: true, CreatedAt: base, UpdatedAt: base}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		assert.NotZero(t, a.ID)
		assert.NotZero(t, b.ID)
		assert.NotEqual(t, a.ID, b.ID)

		got, err := repo.FindByID(ctx, a.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.UserID)
		assert.Equal(t, "Buy milk", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "2 litres", *got.Description)
		assert.False(t, got.Completed)
		assert.True(t, got.CreatedAt.Equal(base))
		assert.True(t, got.UpdatedAt.Equal(base))

		got, err = repo.FindByID(ctx, b.ID, "bob")
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Nil(t, got.Description)
	})

	t.Run("find is scoped to the owner", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))
		todo := createTodo(t, repo, "alice", "secret", base)

		_, err := repo.FindByID(ctx, todo.ID, "bob")
		assert.ErrorIs(t, err, ErrTodoNotFound)

		_, err = repo.FindByID(ctx, todo.ID+1000, "alice")
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})

	t.Run("list orders newest first and never leaks", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))

		a1 := createTodo(t, repo, "alice", "a1", base)
		createTodo(t, repo, "bob", "b1", base.Add(time.Second))
		a2 := createTodo(t, repo, "alice", "a2", base.Add(2*time.Second))
		createTodo(t, repo, "bob", "b2", base.Add(3*time.Second))
		a3 := createTodo(t, repo, "alice", "a3", base.Add(4*time.Second))

		todos, err := repo.List(ctx, "alice", TodoFilter{})
		require.NoError(t, err)
		require.Len(t, todos, 3)
		assert.Equal(t, []uint64{a3.ID, a2.ID, a1.ID}, []uint64{todos[0].ID, todos[1].ID, todos[2].ID})
		for _, todo := range todos {
			assert.Equal(t, "alice", todo.UserID)
		}
	})

	t.Run("list breaks created_at ties by id", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))

		first := createTodo(t, repo, "alice", "first", base)
		second := createTodo(t, repo, "alice", "second", base)

		todos, err := repo.List(ctx, "alice", TodoFilter{})
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, second.ID, todos[0].ID)
		assert.Equal(t, first.ID, todos[1].ID)
	})

	t.Run("list of unknown user is empty, not nil", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))

		todos, err := repo.List(ctx, "nobody", TodoFilter{})
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("list filters by completion", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))

		open := createTodo(t, repo, "alice", "open", base)
		done := &domain.Todo{UserID: "alice", Title: "done", Completed: true, CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)}
		require.NoError(t, repo.Create(ctx, done))

		active, err := repo.List(ctx, "alice", TodoFilter{Completed: boolPtr(false)})
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, open.ID, active[0].ID)

		completed, err := repo.List(ctx, "alice", TodoFilter{Completed: boolPtr(true)})
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, done.ID, completed[0].ID)
	})

	t.Run("update writes mutable columns for the owner", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))
		todo := createTodo(t, repo, "alice", "draft", base)

		later := base.Add(time.Minute)
		todo.Title = "final"
		todo.Description = strPtr("notes")
		todo.Completed = true
		todo.UpdatedAt = later
		require.NoError(t, repo.Update(ctx, todo))

		got, err := repo.FindByID(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, "final", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "notes", *got.Description)
		assert.True(t, got.Completed)
		assert.True(t, got.CreatedAt.Equal(base))
		assert.True(t, got.UpdatedAt.Equal(later))

		got.Description = nil
		got.UpdatedAt = later.Add(time.Minute)
		require.NoError(t, repo.Update(ctx, got))

		got, err = repo.FindByID(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("update of a foreign todo changes nothing", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))
		todo := createTodo(t, repo, "alice", "mine", base)

		forged := *todo
		forged.UserID = "mallory"
		forged.Title = "pwned"
		forged.UpdatedAt = base.Add(time.Minute)
		assert.ErrorIs(t, repo.Update(ctx, &forged), ErrTodoNotFound)

		got, err := repo.FindByID(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, "mine", got.Title)
	})

	t.Run("delete is permanent and reports once", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))
		todo := createTodo(t, repo, "alice", "temp", base)

		deleted, err := repo.Delete(ctx, todo.ID, "bob")
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.Delete(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.FindByID(ctx, todo.ID, "alice")
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repo := NewGormTodoRepository(newDB(t))
		first := createTodo(t, repo, "alice", "one", base)
		_, err := repo.Delete(ctx, first.ID, "alice")
		require.NoError(t, err)

		second := createTodo(t, repo, "alice", "two", base)
		assert.Greater(t, second.ID, first.ID)
	})
}

func runUserRepositoryContract(t *testing.T, newDB func(t *testing.T) *gorm.DB) {
	ctx := context.Background()

	t.Run("get unknown user", func(t *testing.T) {
		repo := NewGormUserRepository(newDB(t))
		_, err := repo.Get(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("upsert inserts then updates in place", func(t *testing.T) {
		repo := NewGormUserRepository(newDB(t))

		user := &domain.User{ID: "sub-1", Email: strPtr("a@example.com"), FirstName: strPtr("Ada"), CreatedAt: base, UpdatedAt: base}
		require.NoError(t, repo.Upsert(ctx, user))

		got, err := repo.Get(ctx, "sub-1")
		require.NoError(t, err)
		require.NotNil(t, got.Email)
		assert.Equal(t, "a@example.com", *got.Email)
		assert.True(t, got.CreatedAt.Equal(base))

		later := base.Add(time.Hour)
		again := &domain.User{ID: "sub-1", Email: strPtr("ada@example.com"), LastName: strPtr("Lovelace"), CreatedAt: later, UpdatedAt: later}
		require.NoError(t, repo.Upsert(ctx, again))

		assert.True(t, again.CreatedAt.Equal(base), "created_at must survive the upsert")
		assert.True(t, again.UpdatedAt.Equal(later))
		require.NotNil(t, again.Email)
		assert.Equal(t, "ada@example.com", *again.Email)
		assert.Nil(t, again.FirstName)
		require.NotNil(t, again.LastName)
		assert.Equal(t, "Lovelace", *again.LastName)
	})
}
