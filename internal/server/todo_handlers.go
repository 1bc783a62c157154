package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/todolist/internal/apperror"
	"github.com/Tomlord1122/todolist/internal/service"
)

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), callerID(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, todo)
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	req := service.ListTodosRequest{Status: r.URL.Query().Get("status")}

	todos, err := s.todoService.ListTodos(r.Context(), callerID(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseTodoID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	todo, err := s.todoService.GetTodo(r.Context(), id, callerID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseTodoID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req service.UpdateTodoRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), id, callerID(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseTodoID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.todoService.DeleteTodo(r.Context(), id, callerID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseTodoID(r *http.Request) (uint64, error) {
	// Ids are BIGSERIAL: positive and within int64.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "invalid todo id")
	}
	return uint64(id), nil
}
