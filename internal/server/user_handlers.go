package server

import (
	"net/http"

	"github.com/Tomlord1122/todolist/internal/auth"
	"github.com/Tomlord1122/todolist/internal/service"
)

// authUserHandler mirrors the caller's profile claims into the users table and
// returns the stored record.
func (s *Server) authUserHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	user, err := s.userService.SyncProfile(r.Context(), service.Profile{
		UserID:          id.UserID,
		Email:           id.Email,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, user)
}
