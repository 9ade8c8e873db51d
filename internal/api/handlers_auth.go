package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/askelund/fintrack/internal/auth"
	"github.com/askelund/fintrack/internal/storage"
)

func (s *APIServer) signupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondValidation(w, []string{"request body must be a JSON object with email and password"})
			return
		}

		user, err := s.auth.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEmailTaken):
				s.respondMessage(w, http.StatusConflict, "Email already exists.")
			case errors.Is(err, auth.ErrEmailInvalid), errors.Is(err, auth.ErrPasswordTooShort):
				s.respondValidation(w, []string{err.Error()})
			default:
				s.respondStoreError(w, "signup", err)
			}
			return
		}

		s.respondJSON(w, http.StatusCreated, map[string]any{
			"message": "User created successfully!",
			"user":    user,
		})
	}
}

func (s *APIServer) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondValidation(w, []string{"request body must be a JSON object with email and password"})
			return
		}

		if err := auth.ValidateCredentials(req.Email, req.Password); err != nil {
			s.respondValidation(w, []string{err.Error()})
			return
		}

		token, userID, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				s.respondMessage(w, http.StatusUnauthorized, "Invalid credentials.")
				return
			}
			s.respondStoreError(w, "login", err)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]string{
			"token":  token,
			"userId": userID,
		})
	}
}
