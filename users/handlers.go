package users

// HTTP handlers for the users module. Registration is the one endpoint that
// is deliberately outside the authentication gate: it is how accounts come
// to exist in the first place.

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/user/minblog-go/apperror"
)

// UserHandlers provides the HTTP handlers for user accounts.
type UserHandlers struct {
	service Service
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service Service) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleRegister godoc
// @Summary Register a new user
// @Description Creates a user account. The password is hashed before storage and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param registerBody body users.RegisterRequest true "User registration details"
// @Success 201 {object} users.UserResponse "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Empty body, malformed JSON, or username already exists"
// @Failure 422 {object} apperror.ErrorResponse "Missing, mistyped, or blank userName/password"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users [post]
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		// An empty body is a 400, before any field-level validation. The body
		// is read whole so emptiness and malformed JSON are told apart.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("failed to read request body", err))
			return
		}
		if len(bytes.TrimSpace(body)) == 0 {
			apperror.WriteError(w, r, apperror.NewBadRequestError("request body is required", nil))
			return
		}

		var req RegisterRequest
		if err := json.Unmarshal(body, &req); err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}

		// Field-level validation: 422 on the first failing rule, no store
		// call has happened yet.
		nu, err := req.Validate()
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		user, err := h.service.Register(r.Context(), nu)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		apperror.WriteJSON(w, http.StatusCreated, user)
	}
}
