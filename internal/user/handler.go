package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
)

type ServiceAPI interface {
	GetByID(id int64) (*User, error)
	ListUsers() ([]*User, error)
	ListManagers() ([]*User, error)
	ListTeam(managerID int64) ([]*User, error)
	CreateUser(dto CreateUserDTO) (*User, error)
	UpdateUser(id int64, dto UpdateUserDTO) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
}

func NewHandler(service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
	}
}

// GetCurrentUser returns the authenticated user's own profile.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.service.GetByID(actor.ID)
	if err != nil {
		if err == ErrNotFound {
			h.HandleServiceError(w, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound))
			return
		}
		h.Logger.Error("load current user failed", "error", err, "user_id", actor.ID)
		h.HandleServiceError(w, internal.NewInternalError("could not load user", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(u))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers()
	if err != nil {
		h.Logger.Error("list users failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not list users", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": ToResponseSlice(users),
		"total": len(users),
	})
}

// ListManagers feeds the reporting-manager dropdown in the admin UI.
func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.service.ListManagers()
	if err != nil {
		h.Logger.Error("list managers failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not list managers", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"managers": ToResponseSlice(managers),
	})
}

// ListTeam returns the authenticated manager's direct reports.
func (h *Handler) ListTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	team, err := h.service.ListTeam(actor.ID)
	if err != nil {
		h.Logger.Error("list team failed", "error", err, "manager_id", actor.ID)
		h.HandleServiceError(w, internal.NewInternalError("could not list team", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"team": ToResponseSlice(team),
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.service.CreateUser(dto)
	if err != nil {
		if err == ErrAlreadyExists {
			h.HandleServiceError(w, internal.NewConflictError("a user with this email or employee ID already exists", internal.ErrCodeUserExists))
			return
		}
		h.Logger.Error("create user failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not create user", err))
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToResponse(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "user id must be an integer")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.service.UpdateUser(id, dto)
	if err != nil {
		if err == ErrNotFound {
			h.HandleServiceError(w, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound))
			return
		}
		h.Logger.Error("update user failed", "error", err, "user_id", id)
		h.HandleServiceError(w, internal.NewInternalError("could not update user", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(u))
}
