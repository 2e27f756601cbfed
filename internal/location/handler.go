package location

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
)

type ServiceAPI interface {
	ListLocations() ([]*Location, error)
	ListActive() ([]*Location, error)
	CreateLocation(dto CreateLocationDTO) (*Location, error)
	UpdateLocation(id int64, dto UpdateLocationDTO) (*Location, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocations()
	if err != nil {
		h.Logger.Error("list locations failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not list locations", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
		"total":     len(locations),
	})
}

// ListActive is public so the kiosk can show which terminals are live.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListActive()
	if err != nil {
		h.Logger.Error("list active locations failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not list locations", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateLocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	loc, err := h.service.CreateLocation(dto)
	if err != nil {
		if err == ErrAlreadyExists {
			h.HandleServiceError(w, internal.NewConflictError("a location with this terminal ID already exists", internal.ErrCodeLocationExists))
			return
		}
		h.Logger.Error("create location failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not create location", err))
		return
	}

	h.WriteJSON(w, http.StatusCreated, loc)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "location id must be an integer")
		return
	}

	var dto UpdateLocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	loc, err := h.service.UpdateLocation(id, dto)
	if err != nil {
		if err == ErrNotFound {
			h.HandleServiceError(w, internal.NewNotFoundError("location not found", internal.ErrCodeLocationNotFound))
			return
		}
		h.Logger.Error("update location failed", "error", err, "location_id", id)
		h.HandleServiceError(w, internal.NewInternalError("could not update location", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, loc)
}
