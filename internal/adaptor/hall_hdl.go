package adaptor

import (
	"net/http"

	"cineticket/internal/dto/request"
	"cineticket/internal/usecase"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// CreateHall handles POST /api/admin/halls
func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hall, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "Hall created successfully", hall)
}

// GetHallByID handles GET /api/admin/halls/{id}
func (h *HallHandler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	hall, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// RenameHall handles PUT /api/admin/halls/{id}
func (h *HallHandler) RenameHall(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.HallUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hall, err := h.service.Rename(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rename hall")
		return
	}

	utils.ResponseSuccess(w, "Hall renamed successfully", hall)
}

// DeleteHall handles DELETE /api/admin/halls/{id}
func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "Hall deleted successfully", nil)
}
