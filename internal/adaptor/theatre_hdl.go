package adaptor

import (
	"net/http"

	"cineticket/internal/dto/request"
	"cineticket/internal/usecase"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

type TheatreHandler struct {
	service usecase.TheatreService
	halls   usecase.HallService
	log     *zap.Logger
}

func NewTheatreHandler(service usecase.TheatreService, halls usecase.HallService, log *zap.Logger) *TheatreHandler {
	return &TheatreHandler{
		service: service,
		halls:   halls,
		log:     log.With(zap.String("handler", "theatre")),
	}
}

// GetTheatres handles GET /api/theatres?city=
func (h *TheatreHandler) GetTheatres(w http.ResponseWriter, r *http.Request) {
	req := paginationFrom(r)

	theatres, err := h.service.List(r.Context(), &req, optionalQuery(r, "city"))
	if err != nil {
		handleServiceError(w, h.log, err, "get theatres")
		return
	}

	utils.ResponseSuccess(w, "success", theatres)
}

// GetTheatreByID handles GET /api/theatres/{id}
func (h *TheatreHandler) GetTheatreByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	theatre, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get theatre by ID")
		return
	}

	utils.ResponseSuccess(w, "success", theatre)
}

// GetTheatreHalls handles GET /api/admin/theatres/{id}/halls
func (h *TheatreHandler) GetTheatreHalls(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	halls, err := h.halls.ListByTheatre(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get theatre halls")
		return
	}

	utils.ResponseSuccess(w, "success", halls)
}

// CreateTheatre handles POST /api/admin/theatres
func (h *TheatreHandler) CreateTheatre(w http.ResponseWriter, r *http.Request) {
	var req request.TheatreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	theatre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create theatre")
		return
	}

	utils.ResponseCreated(w, "success", theatre)
}

// UpdateTheatre handles PUT /api/admin/theatres/{id}
func (h *TheatreHandler) UpdateTheatre(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.TheatreUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	theatre, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update theatre")
		return
	}

	utils.ResponseSuccess(w, "success", theatre)
}

// DeleteTheatre handles DELETE /api/admin/theatres/{id}
func (h *TheatreHandler) DeleteTheatre(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete theatre")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
