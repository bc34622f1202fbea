package adaptor

import (
	"net/http"

	"cineticket/internal/dto/request"
	"cineticket/internal/usecase"
	"cineticket/pkg/utils"

	"go.uber.org/zap"
)

const maxImageSize = 10 << 20

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies?page=&per_page=&genre_id=&lang=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := &request.MovieListQuery{
		PaginatedRequest: paginationFrom(r),
		GenreID:          optionalQuery(r, "genre_id"),
		Lang:             langFrom(r),
	}

	movies, err := h.service.List(r.Context(), query)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	movie, err := h.service.GetByID(r.Context(), id, langFrom(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req request.MovieUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

// UploadPoster handles POST /api/admin/movies/{id}/poster (multipart field "file")
func (h *MovieHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, usecase.ImagePoster)
}

// UploadBackdrop handles POST /api/admin/movies/{id}/backdrop (multipart field "file")
func (h *MovieHandler) UploadBackdrop(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, usecase.ImageBackdrop)
}

func (h *MovieHandler) upload(w http.ResponseWriter, r *http.Request, kind usecase.ImageKind) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "File is required", nil)
		return
	}
	defer file.Close()

	movie, err := h.service.UploadImage(r.Context(), id, kind, usecase.ImageUpload{
		Reader:      file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		handleServiceError(w, h.log, err, "upload "+string(kind))
		return
	}

	utils.ResponseSuccess(w, "Image uploaded successfully", movie)
}
