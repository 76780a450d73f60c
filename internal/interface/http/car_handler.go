package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cars-api/internal/apperr"
	"cars-api/internal/application"
	"cars-api/internal/interface/middleware"
	"cars-api/pkg/response"
	"cars-api/pkg/validation"
)

// CarHandler serves the car endpoints. All of them require a resolved
// identity; ownership scoping happens in the service.
type CarHandler struct {
	Svc    *application.CarService
	Logger *logrus.Logger
}

func NewCarHandler(svc *application.CarService, logger *logrus.Logger) *CarHandler {
	return &CarHandler{Svc: svc, Logger: logger}
}

func toCarInput(req carRequest) application.CarInput {
	return application.CarInput{
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Model:        req.Model,
		Color:        req.Color,
	}
}

// Create POST /api/cars
func (h *CarHandler) Create(c *gin.Context) {
	owner, err := middleware.LoggedUser(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		response.WriteJSON(c, resp)
		return
	}
	car, err := h.Svc.Create(c.Request.Context(), toCarInput(req), owner)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusCreated, toCarResponse(car), "car created", nil))
}

// List GET /api/cars
func (h *CarHandler) List(c *gin.Context) {
	owner, err := middleware.LoggedUser(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	cars, err := h.Svc.List(c.Request.Context(), owner)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	out := make([]carResponse, 0, len(cars))
	for i := range cars {
		out = append(out, toCarResponse(&cars[i]))
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, out, "cars", nil))
}

// Get GET /api/cars/:id
func (h *CarHandler) Get(c *gin.Context) {
	owner, err := middleware.LoggedUser(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	car, err := h.Svc.Get(c.Request.Context(), id, owner)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, toCarResponse(car), "car", nil))
}

// Update PUT /api/cars/:id
func (h *CarHandler) Update(c *gin.Context) {
	owner, err := middleware.LoggedUser(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		response.WriteJSON(c, resp)
		return
	}
	car, err := h.Svc.Update(c.Request.Context(), id, toCarInput(req), owner)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, toCarResponse(car), "car updated", nil))
}

// Delete DELETE /api/cars/:id
func (h *CarHandler) Delete(c *gin.Context) {
	owner, err := middleware.LoggedUser(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, owner); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto POST /api/cars/:id/upload-photo
func (h *CarHandler) UploadPhoto(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.WriteError(c, apperr.ErrInvalidPhoto)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.WriteError(c, apperr.ErrInvalidPhoto)
		return
	}
	defer func() { _ = f.Close() }()

	car, err := h.Svc.UploadPhoto(c.Request.Context(), id, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, toCarResponse(car), "photo uploaded", nil))
}
