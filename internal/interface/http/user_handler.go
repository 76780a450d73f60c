package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cars-api/internal/apperr"
	"cars-api/internal/application"
	"cars-api/internal/domain/entity"
	"cars-api/pkg/response"
	"cars-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type carRequest struct {
	Year         *int   `json:"year"`
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
	Color        string `json:"color"`
}

type userRequest struct {
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Birthday  string       `json:"birthday"`
	Login     string       `json:"login"`
	Password  string       `json:"password"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Cars      []carRequest `json:"cars"`
}

type signInRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type carResponse struct {
	ID           int64  `json:"id"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	UsageAmount  int    `json:"usage_amount"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

type userResponse struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Birthday  string        `json:"birthday"`
	Login     string        `json:"login"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Status    string        `json:"status"`
	PhotoURL  string        `json:"photo_url,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Cars      []carResponse `json:"cars"`
}

func toUserInput(req userRequest) application.UserInput {
	in := application.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  req.Birthday,
		Login:     req.Login,
		Password:  req.Password,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.Cars != nil {
		in.Cars = make([]application.CarInput, 0, len(req.Cars))
		for _, c := range req.Cars {
			in.Cars = append(in.Cars, application.CarInput{
				Year:         c.Year,
				LicensePlate: c.LicensePlate,
				Model:        c.Model,
				Color:        c.Color,
			})
		}
	}
	return in
}

func toCarResponse(c *entity.Car) carResponse {
	return carResponse{
		ID:           c.ID,
		Year:         c.Year,
		LicensePlate: c.LicensePlate,
		Model:        c.Model,
		Color:        c.Color,
		UsageAmount:  c.UsageAmount,
		PhotoURL:     c.PhotoURL,
	}
}

func toUserResponse(u *entity.User) userResponse {
	cars := make([]carResponse, 0, len(u.Cars))
	for i := range u.Cars {
		cars = append(cars, toCarResponse(&u.Cars[i]))
	}
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Birthday:  u.Birthday,
		Login:     u.Login,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    string(u.Status),
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Cars:      cars,
	}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ErrInvalidFields
	}
	return id, nil
}

// Create POST /api/users (public)
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		response.WriteJSON(c, resp)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), toUserInput(req))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusCreated, toUserResponse(u), "user created", nil))
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, out, "users", nil))
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, toUserResponse(u), "user", nil))
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		response.WriteJSON(c, resp)
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, toUserInput(req))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, toUserResponse(u), "user updated", nil))
}

// Delete DELETE /api/users/:id (soft)
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto POST /api/users/:id/upload-photo
func (h *UserHandler) UploadPhoto(c *gin.Context) {
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

	u, err := h.Svc.UploadPhoto(c.Request.Context(), id, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, toUserResponse(u), "photo uploaded", nil))
}

// SignIn POST /api/signin (public)
func (h *UserHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		response.WriteJSON(c, resp)
		return
	}
	_, token, exp, err := h.Svc.SignIn(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, gin.H{"access_token": token}, "signed in", gin.H{"expires_at": exp}))
}

// Search GET /api/users/search?q=...&size=...
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteJSON(c, response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)}))
}
