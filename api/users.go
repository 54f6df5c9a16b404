package api

import (
	"net/http"

	"github.com/Domenick1991/airadmin/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/add_user", h.form)
	router.POST("/add_user", h.create)
	router.GET("/edit_users", h.list)
	router.POST("/edit_users/process", h.update)
	router.GET("/delete_user", h.list)
	router.POST("/delete_user/process", h.delete)
}

func (h *UserHandler) form(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"fields": []string{"name", "email", "password", "confirm_password"}})
}

func (h *UserHandler) list(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pageBody("users", page))
}

func (h *UserHandler) create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	// the admin form has no confirmation field
	confirm := req.ConfirmPassword
	if confirm == "" {
		confirm = req.Password
	}

	user, err := h.service.Create(c.Request.Context(), actorFrom(c), users.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"user": user})
}

func (h *UserHandler) update(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), actorFrom(c), users.UpdateInput{
		ID:       req.ID.String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) delete(c *gin.Context) {
	var req deleteUsersRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.service.Delete(c.Request.Context(), actorFrom(c), stringsOf(req.UserIDs))
	if err != nil {
		respondError(c, err)
		return
	}
	respondBatch(c, res)
}
