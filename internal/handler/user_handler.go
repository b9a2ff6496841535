package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every user except the caller, for the invite picker.
//
// @Summary      List other users
// @Tags         Users
// @Produce      json
// @Success      200  {array}  model.User
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /user [get]
func (h *UserHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	users, err := h.users.ListOthers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
