package handler

import (
	"errors"
	"net/http"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/service"
	"github.com/sayajuli/money-management/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser returns the user resolved by the auth middleware, or nil
// after writing an unauthorized response.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil
	}
	return user
}

// fail maps a service error onto the HTTP envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrConflict):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrInvalidCredentials):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error, please retry")
	}
}
