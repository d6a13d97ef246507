package handler

import (
	"net/http"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/service"
	"github.com/sayajuli/money-management/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the current user's profile.
type ProfileHandler struct {
	Users *service.UserService
}

func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

// Me returns the logged-in user's profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"risk_profile": user.RiskProfile,
			"created_at":   user.CreatedAt,
		},
	})
}

type updateProfileReq struct {
	DisplayName string `json:"display_name" binding:"max=64"`
	RiskProfile string `json:"risk_profile" binding:"omitempty,oneof=CONSERVATIVE MODERATE AGGRESSIVE"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	updated, err := h.Users.UpdateProfile(user.ID, req.DisplayName, models.RiskProfile(req.RiskProfile))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":           updated.ID,
			"username":     updated.Username,
			"display_name": updated.DisplayName,
			"risk_profile": updated.RiskProfile,
		},
	})
}

type changePasswordReq struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := h.Users.ChangePassword(user.ID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "password changed"})
}
