package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/auth"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
	"github.com/luvvtapp/coach/internal/user"
)

const tokenTTL = 24 * time.Hour

type createOrLoginReq struct {
	Name           string                 `json:"name" binding:"required"`
	Email          string                 `json:"email" binding:"required"`
	SelfAssessment *models.SelfAssessment `json:"self_assessment"`
}

// CreateOrLogin is the anonymous onboarding path: idempotent on normalized
// email.
func (h *Handler) CreateOrLogin(c *gin.Context) {
	var req createOrLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "auth error: invalid json (name and email required)")
		return
	}

	u, created, err := h.Users.CreateOrFetch(c.Request.Context(), req.Name, req.Email, req.SelfAssessment)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50020, "auth error: failed to create user")
		return
	}

	msg := "User exists"
	if created {
		msg = "User created successfully"
	}
	common.OK(c, gin.H{
		"message": msg,
		"user_id": u.ID,
		"profile": u,
	})
}

type signupReq struct {
	Name           string                 `json:"name" binding:"required"`
	Email          string                 `json:"email" binding:"required"`
	Password       string                 `json:"password" binding:"required"`
	SelfAssessment *models.SelfAssessment `json:"self_assessment"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "auth error: invalid json (name, email and password required)")
		return
	}

	u, err := h.Users.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.SelfAssessment)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			common.Fail(c, http.StatusBadRequest, 40010, "auth error: email already registered")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50020, "auth error: signup failed")
		return
	}

	token, err := auth.SignJWT(u.ID, h.Cfg.JWTSecret, tokenTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50021, "auth error: failed to sign token")
		return
	}

	common.OK(c, gin.H{
		"message": "Signup successful",
		"user_id": u.ID,
		"profile": u,
		"token":   token,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "auth error: invalid json (email and password required)")
		return
	}

	u, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			// one message for unknown email and wrong password
			common.Fail(c, http.StatusUnauthorized, 40120, "auth error: invalid email or password")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50020, "auth error: login failed")
		return
	}

	token, err := auth.SignJWT(u.ID, h.Cfg.JWTSecret, tokenTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50021, "auth error: failed to sign token")
		return
	}

	common.OK(c, gin.H{
		"message": "Login successful",
		"user_id": u.ID,
		"profile": u,
		"token":   token,
	})
}

// Me resolves the profile behind the bearer token.
func (h *Handler) Me(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "auth error: unauthorized")
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40420, "auth error: user not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50020, "auth error: db error")
		return
	}
	common.OK(c, u)
}

func (h *Handler) GetUserByID(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40420, "auth error: user not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50020, "auth error: db error")
		return
	}
	common.OK(c, u)
}

// UpdateAssessment fully replaces the self-assessment sub-object.
func (h *Handler) UpdateAssessment(c *gin.Context) {
	var req models.SelfAssessment
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "auth error: invalid json")
		return
	}

	if err := h.Users.UpdateAssessment(c.Request.Context(), c.Param("user_id"), &req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40420, "auth error: user not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50020, "auth error: failed to update assessment")
		return
	}
	common.OK(c, gin.H{"message": "Self-assessment updated successfully"})
}
