package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"nutriguide/internal/domain"
	"nutriguide/internal/repository"
)

// UserHandler exposes the profile persistence boundary.
type UserHandler struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
}

func NewUserHandler(logger *zap.Logger, profiles repository.ProfileRepository) *UserHandler {
	return &UserHandler{logger: logger, profiles: profiles}
}

// SaveProfile handles POST /api/user. Creating a profile that already exists
// answers 409; clients treat that as success.
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var req struct {
		UserID         string   `json:"user_id" binding:"required"`
		Age            *int     `json:"age" binding:"required"`
		Gender         *string  `json:"gender" binding:"required"`
		Weight         *float64 `json:"weight"`
		Height         *float64 `json:"height"`
		Goals          []string `json:"goals"`
		Allergies      []string `json:"allergies"`
		ActivityLevel  *string  `json:"activity_level"`
		AdditionalInfo *string  `json:"additional_info"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if *req.Age < 1 || *req.Age > 120 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age out of range"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.profiles.Get(ctx, req.UserID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "profile already exists"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profile"})
		return
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		UserID:         req.UserID,
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		ActivityLevel:  req.ActivityLevel,
		AdditionalInfo: req.AdditionalInfo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		profile.Gender = &g
	}
	for _, goal := range req.Goals {
		profile.Goals = append(profile.Goals, domain.GoalTag(goal))
	}
	if req.Allergies != nil {
		profile.Allergies = make([]domain.AllergyTag, 0, len(req.Allergies))
		for _, a := range req.Allergies {
			profile.Allergies = append(profile.Allergies, domain.AllergyTag(a))
		}
	}

	if err := h.profiles.Save(ctx, profile); err != nil {
		h.logger.Error("profile save failed", zap.Error(err), zap.String("user_id", req.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfile handles GET /api/user?userId=...
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
