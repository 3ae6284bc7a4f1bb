package handler

import (
	"errors"
	"net/http"
	"time"

	"restops/internal/auth"
	"restops/internal/model"
	"restops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberHandler struct {
	memberRepo *repository.MemberRepository
}

func NewMemberHandler(memberRepo *repository.MemberRepository) *MemberHandler {
	return &MemberHandler{memberRepo: memberRepo}
}

// MemberRequest представляет запрос на добавление участника в состав
type MemberRequest struct {
	Name       string `json:"name" binding:"required,min=2"`
	Role       string `json:"role" binding:"required,oneof=admin manager staff"`
	Department string `json:"department" binding:"omitempty,oneof=kitchen bar service management"`
}

// LoginRequest представляет запрос на вход. Аутентификация здесь заглушка:
// пароля нет, проверяется только наличие участника в составе.
type LoginRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}

// AuthResponse представляет ответ с токеном
type AuthResponse struct {
	Token  string       `json:"token"`
	Member model.Member `json:"member"`
}

// Create добавляет участника в состав
// @Summary      Add roster member
// @Tags         Members
// @Security     BearerAuth
// @Router       /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member := h.memberRepo.Create(c.Request.Context(), model.Member{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Role:       model.Role(req.Role),
		Department: model.Department(req.Department),
		IsActive:   true,
		CreatedAt:  time.Now(),
	})
	c.JSON(http.StatusCreated, member)
}

// GetAll возвращает состав в порядке добавления
// @Summary      List roster members
// @Tags         Members
// @Security     BearerAuth
// @Router       /members [get]
func (h *MemberHandler) GetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"members": h.memberRepo.GetAll(c.Request.Context())})
}

// Delete убирает участника из состава. Назначенные на него задачи
// не переназначаются.
// @Summary      Remove roster member
// @Tags         Members
// @Security     BearerAuth
// @Router       /members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Login выдает advisory-токен для участника состава
// @Summary      Exchange member id for a token
// @Tags         Members
// @Router       /login [post]
func (h *MemberHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, err := h.memberRepo.GetByID(c.Request.Context(), req.MemberID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown member"})
		return
	}

	token, err := auth.GenerateToken(member.ID, string(member.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, Member: member})
}
