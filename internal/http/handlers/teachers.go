package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirkamary/schoolhub/internal/config"
	"github.com/mirkamary/schoolhub/internal/domain/content"
	"github.com/mirkamary/schoolhub/internal/repo/mongodb"
)

type TeachersStore interface {
	List(ctx context.Context) ([]content.Teacher, error)
	GetByID(ctx context.Context, id string) (content.Teacher, error)
	Insert(ctx context.Context, t content.Teacher) (content.Teacher, error)
	Update(ctx context.Context, id string, upd content.TeacherUpdate) error
	Delete(ctx context.Context, id string) error
}

type TeachersHandler struct {
	repo TeachersStore
}

func NewTeachersHandler(repo TeachersStore) *TeachersHandler {
	return &TeachersHandler{repo: repo}
}

type CreateTeacherRequest struct {
	Name    string `json:"name" binding:"required"`
	Role    string `json:"role" binding:"required"`
	Image   string `json:"image"`
	Details string `json:"details"`
}

type UpdateTeacherRequest struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Image   *string `json:"image"`
	Details *string `json:"details"`
}

func (h *TeachersHandler) ListTeachers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	items, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list teachers")
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *TeachersHandler) GetTeacherByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	item, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, mongodb.ErrInvalidID) {
			RespondError(ctx, http.StatusBadRequest, "invalid_identifier", "Invalid teacher id", nil)
			return
		}

		if errors.Is(err, mongodb.ErrNotFound) {
			RespondNotFound(ctx, "Teacher not found")
			return
		}

		RespondInternal(ctx, "Could not fetch teacher")
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func (h *TeachersHandler) CreateTeacher(ctx *gin.Context) {
	var req CreateTeacherRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	item, err := h.repo.Insert(cctx, content.Teacher{
		Name:    req.Name,
		Role:    req.Role,
		Image:   req.Image,
		Details: req.Details,
	})

	if err != nil {
		RespondInternal(ctx, "Could not create teacher")
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func (h *TeachersHandler) UpdateTeacher(ctx *gin.Context) {
	id := ctx.Param("id")

	var req UpdateTeacherRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Name == nil && req.Role == nil && req.Image == nil && req.Details == nil {
		RespondBadRequest(ctx, "No fields to update", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Update(cctx, id, content.TeacherUpdate{
		Name:    req.Name,
		Role:    req.Role,
		Image:   req.Image,
		Details: req.Details,
	})

	if err != nil {
		if errors.Is(err, mongodb.ErrInvalidID) {
			RespondError(ctx, http.StatusBadRequest, "invalid_identifier", "Invalid teacher id", nil)
			return
		}

		if errors.Is(err, mongodb.ErrNotFound) {
			RespondNotFound(ctx, "Teacher not found")
			return
		}

		RespondInternal(ctx, "Could not update teacher")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Teacher updated successfully"})
}

func (h *TeachersHandler) DeleteTeacher(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, mongodb.ErrInvalidID) {
			RespondError(ctx, http.StatusBadRequest, "invalid_identifier", "Invalid teacher id", nil)
			return
		}

		if errors.Is(err, mongodb.ErrNotFound) {
			RespondNotFound(ctx, "Teacher not found")
			return
		}

		RespondInternal(ctx, "Could not delete teacher")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Teacher deleted successfully"})
}
