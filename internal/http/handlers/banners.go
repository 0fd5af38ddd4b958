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

type BannersStore interface {
	List(ctx context.Context) ([]content.Banner, error)
	Insert(ctx context.Context, b content.Banner) (content.Banner, error)
	Update(ctx context.Context, id string, upd content.BannerUpdate) error
}

type BannersHandler struct {
	repo BannersStore
}

func NewBannersHandler(repo BannersStore) *BannersHandler {
	return &BannersHandler{repo: repo}
}

type CreateBannerRequest struct {
	Image       string `json:"image" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateBannerRequest struct {
	Image       *string `json:"image"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *BannersHandler) ListBanners(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	items, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list banners")
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *BannersHandler) CreateBanner(ctx *gin.Context) {
	var req CreateBannerRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	item, err := h.repo.Insert(cctx, content.Banner{
		Image:       req.Image,
		Title:       req.Title,
		Description: req.Description,
	})

	if err != nil {
		RespondInternal(ctx, "Could not create banner")
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func (h *BannersHandler) UpdateBanner(ctx *gin.Context) {
	id := ctx.Param("id")

	var req UpdateBannerRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Image == nil && req.Title == nil && req.Description == nil {
		RespondBadRequest(ctx, "No fields to update", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Update(cctx, id, content.BannerUpdate{
		Image:       req.Image,
		Title:       req.Title,
		Description: req.Description,
	})

	if err != nil {
		if errors.Is(err, mongodb.ErrInvalidID) {
			RespondError(ctx, http.StatusBadRequest, "invalid_identifier", "Invalid banner id", nil)
			return
		}

		if errors.Is(err, mongodb.ErrNotFound) {
			RespondNotFound(ctx, "Banner not found")
			return
		}

		RespondInternal(ctx, "Could not update banner")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Banner updated successfully"})
}
