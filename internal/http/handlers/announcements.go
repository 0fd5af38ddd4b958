package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirkamary/schoolhub/internal/config"
	"github.com/mirkamary/schoolhub/internal/domain/content"
)

type AnnouncementsStore interface {
	List(ctx context.Context) ([]content.Announcement, error)
	Insert(ctx context.Context, a content.Announcement) (content.Announcement, error)
}

type AnnouncementsHandler struct {
	repo AnnouncementsStore
}

func NewAnnouncementsHandler(repo AnnouncementsStore) *AnnouncementsHandler {
	return &AnnouncementsHandler{repo: repo}
}

type CreateAnnouncementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date"`
}

func (h *AnnouncementsHandler) ListAnnouncements(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	items, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list announcements")
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *AnnouncementsHandler) CreateAnnouncement(ctx *gin.Context) {
	var req CreateAnnouncementRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	item, err := h.repo.Insert(cctx, content.Announcement{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})

	if err != nil {
		RespondInternal(ctx, "Could not create announcement")
		return
	}

	ctx.JSON(http.StatusCreated, item)
}
