package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirkamary/schoolhub/internal/config"
	"github.com/mirkamary/schoolhub/internal/domain/user"
	"github.com/mirkamary/schoolhub/internal/users"
)

// UserLifecycle is the slice of the lifecycle service these handlers
// consume.
type UserLifecycle interface {
	Upsert(ctx context.Context, p user.Profile) (users.UpsertResult, error)
	PatchRole(ctx context.Context, email, role string) (users.PatchResult, error)
	GetByEmail(ctx context.Context, email string) (*user.Record, error)
	List(ctx context.Context, opts users.ListOptions) ([]user.Record, error)
}

type UsersHandler struct {
	svc UserLifecycle
}

func NewUsersHandler(svc UserLifecycle) *UsersHandler {
	return &UsersHandler{svc: svc}
}

type PatchRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	recs, err := h.svc.List(cctx, users.ListOptions{})

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, recs)
}

func (h *UsersHandler) GetUserByEmail(ctx *gin.Context) {
	email := ctx.Param("email")

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	rec, err := h.svc.GetByEmail(cctx, email)

	if err != nil {
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	// absence is a valid outcome on this route, not a 404
	if rec == nil {
		ctx.Status(http.StatusOK)
		return
	}

	ctx.JSON(http.StatusOK, rec)
}

func (h *UsersHandler) PatchUserRole(ctx *gin.Context) {
	email := ctx.Param("email")

	var req PatchRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	res, err := h.svc.PatchRole(cctx, email, req.Role)

	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		if errors.Is(err, users.ErrNoChange) {
			RespondError(ctx, http.StatusBadRequest, "no_change", "No changes made to the user", nil)
			return
		}

		RespondInternal(ctx, "Failed to update user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"result":  res,
	})
}

// UpsertUser handles the open profile document on PUT /user. The body
// is bound as a raw map so client fields beyond the known ones are
// stored verbatim.
func (h *UsersHandler) UpsertUser(ctx *gin.Context) {
	var body map[string]any

	if err := ctx.ShouldBindJSON(&body); err != nil {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"reason": err.Error()})
		return
	}

	email, _ := body["email"].(string)
	displayName, _ := body["displayName"].(string)

	if email == "" || displayName == "" {
		RespondBadRequest(ctx, "email and displayName are required", nil)
		return
	}

	status, _ := body["status"].(string)

	extra := make(map[string]any, len(body))

	for k, v := range body {
		switch k {
		case "email", "displayName", "status", "timestamp", "_id":
			// named or server-assigned fields never ride along as extras
		default:
			extra[k] = v
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	res, err := h.svc.Upsert(cctx, user.Profile{
		Email:       email,
		DisplayName: displayName,
		Status:      status,
		Extra:       extra,
	})

	if err != nil {
		RespondInternal(ctx, "Could not save user")
		return
	}

	code := http.StatusOK

	if res.Outcome == users.OutcomeCreated {
		code = http.StatusCreated
	}

	ctx.JSON(code, res)
}
