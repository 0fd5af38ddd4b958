package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenIssuer signs whatever claims the caller provides. No user lookup
// happens on this path; issuance is a pure function of the request body.
type TokenIssuer interface {
	Issue(claims map[string]any) (string, error)
}

type TokenHandler struct {
	issuer TokenIssuer
	prod   bool
}

func NewTokenHandler(issuer TokenIssuer, prod bool) *TokenHandler {
	return &TokenHandler{
		issuer: issuer,
		prod:   prod,
	}
}

func (h *TokenHandler) Create(ctx *gin.Context) {
	var claims map[string]any

	if err := ctx.ShouldBindJSON(&claims); err != nil {
		RespondBadRequest(ctx, "Invalid request body", gin.H{"reason": err.Error()})
		return
	}

	token, err := h.issuer.Issue(claims)

	if err != nil {
		RespondError(ctx, http.StatusInternalServerError, "signing_error", "Could not sign token", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout clears the token cookie. In prod the cookie is cross-site
// (secure, SameSite=None); in dev it stays strict so plain http works.
func (h *TokenHandler) Logout(ctx *gin.Context) {
	if h.prod {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteStrictMode)
	}

	ctx.SetCookie(
		"token",
		"",
		-1,
		"/",
		"",
		h.prod,
		true, // HttpOnly.
	)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
