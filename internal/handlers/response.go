package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/rbac"
	"github.com/teamhub-dev/teamhub/internal/services"
	"github.com/teamhub-dev/teamhub/internal/types"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal error and gets logged.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, services.ErrBadRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Bad request"})
	case errors.Is(err, services.ErrUnauthorized):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, services.ErrMemberNotInWorkspace):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Member not found in the workspace"})
	case errors.Is(err, services.ErrAlreadyMember):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Already a member of the workspace"})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requirePermission runs the authorization check that precedes every
// mutating workspace operation except creation. A missing membership reads
// as 404 so outsiders cannot probe workspace ids.
func requirePermission(ctx *gin.Context, userID, workspaceID uint, perm types.Permission) bool {
	allowed, err := rbac.NewChecker(db.DB).Can(userID, workspaceID, perm)

	if err != nil {
		if errors.Is(err, rbac.ErrNotMember) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			log.Printf("Permission check failed: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return false
	}

	return true
}
