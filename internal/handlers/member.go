package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhub-dev/teamhub/internal/services"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

func JoinWorkspace(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	inviteCode := ctx.Param("invite_code")

	if inviteCode == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invite code is required"})
		return
	}

	workspace, err := services.JoinWorkspaceByInviteCode(userID, inviteCode)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Joined workspace successfully",
		"workspace_id": workspace.ID,
	})
}
