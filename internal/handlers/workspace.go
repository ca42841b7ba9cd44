package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/services"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChangeMemberRoleRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	RoleID uint `json:"role_id" binding:"required"`
}

type WorkspaceResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id"`
	InviteCode  string `json:"invite_code"`
}

type RoleSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type MemberResponse struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	WorkspaceID uint        `json:"workspace_id"`
	Role        RoleSummary `json:"role"`
	JoinedAt    time.Time   `json:"joined_at"`
	User        *MemberUser `json:"user,omitempty"`
}

// MemberUser carries display fields only; credential secrets never leave
// the handler layer.
type MemberUser struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture"`
}

func CreateWorkspace(ctx *gin.Context) {
	var body CreateWorkspaceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspace, err := services.CreateWorkspace(userID, body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"workspace": workspaceResponse(workspace)})
}

func ListMyWorkspaces(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaces, err := services.ListWorkspacesForUser(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]WorkspaceResponse, 0, len(workspaces))

	for i := range workspaces {
		response = append(response, workspaceResponse(&workspaces[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"workspaces": response})
}

func GetWorkspace(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermViewOnly) {
		return
	}

	workspace, members, err := services.GetWorkspaceDetail(workspaceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	memberResponses := make([]MemberResponse, 0, len(members))

	for i := range members {
		memberResponses = append(memberResponses, memberResponse(&members[i], false))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"workspace": workspaceResponse(workspace),
		"members":   memberResponses,
	})
}

func GetWorkspaceMembers(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermViewOnly) {
		return
	}

	members, roles, err := services.ListMembers(workspaceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	memberResponses := make([]MemberResponse, 0, len(members))

	for i := range members {
		memberResponses = append(memberResponses, memberResponse(&members[i], true))
	}

	roleResponses := make([]RoleSummary, 0, len(roles))

	for _, role := range roles {
		roleResponses = append(roleResponses, RoleSummary{ID: role.ID, Name: role.Name})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"members": memberResponses,
		"roles":   roleResponses,
	})
}

func GetWorkspaceAnalytics(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermViewOnly) {
		return
	}

	analytics, err := services.ComputeAnalytics(workspaceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"analytics": analytics})
}

func UpdateWorkspace(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermEditWorkspace) {
		return
	}

	var body UpdateWorkspaceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Empty fields are treated as "keep current value", so a description
	// cannot be cleared through this endpoint.
	workspace, err := services.UpdateWorkspace(workspaceID, body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"workspace": workspaceResponse(workspace)})
}

func ChangeMemberRole(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermChangeMemberRole) {
		return
	}

	var body ChangeMemberRoleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, err := services.ChangeMemberRole(workspaceID, body.UserID, body.RoleID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"member": memberResponse(member, false)})
}

func DeleteWorkspace(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	// Ownership, not permission flags, gates deletion; the service enforces
	// the exact-match owner check.
	currentWorkspaceID, err := services.DeleteWorkspace(workspaceID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"current_workspace_id": currentWorkspaceID})
}

func workspaceRequest(ctx *gin.Context) (userID, workspaceID uint, ok bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	workspaceID, err = utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}

	return userID, workspaceID, true
}

func workspaceResponse(workspace *models.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		OwnerID:     workspace.OwnerID,
		InviteCode:  workspace.InviteCode,
	}
}

func memberResponse(member *models.Member, withUser bool) MemberResponse {
	response := MemberResponse{
		ID:          member.ID,
		UserID:      member.UserID,
		WorkspaceID: member.WorkspaceID,
		Role:        RoleSummary{ID: member.Role.ID, Name: member.Role.Name},
		JoinedAt:    member.JoinedAt,
	}

	if withUser {
		response.User = &MemberUser{
			Name:           member.User.Name,
			Email:          member.User.Email,
			ProfilePicture: member.User.ProfilePicture,
		}
	}

	return response
}
