package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type GetProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	WorkspaceID uint   `json:"workspace_id"`
	CreatedByID uint   `json:"created_by"`
}

func CreateProject(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermCreateProject) {
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		WorkspaceID: workspaceID,
		CreatedByID: userID,
	}

	if body.Emoji != "" {
		project.Emoji = body.Emoji
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	BroadcastWorkspaceRefresh(strconv.FormatUint(uint64(workspaceID), 10))

	ctx.JSON(http.StatusCreated, projectResponse(&project))
}

func ListProjects(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermViewOnly) {
		return
	}

	var projects []models.Project

	if err := db.DB.Where("workspace_id = ?", workspaceID).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]GetProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermViewOnly) {
		return
	}

	project, ok := findWorkspaceProject(ctx, workspaceID)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermEditProject) {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := findWorkspaceProject(ctx, workspaceID)

	if !ok {
		return
	}

	project.Name = body.Name
	project.Description = body.Description

	if body.Emoji != "" {
		project.Emoji = body.Emoji
	}

	if err := db.DB.Save(project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	BroadcastWorkspaceRefresh(strconv.FormatUint(uint64(workspaceID), 10))

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermDeleteProject) {
		return
	}

	project, ok := findWorkspaceProject(ctx, workspaceID)

	if !ok {
		return
	}

	// Tasks under the project go with it.
	if err := db.DB.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project tasks"})
		return
	}

	if err := db.DB.Delete(project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	BroadcastWorkspaceRefresh(strconv.FormatUint(uint64(workspaceID), 10))

	ctx.Status(http.StatusNoContent)
}

func findWorkspaceProject(ctx *gin.Context, workspaceID uint) (*models.Project, bool) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND workspace_id = ?", projectID, workspaceID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return nil, false
	}

	return &project, true
}

func projectResponse(project *models.Project) GetProjectResponse {
	return GetProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Emoji:       project.Emoji,
		WorkspaceID: project.WorkspaceID,
		CreatedByID: project.CreatedByID,
	}
}
