package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *uint      `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"required"`
	Priority    string     `json:"priority" binding:"required"`
	AssignedTo  *uint      `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

type TaskResponse struct {
	ID          uint       `json:"id"`
	TaskCode    string     `json:"task_code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   uint       `json:"project_id"`
	WorkspaceID uint       `json:"workspace_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *uint      `json:"assigned_to"`
	CreatedByID uint       `json:"created_by"`
	DueDate     *time.Time `json:"due_date"`
}

func CreateTask(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermCreateTask) {
		return
	}

	project, ok := findWorkspaceProject(ctx, workspaceID)

	if !ok {
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task := models.Task{
		TaskCode:     utils.NewTaskCode(),
		Title:        body.Title,
		Description:  body.Description,
		ProjectID:    project.ID,
		WorkspaceID:  workspaceID,
		Status:       types.TaskStatusTodo,
		Priority:     types.TaskPriorityMedium,
		AssignedToID: body.AssignedTo,
		CreatedByID:  userID,
		DueDate:      body.DueDate,
	}

	if body.Status != "" {
		if !types.ValidTaskStatus(body.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
			return
		}
		task.Status = body.Status
	}

	if body.Priority != "" {
		if !types.ValidTaskPriority(body.Priority) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task priority"})
			return
		}
		task.Priority = body.Priority
	}

	if err := db.DB.Create(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	BroadcastWorkspaceRefresh(strconv.FormatUint(uint64(workspaceID), 10))

	ctx.JSON(http.StatusCreated, taskResponse(&task))
}

func ListTasks(ctx *gin.Context) {
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

	var tasks []models.Task

	if err := db.DB.Where("project_id = ?", project.ID).Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, taskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTask(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermEditTask) {
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidTaskStatus(body.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
		return
	}

	if !types.ValidTaskPriority(body.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task priority"})
		return
	}

	task, ok := findWorkspaceTask(ctx, workspaceID)

	if !ok {
		return
	}

	task.Title = body.Title
	task.Description = body.Description
	task.Status = body.Status
	task.Priority = body.Priority
	task.AssignedToID = body.AssignedTo
	task.DueDate = body.DueDate

	if err := db.DB.Save(task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	BroadcastWorkspaceRefresh(strconv.FormatUint(uint64(workspaceID), 10))

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(ctx)

	if !ok {
		return
	}

	if !requirePermission(ctx, userID, workspaceID, types.PermDeleteTask) {
		return
	}

	task, ok := findWorkspaceTask(ctx, workspaceID)

	if !ok {
		return
	}

	if err := db.DB.Delete(task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	BroadcastWorkspaceRefresh(strconv.FormatUint(uint64(workspaceID), 10))

	ctx.Status(http.StatusNoContent)
}

func findWorkspaceTask(ctx *gin.Context, workspaceID uint) (*models.Task, bool) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var task models.Task

	if err := db.DB.Where("id = ? AND workspace_id = ?", taskID, workspaceID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return nil, false
	}

	return &task, true
}

func taskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		TaskCode:    task.TaskCode,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		WorkspaceID: task.WorkspaceID,
		Status:      task.Status,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedToID,
		CreatedByID: task.CreatedByID,
		DueDate:     task.DueDate,
	}
}
