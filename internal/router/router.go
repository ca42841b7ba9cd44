package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/teamhub-dev/teamhub/internal/handlers"
	"github.com/teamhub-dev/teamhub/internal/middleware"
	"github.com/teamhub-dev/teamhub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:workspace_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		member := api.Group("/member", middleware.AuthMiddleware())
		{
			member.POST("/workspace/:invite_code/join", handlers.JoinWorkspace)
		}

		workspaces := api.Group("/workspaces", middleware.AuthMiddleware())
		{
			workspaces.POST("", handlers.CreateWorkspace)
			workspaces.GET("", handlers.ListMyWorkspaces)
			workspaces.GET("/:workspace_id", handlers.GetWorkspace)
			workspaces.GET("/:workspace_id/members", handlers.GetWorkspaceMembers)
			workspaces.GET("/:workspace_id/analytics", handlers.GetWorkspaceAnalytics)
			workspaces.PATCH("/:workspace_id", handlers.UpdateWorkspace)
			workspaces.PUT("/:workspace_id/members/role", handlers.ChangeMemberRole)
			workspaces.DELETE("/:workspace_id", handlers.DeleteWorkspace)

			// Project endpoints
			workspaces.POST("/:workspace_id/projects", handlers.CreateProject)
			workspaces.GET("/:workspace_id/projects", handlers.ListProjects)
			workspaces.GET("/:workspace_id/projects/:project_id", handlers.GetProject)
			workspaces.PATCH("/:workspace_id/projects/:project_id", handlers.UpdateProject)
			workspaces.DELETE("/:workspace_id/projects/:project_id", handlers.DeleteProject)

			// Task endpoints
			workspaces.POST("/:workspace_id/projects/:project_id/tasks", handlers.CreateTask)
			workspaces.GET("/:workspace_id/projects/:project_id/tasks", handlers.ListTasks)
			workspaces.PUT("/:workspace_id/tasks/:task_id", handlers.UpdateTask)
			workspaces.DELETE("/:workspace_id/tasks/:task_id", handlers.DeleteTask)
		}
	}

	return r
}
