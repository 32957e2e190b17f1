package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/middleware"
	"taskly-be/internal/models"
	"taskly-be/internal/service"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// List handles GET /api/tasks
func (tc *TaskController) List(c *gin.Context) {
	result, err := tc.taskService.List(c.Request.Context(), bearer(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TaskListResponse{
		Success: true,
		User:    models.TaskOwner{FullName: result.User.FullName},
		Data:    result.Tasks,
	})
}

// Create handles POST /api/tasks
func (tc *TaskController) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := tc.taskService.Create(c.Request.Context(), bearer(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TaskResponse{
		Success: true,
		Message: "Task created success",
		Data:    task,
	})
}

// Show handles GET /api/tasks/:id
func (tc *TaskController) Show(c *gin.Context) {
	task, err := tc.taskService.Get(c.Request.Context(), bearer(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{
		Success: true,
		Data:    task,
	})
}

// Update handles PUT and PATCH /api/tasks/:id
func (tc *TaskController) Update(c *gin.Context) {
	var req models.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := tc.taskService.Update(c.Request.Context(), bearer(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{
		Success: true,
		Message: "Task updated success",
		Data:    task,
	})
}

// Delete handles DELETE /api/tasks/:id
func (tc *TaskController) Delete(c *gin.Context) {
	if err := tc.taskService.Delete(c.Request.Context(), bearer(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Task deleted success",
	})
}

func bearer(c *gin.Context) string {
	return middleware.ExtractBearerToken(c.GetHeader("Authorization"))
}
