package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type columnRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	WIPLimit *int   `json:"wip_limit"`
	IsDone   bool   `json:"is_done"`
	Position *int   `json:"position"`
}

type columnPatchRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	WIPLimit *int    `json:"wip_limit"`
	IsDone   *bool   `json:"is_done"`
}

type moveColumnRequest struct {
	Position int `json:"position"`
}

type taskRequest struct {
	ColumnID    string     `json:"column_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assignee_id"`
	MilestoneID *string    `json:"milestone_id"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position"`
}

type taskPatchRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Priority     *string    `json:"priority"`
	AssigneeID   *string    `json:"assignee_id"`
	MilestoneID  *string    `json:"milestone_id"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
}

type moveTaskRequest struct {
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

// GetBoard godoc
// @Summary Columns with their live tasks, in display order
// @Tags board
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} service.Board
// @Security BearerAuth
// @Router /api/v1/projects/{id}/board [get]
func GetBoard(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		b, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(b)
	})
}

// CreateColumn godoc
// @Summary Insert a column; omitted position appends
// @Tags board
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body columnRequest true "Column"
// @Success 201 {object} model.Column
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/projects/{id}/columns [post]
func CreateColumn(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req columnRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		col, err := svc.CreateColumn(c.UserContext(), p, id, service.ColumnInput{
			Name:     req.Name,
			Color:    req.Color,
			WIPLimit: req.WIPLimit,
			IsDone:   req.IsDone,
			Position: req.Position,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, col)
	})
}

// UpdateColumn godoc
// @Summary Update a column; wip_limit 0 removes the limit
// @Tags board
// @Accept json
// @Produce json
// @Param id path string true "Column ID"
// @Param body body columnPatchRequest true "Changes"
// @Success 200 {object} model.Column
// @Security BearerAuth
// @Router /api/v1/columns/{id} [patch]
func UpdateColumn(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req columnPatchRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		col, err := svc.UpdateColumn(c.UserContext(), p, id, service.ColumnPatch{
			Name:     req.Name,
			Color:    req.Color,
			WIPLimit: req.WIPLimit,
			IsDone:   req.IsDone,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(col)
	})
}

// MoveColumn godoc
// @Summary Move a column to a new position
// @Tags board
// @Accept json
// @Produce json
// @Param id path string true "Column ID"
// @Param body body moveColumnRequest true "Target position"
// @Success 200 {object} model.Column
// @Security BearerAuth
// @Router /api/v1/columns/{id}/move [post]
func MoveColumn(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req moveColumnRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		col, err := svc.MoveColumn(c.UserContext(), p, id, req.Position)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(col)
	})
}

// DeleteColumn godoc
// @Summary Delete a column, moving its tasks to move_to
// @Tags board
// @Param id path string true "Column ID"
// @Param move_to query string false "Column receiving the tasks"
// @Success 204
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/columns/{id} [delete]
func DeleteColumn(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		moveTo := c.Query("move_to")
		if moveTo != "" {
			if _, err := parseID(moveTo); err != nil {
				return fail(c, err)
			}
		}
		if err := svc.DeleteColumn(c.UserContext(), p, id, moveTo); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	})
}

// CreateTask godoc
// @Summary Create a task; omitted position appends
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body taskRequest true "Task"
// @Success 201 {object} model.Task
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/projects/{id}/tasks [post]
func CreateTask(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req taskRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		t, err := svc.CreateTask(c.UserContext(), p, id, service.TaskInput{
			ColumnID:    req.ColumnID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			AssigneeID:  req.AssigneeID,
			MilestoneID: req.MilestoneID,
			DueDate:     req.DueDate,
			Position:    req.Position,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, t)
	})
}

// ListArchivedTasks godoc
// @Summary Archived tasks of a project
// @Tags tasks
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} model.Task
// @Security BearerAuth
// @Router /api/v1/projects/{id}/tasks/archived [get]
func ListArchivedTasks(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		tasks, err := svc.ListArchivedTasks(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(tasks))
	})
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [get]
func GetTask(svc service.BoardService) fiber.Handler {
	return taskAction(svc.GetTask)
}

// UpdateTask godoc
// @Summary Update a task; empty assignee_id or milestone_id clears them
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body taskPatchRequest true "Changes"
// @Success 200 {object} model.Task
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [patch]
func UpdateTask(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req taskPatchRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		t, err := svc.UpdateTask(c.UserContext(), p, id, service.TaskPatch{
			Title:        req.Title,
			Description:  req.Description,
			Priority:     req.Priority,
			AssigneeID:   req.AssigneeID,
			MilestoneID:  req.MilestoneID,
			DueDate:      req.DueDate,
			ClearDueDate: req.ClearDueDate,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	})
}

// MoveTask godoc
// @Summary Move a task within or across columns
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body moveTaskRequest true "Target"
// @Success 200 {object} model.Task
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/tasks/{id}/move [post]
func MoveTask(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req moveTaskRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		if _, err := parseID(req.ColumnID); err != nil {
			return fail(c, err)
		}
		t, err := svc.MoveTask(c.UserContext(), p, id, req.ColumnID, req.Position)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	})
}

// ArchiveTask godoc
// @Summary Archive a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Security BearerAuth
// @Router /api/v1/tasks/{id}/archive [post]
func ArchiveTask(svc service.BoardService) fiber.Handler {
	return taskAction(svc.ArchiveTask)
}

// RestoreTask godoc
// @Summary Restore an archived task to the end of its column
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/tasks/{id}/restore [post]
func RestoreTask(svc service.BoardService) fiber.Handler {
	return taskAction(svc.RestoreTask)
}

func taskAction(fn func(ctx context.Context, p auth.Principal, id string) (*model.Task, error)) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		t, err := fn(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	})
}

// DeleteTask godoc
// @Summary Soft-delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [delete]
func DeleteTask(svc service.BoardService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		if err := svc.DeleteTask(c.UserContext(), p, id); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	})
}
