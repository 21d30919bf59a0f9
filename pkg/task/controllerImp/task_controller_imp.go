package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/dates"
	"airrvie/pkg/middleware"
	"airrvie/pkg/ownership"
	"airrvie/pkg/patch"
	"airrvie/pkg/task/repository"
)

type TaskCtrl struct {
	repo  repository.TaskRepository
	guard *ownership.Guard
}

func New(repo repository.TaskRepository, guard *ownership.Guard) *TaskCtrl {
	return &TaskCtrl{repo: repo, guard: guard}
}

var validPriority = map[string]bool{
	entities.TaskPriorityLow:    true,
	entities.TaskPriorityMedium: true,
	entities.TaskPriorityHigh:   true,
}

var validStatus = map[string]bool{
	entities.TaskStatusPending:    true,
	entities.TaskStatusInProgress: true,
	entities.TaskStatusDone:       true,
}

type createReq struct {
	PlotID      string  `json:"plot_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     string  `json:"due_date"`
	Priority    string  `json:"priority"`
	Type        string  `json:"type"`
	Reminder    bool    `json:"reminder"`
}

// Completed is accepted for wire compatibility but never applied directly:
// it is derived from status on every write.
type updateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Type        *string `json:"type"`
	Reminder    *bool   `json:"reminder"`
	Completed   *bool   `json:"completed"`
}

func taskPayload(t repository.TaskRow) map[string]any {
	return map[string]any{
		"id":          t.ID,
		"plotId":      t.PlotID,
		"title":       t.Title,
		"description": t.Description,
		"dueDate":     dates.Format(t.DueDate),
		"priority":    t.Priority,
		"status":      t.Status,
		"type":        t.Type,
		"reminder":    t.Reminder,
		"completed":   t.Completed,
		"plotName":    t.PlotName,
		"farmName":    t.FarmName,
		"createdAt":   t.CreatedAt.Format(time.RFC3339),
	}
}

func (h *TaskCtrl) List(c echo.Context) error {
	rows, err := h.repo.ListByUser(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, t := range rows {
		out = append(out, taskPayload(t))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TaskCtrl) Upcoming(c echo.Context) error {
	rows, err := h.repo.Upcoming(middleware.UID(c), 7)
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, t := range rows {
		out = append(out, taskPayload(t))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TaskCtrl) Create(c echo.Context) error {
	uid := middleware.UID(c)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if req.PlotID == "" || req.Title == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "plot_id and title are required"))
	}

	owned, err := h.guard.PlotOwned(req.PlotID, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if !owned {
		return apperr.JSON(c, apperr.With(apperr.ErrNotFound, "plot not found"))
	}

	due, err := dates.Parse(req.DueDate)
	if err != nil {
		return apperr.JSON(c, err)
	}
	priority := req.Priority
	if priority == "" {
		priority = entities.TaskPriorityMedium
	}
	if !validPriority[priority] {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "invalid priority"))
	}

	t := &entities.Task{
		PlotID:      req.PlotID,
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    priority,
		Status:      entities.TaskStatusPending,
		Type:        req.Type,
		Source:      "manual",
		Reminder:    req.Reminder,
	}
	if err := h.repo.Create(t); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id":      t.ID,
		"message": "Task created successfully",
	})
}

func (h *TaskCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	p := patch.New()
	if req.Title != nil {
		p.Set("title", *req.Title)
	}
	if req.Description != nil {
		p.Set("description", *req.Description)
	}
	if req.DueDate != nil {
		t, err := dates.Parse(*req.DueDate)
		if err != nil {
			return apperr.JSON(c, err)
		}
		p.Set("due_date", t)
	}
	if req.Priority != nil {
		if !validPriority[*req.Priority] {
			return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "invalid priority"))
		}
		p.Set("priority", *req.Priority)
	}
	if req.Status != nil {
		if !validStatus[*req.Status] {
			return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "invalid status"))
		}
		p.Set("status", *req.Status)
	}
	if req.Type != nil {
		p.Set("type", *req.Type)
	}
	if req.Reminder != nil {
		p.Set("reminder", *req.Reminder)
	}
	if err := h.repo.Update(c.Param("id"), middleware.UID(c), p); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task updated successfully"})
}

func (h *TaskCtrl) Complete(c echo.Context) error {
	if err := h.repo.Complete(c.Param("id"), middleware.UID(c)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task marked as completed"})
}

func (h *TaskCtrl) Delete(c echo.Context) error {
	if err := h.repo.SoftDelete(c.Param("id"), middleware.UID(c)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskCtrl) Stats(c echo.Context) error {
	s, err := h.repo.Stats(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
