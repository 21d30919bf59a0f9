package controllerImp

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/dates"
	"airrvie/pkg/journal/repository"
	"airrvie/pkg/middleware"
	"airrvie/pkg/ownership"
	"airrvie/pkg/patch"
)

type JournalCtrl struct {
	repo  repository.JournalRepository
	guard *ownership.Guard
}

func New(repo repository.JournalRepository, guard *ownership.Guard) *JournalCtrl {
	return &JournalCtrl{repo: repo, guard: guard}
}

type createReq struct {
	PlotID    string   `json:"plotId"`
	Date      string   `json:"date"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Content   *string  `json:"content"`
	Photos    []string `json:"photos"`
	AudioNote *string  `json:"audioNote"`
}

type updateReq struct {
	Date      *string   `json:"date"`
	Type      *string   `json:"type"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Photos    *[]string `json:"photos"`
	AudioNote *string   `json:"audioNote"`
}

func entryPayload(r repository.JournalRow) map[string]any {
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	return map[string]any{
		"id":        r.ID,
		"plotId":    r.PlotID,
		"date":      dates.Format(r.EntryDate),
		"type":      r.Type,
		"title":     r.Title,
		"content":   r.Content,
		"photos":    photos,
		"audioNote": r.AudioURL,
		"plotName":  r.PlotName,
		"farmName":  r.FarmName,
		"createdAt": r.CreatedAt.Format(time.RFC3339),
	}
}

func (h *JournalCtrl) List(c echo.Context) error {
	rows, err := h.repo.ListByUser(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, entryPayload(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JournalCtrl) ListByPlot(c echo.Context) error {
	uid := middleware.UID(c)
	plotID := c.Param("plot_id")
	owned, err := h.guard.PlotOwned(plotID, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if !owned {
		return apperr.JSON(c, apperr.With(apperr.ErrNotFound, "plot not found"))
	}
	rows, err := h.repo.ListByPlot(plotID, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, entryPayload(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JournalCtrl) Create(c echo.Context) error {
	uid := middleware.UID(c)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if req.PlotID == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "plot ID is required"))
	}
	if req.Title == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "title is required"))
	}

	owned, err := h.guard.PlotOwned(req.PlotID, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if !owned {
		return apperr.JSON(c, apperr.With(apperr.ErrNotFound, "plot not found"))
	}

	entryDate, err := dates.ParseOrToday(req.Date)
	if err != nil {
		return apperr.JSON(c, err)
	}
	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}
	e := &entities.JournalEntry{
		PlotID:    req.PlotID,
		UserID:    uid,
		EntryDate: entryDate,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		Photos:    photos,
		AudioURL:  req.AudioNote,
	}
	row, err := h.repo.Create(e)
	if err != nil {
		return apperr.JSON(c, err)
	}
	payload := entryPayload(*row)
	payload["message"] = "Journal entry created successfully"
	return c.JSON(http.StatusCreated, payload)
}

func (h *JournalCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	p := patch.New()
	if req.Date != nil {
		t, err := dates.Parse(*req.Date)
		if err != nil {
			return apperr.JSON(c, err)
		}
		p.Set("entry_date", t)
	}
	if req.Type != nil {
		p.Set("type", *req.Type)
	}
	if req.Title != nil {
		p.Set("title", *req.Title)
	}
	if req.Content != nil {
		p.Set("content", *req.Content)
	}
	if req.Photos != nil {
		b, err := json.Marshal(*req.Photos)
		if err != nil {
			return apperr.JSON(c, err)
		}
		p.Set("photos", string(b))
	}
	if req.AudioNote != nil {
		p.Set("audio_url", *req.AudioNote)
	}
	if err := h.repo.Update(c.Param("id"), middleware.UID(c), p); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Journal entry updated successfully"})
}

func (h *JournalCtrl) Delete(c echo.Context) error {
	if err := h.repo.SoftDelete(c.Param("id"), middleware.UID(c)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Journal entry deleted successfully"})
}

func (h *JournalCtrl) Stats(c echo.Context) error {
	s, err := h.repo.Stats(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Export streams the caller's live entries as an .xlsx workbook.
func (h *JournalCtrl) Export(c echo.Context) error {
	rows, err := h.repo.ListByUser(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}

	x := excelize.NewFile()
	const sheet = "Journal"
	x.SetSheetName("Sheet1", sheet)
	headers := []string{"Date", "Farm", "Plot", "Type", "Title", "Content", "Photos", "Audio"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		x.SetCellValue(sheet, cell, hd)
	}
	for i, r := range rows {
		content := ""
		if r.Content != nil {
			content = *r.Content
		}
		audio := ""
		if r.AudioURL != nil {
			audio = *r.AudioURL
		}
		vals := []any{
			dates.Format(r.EntryDate), r.FarmName, r.PlotName,
			r.Type, r.Title, content, strings.Join(r.Photos, "\n"), audio,
		}
		for j, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			x.SetCellValue(sheet, cell, v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=journal-%s.xlsx", time.Now().Format("20060102")))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return x.Write(c.Response())
}
