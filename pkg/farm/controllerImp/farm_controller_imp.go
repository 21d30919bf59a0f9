package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/farm/repository"
	"airrvie/pkg/middleware"
	"airrvie/pkg/patch"
)

type FarmCtrl struct{ repo repository.FarmRepository }

func New(repo repository.FarmRepository) *FarmCtrl { return &FarmCtrl{repo} }

type createReq struct {
	Name        string  `json:"name"`
	Province    string  `json:"province"`
	District    string  `json:"district"`
	AddressText *string `json:"address_text"`
}

// updateReq distinguishes absent keys from explicit empties: only non-nil
// pointers become patch assignments.
type updateReq struct {
	Name        *string `json:"name"`
	Province    *string `json:"province"`
	District    *string `json:"district"`
	AddressText *string `json:"address_text"`
}

func (h *FarmCtrl) List(c echo.Context) error {
	rows, err := h.repo.ListByUser(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, f := range rows {
		out = append(out, map[string]any{
			"id":          f.ID,
			"name":        f.Name,
			"province":    f.Province,
			"district":    f.District,
			"addressText": f.AddressText,
			"plotCount":   f.PlotCount,
			"createdAt":   f.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FarmCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if req.Name == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "name is required"))
	}
	f := &entities.Farm{
		UserID:      middleware.UID(c),
		Name:        req.Name,
		Province:    req.Province,
		District:    req.District,
		AddressText: req.AddressText,
	}
	if err := h.repo.Create(f); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id":      f.ID,
		"message": "Farm created successfully",
	})
}

func (h *FarmCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	p := patch.New()
	if req.Name != nil {
		p.Set("name", *req.Name)
	}
	if req.Province != nil {
		p.Set("province", *req.Province)
	}
	if req.District != nil {
		p.Set("district", *req.District)
	}
	if req.AddressText != nil {
		p.Set("address_text", *req.AddressText)
	}
	if err := h.repo.Update(c.Param("id"), middleware.UID(c), p); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Farm updated successfully"})
}

func (h *FarmCtrl) Delete(c echo.Context) error {
	if err := h.repo.SoftDelete(c.Param("id"), middleware.UID(c)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Farm deleted successfully"})
}
