package controllerImp

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/dates"
	"airrvie/pkg/middleware"
	"airrvie/pkg/ownership"
	"airrvie/pkg/patch"
	"airrvie/pkg/plot/repository"
)

type PlotCtrl struct {
	repo  repository.PlotRepository
	guard *ownership.Guard
}

func New(repo repository.PlotRepository, guard *ownership.Guard) *PlotCtrl {
	return &PlotCtrl{repo: repo, guard: guard}
}

type createReq struct {
	FarmID           string   `json:"farmId"`
	Name             string   `json:"name"`
	AreaM2           float64  `json:"area_m2"`
	SoilType         *string  `json:"soil_type"`
	Variety          *string  `json:"variety"`
	PlantingDate     *string  `json:"planting_date"`
	HarvestDate      *string  `json:"harvest_date"`
	IrrigationMethod *string  `json:"irrigation_method"`
	Notes            *string  `json:"notes"`
	Photos           []string `json:"photos"`
}

type updateReq struct {
	Name             *string   `json:"name"`
	AreaM2           *float64  `json:"area_m2"`
	SoilType         *string   `json:"soil_type"`
	Variety          *string   `json:"variety"`
	PlantingDate     *string   `json:"planting_date"`
	HarvestDate      *string   `json:"harvest_date"`
	IrrigationMethod *string   `json:"irrigation_method"`
	Notes            *string   `json:"notes"`
	Photos           *[]string `json:"photos"`
}

func (h *PlotCtrl) List(c echo.Context) error {
	rows, err := h.repo.ListByUser(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, p := range rows {
		photos := p.Photos
		if photos == nil {
			photos = []string{}
		}
		out = append(out, map[string]any{
			"id":               p.ID,
			"farmId":           p.FarmID,
			"name":             p.Name,
			"areaM2":           p.AreaM2,
			"soilType":         p.SoilType,
			"variety":          p.Variety,
			"plantingDate":     dates.FormatPtr(p.PlantingDate),
			"harvestDate":      dates.FormatPtr(p.HarvestDate),
			"irrigationMethod": p.IrrigationMethod,
			"notes":            p.Notes,
			"photos":           photos,
			"farmName":         p.FarmName,
			"farmProvince":     p.FarmProvince,
			"farmDistrict":     p.FarmDistrict,
			"createdAt":        p.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlotCtrl) Create(c echo.Context) error {
	uid := middleware.UID(c)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if req.FarmID == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "farmId is required"))
	}
	if req.AreaM2 <= 0 {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "area_m2 must be positive"))
	}

	owned, err := h.guard.FarmOwned(req.FarmID, uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if !owned {
		return apperr.JSON(c, apperr.With(apperr.ErrNotFound, "farm not found"))
	}

	planting, err := parseOptionalDate(req.PlantingDate)
	if err != nil {
		return apperr.JSON(c, err)
	}
	harvest, err := parseOptionalDate(req.HarvestDate)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if err := repository.ValidateDateRange(planting, harvest); err != nil {
		return apperr.JSON(c, err)
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}
	p := &entities.Plot{
		FarmID:           req.FarmID,
		Name:             req.Name,
		AreaM2:           req.AreaM2,
		SoilType:         req.SoilType,
		Variety:          req.Variety,
		PlantingDate:     planting,
		HarvestDate:      harvest,
		IrrigationMethod: req.IrrigationMethod,
		Notes:            req.Notes,
		Photos:           photos,
	}
	if err := h.repo.Create(p); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id":      p.ID,
		"message": "Plot created successfully",
	})
}

func (h *PlotCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	p := patch.New()
	if req.Name != nil {
		p.Set("name", *req.Name)
	}
	if req.AreaM2 != nil {
		if *req.AreaM2 <= 0 {
			return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "area_m2 must be positive"))
		}
		p.Set("area_m2", *req.AreaM2)
	}
	if req.SoilType != nil {
		p.Set("soil_type", *req.SoilType)
	}
	if req.Variety != nil {
		p.Set("variety", *req.Variety)
	}
	if req.PlantingDate != nil {
		t, err := dates.Parse(*req.PlantingDate)
		if err != nil {
			return apperr.JSON(c, err)
		}
		p.Set("planting_date", t)
	}
	if req.HarvestDate != nil {
		t, err := dates.Parse(*req.HarvestDate)
		if err != nil {
			return apperr.JSON(c, err)
		}
		p.Set("harvest_date", t)
	}
	if req.IrrigationMethod != nil {
		p.Set("irrigation_method", *req.IrrigationMethod)
	}
	if req.Notes != nil {
		p.Set("notes", *req.Notes)
	}
	if req.Photos != nil {
		// serializer:json columns are bypassed by map updates; encode here.
		b, err := json.Marshal(*req.Photos)
		if err != nil {
			return apperr.JSON(c, err)
		}
		p.Set("photos", string(b))
	}
	if err := h.repo.Update(c.Param("id"), middleware.UID(c), p); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Plot updated successfully"})
}

func (h *PlotCtrl) Delete(c echo.Context) error {
	if err := h.repo.SoftDelete(c.Param("id"), middleware.UID(c)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Plot deleted successfully"})
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := dates.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
