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
	userrepo "airrvie/pkg/user/repository"
)

type UserCtrl struct {
	repo  userrepo.UserRepository
	farms repository.FarmRepository
}

func New(repo userrepo.UserRepository, farms repository.FarmRepository) *UserCtrl {
	return &UserCtrl{repo: repo, farms: farms}
}

type updateReq struct {
	DisplayName *string `json:"display_name"`
	Locale      *string `json:"locale"`
	FontScale   *string `json:"font_scale"`
}

func userPayload(u *entities.User) map[string]any {
	return map[string]any{
		"id":          u.ID,
		"phone":       u.Phone,
		"email":       u.Email,
		"displayName": u.DisplayName,
		"locale":      u.Locale,
		"fontScale":   u.FontScale,
		"createdAt":   u.CreatedAt.Format(time.RFC3339),
	}
}

// List mirrors the mobile client's expectation of a one-element collection
// holding the caller.
func (h *UserCtrl) List(c echo.Context) error {
	u, err := h.repo.FindByID(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, []map[string]any{userPayload(u)})
}

func (h *UserCtrl) Me(c echo.Context) error {
	u, err := h.repo.FindByID(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, userPayload(u))
}

func (h *UserCtrl) UpdateMe(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	p := patch.New()
	if req.DisplayName != nil {
		p.Set("display_name", *req.DisplayName)
	}
	if req.Locale != nil {
		p.Set("locale", *req.Locale)
	}
	if req.FontScale != nil {
		p.Set("font_scale", *req.FontScale)
	}
	if err := h.repo.Update(middleware.UID(c), p); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User information updated successfully"})
}

func (h *UserCtrl) Stats(c echo.Context) error {
	s, err := h.repo.Stats(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *UserCtrl) Profile(c echo.Context) error {
	uid := middleware.UID(c)
	u, err := h.repo.FindByID(uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	farms, err := h.farms.ListByUser(uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	recentTasks, err := h.repo.RecentTasks(uid, 5)
	if err != nil {
		return apperr.JSON(c, err)
	}
	recentJournal, err := h.repo.RecentJournal(uid, 5)
	if err != nil {
		return apperr.JSON(c, err)
	}

	farmList := make([]map[string]any, 0, len(farms))
	for _, f := range farms {
		farmList = append(farmList, map[string]any{
			"id":        f.ID,
			"name":      f.Name,
			"province":  f.Province,
			"district":  f.District,
			"plotCount": f.PlotCount,
			"createdAt": f.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":          userPayload(u),
		"farms":         farmList,
		"recentTasks":   recentTasks,
		"recentJournal": recentJournal,
	})
}
