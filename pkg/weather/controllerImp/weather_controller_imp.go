package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"airrvie/pkg/apperr"
	"airrvie/pkg/middleware"
	"airrvie/pkg/weather/repository"
)

type WeatherCtrl struct {
	provider  repository.Provider
	locations repository.LocationRepository
}

func New(provider repository.Provider, locations repository.LocationRepository) *WeatherCtrl {
	return &WeatherCtrl{provider: provider, locations: locations}
}

// fallback is the canned Mekong Delta report served when the upstream is
// unavailable. The degradation is logged; the payload carries no alerts.
func fallback() *repository.Report {
	forecast := make([]repository.ForecastDay, 0, 5)
	today := time.Now()
	for i := 0; i < 5; i++ {
		forecast = append(forecast, repository.ForecastDay{
			Date:      today.AddDate(0, 0, i).Format("2006-01-02"),
			High:      32,
			Low:       24,
			Rainfall:  0,
			Condition: "Sunny",
		})
	}
	return &repository.Report{
		Location: "Mekong Delta, Vietnam",
		Current: repository.Current{
			Temperature: 28,
			Humidity:    78,
			Rainfall:    0,
			WindSpeed:   12,
			Condition:   "Partly Cloudy",
		},
		Forecast: forecast,
		Alerts:   []repository.Alert{},
	}
}

func (h *WeatherCtrl) fetch(lat, lon float64, location string) *repository.Report {
	rep, err := h.provider.Fetch(lat, lon, location)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"lat": lat,
			"lon": lon,
		}).Warn("weather upstream failed, serving fallback")
		return fallback()
	}
	return rep
}

// Get serves weather for the given lat/lon query parameters, or for the
// Mekong Delta default when none are given.
func (h *WeatherCtrl) Get(c echo.Context) error {
	lat, lon := repository.DefaultLat, repository.DefaultLon
	location := "Mekong Delta, Vietnam"
	latS, lonS := c.QueryParam("lat"), c.QueryParam("lon")
	if latS != "" && lonS != "" {
		pLat, errLat := strconv.ParseFloat(latS, 64)
		pLon, errLon := strconv.ParseFloat(lonS, 64)
		if errLat != nil || errLon != nil {
			return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "invalid coordinates"))
		}
		lat, lon = pLat, pLon
		location = "Location (" + strconv.FormatFloat(lat, 'f', 4, 64) + ", " + strconv.FormatFloat(lon, 'f', 4, 64) + ")"
	} else if city := c.QueryParam("city"); city != "" {
		location = city
	}
	return c.JSON(http.StatusOK, h.fetch(lat, lon, location))
}

// ForPlot serves weather for the province of the plot's farm. Ownership is
// checked first; a foreign plot is not found.
func (h *WeatherCtrl) ForPlot(c echo.Context) error {
	province, district, err := h.locations.PlotLocation(c.Param("id"), middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	lat, lon := repository.Coordinates(province)
	location := province
	if district != "" {
		location = district + ", " + province
	}
	return c.JSON(http.StatusOK, h.fetch(lat, lon, location))
}

// Forecast trims the standard report to the requested number of days.
func (h *WeatherCtrl) Forecast(c echo.Context) error {
	days := 5
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "invalid days"))
		}
		days = n
	}
	rep := h.fetch(repository.DefaultLat, repository.DefaultLon, "Mekong Delta, Vietnam")
	if days < len(rep.Forecast) {
		rep.Forecast = rep.Forecast[:days]
	}
	return c.JSON(http.StatusOK, rep)
}
