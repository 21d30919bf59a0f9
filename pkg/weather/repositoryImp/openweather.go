package repositoryImp

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"airrvie/pkg/apperr"
	"airrvie/pkg/weather/repository"
)

type openWeather struct {
	apiKey string
	httpc  *http.Client
}

// NewOpenWeather builds the OpenWeather-backed provider. The key comes
// from configuration; without one every Fetch fails and callers fall back.
func NewOpenWeather(apiKey string) repository.Provider {
	return &openWeather{
		apiKey: apiKey,
		httpc:  &http.Client{Timeout: 15 * time.Second},
	}
}

// condition maps an OpenWeather condition id to a coarse category.
func condition(id int) string {
	switch {
	case id < 300:
		return "Thunderstorm"
	case id < 400:
		return "Drizzle"
	case id < 600:
		return "Rain"
	case id < 700:
		return "Snow"
	case id < 800:
		return "Atmosphere"
	case id == 800:
		return "Clear"
	case id < 900:
		return "Clouds"
	default:
		return "Unknown"
	}
}

type currentResp struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		ID int `json:"id"`
	} `json:"weather"`
}

type forecastResp struct {
	List []struct {
		DT   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Rain struct {
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
	} `json:"list"`
}

func (w *openWeather) get(url string, out any) error {
	resp, err := w.httpc.Get(url)
	if err != nil {
		return apperr.With(apperr.ErrUpstream, "weather api unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.With(apperr.ErrUpstream, fmt.Sprintf("weather api returned %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.With(apperr.ErrUpstream, "weather api gave malformed data")
	}
	return nil
}

func (w *openWeather) Fetch(lat, lon float64, location string) (*repository.Report, error) {
	if w.apiKey == "" {
		return nil, apperr.With(apperr.ErrUpstream, "weather api key not configured")
	}

	var cur currentResp
	url := fmt.Sprintf("https://api.openweathermap.org/data/2.5/weather?lat=%f&lon=%f&appid=%s&units=metric", lat, lon, w.apiKey)
	if err := w.get(url, &cur); err != nil {
		return nil, err
	}
	var fc forecastResp
	url = fmt.Sprintf("https://api.openweathermap.org/data/2.5/forecast?lat=%f&lon=%f&appid=%s&units=metric", lat, lon, w.apiKey)
	if err := w.get(url, &fc); err != nil {
		return nil, err
	}

	condID := 0
	if len(cur.Weather) > 0 {
		condID = cur.Weather[0].ID
	}
	current := repository.Current{
		Temperature: int(math.Round(cur.Main.Temp)),
		Humidity:    cur.Main.Humidity,
		Rainfall:    cur.Rain.OneH,
		// OpenWeather reports m/s; dashboards show km/h.
		WindSpeed: int(math.Round(cur.Wind.Speed * 3.6)),
		Condition: condition(condID),
	}

	type dayAgg struct {
		temps      []float64
		rainfall   float64
		conditions map[string]int
	}
	days := map[string]*dayAgg{}
	for _, item := range fc.List {
		date := time.Unix(item.DT, 0).Format("2006-01-02")
		agg, ok := days[date]
		if !ok {
			agg = &dayAgg{conditions: map[string]int{}}
			days[date] = agg
		}
		agg.temps = append(agg.temps, item.Main.Temp)
		agg.rainfall += item.Rain.ThreeH
		id := 0
		if len(item.Weather) > 0 {
			id = item.Weather[0].ID
		}
		agg.conditions[condition(id)]++
	}

	forecast := make([]repository.ForecastDay, 0, 5)
	today := time.Now()
	for i := 0; i < 5; i++ {
		date := today.AddDate(0, 0, i).Format("2006-01-02")
		agg, ok := days[date]
		if !ok {
			forecast = append(forecast, repository.ForecastDay{
				Date:      date,
				High:      current.Temperature + 2,
				Low:       current.Temperature - 4,
				Rainfall:  0,
				Condition: current.Condition,
			})
			continue
		}
		hi, lo := agg.temps[0], agg.temps[0]
		for _, t := range agg.temps[1:] {
			hi = math.Max(hi, t)
			lo = math.Min(lo, t)
		}
		best, bestN := "", 0
		for cond, n := range agg.conditions {
			if n > bestN {
				best, bestN = cond, n
			}
		}
		forecast = append(forecast, repository.ForecastDay{
			Date:      date,
			High:      int(math.Round(hi)),
			Low:       int(math.Round(lo)),
			Rainfall:  math.Round(agg.rainfall*10) / 10,
			Condition: best,
		})
	}

	return &repository.Report{
		Location: location,
		Current:  current,
		Forecast: forecast,
		Alerts:   alerts(current),
	}, nil
}

// alerts derives field warnings from the current reading.
func alerts(cur repository.Current) []repository.Alert {
	out := []repository.Alert{}
	if cur.Rainfall > 20 {
		sev := "medium"
		if cur.Rainfall > 50 {
			sev = "high"
		}
		out = append(out, repository.Alert{
			Type:     "Heavy Rain Warning",
			Message:  "Heavy rainfall detected. Consider drainage preparations.",
			Severity: sev,
		})
	}
	if cur.WindSpeed > 30 {
		out = append(out, repository.Alert{
			Type:     "Strong Wind Warning",
			Message:  "Strong winds detected. Secure equipment and structures.",
			Severity: "medium",
		})
	}
	if cur.Temperature > 35 {
		out = append(out, repository.Alert{
			Type:     "Heat Warning",
			Message:  "High temperatures detected. Ensure proper irrigation.",
			Severity: "medium",
		})
	}
	return out
}
