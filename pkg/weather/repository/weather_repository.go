package repository

// Current is the present-moment reading shown on the dashboard.
type Current struct {
	Temperature int     `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   int     `json:"windSpeed"`
	Condition   string  `json:"condition"`
}

type ForecastDay struct {
	Date      string  `json:"date"`
	High      int     `json:"high"`
	Low       int     `json:"low"`
	Rainfall  float64 `json:"rainfall"`
	Condition string  `json:"condition"`
}

type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type Report struct {
	Location string        `json:"location"`
	Current  Current       `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
	Alerts   []Alert       `json:"alerts"`
}

// Provider fetches a weather report for a coordinate pair.
type Provider interface {
	Fetch(lat, lon float64, location string) (*Report, error)
}

// LocationRepository resolves a plot to the province and district of its
// farm, scoped to the owner.
type LocationRepository interface {
	PlotLocation(plotID, userID string) (province, district string, err error)
}

// provinceCoords maps Mekong Delta provinces to representative coordinates.
var provinceCoords = map[string][2]float64{
	"An Giang":   {10.5, 105.0},
	"Đồng Tháp":  {10.7, 105.8},
	"Long An":    {10.7, 106.2},
	"Tiền Giang": {10.4, 106.2},
	"Vĩnh Long":  {10.3, 106.0},
	"Cần Thơ":    {10.0, 105.8},
	"Hậu Giang":  {9.8, 105.8},
	"Sóc Trăng":  {9.6, 105.9},
	"Bạc Liêu":   {9.3, 105.7},
	"Cà Mau":     {9.2, 105.2},
}

const (
	DefaultLat = 10.0
	DefaultLon = 106.0
)

// Coordinates returns the coordinates for a province, or the Mekong Delta
// default for unknown ones.
func Coordinates(province string) (lat, lon float64) {
	if c, ok := provinceCoords[province]; ok {
		return c[0], c[1]
	}
	return DefaultLat, DefaultLon
}
