package weather

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
	xhttp "RunSight/pkg/http"
)

// Client fetches current conditions from an Open-Meteo compatible endpoint.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type forecastResponse struct {
	Elevation float64 `json:"elevation"`
	Current   struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
	} `json:"current"`
}

// Current returns conditions for the given location.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*models.RaceConditions, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("weather service not configured")
	}
	var resp forecastResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/forecast",
		QueryParams: map[string][]string{
			"latitude":  {strconv.FormatFloat(lat, 'f', 4, 64)},
			"longitude": {strconv.FormatFloat(lon, 'f', 4, 64)},
			"current":   {"temperature_2m,relative_humidity_2m"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("weather current: %w", err)
	}

	return &models.RaceConditions{
		TemperatureC: resp.Current.Temperature,
		Humidity:     resp.Current.Humidity,
		HeatIndex:    HeatIndex(resp.Current.Temperature, resp.Current.Humidity),
		AltitudeM:    resp.Elevation,
	}, nil
}

// HeatIndex combines temperature and humidity into apparent temperature in
// degC. Below 27 degC humidity has no meaningful effect and the raw
// temperature is returned.
func HeatIndex(tempC, humidityPct float64) float64 {
	if tempC < 27 {
		return tempC
	}
	t := tempC*9/5 + 32
	rh := humidityPct
	// Rothfusz regression, degF
	hi := -42.379 + 2.04901523*t + 10.14333127*rh -
		0.22475541*t*rh - 0.00683783*t*t - 0.05481717*rh*rh +
		0.00122874*t*t*rh + 0.00085282*t*rh*rh - 0.00000199*t*t*rh*rh
	if hi < t {
		hi = t
	}
	return (hi - 32) * 5 / 9
}

var _ domsvc.WeatherProvider = (*Client)(nil)
