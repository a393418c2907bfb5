package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Weather is the normalized current-conditions payload.
type Weather struct {
	Temperature  float64 `json:"temperature"`
	Description  string  `json:"description"`
	Humidity     int     `json:"humidity"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	Location     string  `json:"location"`
}

// Client fetches current weather from OpenWeatherMap.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a weather client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
}

// GetWeather returns current conditions for a location. It never returns an
// error: any internal failure yields a clearly-labeled fallback payload.
func (c *Client) GetWeather(ctx context.Context, location string) Weather {
	w, err := c.fetch(ctx, location)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"location": location}).WithError(err).Warn("Weather lookup failed, returning fallback")
		return Weather{
			Description: "Weather data unavailable",
			Location:    location,
		}
	}
	return w
}

func (c *Client) fetch(ctx context.Context, location string) (Weather, error) {
	if c.apiKey == "" {
		return Weather{}, fmt.Errorf("OPENWEATHER_API_KEY not configured")
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openWeatherURL+"?"+query.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Weather{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Weather{}, fmt.Errorf("error decoding response: %w", err)
	}

	description := ""
	if len(apiResp.Weather) > 0 {
		description = apiResp.Weather[0].Description
	}

	return Weather{
		Temperature:  apiResp.Main.Temp,
		Description:  description,
		Humidity:     apiResp.Main.Humidity,
		WindSpeedKmh: apiResp.Wind.Speed * 3.6,
		Location:     apiResp.Name,
	}, nil
}
