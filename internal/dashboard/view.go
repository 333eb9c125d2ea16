package dashboard

import (
	"time"

	"github.com/weatherdash/backend/internal/domain"
	"github.com/weatherdash/backend/pkg/utils"
)

// MaxHourlyCards is how many hourly points the dashboard shows
const MaxHourlyCards = 6

// Open-Meteo returns local times without seconds or offset
const (
	hourLayout = "2006-01-02T15:04"
	dateLayout = "2006-01-02"
)

// Placeholders for fields the forecast API does not provide
const (
	HumidityPlaceholder = "--%"
	UVPlaceholder       = "--"
)

// CurrentView is the current-conditions block
type CurrentView struct {
	Temperature string
	Condition   string
	Icon        string
	RainChance  string
	FeelsLike   string
	Humidity    string
	Wind        string
	UVIndex     string
}

// Card is one hourly or daily forecast tile
type Card struct {
	Label       string
	Icon        string
	Temperature string
}

// WeatherView is everything the weather panel renders
type WeatherView struct {
	City    string
	Current CurrentView
	Hourly  []Card
	Daily   []Card
}

// NewWeatherView shapes a forecast for display.
// Feels-like repeats the temperature; humidity and UV stay placeholders.
func NewWeatherView(f domain.ForecastResponse) WeatherView {
	temp := utils.FormatTemp(f.Current.Temperature) + "°"

	view := WeatherView{
		City: f.City,
		Current: CurrentView{
			Temperature: temp,
			Condition:   WeatherText(f.Current.WeatherCode),
			Icon:        WeatherIcon(f.Current.WeatherCode),
			FeelsLike:   temp,
			Humidity:    HumidityPlaceholder,
			Wind:        utils.FormatNumber(f.Current.WindSpeed) + " km/h",
			UVIndex:     UVPlaceholder,
		},
	}

	if len(f.Hourly) > 0 {
		view.Current.RainChance = "Chance of rain: " + utils.FormatNumber(f.Hourly[0].Precipitation) + "%"
	}

	hourly := f.Hourly
	if len(hourly) > MaxHourlyCards {
		hourly = hourly[:MaxHourlyCards]
	}
	view.Hourly = make([]Card, 0, len(hourly))
	for _, h := range hourly {
		view.Hourly = append(view.Hourly, Card{
			Label:       hourLabel(h.Time),
			Icon:        WeatherIcon(h.WeatherCode),
			Temperature: utils.FormatTemp(h.Temperature) + "°",
		})
	}

	view.Daily = make([]Card, 0, len(f.Daily))
	for _, d := range f.Daily {
		view.Daily = append(view.Daily, Card{
			Label:       dayLabel(d.Date),
			Icon:        WeatherIcon(d.WeatherCode),
			Temperature: utils.FormatTemp(d.TempMax) + "° / " + utils.FormatTemp(d.TempMin) + "°",
		})
	}

	return view
}

func hourLabel(v string) string {
	t, err := time.Parse(hourLayout, v)
	if err != nil {
		return v
	}
	return t.Format("15:04")
}

func dayLabel(v string) string {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return v
	}
	return t.Format("Mon")
}
