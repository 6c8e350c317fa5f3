package domain

import "time"

// Observation holds the upstream values of one lookup before unit conversion.
// Temperatures are in Kelvin.
type Observation struct {
	City          string
	Country       string
	TemperatureK  float64
	FeelsLikeK    float64
	TempMinK      float64
	TempMaxK      float64
	Humidity      string
	Pressure      string
	WindDirection string
	Description   string
}

// WeatherReport is the structured result of one successful query, with
// temperatures already in the display unit.
type WeatherReport struct {
	City          string           `json:"city"`
	Country       string           `json:"country"`
	Temperature   float64          `json:"temperature"`
	FeelsLike     float64          `json:"feels_like"`
	TempMin       float64          `json:"temp_min"`
	TempMax       float64          `json:"temp_max"`
	Unit          ConversionPolicy `json:"unit"`
	Humidity      string           `json:"humidity"`
	WindDirection string           `json:"wind_direction"`
	Pressure      string           `json:"pressure"`
	Description   string           `json:"description"`
	FetchedAt     time.Time        `json:"fetched_at"`
}

// NewReport converts all four temperature fields of obs with the same policy.
func NewReport(obs Observation, policy ConversionPolicy) WeatherReport {
	return WeatherReport{
		City:          obs.City,
		Country:       obs.Country,
		Temperature:   policy.ToDisplayUnit(obs.TemperatureK),
		FeelsLike:     policy.ToDisplayUnit(obs.FeelsLikeK),
		TempMin:       policy.ToDisplayUnit(obs.TempMinK),
		TempMax:       policy.ToDisplayUnit(obs.TempMaxK),
		Unit:          policy,
		Humidity:      obs.Humidity,
		WindDirection: obs.WindDirection,
		Pressure:      obs.Pressure,
		Description:   obs.Description,
		FetchedAt:     clock.Now().UTC(),
	}
}
