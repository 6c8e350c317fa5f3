package domain

import "fmt"

// Presentation is what the display surface needs for one report.
type Presentation struct {
	Background AssetID  `json:"background"`
	Lines      []string `json:"lines"`
}

// Present selects the background and formats the report lines in display order.
// Temperatures are rounded to one decimal place here and nowhere else.
func Present(r WeatherReport) Presentation {
	sym := r.Unit.Symbol()
	return Presentation{
		Background: BackgroundFor(r.Description),
		Lines: []string{
			fmt.Sprintf("%s, %s", r.City, r.Country),
			fmt.Sprintf("Temperature: %.1f%s", r.Temperature, sym),
			fmt.Sprintf("Feels Like: %.1f%s", r.FeelsLike, sym),
			fmt.Sprintf("Condition: %s", r.Description),
			fmt.Sprintf("Humidity: %s%%", r.Humidity),
			fmt.Sprintf("Wind: %s", r.WindDirection),
			fmt.Sprintf("Pressure: %s hPa", r.Pressure),
			fmt.Sprintf("Min Temp: %.1f%s", r.TempMin, sym),
			fmt.Sprintf("Max Temp: %.1f%s", r.TempMax, sym),
		},
	}
}
