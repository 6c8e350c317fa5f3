// Command mockapi serves canned OpenWeatherMap current-weather XML so the
// shells can run without an API key. Known cities return a fixture; any other
// city returns 404 like the real endpoint.
//
// Usage:
//
//	go run ./cmd/mockapi -addr :8090
//	OWM_BASE_URL=http://localhost:8090/data/2.5/weather OWM_API_KEY=dev go run ./cmd/weather
//
// With -out, the fixtures are written as <city>.xml files and the command exits.
// With -assets, solid-colour placeholder backgrounds are written instead, so
// the default ASSET_DIR can be populated without the original images:
//
//	go run ./cmd/mockapi -assets WeatherApp/images
package main

import (
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// fixture is one canned observation. Temperatures are Kelvin.
type fixture struct {
	name      string
	country   string
	temp      float64
	feelsLike float64
	min       float64
	max       float64
	humidity  int
	pressure  int
	wind      string
	weather   string
}

var fixtures = []fixture{
	{name: "London", country: "GB", temp: 288.15, feelsLike: 287.5, min: 286.15, max: 290.15, humidity: 72, pressure: 1012, wind: "NW", weather: "clouds"},
	{name: "Cairo", country: "EG", temp: 305.15, feelsLike: 303.9, min: 303.15, max: 307.15, humidity: 20, pressure: 1009, wind: "N", weather: "clear sky"},
	{name: "Mumbai", country: "IN", temp: 301.15, feelsLike: 305.2, min: 300.15, max: 302.15, humidity: 84, pressure: 1006, wind: "WSW", weather: "rain"},
	{name: "Beijing", country: "CN", temp: 293.15, feelsLike: 292.6, min: 291.15, max: 295.15, humidity: 45, pressure: 1015, wind: "SE", weather: "haze"},
	{name: "San Francisco", country: "US", temp: 287.15, feelsLike: 286.7, min: 285.15, max: 289.15, humidity: 88, pressure: 1018, wind: "W", weather: "mist"},
	{name: "Reykjavik", country: "IS", temp: 276.15, feelsLike: 271.9, min: 275.15, max: 277.15, humidity: 79, pressure: 998, wind: "NE", weather: "light snow"},
}

type valueXML struct {
	Value string `xml:"value,attr"`
	Unit  string `xml:"unit,attr,omitempty"`
}

type currentXML struct {
	XMLName xml.Name `xml:"current"`
	City    struct {
		Name    string `xml:"name,attr"`
		Country string `xml:"country"`
	} `xml:"city"`
	Temperature struct {
		Value string `xml:"value,attr"`
		Min   string `xml:"min,attr"`
		Max   string `xml:"max,attr"`
		Unit  string `xml:"unit,attr"`
	} `xml:"temperature"`
	FeelsLike valueXML `xml:"feels_like"`
	Humidity  valueXML `xml:"humidity"`
	Pressure  valueXML `xml:"pressure"`
	Wind      struct {
		Direction struct {
			Code string `xml:"code,attr"`
			Name string `xml:"name,attr"`
		} `xml:"direction"`
	} `xml:"wind"`
	Weather    valueXML `xml:"weather"`
	LastUpdate valueXML `xml:"lastupdate"`
}

func kelvin(k float64) string {
	return strconv.FormatFloat(k, 'f', 2, 64)
}

// render encodes a fixture in the current-weather XML layout.
func (f fixture) render(now time.Time) ([]byte, error) {
	var doc currentXML
	doc.City.Name = f.name
	doc.City.Country = f.country
	doc.Temperature.Value = kelvin(f.temp)
	doc.Temperature.Min = kelvin(f.min)
	doc.Temperature.Max = kelvin(f.max)
	doc.Temperature.Unit = "kelvin"
	doc.FeelsLike = valueXML{Value: kelvin(f.feelsLike), Unit: "kelvin"}
	doc.Humidity = valueXML{Value: strconv.Itoa(f.humidity), Unit: "%"}
	doc.Pressure = valueXML{Value: strconv.Itoa(f.pressure), Unit: "hPa"}
	doc.Wind.Direction.Code = f.wind
	doc.Wind.Direction.Name = f.wind
	doc.Weather = valueXML{Value: f.weather}
	doc.LastUpdate = valueXML{Value: now.UTC().Format("2006-01-02T15:04:05")}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f.name, err)
	}
	return append([]byte(xml.Header), body...), nil
}

func lookup(city string) (fixture, bool) {
	key := strings.ToLower(strings.TrimSpace(city))
	for _, f := range fixtures {
		if strings.ToLower(f.name) == key {
			return f, true
		}
	}
	return fixture{}, false
}

func newHandler(logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("appid") == "" {
			http.Error(w, `{"cod":401,"message":"Invalid API key."}`, http.StatusUnauthorized)
			return
		}
		f, ok := lookup(q.Get("q"))
		if !ok {
			logger.Info("unknown city", "q", q.Get("q"))
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
			return
		}
		body, err := f.render(time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(body)
	})
	return mux
}

func writeFixtures(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	now := time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)
	for _, f := range fixtures {
		body, err := f.render(now)
		if err != nil {
			return err
		}
		name := strings.ReplaceAll(strings.ToLower(f.name), " ", "_") + ".xml"
		if err := os.WriteFile(filepath.Join(dir, name), body, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// placeholders are the background files the asset loader expects, each with
// its own colour so views are easy to tell apart.
var placeholders = []struct {
	file   string
	colour color.RGBA
}{
	{"clearsky.png", color.RGBA{R: 92, G: 172, B: 238, A: 255}},
	{"raining.png", color.RGBA{R: 72, G: 86, B: 110, A: 255}},
	{"cloudy.jpg", color.RGBA{R: 150, G: 160, B: 172, A: 255}},
	{"haze.png", color.RGBA{R: 210, G: 190, B: 150, A: 255}},
	{"mist.jpg", color.RGBA{R: 190, G: 200, B: 205, A: 255}},
	{"default.jpg", color.RGBA{R: 40, G: 70, B: 120, A: 255}},
}

func writePlaceholders(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, ph := range placeholders {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: ph.colour}, image.Point{}, draw.Src)

		f, err := os.Create(filepath.Join(dir, ph.file))
		if err != nil {
			return err
		}
		if filepath.Ext(ph.file) == ".jpg" {
			err = jpeg.Encode(f, img, nil)
		} else {
			err = png.Encode(f, img)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", ph.file, err)
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("mockapi failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", ":8090", "listen address")
	out := flag.String("out", "", "write fixtures to this directory and exit")
	assetDir := flag.String("assets", "", "write placeholder backgrounds to this directory and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *assetDir != "" {
		if err := writePlaceholders(*assetDir); err != nil {
			return err
		}
		logger.Info("placeholder backgrounds written", "dir", *assetDir, "count", len(placeholders))
		return nil
	}

	if *out != "" {
		if err := writeFixtures(*out); err != nil {
			return err
		}
		logger.Info("fixtures written", "dir", *out, "count", len(fixtures))
		return nil
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newHandler(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("mock OpenWeatherMap listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
