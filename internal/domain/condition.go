package domain

import "strings"

// AssetID names a background image known to the asset service.
type AssetID string

const (
	AssetClearSky AssetID = "clearsky"
	AssetRain     AssetID = "raining"
	AssetClouds   AssetID = "cloudy"
	AssetHaze     AssetID = "haze"
	AssetMist     AssetID = "mist"
	AssetDefault  AssetID = "default"
)

// conditionAssets maps lowercase weather descriptions to backgrounds.
var conditionAssets = map[string]AssetID{
	"clear sky": AssetClearSky,
	"rain":      AssetRain,
	"clouds":    AssetClouds,
	"haze":      AssetHaze,
	"mist":      AssetMist,
}

// BackgroundFor lowercases the description and looks it up by exact match,
// returning AssetDefault for anything not in the table.
func BackgroundFor(description string) AssetID {
	if id, ok := conditionAssets[strings.ToLower(description)]; ok {
		return id
	}
	return AssetDefault
}

// Assets lists every asset the condition table can produce, default last.
func Assets() []AssetID {
	return []AssetID{AssetClearSky, AssetRain, AssetClouds, AssetHaze, AssetMist, AssetDefault}
}
