package domain

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// currentXML mirrors the subset of the <current> document that reports use.
// Pointer fields stay nil when the node or attribute is absent.
type currentXML struct {
	XMLName     xml.Name     `xml:"current"`
	City        *cityXML     `xml:"city"`
	Temperature *temperature `xml:"temperature"`
	FeelsLike   *valueAttr   `xml:"feels_like"`
	Humidity    *valueAttr   `xml:"humidity"`
	Pressure    *valueAttr   `xml:"pressure"`
	Wind        *struct {
		Direction *struct {
			Name *string `xml:"name,attr"`
		} `xml:"direction"`
	} `xml:"wind"`
	Weather *valueAttr `xml:"weather"`
}

type cityXML struct {
	Name    *string `xml:"name,attr"`
	Country *string `xml:"country"`
}

type temperature struct {
	Value *string `xml:"value,attr"`
	Min   *string `xml:"min,attr"`
	Max   *string `xml:"max,attr"`
}

type valueAttr struct {
	Value *string `xml:"value,attr"`
}

// ParseObservation decodes an OpenWeatherMap current-weather XML document.
// Any missing node or unparsable Kelvin value yields an error wrapping
// ErrMalformedResponse.
func ParseObservation(data []byte) (Observation, error) {
	var doc currentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Observation{}, fmt.Errorf("%w: decode xml: %v", ErrMalformedResponse, err)
	}

	p := &nodeParser{}
	obs := Observation{
		City:          p.text("city@name", cityName(doc.City)),
		Country:       p.text("city/country", cityCountry(doc.City)),
		TemperatureK:  p.kelvin("temperature@value", tempAttr(doc.Temperature, func(t *temperature) *string { return t.Value })),
		TempMinK:      p.kelvin("temperature@min", tempAttr(doc.Temperature, func(t *temperature) *string { return t.Min })),
		TempMaxK:      p.kelvin("temperature@max", tempAttr(doc.Temperature, func(t *temperature) *string { return t.Max })),
		FeelsLikeK:    p.kelvin("feels_like@value", value(doc.FeelsLike)),
		Humidity:      p.text("humidity@value", value(doc.Humidity)),
		Pressure:      p.text("pressure@value", value(doc.Pressure)),
		WindDirection: p.text("wind/direction@name", windDirection(doc)),
		Description:   p.text("weather@value", value(doc.Weather)),
	}
	if p.err != nil {
		return Observation{}, p.err
	}
	return obs, nil
}

// nodeParser records the first missing or invalid node so ParseObservation
// can read every field in one expression.
type nodeParser struct {
	err error
}

func (p *nodeParser) text(path string, v *string) string {
	if v == nil {
		p.fail("missing %s", path)
		return ""
	}
	return *v
}

func (p *nodeParser) kelvin(path string, v *string) float64 {
	s := strings.TrimSpace(p.text(path, v))
	if p.err != nil {
		return 0
	}
	k, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail("invalid %s %q", path, s)
		return 0
	}
	return k
}

func (p *nodeParser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
	}
}

func cityName(c *cityXML) *string {
	if c == nil {
		return nil
	}
	return c.Name
}

func cityCountry(c *cityXML) *string {
	if c == nil {
		return nil
	}
	return c.Country
}

func tempAttr(t *temperature, pick func(*temperature) *string) *string {
	if t == nil {
		return nil
	}
	return pick(t)
}

func value(v *valueAttr) *string {
	if v == nil {
		return nil
	}
	return v.Value
}

func windDirection(doc currentXML) *string {
	if doc.Wind == nil || doc.Wind.Direction == nil {
		return nil
	}
	return doc.Wind.Direction.Name
}
