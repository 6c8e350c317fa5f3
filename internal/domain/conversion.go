package domain

import (
	"fmt"
	"strings"
)

const kelvinOffset = 273.15

// ConversionPolicy selects the display unit applied to Kelvin temperatures.
type ConversionPolicy int

const (
	Celsius ConversionPolicy = iota
	Fahrenheit
)

// KelvinToCelsius converts without rounding.
func KelvinToCelsius(k float64) float64 {
	return k - kelvinOffset
}

// KelvinToFahrenheit converts without rounding.
func KelvinToFahrenheit(k float64) float64 {
	return (k-kelvinOffset)*9/5 + 32
}

// ToDisplayUnit converts a Kelvin value into the policy's unit.
func (p ConversionPolicy) ToDisplayUnit(kelvin float64) float64 {
	if p == Fahrenheit {
		return KelvinToFahrenheit(kelvin)
	}
	return KelvinToCelsius(kelvin)
}

// Symbol is the suffix used on formatted temperature lines.
func (p ConversionPolicy) Symbol() string {
	if p == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (p ConversionPolicy) String() string {
	if p == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

func (p ConversionPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *ConversionPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseConversionPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseConversionPolicy accepts "celsius", "c", "fahrenheit" or "f" in any case.
func ParseConversionPolicy(s string) (ConversionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "celsius", "c":
		return Celsius, nil
	case "fahrenheit", "f":
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("unknown temperature unit %q", s)
	}
}
