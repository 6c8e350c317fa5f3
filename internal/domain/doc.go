// Package domain models OpenWeatherMap current-weather data and how a single
// report is presented to the user.
//
// # Data Source
//
// Reports come from the OpenWeatherMap current weather endpoint queried with
// mode=xml. The document root is <current>; the nodes read here are:
//
//	<city name="London"><country>GB</country></city>
//	<temperature value="288.15" min="286.15" max="290.15" unit="kelvin"/>
//	<feels_like value="287.5" unit="kelvin"/>
//	<humidity value="72" unit="%"/>
//	<pressure value="1012" unit="hPa"/>
//	<wind><direction value="320" code="NW" name="Northwest"/></wind>
//	<weather number="803" value="broken clouds" icon="04d"/>
//
// Every node is required. A missing node or an unparsable temperature is a
// malformed response, never a partial report. See [ParseObservation].
//
// # Units
//
// Temperatures arrive in Kelvin. One [ConversionPolicy] is chosen at start-up
// and [NewReport] applies it to all four temperature fields at once:
//
//	Celsius:    k - 273.15
//	Fahrenheit: (k - 273.15) * 9/5 + 32
//
// Rounding to one decimal place happens only when lines are formatted by
// [Present]. Humidity and pressure are passed through as the upstream strings.
//
// # Backgrounds
//
// The weather description selects a background asset by lowercase exact match
// against a small table ("clear sky", "rain", "clouds", "haze", "mist"). Any
// other phrase, including near misses like "clear-sky" or "broken clouds",
// gets the default asset. See [BackgroundFor].
//
// # View State
//
// The display has two states, Idle and ResultShown. A successful search moves
// to ResultShown with the new report; a failed search leaves the state exactly
// as it was and produces a [Notice] instead. See [UiState].
package domain
