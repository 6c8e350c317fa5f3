package domain

import (
	"errors"
	"slices"
	"strings"
)

// View is one of the two display states.
type View int

const (
	ViewIdle View = iota
	ViewResultShown
)

func (v View) String() string {
	if v == ViewResultShown {
		return "result_shown"
	}
	return "idle"
}

func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Anchor places a widget by fractions of the window, centered on (RelX, RelY).
type Anchor struct {
	RelX      float64 `json:"rel_x"`
	RelY      float64 `json:"rel_y"`
	RelWidth  float64 `json:"rel_width"`
	RelHeight float64 `json:"rel_height"`
}

// Layout positions the title, the details frame, and the search controls.
type Layout struct {
	Title          Anchor `json:"title"`
	Details        Anchor `json:"details"`
	DetailsVisible bool   `json:"details_visible"`
	SearchInput    Anchor `json:"search_input"`
	SearchButton   Anchor `json:"search_button"`
}

var (
	idleLayout = Layout{
		Title:        Anchor{RelX: 0.5, RelY: 0.35},
		SearchInput:  Anchor{RelX: 0.5, RelY: 0.5, RelWidth: 0.7, RelHeight: 0.08},
		SearchButton: Anchor{RelX: 0.5, RelY: 0.6, RelWidth: 0.35, RelHeight: 0.075},
	}
	resultLayout = Layout{
		Title:          Anchor{RelX: 0.5, RelY: 0.1},
		Details:        Anchor{RelX: 0.5, RelY: 0.48, RelWidth: 0.75, RelHeight: 0.6},
		DetailsVisible: true,
		SearchInput:    Anchor{RelX: 0.5, RelY: 0.85, RelWidth: 0.5, RelHeight: 0.07},
		SearchButton:   Anchor{RelX: 0.5, RelY: 0.925, RelWidth: 0.3, RelHeight: 0.07},
	}
)

// LayoutFor returns the widget anchors for a view.
func LayoutFor(v View) Layout {
	if v == ViewResultShown {
		return resultLayout
	}
	return idleLayout
}

// UiState is the whole visible display. It is a value: transitions return a
// new state and never modify the receiver.
type UiState struct {
	View         View           `json:"view"`
	Report       *WeatherReport `json:"report,omitempty"`
	Presentation Presentation   `json:"presentation"`
	Layout       Layout         `json:"layout"`
}

// IdleState is the empty search screen over the default background.
func IdleState() UiState {
	return UiState{
		View:         ViewIdle,
		Presentation: Presentation{Background: AssetDefault},
		Layout:       LayoutFor(ViewIdle),
	}
}

// Show returns the ResultShown state for a report, whatever the current state.
func (s UiState) Show(r WeatherReport) UiState {
	return UiState{
		View:         ViewResultShown,
		Report:       &r,
		Presentation: Present(r),
		Layout:       LayoutFor(ViewResultShown),
	}
}

// Clone returns a copy that shares no memory with s.
func (s UiState) Clone() UiState {
	out := s
	if s.Report != nil {
		r := *s.Report
		out.Report = &r
	}
	out.Presentation.Lines = slices.Clone(s.Presentation.Lines)
	return out
}

// Notice is the user-facing equivalent of an error dialog.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NoticeFor maps a fetch error to the message shown to the user.
func NoticeFor(err error) Notice {
	if errors.Is(err, ErrNotFound) {
		return Notice{Title: "City Not Found", Message: "Please enter a valid city name."}
	}
	return Notice{Title: "Error", Message: "Unable to retrieve weather data. Please try again."}
}

// String renders a notice on one line for terminals and logs.
func (n Notice) String() string {
	return strings.TrimSpace(n.Title + ": " + n.Message)
}
