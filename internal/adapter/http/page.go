package http

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/couchcryptid/city-weather/internal/domain"
)

var busyNotice = domain.Notice{Title: "Busy", Message: "A search is already in progress."}

// pageData is the view model for the index template.
type pageData struct {
	State      domain.UiState
	Notice     *domain.Notice
	WindowSize int
}

var pageFuncs = template.FuncMap{
	// anchor turns a relative placement into absolute CSS positioning.
	"anchor": func(a domain.Anchor) template.CSS {
		css := "left:" + pct(a.RelX) + ";top:" + pct(a.RelY) + ";"
		if a.RelWidth > 0 {
			css += "width:" + pct(a.RelWidth) + ";"
		}
		if a.RelHeight > 0 {
			css += "height:" + pct(a.RelHeight) + ";"
		}
		return template.CSS(css)
	},
}

func pct(f float64) string {
	return strconv.FormatFloat(f*100, 'f', -1, 64) + "%"
}

var pageTemplate = template.Must(template.New("index").Funcs(pageFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weather App</title>
<style>
body{margin:0;font-family:Helvetica,Arial,sans-serif}
#window{position:relative;margin:0 auto;overflow:hidden;background-size:cover}
.anchored{position:absolute;transform:translate(-50%,-50%);box-sizing:border-box}
#title{font-size:28px;font-weight:bold;color:#fff;white-space:nowrap}
#details{background:rgba(0,0,0,.45);color:#fff;padding:12px;font-size:16px;line-height:1.6}
#city{font-size:16px;padding:4px}
#search{font-size:16px}
#notice{position:absolute;left:50%;top:20px;transform:translateX(-50%);background:#fff;border:1px solid #888;padding:8px 16px}
</style>
</head>
<body>
<div id="window" style="width:{{.WindowSize}}px;height:{{.WindowSize}}px;background-image:url('/background/{{.State.Presentation.Background}}?w={{.WindowSize}}&h={{.WindowSize}}')">
<div id="title" class="anchored" style="{{anchor .State.Layout.Title}}">Weather App</div>
{{- if .State.Layout.DetailsVisible}}
<div id="details" class="anchored" style="{{anchor .State.Layout.Details}}">
{{- range .State.Presentation.Lines}}
<div>{{.}}</div>
{{- end}}
</div>
{{- end}}
<form method="post" action="/search">
<input id="city" name="city" class="anchored" style="{{anchor .State.Layout.SearchInput}}" placeholder="Search City" autofocus>
<button id="search" type="submit" class="anchored" style="{{anchor .State.Layout.SearchButton}}">Search</button>
</form>
{{- with .Notice}}
<div id="notice" role="alert"><strong>{{.Title}}</strong> {{.Message}}</div>
{{- end}}
</div>
</body>
</html>
`))

func (s *Server) renderPage(w http.ResponseWriter, status int, state domain.UiState, notice *domain.Notice) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := pageData{State: state, Notice: notice, WindowSize: s.windowSize}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}
