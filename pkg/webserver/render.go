package webserver

import (
	"bufio"
	"fmt"
	"html/template"
	"io"

	"github.com/nergy-se/fancontroller/pkg/state"
)

// responseHeader is written verbatim; the Refresh header is what keeps the page live.
const responseHeader = "HTTP/1.1 200 OK\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"Refresh: 3\r\n" +
	"\r\n"

type ColorBand struct {
	Name       string
	Background string
	Text       string
}

var (
	BandCold = ColorBand{Name: "blue", Background: "#e6f3ff", Text: "#0066cc"}
	BandMild = ColorBand{Name: "green", Background: "#e6ffe6", Text: "#00cc00"}
	BandWarm = ColorBand{Name: "orange", Background: "#fff2e6", Text: "#ff9900"}
	BandHot  = ColorBand{Name: "red", Background: "#ffe6e6", Text: "#cc0000"}
)

func ColorBandFor(tempC float64) ColorBand {
	switch {
	case tempC < 20.0:
		return BandCold
	case tempC < 40.0:
		return BandMild
	case tempC < 60.0:
		return BandWarm
	}
	return BandHot
}

type page struct {
	Band        ColorBand
	Temperature string
	Alarm       bool
	FanStatus   string
	Duty        string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html><html><head><title>Monitor de Temperatura</title><meta charset="utf-8">` +
	`<style>body{font-family:Arial;text-align:center;background:{{.Band.Background}};margin:20px;}` +
	`h1{color:#333;}.temp{font-size:48px;color:{{.Band.Text}};margin:30px;}` +
	`.alarm{color:red;font-size:24px;margin:20px;}.status{font-size:20px;margin:20px;}` +
	`button{font-size:18px;padding:10px 20px;margin:10px;background:#4CAF50;color:white;border:none;border-radius:5px;}` +
	`button:hover{background:#45a049;}</style></head><body>` +
	`<h1>Monitor de Temperatura</h1><div class="temp" data-band="{{.Band.Name}}">{{.Temperature}}°C</div>` +
	`{{if .Alarm}}<div class="alarm">⚠️ TEMPERATURA ELEVADA! ⚠️</div>{{end}}` +
	`<div class="status"><b>Status da Ventoinha:</b> {{.FanStatus}}<br><b>PWM:</b> {{.Duty}}%</div>` +
	`<form action="./wifi_on"><button>WiFi LED ON</button></form>` +
	`<form action="./wifi_off"><button>WiFi LED OFF</button></form></body></html>`))

func fanStatus(s state.Snapshot) string {
	if s.Running() {
		return "Ligada"
	}
	return "Desligada"
}

// Render writes a complete response (status line, headers, html body) for s.
func Render(w io.Writer, s state.Snapshot) error {
	bw := bufio.NewWriter(w)
	_, err := bw.WriteString(responseHeader)
	if err != nil {
		return err
	}

	err = pageTemplate.Execute(bw, page{
		Band:        ColorBandFor(s.TemperatureC),
		Temperature: fmt.Sprintf("%.1f", s.TemperatureC),
		Alarm:       s.AlarmActive,
		FanStatus:   fanStatus(s),
		Duty:        fmt.Sprintf("%.1f", s.DutyPercent),
	})
	if err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}
	return bw.Flush()
}
