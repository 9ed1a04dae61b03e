package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/timerbox/internal/render"
	"github.com/sweeney/timerbox/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"mmss": render.FormatTime,
	"onOff": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}).Parse(indexHTML))

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="1">
<title>timerbox</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; max-width: 40em; margin: 2em auto; }
h1 { font-size: 1.2em; }
.mode { font-size: 2em; letter-spacing: 0.2em; }
.time { font-size: 3em; }
.run { color: #6f6; }
.stop { color: #f66; }
table { border-collapse: collapse; margin-top: 1em; }
td { padding: 0.2em 1em 0.2em 0; color: #999; }
td + td { color: #ddd; }
</style>
</head>
<body>
<h1>timerbox</h1>
<div class="mode">{{.Timer.Mode}}</div>
{{if eq .Timer.Mode "STOPWATCH"}}
<div class="time {{if .Timer.Stopwatch.Running}}run{{else}}stop{{end}}">{{mmss .Timer.Stopwatch.Elapsed}}</div>
{{else if eq .Timer.Mode "COUNTDOWN"}}
{{if gt .Timer.Countdown.Remaining 0}}
<div class="time {{if .Timer.Countdown.Running}}run{{else}}stop{{end}}">{{mmss .Timer.Countdown.Remaining}}</div>
{{else}}
<div class="time stop">TIME UP!</div>
{{end}}
{{else}}
<div class="time">{{mmss .Timer.Countdown.Duration}}</div>
{{end}}
<table>
<tr><td>countdown set</td><td>{{.Timer.Countdown.Duration}}s</td></tr>
<tr><td>countdown finished</td><td>{{onOff .Timer.Countdown.Finished}}</td></tr>
<tr><td>stopwatch starts</td><td>{{.Counts.StopwatchStarts}}</td></tr>
<tr><td>countdown starts</td><td>{{.Counts.CountdownStarts}}</td></tr>
<tr><td>countdown finishes</td><td>{{.Counts.CountdownFinishes}}</td></tr>
<tr><td>duration changes</td><td>{{.Counts.DurationChanges}}</td></tr>
<tr><td>resets</td><td>{{.Counts.Resets}}</td></tr>
<tr><td>uptime</td><td>{{uptime .Uptime}}</td></tr>
<tr><td>mqtt connected</td><td>{{onOff .MQTTConnected}}</td></tr>
{{if .Config.Broker}}<tr><td>broker</td><td>{{.Config.Broker}}</td></tr>{{end}}
</table>
</body>
</html>
`
