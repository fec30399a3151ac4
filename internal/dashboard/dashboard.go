// Package dashboard renders the single-page HTML view: digest, headline
// table, chart widget and report embeds.
package dashboard

import (
	"html/template"
	"io"
)

// Row is one headline in the table.
type Row struct {
	Published string
	Source    string
	Title     string
	Link      string
}

// Notice reports a failed source to the reader.
type Notice struct {
	Source  string
	Message string
}

// Page carries everything the template needs for one render.
type Page struct {
	Title        string
	GeneratedAt  string
	Digest       string
	Rows         []Row
	Notices      []Notice
	Empty        bool
	TickerHint   string
	ChartSymbol  string
	ChartURL     string
	ReportURLs   []string
	IframeHeight int
}

const pageHTML = `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; max-width: 72rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #ddd; }
pre.digest { white-space: pre-wrap; background: #f7f7f7; padding: 1rem; }
p.notice { color: #a33; }
p.hint { color: #36c; }
iframe { border: 0; width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Oluşturulma: {{.GeneratedAt}} — <a href="/?refresh=1">Yenile</a></p>

{{range .Notices}}<p class="notice">Kaynak alınamadı: {{.Source}} — {{.Message}}</p>
{{end}}

{{if .Empty}}
<p>Filtreye göre haber bulunamadı. "Sadece bugünün haberleri" seçimini kapatıp tekrar deneyebilirsin.</p>
{{else}}
<h2>Günlük Özet</h2>
<pre class="digest">{{.Digest}}</pre>

<h2>Tüm Başlıklar</h2>
<table>
<tr><th>Yayın</th><th>Kaynak</th><th>Başlık</th></tr>
{{range .Rows}}<tr><td>{{.Published}}</td><td>{{.Source}}</td><td>{{if .Link}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</td></tr>
{{end}}</table>
{{end}}

{{if .ChartURL}}
<h2>Hisse Grafiği — {{.ChartSymbol}}</h2>
{{if .TickerHint}}<p class="hint">{{.TickerHint}}</p>{{end}}
<iframe src="{{.ChartURL}}" height="480"></iframe>
{{end}}

{{if .ReportURLs}}
<h2>Looker Studio Raporları</h2>
{{range $i, $u := .ReportURLs}}<h3>Rapor {{$i}}</h3>
<iframe src="{{$u}}" height="{{$.IframeHeight}}"></iframe>
{{end}}
{{else}}
<p class="hint">Looker Studio embed linki eklendiğinde raporlar burada gözükecek.</p>
{{end}}

</body>
</html>
`

var tmpl = template.Must(template.New("dashboard").Parse(pageHTML))

// Render writes the page as HTML.
func Render(w io.Writer, p Page) error {
	return tmpl.Execute(w, p)
}
