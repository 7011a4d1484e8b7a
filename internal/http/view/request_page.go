package view

import (
	"bytes"
	"html/template"
	"time"

	"github.com/cdentertainment/site-api/internal/app/model"
)

// RequestPageData is everything the guest song request page shows for one render.
type RequestPageData struct {
	Title   string
	State   string
	Query   string
	Results []model.SongCandidate
	Recent  []model.SongRequest
	Error   string
	Notice  string
}

// Closed reports whether the page should show the "not taking requests" message.
func (d RequestPageData) Closed() bool { return d.State == "closed" }

var requestPageTmpl = template.Must(template.New("request_page").Funcs(template.FuncMap{
	"clock": func(t time.Time) string { return t.UTC().Format("15:04") },
}).Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>{{.Title}}</title>
	<style>
		:root {
			--bg: #090a0f;
			--card: rgba(255, 255, 255, 0.05);
			--border: rgba(255, 255, 255, 0.15);
			--text: #e7ecff;
			--muted: #a1acc5;
			--accent: #f472b6;
			--danger: #fca5a5;
			font-family: "Inter", -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
		}
		* { box-sizing: border-box; }
		body { margin: 0; min-height: 100vh; background: var(--bg); color: var(--text); display: flex; justify-content: center; }
		.card { background: var(--card); border: 1px solid var(--border); border-radius: 18px; padding: 28px; width: min(640px, 94vw); margin: 32px 0; }
		p, .muted { color: var(--muted); }
		form.search { display: flex; gap: 8px; margin: 16px 0; }
		input[type=search] { flex: 1; padding: 12px; border-radius: 10px; border: 1px solid var(--border); background: transparent; color: var(--text); }
		button { padding: 0 18px; height: 42px; border-radius: 999px; border: 0; background: var(--accent); color: #050708; font-weight: 600; cursor: pointer; }
		ul { list-style: none; padding: 0; margin: 0; }
		li { display: flex; align-items: center; gap: 12px; padding: 10px 0; border-bottom: 1px solid var(--border); }
		li img { width: 48px; height: 48px; border-radius: 8px; object-fit: cover; }
		li .song { flex: 1; }
		.error { color: var(--danger); }
		.notice { color: var(--accent); }
	</style>
</head>
<body>
	<div class="card">
		<h1>Request a song</h1>
		{{if .Closed}}
		<p>Song requests are not open right now. Check back during the event!</p>
		{{else}}
		<form class="search" method="get" action="/request">
			<input type="search" name="q" value="{{.Query}}" placeholder="Search by song or artist" required />
			<button type="submit">Search</button>
		</form>
		{{end}}

		{{if .Error}}<p class="error" role="alert">{{.Error}}</p>{{end}}
		{{if .Notice}}<p class="notice" role="status">{{.Notice}}</p>{{end}}

		{{if and (not .Closed) (eq .State "results")}}
		<h2>Results</h2>
		{{if .Results}}
		<ul>
			{{range .Results}}
			<li>
				<img src="{{.ArtworkOrPlaceholder}}" alt="" />
				<div class="song"><strong>{{.Title}}</strong><div class="muted">{{.ArtistNames}}</div></div>
				<form method="post" action="/request">
					<input type="hidden" name="q" value="{{$.Query}}" />
					<input type="hidden" name="title" value="{{.Title}}" />
					<input type="hidden" name="artistNames" value="{{.ArtistNames}}" />
					<input type="hidden" name="url" value="{{.URL}}" />
					<input type="hidden" name="imageUrl" value="{{.ImageURL}}" />
					<button type="submit">Request</button>
				</form>
			</li>
			{{end}}
		</ul>
		{{else}}
		<p>No songs matched "{{.Query}}".</p>
		{{end}}
		{{end}}

		{{if .Recent}}
		<h2>Recent requests</h2>
		<ul>
			{{range .Recent}}
			<li>
				<img src="{{.ImageURL}}" alt="" />
				<div class="song"><strong>{{.Title}}</strong><div class="muted">{{.ArtistNames}}</div></div>
				<span class="muted">{{clock .RequestedAt}}</span>
			</li>
			{{end}}
		</ul>
		{{end}}
	</div>
</body>
</html>
`))

// RenderRequestPage expands the song request page template.
func RenderRequestPage(data RequestPageData) (string, error) {
	if data.Title == "" {
		data.Title = "Request a Song | CD Entertainment"
	}
	var buf bytes.Buffer
	if err := requestPageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
