package server

import (
	"html/template"

	"github.com/mithrel/mdnotes/internal/prefs"
	"github.com/mithrel/mdnotes/pkg/api"
)

// trustedFragment marks renderer output as safe to inject. The markup
// renderer escapes all text and only emits its own fixed tag set.
func trustedFragment(s string) template.HTML {
	return template.HTML(s)
}

type indexData struct {
	Theme prefs.Theme
	Query string
	Notes []api.Note
}

type noteData struct {
	Theme prefs.Theme
	Note  api.Note
	Body  template.HTML
}

const pageStyle = `
:root { --bg:#fff; --fg:#1f2328; --muted:#656d76; --accent:#0969da; --code:#f6f8fa; }
[data-theme="dark"] { --bg:#0d1117; --fg:#e6edf3; --muted:#8d96a0; --accent:#4493f8; --code:#161b22; }
body { background:var(--bg); color:var(--fg); font:16px/1.5 system-ui,sans-serif; margin:0; }
main { max-width:760px; margin:2rem auto; padding:0 1rem; }
a { color:var(--accent); }
.meta { color:var(--muted); font-size:.9em; }
pre, code { background:var(--code); border-radius:4px; }
pre { padding:.75rem; overflow:auto; }
ul.notes { list-style:none; padding:0; }
ul.notes li { padding:.4rem 0; border-bottom:1px solid var(--code); }
`

var indexPage = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<title>mdnotes</title>
<style>` + pageStyle + `</style>
</head>
<body>
<main>
<h1>Notes</h1>
<form method="get" action="/"><input type="search" name="q" value="{{.Query}}" placeholder="Search"></form>
{{if .Notes}}<ul class="notes">
{{range .Notes}}<li><a href="/notes/{{.ID}}">{{.DisplayTitle}}</a> <span class="meta">{{.Date}}{{if .Pinned}} · pinned{{end}}</span></li>
{{end}}</ul>{{else}}<p class="meta">No notes.</p>{{end}}
</main>
</body>
</html>
`))

var notePage = template.Must(template.New("note").Parse(`<!doctype html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<title>{{.Note.DisplayTitle}}</title>
<style>` + pageStyle + `</style>
</head>
<body>
<main>
<p class="meta"><a href="/">All notes</a></p>
<h1>{{.Note.DisplayTitle}}</h1>
<p class="meta">{{.Note.Date}}{{if .Note.Pinned}} · pinned{{end}}</p>
<article>
{{.Body}}
</article>
</main>
</body>
</html>
`))
