package cluster

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

// RenderHTML writes the clustering output as a static HTML report.
func RenderHTML(c *Clustered, w io.Writer) error {
	return reportTemplate.Execute(w, c)
}

// WriteHTML renders the report to a file.
func WriteHTML(c *Clustered, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()
	return RenderHTML(c, f)
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>News Theme Report</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 1200px; margin: 0 auto; padding: 20px; background-color: #f7f7f7; }
        .container { background-color: white; padding: 30px; border-radius: 8px; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
        header { text-align: center; margin-bottom: 30px; padding-bottom: 20px; border-bottom: 1px solid #eaeaea; }
        h1 { font-size: 2.2em; color: #2c3e50; margin-bottom: 10px; }
        h2 { font-size: 1.8em; color: #3498db; margin-top: 40px; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 1px solid #eaeaea; }
        .theme-description { color: #555; font-style: italic; margin-bottom: 20px; }
        .article-card { background-color: white; border: 1px solid #ddd; border-left: 5px solid #3498db; border-radius: 4px; padding: 15px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
        .article-title { font-weight: bold; font-size: 1.2em; margin-bottom: 8px; cursor: pointer; color: #3498db; }
        .article-title:hover { text-decoration: underline; }
        .article-source { color: #666; font-size: 0.9em; margin-bottom: 8px; }
        .article-description { margin-bottom: 10px; color: #555; font-style: italic; }
        .article-content { display: none; background-color: #f9f9f9; border-top: 1px solid #eaeaea; padding: 15px; margin-top: 15px; font-size: 0.95em; max-height: 500px; overflow-y: auto; line-height: 1.7; }
        .article-content.open { display: block; }
        .meta { text-align: center; color: #888; font-size: 0.85em; margin-top: 40px; }
        a { color: #3498db; }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>News Theme Report</h1>
        <p>{{.Metadata.TotalArticles}} articles across {{len .Themes}} themes &mdash; generated {{.Metadata.ClusteredAt}}</p>
    </header>
    {{range .Themes}}
    <section>
        <h2>{{.Name}}</h2>
        <p class="theme-description">{{.Description}}</p>
        {{range .Articles}}
        <div class="article-card">
            <div class="article-title" onclick="this.parentNode.querySelector('.article-content').classList.toggle('open')">{{.Title}}</div>
            <div class="article-source">{{.Source}} &middot; {{.Date}} &middot; <a href="{{.URL}}">original</a></div>
            {{if .Description}}<div class="article-description">{{.Description}}</div>{{end}}
            <div class="article-content">{{.Content}}</div>
        </div>
        {{end}}
    </section>
    {{end}}
    <p class="meta">newshound theme clustering</p>
</div>
</body>
</html>`
