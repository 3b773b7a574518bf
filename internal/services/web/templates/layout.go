// Package templates renders the catalog browser pages as templ
// components.
package templates

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

const stylesheet = `
:root { color-scheme: light dark; font-family: system-ui, sans-serif; }
body { margin: 0; display: flex; min-height: 100vh; }
aside { width: 270px; padding: 1rem; border-right: 1px solid #8884; }
main { flex: 1; padding: 1rem 1.5rem; overflow-x: auto; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #8883; }
th a { text-decoration: none; color: inherit; }
fieldset { border: 1px solid #8884; margin-bottom: 0.75rem; }
.tiles { display: flex; gap: 1rem; margin-bottom: 1rem; }
.tile { border: 1px solid #8884; border-radius: 6px; padding: 0.6rem 1.2rem; }
.tile b { display: block; font-size: 1.5rem; }
.notice { padding: 0.5rem 0.8rem; border-left: 4px solid #58a; margin-bottom: 0.5rem; }
.warning { border-left-color: #c80; }
.bar { background: #58a; height: 0.9rem; display: inline-block; vertical-align: middle; }
.bars td { border-bottom: none; }
`

// Layout wraps sidebar and main content in the application shell.
func Layout(appName, title string, sidebar, main templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>"+
			html.EscapeString(title)+"</title><style>"+stylesheet+"</style>"+
			"<script src=\"https://unpkg.com/htmx.org@1.9.12\" defer></script></head><body>"); err != nil {
			return err
		}
		if sidebar != nil {
			if _, err := io.WriteString(w, "<aside>"); err != nil {
				return err
			}
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</aside>"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "<main id=\"catalog-main\"><h1>"+html.EscapeString(appName)+"</h1>"); err != nil {
			return err
		}
		if main != nil {
			if err := main.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}
