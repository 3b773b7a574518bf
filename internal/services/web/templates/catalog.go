package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// FacetOption is one selectable value of a facet multiselect.
type FacetOption struct {
	Value    string
	Count    int
	Selected bool
}

// FacetGroup is one sidebar multiselect / value-count group.
type FacetGroup struct {
	Column  string
	Param   string
	Options []FacetOption
}

// ColumnHeader describes one sortable table header cell.
type ColumnHeader struct {
	Name       string
	SortURL    string
	Active     bool
	Descending bool
}

// Metric is one summary tile.
type Metric struct {
	Label string
	Value string
}

// CatalogPage is the full view model for the catalog browser page.
type CatalogPage struct {
	AppName     string
	SearchQuery string
	Facets      []FacetGroup
	Metrics     []Metric
	Headers     []ColumnHeader
	Rows        [][]string
	Warnings    []string
	Notices     []string
	Bars        []FacetGroup
	ExportURL   string
}

// Page renders the full catalog browser page.
func Page(data CatalogPage) templ.Component {
	return Layout(data.AppName, data.AppName, Sidebar(data), Content(data))
}

// Sidebar renders the filter form. Submitting re-renders the full page;
// with htmx available only the catalog fragment is swapped.
func Sidebar(data CatalogPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b builder
		b.raw(`<form method="get" action="/" hx-get="/catalog" hx-target="#catalog-content" hx-trigger="change, submit">`)
		b.raw(`<h2>Filters</h2>`)
		b.raw(`<label>Search by name/operator/notes<br><input type="search" name="q" value="`)
		b.text(data.SearchQuery)
		b.raw(`"></label>`)
		for _, group := range data.Facets {
			b.raw(`<fieldset><legend>`)
			b.text(group.Column)
			b.raw(`</legend>`)
			for _, option := range group.Options {
				b.raw(`<label><input type="checkbox" name="`)
				b.text(group.Param)
				b.raw(`" value="`)
				b.text(option.Value)
				b.raw(`"`)
				if option.Selected {
					b.raw(` checked`)
				}
				b.raw(`> `)
				b.text(option.Value)
				b.raw(fmt.Sprintf(" (%d)", option.Count))
				b.raw(`</label><br>`)
			}
			b.raw(`</fieldset>`)
		}
		b.raw(`<button type="submit">Apply</button> <a href="/">Reset</a>`)
		b.raw(`</form>`)
		b.raw(`<h2>Replace catalog</h2>`)
		b.raw(`<form method="post" action="/upload" enctype="multipart/form-data">`)
		b.raw(`<input type="file" name="csv" accept=".csv" required> `)
		b.raw(`<button type="submit">Upload</button></form>`)
		return b.flush(w)
	})
}

// Content renders the catalog fragment: tiles, notices, table and value
// counts. It is the htmx swap target for filter changes.
func Content(data CatalogPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b builder
		b.raw(`<div id="catalog-content">`)

		for _, notice := range data.Notices {
			b.raw(`<div class="notice">`)
			b.text(notice)
			b.raw(`</div>`)
		}
		for _, warning := range data.Warnings {
			b.raw(`<div class="notice warning">`)
			b.text(warning)
			b.raw(`</div>`)
		}

		b.raw(`<div class="tiles">`)
		for _, metric := range data.Metrics {
			b.raw(`<div class="tile"><b>`)
			b.text(metric.Value)
			b.raw(`</b>`)
			b.text(metric.Label)
			b.raw(`</div>`)
		}
		b.raw(`</div>`)

		b.raw(`<p><a href="`)
		b.text(data.ExportURL)
		b.raw(`">Download filtered CSV</a></p>`)

		b.raw(`<table><thead><tr>`)
		for _, header := range data.Headers {
			b.raw(`<th><a href="`)
			b.text(header.SortURL)
			b.raw(`">`)
			b.text(header.Name)
			if header.Active {
				if header.Descending {
					b.raw(` &#9660;`)
				} else {
					b.raw(` &#9650;`)
				}
			}
			b.raw(`</a></th>`)
		}
		b.raw(`</tr></thead><tbody>`)
		for _, row := range data.Rows {
			b.raw(`<tr>`)
			for _, cell := range row {
				b.raw(`<td>`)
				b.text(cell)
				b.raw(`</td>`)
			}
			b.raw(`</tr>`)
		}
		b.raw(`</tbody></table>`)

		for _, group := range data.Bars {
			b.raw(`<h3>Count by `)
			b.text(group.Column)
			b.raw(`</h3><table class="bars">`)
			max := 0
			for _, option := range group.Options {
				if option.Count > max {
					max = option.Count
				}
			}
			for _, option := range group.Options {
				width := 0
				if max > 0 {
					width = option.Count * 240 / max
				}
				b.raw(`<tr><td>`)
				b.text(option.Value)
				b.raw(`</td><td><span class="bar" style="width:`)
				b.raw(fmt.Sprintf("%d", width))
				b.raw(`px"></span> `)
				b.raw(fmt.Sprintf("%d", option.Count))
				b.raw(`</td></tr>`)
			}
			b.raw(`</table>`)
		}

		b.raw(`</div>`)
		return b.flush(w)
	})
}

// builder accumulates markup, escaping dynamic text.
type builder struct {
	parts []string
}

func (b *builder) raw(markup string) {
	b.parts = append(b.parts, markup)
}

func (b *builder) text(value string) {
	b.parts = append(b.parts, html.EscapeString(value))
}

func (b *builder) flush(w io.Writer) error {
	for _, part := range b.parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
