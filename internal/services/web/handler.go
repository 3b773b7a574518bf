package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/observerset/atlasview/internal/catalog"
	"github.com/observerset/atlasview/internal/services/shared/htmx"
	"github.com/observerset/atlasview/internal/services/web/templates"
	"github.com/observerset/atlasview/internal/storage"
	"github.com/observerset/atlasview/internal/telemetry"
)

// facetParamPrefix namespaces per-column filter params in the query
// string, e.g. f.Mission_Type=Telescope.
const facetParamPrefix = "f."

// uploadLimit bounds replacement CSV size. The catalog is a small
// reference dataset; anything past this is a mistake, not data.
const uploadLimit = 8 << 20

type handler struct {
	appName string
	store   CatalogStore
	emitter *telemetry.Emitter
	tracer  trace.Tracer
}

func newHandler(appName string, store CatalogStore, emitter *telemetry.Emitter) *handler {
	return &handler{
		appName: appName,
		store:   store,
		emitter: emitter,
		tracer:  otel.Tracer("atlasview/web"),
	}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /catalog", h.handleCatalogFragment)
	mux.HandleFunc("POST /upload", h.handleUpload)
	mux.HandleFunc("GET /export.csv", h.handleExport)
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	return h.traced(mux)
}

// traced opens one span per request on the global tracer; with no
// provider registered this is a no-op.
func (h *handler) traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.buildPage(r, nil)
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	htmx.RenderPage(w, r, nil, templates.Page(page))
}

func (h *handler) handleCatalogFragment(w http.ResponseWriter, r *http.Request) {
	page, err := h.buildPage(r, nil)
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	htmx.RenderPage(w, r, templates.Content(page), templates.Page(page))
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)

	file, header, err := r.FormFile("csv")
	if err != nil {
		h.renderUploadFailure(w, r, "no CSV file was supplied")
		return
	}
	defer func() { _ = file.Close() }()

	loaded, report, err := catalog.Load(file)
	if err != nil {
		// The previous catalog stays active; only the message changes.
		_ = h.emitter.Emit(ctx, telemetry.Event(telemetry.SeverityError, "catalog.load.failed", err.Error()))
		h.renderUploadFailure(w, r, err.Error())
		return
	}

	audit := storage.LoadAudit{
		Source:      "upload:" + header.Filename,
		RowCount:    report.RowCount,
		DroppedRows: report.DroppedRows,
	}
	if err := h.store.ReplaceCatalog(ctx, loaded, audit); err != nil {
		log.Printf("replace catalog: %v", err)
		h.renderUploadFailure(w, r, "the catalog could not be stored")
		return
	}
	_ = h.emitter.Emit(ctx, telemetry.Event(telemetry.SeverityInfo, "catalog.load",
		fmt.Sprintf("%s: %d rows, %d dropped", audit.Source, report.RowCount, report.DroppedRows)))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) renderUploadFailure(w http.ResponseWriter, r *http.Request, message string) {
	page, err := h.buildPage(r, []string{"Upload rejected: " + message + " The previous catalog is still active."})
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := templates.Page(page).Render(r.Context(), w); err != nil {
		log.Printf("render upload failure: %v", err)
	}
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	active, err := h.loadActiveCatalog(r)
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	criteria := parseCriteria(r.URL.Query())
	view, _ := catalog.Apply(active, criteria)
	if column := r.URL.Query().Get("sort"); column != "" {
		view = catalog.SortBy(view, column, r.URL.Query().Get("dir") == "desc")
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="observers_filtered.csv"`)
	if err := catalog.WriteCSV(w, view); err != nil {
		log.Printf("export csv: %v", err)
	}
}

func (h *handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// loadActiveCatalog returns the session catalog, or an empty catalog
// before the first successful load.
func (h *handler) loadActiveCatalog(r *http.Request) (catalog.Catalog, error) {
	active, err := h.store.LoadCatalog(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return catalog.Catalog{}, nil
		}
		return catalog.Catalog{}, err
	}
	return active, nil
}

func (h *handler) buildPage(r *http.Request, extraNotices []string) (templates.CatalogPage, error) {
	ctx := r.Context()
	active, err := h.loadActiveCatalog(r)
	if err != nil {
		return templates.CatalogPage{}, err
	}

	query := r.URL.Query()
	criteria := parseCriteria(query)
	view, warnings := catalog.Apply(active, criteria)

	sortColumn := query.Get("sort")
	sortDesc := query.Get("dir") == "desc"
	if sortColumn != "" {
		view = catalog.SortBy(view, sortColumn, sortDesc)
	}

	for _, warning := range warnings {
		if warning.Code != "" && warning.Column != "" {
			_ = h.emitter.Emit(ctx, telemetry.Event(telemetry.SeverityWarn, "catalog.filter.warning", warning.Message()))
		}
	}

	page := templates.CatalogPage{
		AppName:     h.appName,
		SearchQuery: criteria.Search,
		Metrics:     buildMetrics(view),
		Headers:     buildHeaders(active, query, sortColumn, sortDesc),
		Rows:        buildRows(view),
		Facets:      buildFacetGroups(catalog.FullView(active), criteria),
		Bars:        buildBarGroups(view),
		Warnings:    warningMessages(warnings),
		Notices:     append([]string(nil), extraNotices...),
		ExportURL:   exportURL(query),
	}

	if active.Len() == 0 {
		page.Notices = append(page.Notices, "No catalog is loaded yet. Upload a CSV to get started.")
	} else if history, err := h.store.LoadHistory(ctx, 1); err == nil && len(history) > 0 && history[0].DroppedRows > 0 {
		page.Notices = append(page.Notices, fmt.Sprintf(
			"%d of %d rows were dropped during load because both identifiers were empty.",
			history[0].DroppedRows, history[0].RowCount,
		))
	}
	return page, nil
}

// parseCriteria reconstructs filter criteria from the query string on
// every render pass; nothing about a filter persists server-side.
func parseCriteria(query url.Values) catalog.Criteria {
	criteria := catalog.Criteria{Search: strings.TrimSpace(query.Get("q"))}
	for key, values := range query {
		if !strings.HasPrefix(key, facetParamPrefix) {
			continue
		}
		column := strings.TrimPrefix(key, facetParamPrefix)
		var terms []string
		for _, value := range values {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				terms = append(terms, trimmed)
			}
		}
		if len(terms) == 0 {
			continue
		}
		if criteria.Columns == nil {
			criteria.Columns = make(map[string][]string)
		}
		criteria.Columns[column] = terms
	}
	return criteria
}

func warningMessages(warnings []catalog.Warning) []string {
	messages := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		messages = append(messages, warning.Message())
	}
	return messages
}

func buildMetrics(view catalog.View) []templates.Metric {
	stats := catalog.Summarize(view)
	return []templates.Metric{
		{Label: "Spacecraft (filtered)", Value: fmt.Sprintf("%d", stats.Rows)},
		{Label: "Mission types", Value: fmt.Sprintf("%d", stats.MissionTypes)},
		{Label: "Operators", Value: fmt.Sprintf("%d", stats.Operators)},
	}
}

func buildRows(view catalog.View) [][]string {
	rows := make([][]string, 0, view.Len())
	columns := view.Columns()
	for i := 0; i < view.Len(); i++ {
		row := view.Row(i)
		cells := make([]string, len(columns))
		for j, column := range columns {
			cells[j], _ = row.Value(column)
		}
		rows = append(rows, cells)
	}
	return rows
}

// buildFacetGroups offers multiselect options from the full catalog so
// deselected values stay visible; counts follow the unfiltered set.
func buildFacetGroups(full catalog.View, criteria catalog.Criteria) []templates.FacetGroup {
	facets := catalog.Facets(full, catalog.DefaultFacetColumns)
	groups := make([]templates.FacetGroup, 0, len(facets))
	for _, facet := range facets {
		selected := make(map[string]bool)
		for _, term := range criteria.Columns[facet.Column] {
			selected[strings.ToLower(term)] = true
		}
		group := templates.FacetGroup{
			Column: facet.Column,
			Param:  facetParamPrefix + facet.Column,
		}
		for _, value := range facet.Values {
			group.Options = append(group.Options, templates.FacetOption{
				Value:    value.Value,
				Count:    value.Count,
				Selected: selected[strings.ToLower(value.Value)],
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// buildBarGroups renders per-column value counts over the filtered rows.
func buildBarGroups(view catalog.View) []templates.FacetGroup {
	facets := catalog.Facets(view, []string{catalog.ColumnMissionType, catalog.ColumnViewUtility})
	groups := make([]templates.FacetGroup, 0, len(facets))
	for _, facet := range facets {
		group := templates.FacetGroup{Column: facet.Column}
		for _, value := range facet.Values {
			group.Options = append(group.Options, templates.FacetOption{Value: value.Value, Count: value.Count})
		}
		groups = append(groups, group)
	}
	return groups
}

func buildHeaders(active catalog.Catalog, query url.Values, sortColumn string, sortDesc bool) []templates.ColumnHeader {
	headers := make([]templates.ColumnHeader, 0, len(active.Columns))
	for _, column := range active.Columns {
		next := cloneValues(query)
		next.Set("sort", column)
		if column == sortColumn && !sortDesc {
			next.Set("dir", "desc")
		} else {
			next.Del("dir")
		}
		headers = append(headers, templates.ColumnHeader{
			Name:       column,
			SortURL:    "/?" + next.Encode(),
			Active:     column == sortColumn,
			Descending: sortDesc,
		})
	}
	return headers
}

func exportURL(query url.Values) string {
	next := cloneValues(query)
	if len(next) == 0 {
		return "/export.csv"
	}
	return "/export.csv?" + next.Encode()
}

func cloneValues(query url.Values) url.Values {
	next := make(url.Values, len(query))
	for key, values := range query {
		next[key] = append([]string(nil), values...)
	}
	return next
}
