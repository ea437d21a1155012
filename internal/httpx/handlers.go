package httpx

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bcm-report/internal/charts"
	"github.com/AngelCh415/bcm-report/internal/export"
	"github.com/AngelCh415/bcm-report/internal/metrics"
	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/utils"
	"github.com/AngelCh415/bcm-report/internal/view"
)

// newView gives every request its own tab state.
func (rt *router) newView() *view.ReportView {
	return view.New(rt.ds, view.WithSelectHook(rt.metrics.TabSelected))
}

// selectTab parses ?tab= and moves a fresh view onto it.
func (rt *router) selectTab(raw string) (*view.ReportView, error) {
	t, err := models.ParseTab(raw)
	if err != nil {
		return nil, err
	}
	v := rt.newView()
	if err := v.Select(t); err != nil {
		return nil, err
	}
	return v, nil
}

func (rt *router) handleReportPage(w http.ResponseWriter, r *http.Request) {
	v, err := rt.selectTab(r.URL.Query().Get("tab"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := rt.engine.WritePage(&buf, v); err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.metrics.TabRendered(v.Tab())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (rt *router) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, rt.ds.Dataset())
}

type tabInfo struct {
	ID    models.Tab `json:"id"`
	Label string     `json:"label"`
}

func (rt *router) handleTabs(w http.ResponseWriter, r *http.Request) {
	v := rt.newView()
	out := make([]tabInfo, 0, len(models.Tabs()))
	for _, t := range models.Tabs() {
		out = append(out, tabInfo{ID: t, Label: v.TabLabel(t)})
	}
	writeJSON(w, out)
}

type tabResponse struct {
	tabInfo
	Section view.Section `json:"section"`
}

func (rt *router) handleTab(w http.ResponseWriter, r *http.Request) {
	v, err := rt.selectTab(chi.URLParam(r, "tab"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, err.Error())
		return
	}
	sec, err := v.Render()
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.metrics.TabRendered(v.Tab())
	writeJSON(w, tabResponse{tabInfo: tabInfo{ID: v.Tab(), Label: v.TabLabel(v.Tab())}, Section: sec})
}

func (rt *router) handleChartSpecs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, charts.Catalog(rt.ds))
}

func (rt *router) handleChartSeries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chartID")
	s, err := rt.charts.BuildID(id)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		rt.metrics.ChartRendered(id, "json")
		writeJSON(w, s)
	case "csv":
		var buf bytes.Buffer
		if err := export.WriteSeriesCSV(&buf, s); err != nil {
			rt.fail(w, r, err)
			return
		}
		rt.metrics.ChartRendered(id, "csv")
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.csv"`)
		w.Write(buf.Bytes())
	default:
		writeProblem(w, http.StatusBadRequest, "format must be json or csv, got "+format)
	}
}

func (rt *router) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chartID")
	s, err := rt.charts.BuildID(id)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, s, rt.opts.ChartWidth, rt.opts.ChartHeight); err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.metrics.ChartRendered(id, "png")
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(buf.Bytes())
}

func (rt *router) handlePlatformsCSV(w http.ResponseWriter, r *http.Request) {
	src, err := models.ParseSource(chi.URLParam(r, "source"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, err.Error())
		return
	}
	ps, err := rt.ds.Platforms(src)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	total, err := rt.ds.Totals(src)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	period, err := rt.ds.Period(src)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WritePlatformsCSV(&buf, ps, total); err != nil {
		rt.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvName(src, period)+`"`)
	w.Write(buf.Bytes())
}

func (rt *router) handleVariance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	actual, err := decimal.NewFromString(q.Get("actual"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "actual: "+err.Error())
		return
	}
	projected, err := decimal.NewFromString(q.Get("projected"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "projected: "+err.Error())
		return
	}
	res, err := metrics.Variance(actual, projected)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	writeJSON(w, res)
}

// fail maps domain errors onto status codes. Anything unmapped is a 500
// and gets logged.
func (rt *router) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, metrics.ErrDivisionByZero):
		writeProblem(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, charts.ErrUnknownChart),
		errors.Is(err, models.ErrUnknownTab),
		errors.Is(err, models.ErrUnknownSource):
		writeProblem(w, http.StatusNotFound, err.Error())
	default:
		rt.log.Error("request failed", slog.String("path", r.URL.Path), slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
		writeProblem(w, http.StatusInternalServerError, "internal error")
	}
}

func csvName(src models.Source, p models.Period) string {
	return string(src) + "-" + strings.ToLower(strings.ReplaceAll(p.ShortName, " ", "-")) + ".csv"
}
