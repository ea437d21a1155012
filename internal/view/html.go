package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bcm-report/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// NavItem is one entry of the tab bar.
type NavItem struct {
	Tab    models.Tab
	Label  string
	Active bool
}

// Page is what the layout template sees.
type Page struct {
	Report   models.ReportMeta
	Period   models.Period
	Nav      []NavItem
	Section  Section
	Currency string
	Body     template.HTML
}

type Engine struct {
	tmpl *template.Template
}

func NewEngine() (*Engine, error) {
	t, err := template.New("report").Funcs(template.FuncMap{
		"money":     func(cur string, d decimal.Decimal) string { return FormatMoney(cur, d) },
		"num":       func(d decimal.Decimal) string { return FormatNumber(d, 2) },
		"int":       func(n int) string { return FormatNumber(decimal.NewFromInt(int64(n)), 0) },
		"pct":       FormatPercent,
		"sharePct":  FormatSharePercent,
		"signedPct": FormatSignedPercent,
		"roas":      FormatROAS,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Engine{tmpl: t}, nil
}

// WritePage renders the selected tab of v inside the page layout.
func (e *Engine) WritePage(w io.Writer, v *ReportView) error {
	sec, err := v.Render()
	if err != nil {
		return err
	}
	page := Page{
		Report:   v.ds.Report(),
		Period:   v.ds.Current().Period,
		Section:  sec,
		Currency: v.ds.Report().Currency,
	}
	for _, t := range models.Tabs() {
		page.Nav = append(page.Nav, NavItem{Tab: t, Label: v.TabLabel(t), Active: t == v.Tab()})
	}

	var body bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&body, sec.templateName(), page); err != nil {
		return fmt.Errorf("rendering %s: %w", sec.templateName(), err)
	}
	page.Body = template.HTML(body.String())
	return e.tmpl.ExecuteTemplate(w, "layout", page)
}
