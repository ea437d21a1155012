// Package export writes report data as CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/AngelCh415/bcm-report/internal/charts"
	"github.com/AngelCh415/bcm-report/internal/models"
)

// WriteSeriesCSV emits one row per chart category with a column per series.
func WriteSeriesCSV(w io.Writer, s charts.Series) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := append([]string{"Category"}, s.Names...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, rec := range s.Records {
		row := make([]string, 0, len(s.Names)+1)
		row = append(row, rec.Category)
		for _, name := range s.Names {
			row = append(row, formatFloat(rec.Values[name]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WritePlatformsCSV prints a period's platform table followed by a Total row.
func WritePlatformsCSV(w io.Writer, platforms []models.PlatformMetrics, total models.PeriodTotals) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Platform", "Spend", "Orders", "Revenue", "ROAS"}); err != nil {
		return err
	}
	for _, p := range platforms {
		if err := writer.Write([]string{
			p.Platform,
			p.Spend.StringFixed(2),
			strconv.Itoa(p.Orders),
			p.Revenue.StringFixed(2),
			p.ROAS.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{
		"Total",
		total.Spend.StringFixed(2),
		strconv.Itoa(total.Orders),
		total.Revenue.StringFixed(2),
		total.ROAS.StringFixed(2),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
