package httpserver

import (
	"bytes"
	"fmt"
	"net/http"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"

	chart "github.com/wcharczuk/go-chart/v2"
)

const msgNoRates = "No rates found"

// GetRateChart renders the selected rates as a PNG bar chart, one bar per
// BASE→TARGET pair.
func (s *Server) GetRateChart(w http.ResponseWriter, r *http.Request) {
	sel, ok := selection(w, r)
	if !ok {
		return
	}
	rows, err := s.rates.Snapshot(r.Context(), sel)
	if err != nil {
		fail(w, r, err, "Error rendering chart")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, msgNoRates)
		return
	}

	var buf bytes.Buffer
	if err := renderBarChart(&buf, rateChart(sel, rows, s.chartWidth, s.chartHeight)); err != nil {
		fail(w, r, err, "Error rendering chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func rateChart(sel application.RateSelection, rows []domain.RateView, width, height int) chart.BarChart {
	bars := make([]chart.Value, 0, len(rows))
	top := 0.0
	for _, v := range rows {
		f := v.Rate.InexactFloat64()
		if f > top {
			top = f
		}
		bars = append(bars, chart.Value{Label: v.Label(), Value: f})
	}
	if top == 0 {
		top = 1
	}

	asOf := rows[0].EffectiveDate
	if sel.Date != nil {
		asOf = *sel.Date
	}
	barWidth := (width - 120) / len(bars) * 3 / 4
	if barWidth < 4 {
		barWidth = 4
	}

	return chart.BarChart{
		Title:      fmt.Sprintf("Exchange Rates as of %s", domain.FormatDate(asOf)),
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barWidth / 3,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Name:  "Rate",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.4f")
			},
		},
		Bars: bars,
	}
}

func renderBarChart(buf *bytes.Buffer, graph chart.BarChart) error {
	if err := graph.Render(chart.PNG, buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
