package report

import (
	"fmt"

	"github.com/vicanso/go-charts/v2"
)

// EquityChart renders the equity curves of the given strategies as a PNG
// line chart. names and curves are parallel; curves must be non-empty and
// equal-length.
func EquityChart(title string, names []string, curves [][]int64) ([]byte, error) {
	if len(curves) == 0 || len(names) != len(curves) {
		return nil, fmt.Errorf("mismatched series: %d names, %d curves", len(names), len(curves))
	}
	n := len(curves[0])
	if n == 0 {
		return nil, fmt.Errorf("empty equity curve")
	}
	for i, c := range curves {
		if len(c) != n {
			return nil, fmt.Errorf("curve %q has %d points, want %d", names[i], len(c), n)
		}
	}

	values := make([][]float64, len(curves))
	yMin, yMax := float64(curves[0][0]), float64(curves[0][0])
	for i, c := range curves {
		values[i] = make([]float64, n)
		for j, v := range c {
			f := float64(v)
			values[i][j] = f
			if f < yMin {
				yMin = f
			}
			if f > yMax {
				yMax = f
			}
		}
	}

	padding := (yMax - yMin) * 0.05
	if padding == 0 {
		padding = yMax * 0.05
	}
	yMin -= padding
	yMax += padding

	xLabels := make([]string, n)
	for i := range xLabels {
		xLabels[i] = fmt.Sprintf("%d", i+1)
	}
	splitNum := 6
	if n <= 30 {
		splitNum = max(n/3, 3)
	}

	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = DisplayName(name)
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: splitNum,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: labels}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return painter.Bytes()
}
