/* heatmap.go
 * Renders the derived winrates matrix as an interactive HTML heatmap with
 * card names on both axes, the Go equivalent of the old plotly figure
 */

package charts

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/matchup"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HeatmapConfig holds configuration for the winrate heatmap
type HeatmapConfig struct {
	Title  string
	Width  string
	Height string
}

// DefaultHeatmapConfig returns the default heatmap configuration. The
// canvas is large and the fonts small so every card label stays readable.
func DefaultHeatmapConfig() HeatmapConfig {
	return HeatmapConfig{
		Title:  "Card matchup winrates",
		Width:  "2000px",
		Height: "2000px",
	}
}

// WriteWinrateHeatmap renders the table's winrates matrix to w as a
// self-contained HTML page. Cell (row, column) shows how often the row card
// beats the column card.
func WriteWinrateHeatmap(t *matchup.Table, config HeatmapConfig, w io.Writer) error {
	n := t.Size()
	if len(t.Winrates) != n {
		return fmt.Errorf("winrates table has %d rows for %d cards, derive winrates first", len(t.Winrates), n)
	}

	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = t.IndexToCardName[i]
	}

	data := make([]opts.HeatMapData, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// echarts heatmap points are (x, y, value): column card on x,
			// row card on y
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, t.Winrates[i][j]}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: config.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{Interval: "0"},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#50a3ba", "#eac736", "#d94e5d"},
			},
		}),
	)
	hm.AddSeries("winrate", data)

	return hm.Render(w)
}

// RenderWinrateHeatmap renders the heatmap to an HTML file at outputPath
func RenderWinrateHeatmap(t *matchup.Table, config HeatmapConfig, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create heatmap file: %w", err)
	}
	defer f.Close()

	if err := WriteWinrateHeatmap(t, config, f); err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	return nil
}
