/*
Package report renders learning curves and prints evaluation results
*/
package report

import (
	"bytes"
	"github.com/skratchdot/open-golang/open"
	chart "github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/zorros/zorros"
	"gonum.org/v1/gonum/floats"
	"io"
	"io/ioutil"
	"math"
)

const (
	Title  = "Training and validation loss/accuracy"
	XLabel = "Epochs"
	YLabel = "Loss/Accuracy"
)

type curve struct {
	name  string
	color drawing.Color
}

var curves = map[string]curve{
	model.LossSeries:        {"Training loss", drawing.Color{R: 0xbf, G: 0xbf, B: 0x00, A: 0xff}},
	model.ValLossSeries:     {"Validation loss", drawing.Color{R: 0x00, G: 0x00, B: 0xff, A: 0xff}},
	model.AccuracySeries:    {"Training acc", drawing.Color{R: 0xff, G: 0x00, B: 0x00, A: 0xff}},
	model.ValAccuracySeries: {"Validation acc", drawing.Color{R: 0x00, G: 0x80, B: 0x00, A: 0xff}},
}

/*
PlotHistory renders the learning curves against epoch numbers as PNG
*/
func PlotHistory(h model.History, w io.Writer) error {
	if len(h) == 0 {
		return zorros.Errorf("history is empty, nothing to plot")
	}
	var series []chart.Series
	lo, hi := 0., 1.
	for _, name := range model.SeriesNames {
		c := curves[name]
		values := h.Series(name)
		lo, hi = math.Min(lo, floats.Min(values)), math.Max(hi, floats.Max(values))
		series = append(series, chart.ContinuousSeries{
			Name:    c.name,
			XValues: h.Epochs(),
			YValues: values,
			Style: chart.Style{
				Show:        true,
				StrokeColor: c.color,
				DotColor:    c.color,
				DotWidth:    3,
			},
		})
	}

	graph := chart.Chart{
		Title:      Title,
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      XLabel,
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      YLabel,
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			Range:     &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	if len(h) == 1 {
		// a single epoch has no x extent
		graph.XAxis.Range = &chart.ContinuousRange{Min: 0.5, Max: 1.5}
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return zorros.Wrapf(err, "failed to render chart: %v", err.Error())
	}
	return nil
}

/*
SavePlot writes the learning curves to a PNG file and opens it in the system viewer if show is set.
Nothing is written when the chart can't be rendered
*/
func SavePlot(h model.History, path string, show bool) (err error) {
	var b bytes.Buffer
	if err = PlotHistory(h, &b); err != nil {
		return
	}
	if err = ioutil.WriteFile(path, b.Bytes(), 0644); err != nil {
		return zorros.Trace(err)
	}
	if show {
		if err = open.Run(path); err != nil {
			return zorros.Wrapf(err, "failed to show %v: %v", path, err.Error())
		}
	}
	return
}
