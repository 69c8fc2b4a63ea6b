// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders aggregated benchmark records as PNG
// comparison charts. It reads only the benchagg record contract and
// contains no classification logic.
package benchchart

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/balancerlab/benchviz/benchagg"
)

// Algorithm colors, carried over from the original comparison charts.
var algColors = map[string]color.Color{
	"Rendezvous":     color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF},
	"Memento":        color.RGBA{R: 0x1E, G: 0x90, B: 0xFF, A: 0xFF},
	"BinomialHash":   color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF},
	"BinomialEngine": color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF},
}

var defaultColor = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}

func algColor(alg string) color.Color {
	if c, ok := algColors[alg]; ok {
		return c
	}
	return defaultColor
}

// Parameterized reports whether a scenario's records are plotted
// against their numeric parameter (as lines) rather than as bars.
func Parameterized(scenario string) bool {
	switch scenario {
	case "Pool Size Scalability", "Fixed Removals", "Progressive Removals":
		return true
	}
	return false
}

// Bars writes a bar chart for one scenario, one bar per aggregated
// record, colored by algorithm.
func Bars(recs []benchagg.Record, scenario, metric, path string) error {
	var rows []benchagg.Record
	algs := make(map[string]int)
	for _, r := range recs {
		if r.Scenario != scenario {
			continue
		}
		rows = append(rows, r)
		algs[r.Algorithm]++
	}
	if len(rows) == 0 {
		return fmt.Errorf("no records for scenario %q", scenario)
	}

	pl := plot.New()
	pl.Title.Text = scenario
	pl.Y.Label.Text = metric

	w := vg.Points(40)
	labels := make([]string, 0, len(rows))
	for i, r := range rows {
		b, err := plotter.NewBarChart(plotter.Values{r.Value}, w)
		if err != nil {
			return err
		}
		b.XMin = float64(i)
		b.Color = algColor(r.Algorithm)
		b.LineStyle.Color = color.Black
		pl.Add(b)

		label := r.Algorithm
		if algs[r.Algorithm] > 1 {
			label = r.Algorithm + "\n" + r.TestVariant
		}
		labels = append(labels, label)
	}
	pl.Add(plotter.NewGrid())
	pl.NominalX(labels...)
	pl.X.Tick.Label.Rotation = -0.4
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	return writePNG(pl, 20*vg.Centimeter, 12*vg.Centimeter, path)
}

// Lines writes a line chart for a parameterized scenario: one line
// per algorithm with the extracted numeric parameter on the x axis.
// Records without a parameter are skipped.
func Lines(recs []benchagg.Record, scenario, metric, path string) error {
	series := make(map[string]plotter.XYs)
	for _, r := range recs {
		if r.Scenario != scenario || !r.HasParam {
			continue
		}
		series[r.Algorithm] = append(series[r.Algorithm], plotter.XY{X: float64(r.Param), Y: r.Value})
	}
	if len(series) == 0 {
		return fmt.Errorf("no parameterized records for scenario %q", scenario)
	}

	pl := plot.New()
	pl.Title.Text = scenario
	pl.X.Label.Text = paramLabel(scenario)
	pl.Y.Label.Text = metric
	pl.Add(plotter.NewGrid())

	algs := make([]string, 0, len(series))
	for alg := range series {
		algs = append(algs, alg)
	}
	sort.Strings(algs)

	for _, alg := range algs {
		xys := series[alg]
		sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = algColor(alg)
		points.GlyphStyle.Color = algColor(alg)
		points.GlyphStyle.Radius = vg.Points(3)
		pl.Add(line, points)
		pl.Legend.Add(alg, line, points)
	}
	pl.Legend.Top = true

	return writePNG(pl, 24*vg.Centimeter, 14*vg.Centimeter, path)
}

// Overview writes a grouped bar chart of every non-parameterized
// scenario except Other, one bar group per scenario, one bar per
// algorithm. Scenarios with several test variants contribute the
// unweighted mean of their aggregated values.
func Overview(recs []benchagg.Record, metric, path string) error {
	type cell struct {
		sum float64
		n   int
	}
	cells := make(map[string]map[string]*cell)
	var scenarios, algs []string
	for _, r := range recs {
		if r.Scenario == "Other" || Parameterized(r.Scenario) {
			continue
		}
		byAlg := cells[r.Scenario]
		if byAlg == nil {
			byAlg = make(map[string]*cell)
			cells[r.Scenario] = byAlg
			scenarios = append(scenarios, r.Scenario)
		}
		cl := byAlg[r.Algorithm]
		if cl == nil {
			cl = &cell{}
			byAlg[r.Algorithm] = cl
		}
		cl.sum += r.Value
		cl.n++
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no records to plot")
	}
	seen := make(map[string]bool)
	for _, byAlg := range cells {
		for alg := range byAlg {
			if !seen[alg] {
				seen[alg] = true
				algs = append(algs, alg)
			}
		}
	}
	sort.Strings(algs)

	pl := plot.New()
	pl.Title.Text = "Performance Comparison"
	pl.Y.Label.Text = metric
	pl.Add(plotter.NewGrid())

	w := vg.Points(16)
	for i, alg := range algs {
		values := make(plotter.Values, len(scenarios))
		for j, s := range scenarios {
			if cl := cells[s][alg]; cl != nil {
				values[j] = cl.sum / float64(cl.n)
			}
		}
		b, err := plotter.NewBarChart(values, w)
		if err != nil {
			return err
		}
		b.Color = algColor(alg)
		b.Offset = vg.Length(float64(i)-float64(len(algs)-1)/2) * w
		pl.Add(b)
		pl.Legend.Add(alg, b)
	}
	pl.Legend.Top = true
	pl.NominalX(scenarios...)
	pl.X.Tick.Label.Rotation = -0.4
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	return writePNG(pl, 32*vg.Centimeter, 16*vg.Centimeter, path)
}

func paramLabel(scenario string) string {
	switch scenario {
	case "Pool Size Scalability":
		return "Pool Size (Number of Upstreams)"
	case "Fixed Removals":
		return "Total Pool Size"
	case "Progressive Removals":
		return "Number of Nodes Removed"
	}
	return "Parameter"
}

func writePNG(pl *plot.Plot, width, height vg.Length, path string) error {
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(150),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
