// quill-tune analyses a recorded step response. It reads a telemetry
// CSV, prints the tuning metrics and optionally renders the response
// as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"quill/telemetry"
	"quill/tune"
)

var plotOut = flag.String("plot", "", "Write a step-response plot to this PNG file (empty = no plot)")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-plot out.png] telemetry.csv\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	samples, err := telemetry.ReadCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}
	if len(samples) == 0 {
		log.Fatalf("%s holds no samples", path)
	}

	m := tune.Analyze(samples)
	printReport(path, m)

	if *plotOut != "" {
		if err := renderPlot(*plotOut, path, samples); err != nil {
			log.Fatalf("plot: %v", err)
		}
		fmt.Printf("\nwrote %s\n", *plotOut)
	}
}

func printReport(path string, m tune.Metrics) {
	fmt.Printf("Step response: %s\n\n", path)
	fmt.Printf("  IAE                %10.4f\n", m.IAE)
	fmt.Printf("  ISE                %10.4f\n", m.ISE)
	fmt.Printf("  ITAE               %10.4f\n", m.ITAE)
	fmt.Printf("  Max error          %10.4f deg\n", m.MaxError)
	fmt.Printf("  Steady-state error %10.4f deg\n", m.SteadyStateError)
	fmt.Printf("  Overshoot          %10.2f %%\n", m.OvershootPercent)
	fmt.Printf("  Rise time          %s\n", formatMS(m.RiseTimeMS))
	fmt.Printf("  Settling time      %s\n", formatMS(m.SettlingTimeMS))
	fmt.Printf("  Peak time          %s\n", formatMS(m.PeakTimeMS))
	fmt.Printf("  Stable             %v\n", m.Stable)
	fmt.Printf("  Oscillating        %v\n", m.Oscillating)
}

func formatMS(v float64) string {
	if v < 0 {
		return "       n/a"
	}
	return fmt.Sprintf("%10.1f ms", v)
}

func renderPlot(out, title string, samples []telemetry.Sample) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Step Response - %s", filepath.Base(title))
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Angle (deg)"

	targetPts := make(plotter.XYs, len(samples))
	actualPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		targetPts[i] = plotter.XY{X: s.TimeMS, Y: s.Target}
		actualPts[i] = plotter.XY{X: s.TimeMS, Y: s.Actual}
	}

	targetLine, err := plotter.NewLine(targetPts)
	if err != nil {
		return err
	}
	targetLine.Color = color.RGBA{R: 200, A: 255}
	targetLine.Width = vg.Points(1)
	targetLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(targetLine)
	p.Legend.Add("target", targetLine)

	actualLine, err := plotter.NewLine(actualPts)
	if err != nil {
		return err
	}
	actualLine.Color = color.RGBA{B: 200, A: 255}
	actualLine.Width = vg.Points(1)
	p.Add(actualLine)
	p.Legend.Add("actual", actualLine)

	return p.Save(10*vg.Inch, 5*vg.Inch, out)
}
