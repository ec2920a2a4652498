package main

import (
	"fmt"

	shotloader "github.com/pegasus-iii/shotloader_go/pkg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// plotIp saves a quick-look plot of the derived plasma current.
func plotIp(dataset *shotloader.ShotDataset, filename string) error {
	channel, ok := dataset.Currents[shotloader.IpChannel]
	if !ok || channel.Empty() {
		return fmt.Errorf("no Ip data to plot")
	}

	pts := make(plotter.XYs, len(channel.Data))
	for i := range channel.Data {
		pts[i].X = channel.Time[i]
		pts[i].Y = channel.Data[i]
	}

	p := plot.New()
	p.Title.Text = "Plasma current"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Ip (A)"
	p.Add(plotter.NewGrid())

	err := plotutil.AddLinePoints(p, "Ip", pts)
	if err != nil {
		return fmt.Errorf("error adding line-points: %w", err)
	}

	// Save the plot to a PNG file.
	return p.Save(14*vg.Inch, 8*vg.Inch, filename)
}
