/*
 * dataplot.go, part of gotraj.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package dataplot plots the data sets produced by trajectory analyses.
//The format of the image is given by the extension of the file name
//(png, svg, pdf, eps, jpg or tif).
package dataplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/gotraj/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type settings struct {
	xlabel string
	ylabel string
	dt     float64
	width  vg.Length
	height vg.Length
}

//Option changes the default look of a plot.
type Option func(*settings)

//WithLabels sets the labels of the X and Y axes.
func WithLabels(x, y string) Option {
	return func(s *settings) {
		s.xlabel = x
		s.ylabel = y
	}
}

//WithTimeStep plots the series against time, with dt between frames,
//instead of frame number.
func WithTimeStep(dt float64) Option {
	return func(s *settings) { s.dt = dt }
}

//WithSize sets the size of the image, in inches.
func WithSize(width, height float64) Option {
	return func(s *settings) {
		s.width = vg.Length(width) * vg.Inch
		s.height = vg.Length(height) * vg.Inch
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{xlabel: "Frame", ylabel: "Value", dt: 1, width: 6 * vg.Inch, height: 4 * vg.Inch}
	for _, o := range opts {
		o(s)
	}
	return s
}

func basicPlot(title string, s *settings) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = s.xlabel
	p.Y.Label.Text = s.ylabel
	p.Add(plotter.NewGrid())
	return p
}

//TimeSeries plots every set in dsl as a line, against the frame
//number (starting from 1), and saves the plot to filename.
func TimeSeries(dsl *dataset.DataSetList, title, filename string, opts ...Option) error {
	if dsl.Len() == 0 {
		return Error{"no data sets to plot", filename, []string{"TimeSeries"}}
	}
	s := newSettings(opts)
	p := basicPlot(title, s)
	for i, v := range dsl.Sets() {
		if v.Len() == 0 {
			continue
		}
		pts := make(plotter.XYs, v.Len())
		for j, y := range v.Data {
			pts[j].X = float64(j+1) * s.dt
			pts[j].Y = y
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return Error{fmt.Sprintf("set %s: %v", v.Legend, err), filename, []string{"TimeSeries"}}
		}
		r, g, b := colors(i, dsl.Len())
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(v.Legend, l)
	}
	p.Legend.Top = true
	if err := p.Save(s.width, s.height, filename); err != nil {
		return Error{err.Error(), filename, []string{"TimeSeries"}}
	}
	return nil
}

//Histogram plots the distribution of the values in ds, with the given
//number of bins, and saves the plot to filename.
func Histogram(ds *dataset.DataSet, bins int, title, filename string, opts ...Option) error {
	if ds.Len() == 0 {
		return Error{"empty data set", filename, []string{"Histogram"}}
	}
	s := newSettings(append([]Option{WithLabels(ds.Legend, "Count")}, opts...))
	p := basicPlot(title, s)
	h, err := plotter.NewHist(plotter.Values(ds.Data), bins)
	if err != nil {
		return Error{err.Error(), filename, []string{"Histogram"}}
	}
	r, g, b := colors(0, 1)
	h.FillColor = color.RGBA{R: r, G: g, B: b, A: 255}
	p.Add(h)
	if err := p.Save(s.width, s.height, filename); err != nil {
		return Error{err.Error(), filename, []string{"Histogram"}}
	}
	return nil
}

//colors returns a color for the set key out of steps, spreading the hues
//so consecutive sets are easy to tell apart.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return hsv2RGB(h, 1, 1)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func hsv2RGB(h, v, s float64) (uint8, uint8, uint8) {
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	var r, g, b float64
	h = h / 60
	i := int(h)
	f := h - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//Error is the error type of the package.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("plot %s: %s", err.filename, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file that was to be written.
func (err Error) FileName() string { return err.filename }
