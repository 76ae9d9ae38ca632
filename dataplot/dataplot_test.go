/*
 * dataplot_test.go
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package dataplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gotraj/dataset"
)

func series() *dataset.DataSetList {
	a := make([]float64, 50)
	b := make([]float64, 50)
	for i := range a {
		a[i] = math.Sin(float64(i) / 5)
		b[i] = float64(i % 3)
	}
	return dataset.NewDataSetList(dataset.NewDataSet("HB_00000[UU]", "avg_solute_solute", a), dataset.NewDataSet("HB_00000[solutehb]", "SER20_O-SER20_OG-HG", b))
}

func TestTimeSeries(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "hbonds.png")
	if err := TimeSeries(series(), "Hydrogen bonds", name, WithTimeStep(0.002), WithLabels("Time (ns)", "Bonds")); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("plot not written: %v", err)
	}
	if err := TimeSeries(dataset.NewDataSetList(), "Nothing", filepath.Join(dir, "empty.png")); err == nil {
		Te.Error("an empty list should not be plotted")
	}
}

func TestHistogram(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "hist.svg")
	if err := Histogram(series().At(0), 10, "Distribution", name, WithSize(4, 4)); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name); err != nil {
		Te.Error(err)
	}
}

func TestColors(Te *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 6; i++ {
		r, g, b := colors(i, 6)
		seen[[3]uint8{r, g, b}] = true
	}
	if len(seen) != 6 {
		Te.Errorf("colors should differ, got %d different ones", len(seen))
	}
}
