/*
 * timecorr_test.go, part of gotraj.
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
 */

package chemstat

import (
	"math"
	"testing"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//direct is the O(N^2) version of CrossCorr.
func direct(c1, c2 []float64) []float64 {
	m1, m2 := stat.Mean(c1, nil), stat.Mean(c2, nil)
	var s1, s2 float64
	for i := range c1 {
		s1 += (c1[i] - m1) * (c1[i] - m1)
		s2 += (c2[i] - m2) * (c2[i] - m2)
	}
	ret := make([]float64, len(c1))
	for k := range ret {
		for t := 0; t+k < len(c1); t++ {
			ret[k] += (c1[t+k] - m1) * (c2[t] - m2)
		}
		ret[k] /= math.Sqrt(s1 * s2)
	}
	return ret
}

func TestAutoCorr(Te *testing.T) {
	ds := dataset.NewDataSet("HB_00000[solutehb]", "", []float64{1, 1, 0, 1, 0, 0, 1, 1, 1, 0, 1, 0})
	ac, err := AutoCorr(ds)
	if err != nil {
		Te.Fatal(err)
	}
	if len(ac) != ds.Len() {
		Te.Fatalf("expected %d lags, got %d", ds.Len(), len(ac))
	}
	if math.Abs(ac[0]-1) > 1e-12 {
		Te.Errorf("the autocorrelation at lag 0 should be 1, got %f", ac[0])
	}
	if !floats.EqualApprox(ac, direct(ds.Data, ds.Data), 1e-10) {
		Te.Errorf("FFT and direct autocorrelations differ:\n%v\n%v", ac, direct(ds.Data, ds.Data))
	}
	if _, err := AutoCorr(dataset.NewDataSet("const", "", []float64{1, 1, 1})); err == nil {
		Te.Error("a constant series has no defined autocorrelation")
	}
}

func TestCrossCorr(Te *testing.T) {
	a := make([]float64, 50)
	b := make([]float64, 50)
	for i := range a {
		a[i] = math.Sin(float64(i) * 0.3)
		b[i] = math.Cos(float64(i)*0.3) + 0.1*float64(i%3)
	}
	cc, err := CrossCorr(a, b)
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.EqualApprox(cc, direct(a, b), 1e-10) {
		Te.Error("FFT and direct cross-correlations differ")
	}
	if _, err := CrossCorr(a, b[:10]); err == nil {
		Te.Error("series of different lengths should be rejected")
	}
}

func TestLifetime(Te *testing.T) {
	if l := Lifetime([]float64{1, 0.5, 0.25, -0.1, 0.3}, 1); math.Abs(l-1.125) > 1e-12 {
		Te.Errorf("wrong lifetime %f", l)
	}
	if l := Lifetime([]float64{1, 0.5}, 2); math.Abs(l-1.5) > 1e-12 {
		Te.Errorf("wrong lifetime %f", l)
	}
}

func TestSeries(Te *testing.T) {
	top, err := traj.NewTopology("pair", []*traj.Atom{{Name: "O"}, {Name: "H"}}, nil, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	t := traj.NewTrajectory(top)
	if err := t.Allocate(3, 2); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		t.Frame(i).Set(1, [3]float64{float64(i + 1), 0, 0})
	}
	d, err := Series(t.Reader(), Distance(0, 1))
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.Equal(d, []float64{1, 2, 3}) {
		Te.Errorf("wrong distances %v", d)
	}
}
