/*
 * timecorr.go, part of gotraj.
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

//Package chemstat computes time correlation functions of data series,
//such as the hydrogen bond time series obtained from cpptraj.
package chemstat

import (
	"fmt"
	"math"
	"math/cmplx"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
	v3 "github.com/rmera/gotraj/v3"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex conjugate multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

//AutoCorr returns the normalized autocorrelation function of the values in ds,
//for lags from 0 to ds.Len()-1. The value at lag 0 is 1.
func AutoCorr(ds *dataset.DataSet) ([]float64, error) {
	r, err := CrossCorr(ds.Data, ds.Data)
	if err != nil {
		return nil, Error{fmt.Sprintf("%s (set %s)", err.Error(), ds.Legend), []string{"AutoCorr"}}
	}
	return r, nil
}

//CrossCorr returns the normalized cross-correlation of c1 and c2, for lags from
//0 to len(c1)-1, where the value at lag k correlates c1[t+k] with c2[t].
//The series are zero-padded to twice their length before the FFT, so
//the correlation is not circular.
func CrossCorr(c1, c2 []float64) ([]float64, error) {
	n := len(c1)
	if n != len(c2) {
		return nil, Error{fmt.Sprintf("series of different lengths, %d and %d", len(c1), len(c2)), []string{"CrossCorr"}}
	}
	if n < 2 {
		return nil, Error{fmt.Sprintf("at least 2 values needed, got %d", n), []string{"CrossCorr"}}
	}
	c1mean := stat.Mean(c1, nil)
	c2mean := stat.Mean(c2, nil)
	c1pad := make([]complex128, 2*n)
	c2pad := make([]complex128, 2*n)
	var ss1, ss2 float64
	for i, v := range c1 {
		d1, d2 := v-c1mean, c2[i]-c2mean
		c1pad[i] = complex(d1, 0)
		c2pad[i] = complex(d2, 0)
		ss1 += d1 * d1
		ss2 += d2 * d2
	}
	if ss1 == 0 || ss2 == 0 {
		return nil, Error{"constant series, the correlation is undefined", []string{"CrossCorr"}}
	}
	f := fourier.NewCmplxFFT(len(c1pad))
	f.Coefficients(c1pad, c1pad)
	f.Coefficients(c2pad, c2pad)
	cmplxMulConj(c1pad, c2pad)
	f.Sequence(c1pad, c1pad)
	norm := float64(len(c1pad)) * math.Sqrt(ss1*ss2) //the inverse FFT is not normalized
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = real(c1pad[i]) / norm
	}
	return ret, nil
}

//Lifetime integrates, with the trapezoidal rule, the correlation function corr
//up to its first zero crossing. dt is the time between consecutive values.
//For a hydrogen bond autocorrelation function, it is an estimate of the bond lifetime.
func Lifetime(corr []float64, dt float64) float64 {
	end := len(corr)
	for i, v := range corr {
		if v <= 0 {
			end = i
			break
		}
	}
	if end < 2 {
		return 0
	}
	x := make([]float64, end)
	floats.Span(x, 0, dt*float64(end-1))
	var ret float64
	for i := 1; i < end; i++ {
		ret += 0.5 * (corr[i] + corr[i-1]) * (x[i] - x[i-1])
	}
	return ret
}

//Series applies f to each remaining frame of t and returns the results, in order.
func Series(t traj.Traj, f func(c *v3.Matrix) float64) ([]float64, error) {
	coord := v3.Zeros(t.Len())
	ret := make([]float64, 0, 100)
	for {
		err := t.Next(coord)
		if err != nil {
			if traj.IsLastFrame(err) {
				break
			}
			return nil, traj.ErrDecorate(err, "Series")
		}
		ret = append(ret, f(coord))
	}
	return ret, nil
}

//Distance returns a function that computes the distance between atoms i and j,
//to be used with Series.
func Distance(i, j int) func(c *v3.Matrix) float64 {
	return func(c *v3.Matrix) float64 {
		a, b := c.Vec(i), c.Vec(j)
		return math.Sqrt((a[0]-b[0])*(a[0]-b[0]) + (a[1]-b[1])*(a[1]-b[1]) + (a[2]-b[2])*(a[2]-b[2]))
	}
}

//Error is the error type of the package. It fulfills traj.Error
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
