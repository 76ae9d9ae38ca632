/*
 * stf_test.go, part of gotraj.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

package stf

import (
	"path/filepath"
	"testing"

	traj "github.com/rmera/gotraj"
	v3 "github.com/rmera/gotraj/v3"
	"gonum.org/v1/gonum/floats"
)

func threeFrames(Te *testing.T) *traj.Trajectory {
	atoms := []*traj.Atom{{Name: "N"}, {Name: "CA"}, {Name: "C"}}
	top, err := traj.NewTopology("backbone", atoms, nil, nil, &traj.Box{A: 40, B: 40, C: 40, Alpha: 90, Beta: 90, Gamma: 90})
	if err != nil {
		Te.Fatal(err)
	}
	t := traj.NewTrajectory(top)
	if err := t.Allocate(3, 3); err != nil {
		Te.Fatal(err)
	}
	data := make([]float64, 27)
	for i := range data {
		data[i] = float64(i)*0.731 - 5
	}
	if err := t.UpdateCoordinates(data, t.Shape()); err != nil {
		Te.Fatal(err)
	}
	return t
}

func TestSTFRoundTrip(Te *testing.T) {
	t := threeFrames(Te)
	for _, name := range []string{"test.stf", "test.stz"} {
		name = filepath.Join(Te.TempDir(), name)
		if err := WriteTrajectory(name, t, 3); err != nil {
			Te.Fatal(err)
		}
		t2, header, err := ReadTrajectory(name, t.Topology())
		if err != nil {
			Te.Fatal(err)
		}
		if header["prec"] != "3" || header["title"] != "backbone" {
			Te.Errorf("wrong header %v", header)
		}
		if t2.LenFrames() != 3 {
			Te.Fatalf("read %d frames from %s, expected 3", t2.LenFrames(), name)
		}
		if !floats.EqualApprox(t2.XYZ(), t.XYZ(), 1e-3) {
			Te.Errorf("coordinates differ:\n%v\n%v", t2.XYZ(), t.XYZ())
		}
		if b := t2.Frame(2).Box(); b == nil || b.A != 40 || b.Gamma != 90 {
			Te.Errorf("box not kept: %+v", b)
		}
	}
}

func TestSTFWriter(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "w.stf")
	W, err := NewWriter(name, 2, map[string]string{"prec": "nonsense"})
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(v3.Zeros(3)); err == nil {
		Te.Error("a frame with the wrong number of atoms should be rejected")
	}
	m, _ := v3.NewMatrix([]float64{1.234, 2, 3, 4, 5, 6.789})
	if err := W.WNext(m); err != nil {
		Te.Fatal(err)
	}
	if err := W.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(m); err == nil {
		Te.Error("writing to a closed writer should fail")
	}
	R, header, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if header["prec"] != "2" || R.Len() != 2 {
		Te.Errorf("an invalid precision should be replaced by the default: %v", header)
	}
	c := v3.Zeros(2)
	box := []float64{1, 1, 1, 1, 1, 1}
	if err := R.Next(c, box); err != nil {
		Te.Fatal(err)
	}
	if c.At(0, 0) != 1.23 || c.At(1, 2) != 6.79 {
		Te.Errorf("wrong coordinates at precision 2: %v", c)
	}
	if box[0] != 1 {
		Te.Error("a frame without box should leave the box untouched")
	}
	if err := R.Next(c); !traj.IsLastFrame(err) {
		Te.Errorf("expected the last frame error, got %v", err)
	}
	if _, err := NewWriter(name, 2, map[string]string{"bad=key": "1"}); err == nil {
		Te.Error("a header key with = should be rejected")
	}
}
