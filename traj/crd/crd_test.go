/*
 * crd_test.go, part of gotraj
 *
 * Copyright 2018 Raul Mera Adasme <rmera_changeforat_chem-dot-helsinki-dot-fi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package crd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	traj "github.com/rmera/gotraj"
	v3 "github.com/rmera/gotraj/v3"
	"gonum.org/v1/gonum/floats"
)

//fourAtoms returns a 2-frame trajectory of 4 atoms, so each frame
//spans 2 lines (12 values).
func fourAtoms(Te *testing.T, box *traj.Box) *traj.Trajectory {
	atoms := make([]*traj.Atom, 4)
	for i := range atoms {
		atoms[i] = &traj.Atom{Name: "C", Symbol: "C"}
	}
	top, err := traj.NewTopology("four carbons", atoms, nil, nil, box)
	if err != nil {
		Te.Fatal(err)
	}
	t := traj.NewTrajectory(top)
	if err := t.Allocate(2, 4); err != nil {
		Te.Fatal(err)
	}
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)*1.5 - 10.25
	}
	if err := t.UpdateCoordinates(data, [3]int{2, 4, 3}); err != nil {
		Te.Fatal(err)
	}
	return t
}

func TestCrdWriteRead(Te *testing.T) {
	t := fourAtoms(Te, &traj.Box{A: 20, B: 21, C: 22, Alpha: 90, Beta: 90, Gamma: 90})
	name := filepath.Join(Te.TempDir(), "test.crd")
	if err := WriteFile(name, t); err != nil {
		Te.Fatal(err)
	}
	C, err := New(name, 4, true)
	if err != nil {
		Te.Fatal(err)
	}
	defer C.Close()
	t2, err := traj.ReadAll(C, t.Topology())
	if err != nil {
		Te.Fatal(err)
	}
	if t2.LenFrames() != 2 {
		Te.Fatalf("read %d frames, expected 2", t2.LenFrames())
	}
	if !floats.EqualApprox(t2.XYZ(), t.XYZ(), 1e-3) {
		Te.Errorf("coordinates differ:\n%v\n%v", t2.XYZ(), t.XYZ())
	}
	if b := t2.Frame(1).Box(); b == nil || b.B != 21 {
		Te.Errorf("box not read: %+v", b)
	}
}

func TestCrdNoBox(Te *testing.T) {
	t := fourAtoms(Te, nil)
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		Te.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 5 {
		Te.Errorf("expected a title and 2 lines per frame, got %d lines:\n%s", lines, buf.String())
	}
	C, err := NewReader(&buf, 4, false)
	if err != nil {
		Te.Fatal(err)
	}
	m := v3.Zeros(4)
	if err := C.Next(nil); err != nil {
		Te.Fatal(err)
	}
	if err := C.Next(m); err != nil {
		Te.Fatal(err)
	}
	if m.At(3, 2) != t.Frame(1).At(3)[2] {
		Te.Errorf("wrong last coordinate %f", m.At(3, 2))
	}
	err = C.Next(m)
	if !traj.IsLastFrame(err) {
		Te.Errorf("expected the last frame error, got %v", err)
	}
}

//Wide negative values leave no space between fields.
func TestCrdFixedWidth(Te *testing.T) {
	in := "title\n-100.000-200.000-300.000   1.000   2.000   3.000\n"
	C, err := NewReader(strings.NewReader(in), 2, false)
	if err != nil {
		Te.Fatal(err)
	}
	m := v3.Zeros(2)
	if err := C.Next(m); err != nil {
		Te.Fatal(err)
	}
	if m.At(0, 1) != -200 || m.At(1, 2) != 3 {
		Te.Errorf("wrong values %v", m)
	}
	if _, err := NewReader(strings.NewReader(in), 0, false); err == nil {
		Te.Error("a reader for 0 atoms should not be created")
	}
	C, _ = NewReader(strings.NewReader("title\n   1.000   2.000\n"), 1, false)
	if err := C.Next(nil); err == nil || traj.IsLastFrame(err) {
		Te.Errorf("a truncated frame should be an error, got %v", err)
	}
}
