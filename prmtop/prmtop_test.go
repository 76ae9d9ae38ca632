/*
 * prmtop_test.go, part of gotraj.
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

package prmtop

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	traj "github.com/rmera/gotraj"
)

func serWater(Te *testing.T) *traj.Topology {
	atoms := []*traj.Atom{
		{Name: "CB", Symbol: "C", Type: "CT", Mass: 12.01, Charge: 0.2117, MolName: "SER", MolID: 20, Residue: 0},
		{Name: "OG", Symbol: "O", Type: "OH", Mass: 16.0, Charge: -0.6546, MolName: "SER", MolID: 20, Residue: 0},
		{Name: "HG", Symbol: "H", Type: "HO", Mass: 1.008, Charge: 0.4275, MolName: "SER", MolID: 20, Residue: 0},
		{Name: "O", Symbol: "O", Type: "OW", Mass: 16.0, Charge: -0.834, MolName: "WAT", MolID: 21, Residue: 1},
		{Name: "H1", Symbol: "H", Type: "HW", Mass: 1.008, Charge: 0.417, MolName: "WAT", MolID: 21, Residue: 1},
		{Name: "H2", Symbol: "H", Type: "HW", Mass: 1.008, Charge: 0.417, MolName: "WAT", MolID: 21, Residue: 1},
	}
	residues := []*traj.Residue{
		{Name: "SER", Number: 20, Chain: "A", First: 0, Last: 3},
		{Name: "WAT", Number: 21, Chain: "W", First: 3, Last: 6},
	}
	bonds := []*traj.Bond{{At1: 0, At2: 1}, {At1: 1, At2: 2}, {At1: 3, At2: 4}, {At1: 3, At2: 5}}
	top, err := traj.NewTopology("serine and water", atoms, residues, bonds, &traj.Box{A: 30, B: 31, C: 32, Alpha: 90, Beta: 90, Gamma: 90})
	if err != nil {
		Te.Fatal(err)
	}
	return top
}

func TestWriteRead(Te *testing.T) {
	top := serWater(Te)
	var buf bytes.Buffer
	if err := Write(&buf, top); err != nil {
		Te.Fatal(err)
	}
	P, err := Read(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if P.NumAtoms() != 6 || P.NumResidues() != 2 {
		Te.Fatalf("wrong pointers: %d atoms %d residues", P.NumAtoms(), P.NumResidues())
	}
	nbonh, _ := P.Pointer(NBONH)
	mbona, _ := P.Pointer(MBONA)
	if nbonh != 3 || mbona != 1 {
		Te.Errorf("bonds to hydrogen not told apart: NBONH %d MBONA %d", nbonh, mbona)
	}
	top2, err := P.Topology()
	if err != nil {
		Te.Fatal(err)
	}
	if top2.Title() != "serine and water" {
		Te.Errorf("title not kept: %q", top2.Title())
	}
	if top2.Len() != top.Len() || top2.NResidues() != 2 || top2.NBonds() != 4 {
		Te.Fatalf("wrong dimensions after reading: %d %d %d", top2.Len(), top2.NResidues(), top2.NBonds())
	}
	for i := 0; i < top.Len(); i++ {
		a, b := top.Atom(i), top2.Atom(i)
		if a.Name != b.Name || a.Type != b.Type || a.Symbol != b.Symbol || a.MolName != b.MolName || a.MolID != b.MolID || a.Residue != b.Residue {
			Te.Errorf("atom %d differs: %+v %+v", i, a, b)
		}
		if math.Abs(a.Charge-b.Charge) > 1e-6 || math.Abs(a.Mass-b.Mass) > 1e-6 {
			Te.Errorf("atom %d charge or mass differs: %+v %+v", i, a, b)
		}
	}
	r := top2.Residue(1)
	if r.Name != "WAT" || r.Number != 21 || r.Chain != "W" || r.First != 3 || r.Last != 6 {
		Te.Errorf("wrong residue %+v", r)
	}
	if b := top2.Box(); b == nil || b.A != 30 || b.C != 32 || !b.Orthorhombic() {
		Te.Errorf("wrong box %+v", b)
	}
}

func TestWithoutResidues(Te *testing.T) {
	top := serWater(Te)
	atoms := make([]*traj.Atom, top.Len())
	for i := range atoms {
		atoms[i] = top.Atom(i)
	}
	bonds := make([]*traj.Bond, top.NBonds())
	for i := range bonds {
		bonds[i] = top.Bond(i)
	}
	bare, err := traj.NewTopology("no residues", atoms, nil, bonds, nil)
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, bare); err != nil {
		Te.Fatal(err)
	}
	P, err := Read(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	//the file itself needs a residue
	if P.NumResidues() != 1 || P.Strings("RESIDUE_LABEL")[0] != "MOL" {
		Te.Errorf("expected one MOL residue in the file, got %d %v", P.NumResidues(), P.Strings("RESIDUE_LABEL"))
	}
	top2, err := P.Topology()
	if err != nil {
		Te.Fatal(err)
	}
	if top2.NResidues() != 0 || top2.Len() != 6 || top2.NBonds() != 4 {
		Te.Errorf("wrong dimensions after reading: %d atoms %d residues %d bonds", top2.Len(), top2.NResidues(), top2.NBonds())
	}
	P.Sections[ImplicitResidueFlag] = []string{"       0"}
	if top3, err := P.Topology(); err != nil || top3.NResidues() != 1 {
		Te.Errorf("an unmarked residue should be kept: %v", err)
	}
}

func TestWriteFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "top.parm7")
	if err := WriteFile(name, serWater(Te)); err != nil {
		Te.Fatal(err)
	}
	P, err := ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if P.FileName() != name {
		Te.Errorf("wrong file name %s", P.FileName())
	}
	if _, err := ReadFile(filepath.Join(Te.TempDir(), "nothere.parm7")); err == nil {
		Te.Error("reading a missing file should fail")
	}
}

func TestReadErrors(Te *testing.T) {
	if _, err := Read(strings.NewReader("%FLAG TITLE\n%FORMAT(20a4)\nno pointers\n")); err == nil {
		Te.Error("a file without POINTERS should be rejected")
	}
	if _, err := Read(strings.NewReader("%FLAG POINTERS\n%FORMAT(something)\n")); err == nil {
		Te.Error("a bad format specifier should be rejected")
	}
	if err := Write(&bytes.Buffer{}, nil); err == nil {
		Te.Error("writing a nil topology should fail")
	}
}
