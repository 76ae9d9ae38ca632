/*
 * adapt.go, part of gotraj.
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

//Package interop converts foreign structures, as produced by structure libraries,
//to native topologies and trajectories, and native topologies back to foreign
//structures through a parm7 file.
package interop

import (
	"fmt"
	"strings"

	traj "github.com/rmera/gotraj"
)

//ResultKind is the native object a Structure is converted to.
type ResultKind int

const (
	KindTopology ResultKind = iota
	KindTrajectory
)

func (k ResultKind) String() string {
	switch k {
	case KindTopology:
		return "topology"
	case KindTrajectory:
		return "trajectory"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

//ParseResultKind returns the kind named s, which is matched ignoring case.
//"top" and "traj" are accepted as short forms.
func ParseResultKind(s string) (ResultKind, error) {
	switch strings.ToLower(s) {
	case "topology", "top":
		return KindTopology, nil
	case "trajectory", "traj":
		return KindTrajectory, nil
	}
	return -1, &InvalidResultKindError{Kind: s, deco: []string{"ParseResultKind"}}
}

//Adapt converts s to a *traj.Topology or a *traj.Trajectory, according to kind.
func Adapt(s Structure, kind string) (traj.Atomer, error) {
	k, err := ParseResultKind(kind)
	if err != nil {
		return nil, traj.ErrDecorate(err, "Adapt")
	}
	if k == KindTopology {
		top, err := ToTopology(s)
		if err != nil {
			return nil, traj.ErrDecorate(err, "Adapt")
		}
		return top, nil
	}
	t, err := ToTrajectory(s)
	if err != nil {
		return nil, traj.ErrDecorate(err, "Adapt")
	}
	return t, nil
}

//ToTopology builds a native Topology from the static information in s.
//The coordinates of s are not used. The residues of a Topology are contiguous
//ranges of atoms, so the atoms of s must be sorted by residue. A structure where
//a residue is split by another one gives an IncompleteStructureError.
func ToTopology(s Structure) (*traj.Topology, error) {
	if s == nil {
		return nil, &IncompleteStructureError{msg: "nil structure", deco: []string{"ToTopology"}}
	}
	natoms, nres := s.NumAtoms(), s.NumResidues()
	if natoms == 0 {
		return nil, &IncompleteStructureError{msg: "structure without atoms", deco: []string{"ToTopology"}}
	}
	residues := make([]*traj.Residue, nres)
	for i := range residues {
		r := s.ResidueAt(i)
		residues[i] = &traj.Residue{Name: r.Name, Number: r.Number, Chain: r.Chain, First: -1}
	}
	atoms := make([]*traj.Atom, natoms)
	prev := 0
	for i := range atoms {
		a := s.AtomAt(i)
		at := &traj.Atom{Name: a.Name, Type: a.Type, Symbol: a.Element, Number: a.Number, Charge: a.Charge, Mass: a.Mass}
		if nres > 0 {
			if a.Residue < 0 || a.Residue >= nres {
				return nil, &IncompleteStructureError{msg: fmt.Sprintf("atom %d in residue %d, out of range (%d residues)", i, a.Residue, nres), deco: []string{"ToTopology"}}
			}
			//residues are contiguous ranges of atoms
			if a.Residue < prev {
				return nil, &IncompleteStructureError{msg: fmt.Sprintf("atom %d breaks the order of residues", i), deco: []string{"ToTopology"}}
			}
			prev = a.Residue
			r := residues[a.Residue]
			if r.First < 0 {
				r.First = i
			}
			r.Last = i + 1
			at.Residue = a.Residue
			at.MolName = r.Name
			at.MolID = r.Number
			at.Chain = r.Chain
		}
		atoms[i] = at
	}
	for i, r := range residues {
		if r.First < 0 {
			//an empty residue goes where the previous one ends.
			r.First = 0
			if i > 0 {
				r.First = residues[i-1].Last
			}
			r.Last = r.First
		}
	}
	bonds := make([]*traj.Bond, 0, len(s.Bonds()))
	for _, b := range s.Bonds() {
		bonds = append(bonds, &traj.Bond{At1: b[0], At2: b[1]})
	}
	var box *traj.Box
	if b := s.Box(); b != nil {
		var err error
		box, err = traj.NewBox(b)
		if err != nil {
			return nil, &IncompleteStructureError{msg: err.Error(), deco: []string{"ToTopology"}}
		}
	}
	top, err := traj.NewTopology(s.Title(), atoms, residues, bonds, box)
	if err != nil {
		return nil, &IncompleteStructureError{msg: err.Error(), deco: []string{"NewTopology", "ToTopology"}}
	}
	return top, nil
}

//ToTrajectory builds a native Trajectory, with the topology built from s and a copy
//of its coordinates, in the same frame and atom order. It fails with a
//MissingCoordinatesError if s has no coordinates.
func ToTrajectory(s Structure) (*traj.Trajectory, error) {
	top, err := ToTopology(s)
	if err != nil {
		return nil, traj.ErrDecorate(err, "ToTrajectory")
	}
	c := s.Coordinates()
	if c == nil {
		return nil, &MissingCoordinatesError{deco: []string{"ToTrajectory"}}
	}
	shape := c.Shape()
	t := traj.NewTrajectory(top)
	if err := t.Allocate(shape[0], shape[1]); err != nil {
		return nil, traj.ErrDecorate(err, "ToTrajectory")
	}
	if err := t.UpdateCoordinates(c.Data(), shape); err != nil {
		return nil, traj.ErrDecorate(err, "ToTrajectory")
	}
	return t, nil
}
