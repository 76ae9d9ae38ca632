/*
 * topology.go, part of gotraj.
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

package traj

import (
	"fmt"
	"math"
)

//Atom contains the static information for one atom. The coordinates
//live in the frames of a Trajectory.
type Atom struct {
	Name    string
	Type    string //force field atom type
	ID      int    //serial number, starting from 1
	Index   int    //position in the Topology, starting from 0
	Symbol  string
	Number  int    //atomic number, 0 if unknown
	MolName string //name of the residue
	MolID   int    //number of the residue
	Chain   string
	Residue int //index of the residue in the Topology
	Mass    float64
	Charge  float64 //in units of the electron charge
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	a := *A
	return &a
}

//Residue is a contiguous range of atoms, [First, Last), in a Topology.
type Residue struct {
	Name   string
	Number int
	Chain  string
	First  int
	Last   int
}

//Len returns the number of atoms in the residue.
func (R *Residue) Len() int {
	return R.Last - R.First
}

//Bond joins the atoms with indexes At1 and At2.
type Bond struct {
	Index int
	At1   int
	At2   int
	Order float64 //Order 0 means undetermined
}

//Cross returns the index of the atom joined to origin by the bond.
//It panics if origin is not part of the bond.
func (B *Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!")
}

//Box is a periodic box, given by its 3 lengths (A) and 3 angles (degrees).
type Box struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
}

//NewBox returns a box from a slice with the 3 lengths and, optionally, the 3 angles.
//If no angles are given, an orthorhombic box is assumed.
func NewBox(b []float64) (*Box, error) {
	switch len(b) {
	case 3:
		return &Box{A: b[0], B: b[1], C: b[2], Alpha: 90, Beta: 90, Gamma: 90}, nil
	case 6:
		return &Box{A: b[0], B: b[1], C: b[2], Alpha: b[3], Beta: b[4], Gamma: b[5]}, nil
	}
	return nil, NewError(fmt.Sprintf("A box needs 3 or 6 values, got %d", len(b)), "NewBox")
}

//Slice returns the lengths and angles of the box.
func (B *Box) Slice() []float64 {
	return []float64{B.A, B.B, B.C, B.Alpha, B.Beta, B.Gamma}
}

//Orthorhombic returns true if the 3 angles of the box are 90 degrees.
func (B *Box) Orthorhombic() bool {
	const tol = 1e-6
	return math.Abs(B.Alpha-90) < tol && math.Abs(B.Beta-90) < tol && math.Abs(B.Gamma-90) < tol
}

/*****Topology type***/

//Topology contains information about a molecular system which is not expected to change
//in time (i.e. everything except for coordinates). A Topology is immutable: its accessors
//return copies.
type Topology struct {
	title    string
	atoms    []*Atom
	residues []*Residue
	bonds    []*Bond
	box      *Box
}

//NewTopology builds a Topology from the given atoms, residues, bonds and box (which can be nil).
//The slices are copied. It sets the Index of each atom and checks that residue and bond indexes
//are within range.
func NewTopology(title string, atoms []*Atom, residues []*Residue, bonds []*Bond, box *Box) (*Topology, error) {
	if atoms == nil {
		return nil, NewError("Supplied nil atoms", "NewTopology")
	}
	T := &Topology{title: title}
	T.atoms = make([]*Atom, len(atoms))
	for i, v := range atoms {
		if v == nil {
			return nil, NewError(fmt.Sprintf("Atom %d is nil", i), "NewTopology")
		}
		a := v.Copy()
		a.Index = i
		if a.ID == 0 {
			a.ID = i + 1
		}
		if len(residues) > 0 && (a.Residue < 0 || a.Residue >= len(residues)) {
			return nil, NewError(fmt.Sprintf("Atom %d belongs to residue %d, out of range (%d residues)", i, a.Residue, len(residues)), "NewTopology")
		}
		T.atoms[i] = a
	}
	T.residues = make([]*Residue, len(residues))
	for i, v := range residues {
		r := *v
		if r.First < 0 || r.Last > len(atoms) || r.First > r.Last {
			return nil, NewError(fmt.Sprintf("Residue %d spans atoms [%d,%d), out of range", i, r.First, r.Last), "NewTopology")
		}
		T.residues[i] = &r
	}
	T.bonds = make([]*Bond, len(bonds))
	for i, v := range bonds {
		b := *v
		if b.At1 < 0 || b.At2 < 0 || b.At1 >= len(atoms) || b.At2 >= len(atoms) {
			return nil, NewError(fmt.Sprintf("Bond %d (%d-%d) out of range", i, b.At1, b.At2), "NewTopology")
		}
		b.Index = i
		T.bonds[i] = &b
	}
	if box != nil {
		b := *box
		T.box = &b
	}
	return T, nil
}

//Title returns the title of the topology.
func (T *Topology) Title() string {
	return T.title
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Atom returns a copy of the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.atoms[i].Copy()
}

//NResidues returns the number of residues in the topology.
func (T *Topology) NResidues() int {
	return len(T.residues)
}

//Residue returns a copy of the ith residue. Panics if out of range.
func (T *Topology) Residue(i int) *Residue {
	r := *T.residues[i]
	return &r
}

//NBonds returns the number of bonds in the topology.
func (T *Topology) NBonds() int {
	return len(T.bonds)
}

//Bond returns a copy of the ith bond. Panics if out of range.
func (T *Topology) Bond(i int) *Bond {
	b := *T.bonds[i]
	return &b
}

//Box returns a copy of the periodic box of the topology, or nil
//if the system is not periodic.
func (T *Topology) Box() *Box {
	if T.box == nil {
		return nil
	}
	b := *T.box
	return &b
}

//Masses returns a slice with the masses of all atoms, and an error if some are missing.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i, v := range T.atoms {
		if v.Mass == 0 {
			return nil, NewError(fmt.Sprintf("Not all the masses have been obtained: %d %v", i, v), "Masses")
		}
		mass[i] = v.Mass
	}
	return mass, nil
}

//Charge returns the total charge of the topology.
func (T *Topology) Charge() float64 {
	var c float64
	for _, v := range T.atoms {
		c += v.Charge
	}
	return c
}

//Copy returns a deep copy of the topology.
func (T *Topology) Copy() *Topology {
	//NewTopology can't fail on data coming from a valid Topology.
	top, err := NewTopology(T.title, T.atoms, T.residues, T.bonds, T.box)
	if err != nil {
		panic(err.Error())
	}
	return top
}
