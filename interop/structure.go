/*
 * structure.go, part of gotraj.
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

package interop

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	traj "github.com/rmera/gotraj"
)

//Structure is a foreign molecular structure, as exposed by a structure library.
//It is only read by this package.
type Structure interface {
	Title() string
	NumAtoms() int
	AtomAt(i int) AtomRecord
	NumResidues() int
	ResidueAt(i int) ResidueRecord
	Bonds() [][2]int

	//Box returns the 3 lengths and, optionally, 3 angles of the periodic box, or nil.
	Box() []float64

	//Coordinates returns nil if the structure has no coordinates.
	Coordinates() *CoordArray
}

//AtomRecord is the static information of a foreign atom.
type AtomRecord struct {
	Name    string  `json:"name"`
	Type    string  `json:"type,omitempty"`
	Element string  `json:"element,omitempty"`
	Number  int     `json:"atomic_number,omitempty"`
	Charge  float64 `json:"charge"`
	Mass    float64 `json:"mass"`
	Residue int     `json:"residue"` //index of the residue
}

//ResidueRecord is a foreign residue. Its atoms are those which Residue
//field points to it.
type ResidueRecord struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Chain  string `json:"chain,omitempty"`
}

//CoordArray holds coordinates with the shape (frames, atoms, 3), in a flat,
//row-major slice.
type CoordArray struct {
	frames int
	atoms  int
	data   []float64
}

//NewCoordArray returns a CoordArray with the given shape, using data directly.
func NewCoordArray(frames, atoms int, data []float64) (*CoordArray, error) {
	if frames < 0 || atoms <= 0 || len(data) != frames*atoms*3 {
		return nil, &traj.ShapeError{Expected: []int{frames, atoms, 3}, Got: []int{len(data)}}
	}
	return &CoordArray{frames: frames, atoms: atoms, data: data}, nil
}

//Shape returns the number of frames, atoms and 3.
func (C *CoordArray) Shape() [3]int {
	return [3]int{C.frames, C.atoms, 3}
}

//At returns the coordinates of atom j in frame i.
func (C *CoordArray) At(i, j int) [3]float64 {
	k := (i*C.atoms + j) * 3
	return [3]float64{C.data[k], C.data[k+1], C.data[k+2]}
}

//Data returns the underlying slice.
func (C *CoordArray) Data() []float64 {
	return C.data
}

//MarshalJSON writes the coordinates as nested arrays, frames, atoms and xyz.
func (C *CoordArray) MarshalJSON() ([]byte, error) {
	nested := make([][][3]float64, C.frames)
	for i := range nested {
		nested[i] = make([][3]float64, C.atoms)
		for j := range nested[i] {
			nested[i][j] = C.At(i, j)
		}
	}
	return json.Marshal(nested)
}

//UnmarshalJSON reads the coordinates from nested arrays. All frames must have
//the same number of atoms.
func (C *CoordArray) UnmarshalJSON(b []byte) error {
	var nested [][][3]float64
	if err := json.Unmarshal(b, &nested); err != nil {
		return err
	}
	C.frames = len(nested)
	C.atoms = 0
	if C.frames > 0 {
		C.atoms = len(nested[0])
	}
	C.data = make([]float64, 0, C.frames*C.atoms*3)
	for i, f := range nested {
		if len(f) != C.atoms {
			return fmt.Errorf("frame %d has %d atoms, frame 0 has %d", i, len(f), C.atoms)
		}
		for _, v := range f {
			C.data = append(C.data, v[:]...)
		}
	}
	return nil
}

//Record is a plain implementation of Structure that can be stored as JSON.
type Record struct {
	Name     string          `json:"title"`
	AtomList []AtomRecord    `json:"atoms"`
	ResList  []ResidueRecord `json:"residues"`
	BondList [][2]int        `json:"bonds"`
	BoxDims  []float64       `json:"box,omitempty"`
	Coords   *CoordArray     `json:"coordinates,omitempty"`
}

func (R *Record) Title() string { return R.Name }

func (R *Record) NumAtoms() int { return len(R.AtomList) }

func (R *Record) AtomAt(i int) AtomRecord { return R.AtomList[i] }

func (R *Record) NumResidues() int { return len(R.ResList) }

func (R *Record) ResidueAt(i int) ResidueRecord { return R.ResList[i] }

func (R *Record) Bonds() [][2]int { return R.BondList }

func (R *Record) Box() []float64 { return R.BoxDims }

//Coordinates returns the coordinates of the record, or nil.
func (R *Record) Coordinates() *CoordArray {
	return R.Coords
}

//ReadRecord decodes a JSON Record from r.
func ReadRecord(r io.Reader) (*Record, error) {
	R := new(Record)
	if err := json.NewDecoder(r).Decode(R); err != nil {
		return nil, &IncompleteStructureError{msg: "can't decode structure: " + err.Error(), deco: []string{"ReadRecord"}}
	}
	return R, nil
}

//ReadRecordFile decodes the JSON Record in the file name.
func ReadRecordFile(name string) (*Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &IncompleteStructureError{msg: err.Error(), deco: []string{"ReadRecordFile"}}
	}
	defer f.Close()
	R, err := ReadRecord(f)
	if err != nil {
		return nil, traj.ErrDecorate(err, "ReadRecordFile")
	}
	return R, nil
}

//Write encodes R as JSON to w.
func (R *Record) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(R)
}

//FromTopology returns a Record with the static information in top,
//and no coordinates.
func FromTopology(top *traj.Topology) *Record {
	R := &Record{Name: top.Title()}
	R.AtomList = make([]AtomRecord, top.Len())
	for i := range R.AtomList {
		a := top.Atom(i)
		R.AtomList[i] = AtomRecord{Name: a.Name, Type: a.Type, Element: a.Symbol, Number: a.Number, Charge: a.Charge, Mass: a.Mass, Residue: a.Residue}
	}
	R.ResList = make([]ResidueRecord, top.NResidues())
	for i := range R.ResList {
		r := top.Residue(i)
		R.ResList[i] = ResidueRecord{Name: r.Name, Number: r.Number, Chain: r.Chain}
	}
	R.BondList = make([][2]int, top.NBonds())
	for i := range R.BondList {
		b := top.Bond(i)
		R.BondList[i] = [2]int{b.At1, b.At2}
	}
	if b := top.Box(); b != nil {
		R.BoxDims = b.Slice()
	}
	return R
}

//FromTrajectory returns a Record with the topology and a copy of
//the coordinates of t.
func FromTrajectory(t *traj.Trajectory) *Record {
	R := FromTopology(t.Topology())
	s := t.Shape()
	if s[1] > 0 {
		R.Coords = &CoordArray{frames: s[0], atoms: s[1], data: t.XYZ()}
	}
	return R
}
