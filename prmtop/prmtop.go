/*
 * prmtop.go, part of gotraj.
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

//Package prmtop reads and writes Amber parm7 (prmtop) topology files.
//Only the sections needed to describe atoms, residues, bonds and the
//periodic box are interpreted; every section is kept when reading.
package prmtop

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	traj "github.com/rmera/gotraj"
)

//Indexes of the POINTERS section, from the prmtop format description on ambermd.org
const (
	NATOM  = 0  // total number of atoms
	NTYPES = 1  // total number of distinct atom types
	NBONH  = 2  // number of bonds containing hydrogen
	MBONA  = 3  // number of bonds not containing hydrogen
	NEXT   = 10 // number of excluded atoms
	NRES   = 11 // number of residues
	NBONA  = 12 // MBONA + number of constraint bonds
	NUMBND = 15 // number of unique bond types
	NATYP  = 18 // number of atom types in parameter file
	IFBOX  = 27 // set to 1 if standard periodic box, 2 when truncated octahedral
	NMXRS  = 28 // number of atoms in the largest residue

	npointers = 31
)

//Amber stores charges multiplied by this factor.
const chargeFactor = 18.2223

var formatRe = regexp.MustCompile(`\((\d+)([aAIiEe])(\d+)(?:\.\d+)?\)`)

//ImplicitResidueFlag marks a file whose only residue was added by Write to a
//topology without residues. Topology drops that residue.
const ImplicitResidueFlag = "GOTRAJ_IMPLICIT_RESIDUE"

//Parm holds every section of a parm7 file, as strings, in the order read.
type Parm struct {
	Version  string
	Flags    []string
	Formats  map[string]string
	Sections map[string][]string
	filename string
}

//ReadFile reads the parm7 file name.
func ReadFile(name string) (*Parm, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"ReadFile"}, true}
	}
	defer f.Close()
	P, err := Read(bufio.NewReader(f))
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			e.deco = append(e.deco, "ReadFile")
			return nil, e
		}
		return nil, err
	}
	P.filename = name
	return P, nil
}

//Read reads a parm7 file from r.
func Read(r io.Reader) (*Parm, error) {
	P := &Parm{Formats: make(map[string]string), Sections: make(map[string][]string)}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var flag string
	var width, perline int
	for s.Scan() {
		line := s.Text()
		switch {
		case strings.HasPrefix(line, "%VERSION"):
			P.Version = strings.TrimSpace(strings.TrimPrefix(line, "%VERSION"))
		case strings.HasPrefix(line, "%FLAG"):
			flag = strings.TrimSpace(strings.TrimPrefix(line, "%FLAG"))
			P.Flags = append(P.Flags, flag)
			P.Sections[flag] = []string{}
			width = 0
		case strings.HasPrefix(line, "%FORMAT"):
			if flag == "" {
				return nil, Error{WrongFormat + ": FORMAT line before any FLAG", "", []string{"Read"}, true}
			}
			m := formatRe.FindStringSubmatch(line)
			if len(m) != 4 {
				return nil, Error{fmt.Sprintf("%s: can't understand format specifier %q", WrongFormat, line), "", []string{"Read"}, true}
			}
			perline, _ = strconv.Atoi(m[1])
			width, _ = strconv.Atoi(m[3])
			P.Formats[flag] = strings.TrimSpace(strings.TrimPrefix(line, "%FORMAT"))
		case strings.HasPrefix(line, "%COMMENT"):
			continue
		default:
			if flag == "" || width == 0 {
				continue
			}
			//fixed-width fields, so names with spaces (or numbers without one) are read right.
			for i := 0; i+width <= len(line) && i/width < perline; i += width {
				P.Sections[flag] = append(P.Sections[flag], line[i:i+width])
			}
			//Some writers trim the trailing spaces of the last string field.
			if rem := len(line) % width; rem != 0 && len(line)/width < perline {
				P.Sections[flag] = append(P.Sections[flag], line[len(line)-rem:])
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, Error{ReadError + ": " + err.Error(), "", []string{"Read"}, true}
	}
	if _, ok := P.Sections["POINTERS"]; !ok {
		return nil, Error{WrongFormat + ": no POINTERS section", "", []string{"Read"}, true}
	}
	return P, nil
}

//Strings returns the trimmed values of the section flag.
func (P *Parm) Strings(flag string) []string {
	s := P.Sections[flag]
	ret := make([]string, len(s))
	for i, v := range s {
		ret[i] = strings.TrimSpace(v)
	}
	return ret
}

//Ints returns the values of the section flag as integers.
func (P *Parm) Ints(flag string) ([]int, error) {
	s := P.Sections[flag]
	ret := make([]int, len(s))
	var err error
	for i, v := range s {
		ret[i], err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: value %d of %s: %s", WrongFormat, i, flag, err.Error()), P.filename, []string{"Ints"}, true}
		}
	}
	return ret, nil
}

//Floats returns the values of the section flag as float64.
func (P *Parm) Floats(flag string) ([]float64, error) {
	s := P.Sections[flag]
	ret := make([]float64, len(s))
	var err error
	for i, v := range s {
		ret[i], err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("%s: value %d of %s: %s", WrongFormat, i, flag, err.Error()), P.filename, []string{"Floats"}, true}
		}
	}
	return ret, nil
}

//Pointer returns the ith value of the POINTERS section.
func (P *Parm) Pointer(i int) (int, error) {
	p, err := P.Ints("POINTERS")
	if err != nil {
		return 0, errDecorate(err, "Pointer")
	}
	if i >= len(p) {
		return 0, Error{fmt.Sprintf("%s: POINTERS has %d values, %d requested", WrongFormat, len(p), i), P.filename, []string{"Pointer"}, true}
	}
	return p[i], nil
}

//NumAtoms returns the number of atoms the prmtop expects there to be
func (P *Parm) NumAtoms() int {
	n, _ := P.Pointer(NATOM)
	return n
}

//NumResidues returns the number of residues the prmtop expects there to be
func (P *Parm) NumResidues() int {
	n, _ := P.Pointer(NRES)
	return n
}

//FileName returns the name of the file read, if any.
func (P *Parm) FileName() string {
	return P.filename
}

//Topology builds a native Topology from the parm7 data.
func (P *Parm) Topology() (*traj.Topology, error) {
	natoms := P.NumAtoms()
	nres := P.NumResidues()
	names := P.Strings("ATOM_NAME")
	if len(names) != natoms {
		return nil, Error{fmt.Sprintf("%s: %d atom names for %d atoms", WrongFormat, len(names), natoms), P.filename, []string{"Topology"}, true}
	}
	charges, err := P.Floats("CHARGE")
	if err != nil {
		return nil, errDecorate(err, "Topology")
	}
	masses, err := P.Floats("MASS")
	if err != nil {
		return nil, errDecorate(err, "Topology")
	}
	numbers, err := P.Ints("ATOMIC_NUMBER")
	if err != nil {
		return nil, errDecorate(err, "Topology")
	}
	types := P.Strings("AMBER_ATOM_TYPE")
	labels := P.Strings("RESIDUE_LABEL")
	rptr, err := P.Ints("RESIDUE_POINTER")
	if err != nil {
		return nil, errDecorate(err, "Topology")
	}
	if len(labels) != nres || len(rptr) != nres {
		return nil, Error{fmt.Sprintf("%s: inconsistent residue sections for %d residues", WrongFormat, nres), P.filename, []string{"Topology"}, true}
	}
	resnum, err := P.Ints("RESIDUE_NUMBER")
	if err != nil {
		return nil, errDecorate(err, "Topology")
	}
	chains := P.Strings("RESIDUE_CHAINID")
	if implicit, _ := P.Ints(ImplicitResidueFlag); nres == 1 && len(implicit) == 1 && implicit[0] == 1 {
		nres = 0
	}
	residues := make([]*traj.Residue, nres)
	for i := range residues {
		r := &traj.Residue{Name: labels[i], Number: i + 1, First: rptr[i] - 1, Last: natoms}
		if i < nres-1 {
			r.Last = rptr[i+1] - 1
		}
		if len(resnum) == nres {
			r.Number = resnum[i]
		}
		if len(chains) == nres {
			r.Chain = chains[i]
		}
		residues[i] = r
	}
	atoms := make([]*traj.Atom, natoms)
	ri := 0
	for i := range atoms {
		for ri < nres-1 && i >= residues[ri].Last {
			ri++
		}
		a := &traj.Atom{Name: names[i], ID: i + 1, Index: i}
		if nres > 0 {
			a.Residue = ri
			a.MolName = residues[ri].Name
			a.MolID = residues[ri].Number
			a.Chain = residues[ri].Chain
		}
		if len(charges) == natoms {
			a.Charge = charges[i] / chargeFactor
		}
		if len(masses) == natoms {
			a.Mass = masses[i]
		}
		if len(numbers) == natoms {
			a.Number = numbers[i]
			a.Symbol = symbolFromNumber(a.Number)
		}
		if len(types) == natoms {
			a.Type = types[i]
		}
		atoms[i] = a
	}
	var bonds []*traj.Bond
	for _, flag := range []string{"BONDS_INC_HYDROGEN", "BONDS_WITHOUT_HYDROGEN"} {
		b, err := P.Ints(flag)
		if err != nil {
			return nil, errDecorate(err, "Topology")
		}
		if len(b)%3 != 0 {
			return nil, Error{fmt.Sprintf("%s: %s length is not a multiple of 3", WrongFormat, flag), P.filename, []string{"Topology"}, true}
		}
		for i := 0; i < len(b); i += 3 {
			bonds = append(bonds, &traj.Bond{At1: b[i] / 3, At2: b[i+1] / 3})
		}
	}
	box, err := P.box()
	if err != nil {
		return nil, errDecorate(err, "Topology")
	}
	top, err := traj.NewTopology(strings.Join(P.Strings("TITLE"), ""), atoms, residues, bonds, box)
	if err != nil {
		return nil, Error{err.Error(), P.filename, []string{"NewTopology", "Topology"}, true}
	}
	return top, nil
}

func (P *Parm) box() (*traj.Box, error) {
	ifbox, err := P.Pointer(IFBOX)
	if err != nil || ifbox == 0 {
		return nil, nil
	}
	b, err := P.Floats("BOX_DIMENSIONS")
	if err != nil {
		return nil, err
	}
	if len(b) != 4 {
		return nil, Error{fmt.Sprintf("%s: BOX_DIMENSIONS needs 4 values, has %d", WrongFormat, len(b)), P.filename, []string{"box"}, true}
	}
	//parm7 only keeps beta, the other angles are assumed equal to it.
	return &traj.Box{A: b[1], B: b[2], C: b[3], Alpha: b[0], Beta: b[0], Gamma: b[0]}, nil
}

var symbols = []string{"", "H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe"}

func symbolFromNumber(n int) string {
	if n <= 0 || n >= len(symbols) {
		return ""
	}
	return symbols[n]
}

func numberFromSymbol(s string) int {
	for i, v := range symbols {
		if i > 0 && strings.EqualFold(v, s) {
			return i
		}
	}
	return 0
}

//Errors

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}

//Error is the general structure for parm7 errors. It fulfills traj.Error
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("parm7 file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file associated to the error
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "parm7") associated to the error
func (err Error) Format() string { return "parm7" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	ReadError    = "Error reading topology"
	WriteError   = "Error writing topology"
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the parm7 file"
)
