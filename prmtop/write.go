/*
 * write.go, part of gotraj.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	traj "github.com/rmera/gotraj"
)

//WriteFile writes top to the parm7 file name, overwriting it if it exists.
func WriteFile(name string, top *traj.Topology) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), name, []string{"WriteFile"}, true}
	}
	if err := Write(f, top); err != nil {
		f.Close()
		if e, ok := err.(Error); ok {
			e.filename = name
			e.deco = append(e.deco, "WriteFile")
			return e
		}
		return err
	}
	if err := f.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), name, []string{"WriteFile"}, true}
	}
	return nil
}

//Write writes top in parm7 format to w. Force field parameters are not part of a
//Topology, so the file carries a single atom type and a single, zero, bond type.
//That is enough for programs that only need the connectivity.
func Write(w io.Writer, top *traj.Topology) error {
	if top == nil || top.Len() == 0 {
		return Error{WriteError + ": empty topology", "", []string{"Write"}, true}
	}
	out := bufio.NewWriter(w)
	pw := &parmWriter{w: out}
	natoms := top.Len()
	nres := top.NResidues()

	var bonh, bona []int
	for i := 0; i < top.NBonds(); i++ {
		b := top.Bond(i)
		triplet := []int{b.At1 * 3, b.At2 * 3, 1}
		if isHydrogen(top.Atom(b.At1)) || isHydrogen(top.Atom(b.At2)) {
			bonh = append(bonh, triplet...)
		} else {
			bona = append(bona, triplet...)
		}
	}
	names := make([]string, natoms)
	types := make([]string, natoms)
	charges := make([]float64, natoms)
	masses := make([]float64, natoms)
	numbers := make([]int, natoms)
	typeindex := make([]int, natoms)
	for i := range names {
		a := top.Atom(i)
		names[i] = a.Name
		types[i] = a.Type
		if types[i] == "" {
			types[i] = a.Symbol
		}
		charges[i] = a.Charge * chargeFactor
		masses[i] = a.Mass
		numbers[i] = a.Number
		if numbers[i] == 0 {
			numbers[i] = numberFromSymbol(a.Symbol)
		}
		typeindex[i] = 1
	}
	//A topology without residues is written as one residue, marked as implicit.
	implicit := nres == 0
	labels := []string{"MOL"}
	pointers := []int{1}
	resnumbers := []int{1}
	chains := []string{""}
	maxres := natoms
	if nres > 0 {
		labels = make([]string, nres)
		pointers = make([]int, nres)
		resnumbers = make([]int, nres)
		chains = make([]string, nres)
		maxres = 0
		for i := range labels {
			r := top.Residue(i)
			labels[i] = r.Name
			pointers[i] = r.First + 1
			resnumbers[i] = r.Number
			chains[i] = r.Chain
			if r.Len() > maxres {
				maxres = r.Len()
			}
		}
		nres = len(labels)
	} else {
		nres = 1
	}

	p := make([]int, npointers)
	p[NATOM] = natoms
	p[NTYPES] = 1
	p[NBONH] = len(bonh) / 3
	p[MBONA] = len(bona) / 3
	p[NRES] = nres
	p[NBONA] = len(bona) / 3
	p[NUMBND] = 1
	p[NATYP] = 1
	p[NMXRS] = maxres
	box := top.Box()
	if box != nil {
		p[IFBOX] = boxType(box)
	}

	fmt.Fprintf(out, "%%VERSION  VERSION_STAMP = V0001.000  DATE = %s\n", time.Now().Format("01/02/06  15:04:05"))
	title := top.Title()
	if len(title) > 80 {
		title = title[:80]
	}
	pw.strings("TITLE", []string{title}, 1, 80)
	pw.ints("POINTERS", p)
	pw.strings("ATOM_NAME", names, 20, 4)
	pw.floats("CHARGE", charges)
	pw.ints("ATOMIC_NUMBER", numbers)
	pw.floats("MASS", masses)
	pw.ints("ATOM_TYPE_INDEX", typeindex)
	pw.ints("NUMBER_EXCLUDED_ATOMS", make([]int, natoms))
	pw.ints("NONBONDED_PARM_INDEX", []int{1})
	pw.strings("RESIDUE_LABEL", labels, 20, 4)
	pw.ints("RESIDUE_POINTER", pointers)
	pw.floats("BOND_FORCE_CONSTANT", []float64{0})
	pw.floats("BOND_EQUIL_VALUE", []float64{0})
	pw.floats("LENNARD_JONES_ACOEF", []float64{0})
	pw.floats("LENNARD_JONES_BCOEF", []float64{0})
	pw.ints("BONDS_INC_HYDROGEN", bonh)
	pw.ints("BONDS_WITHOUT_HYDROGEN", bona)
	pw.strings("AMBER_ATOM_TYPE", types, 20, 4)
	pw.ints("RESIDUE_NUMBER", resnumbers)
	pw.strings("RESIDUE_CHAINID", chains, 20, 4)
	if box != nil {
		pw.floats("BOX_DIMENSIONS", []float64{box.Beta, box.A, box.B, box.C})
	}
	if implicit {
		pw.ints(ImplicitResidueFlag, []int{1})
	}
	if pw.err != nil {
		return Error{WriteError + ": " + pw.err.Error(), "", []string{"Write"}, true}
	}
	if err := out.Flush(); err != nil {
		return Error{WriteError + ": " + err.Error(), "", []string{"Write"}, true}
	}
	return nil
}

func isHydrogen(a *traj.Atom) bool {
	if a.Number != 0 {
		return a.Number == 1
	}
	return strings.EqualFold(a.Symbol, "H")
}

//boxType returns the IFBOX value for b.
func boxType(b *traj.Box) int {
	const octahedral = 109.4712190
	if math.Abs(b.Alpha-octahedral) < 1e-3 && math.Abs(b.Beta-octahedral) < 1e-3 && math.Abs(b.Gamma-octahedral) < 1e-3 {
		return 2
	}
	return 1
}

//parmWriter writes %FLAG sections, remembering the first error.
type parmWriter struct {
	w   *bufio.Writer
	err error
}

func (P *parmWriter) header(flag, format string) {
	if P.err != nil {
		return
	}
	_, P.err = fmt.Fprintf(P.w, "%%FLAG %s\n%%FORMAT(%s)\n", flag, format)
}

//fields writes the already formatted fields, perline per line. An empty
//section still gets its (empty) line.
func (P *parmWriter) fields(f []string, perline int) {
	if P.err != nil {
		return
	}
	var b strings.Builder
	for i, v := range f {
		b.WriteString(v)
		if (i+1)%perline == 0 && i != len(f)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	_, P.err = P.w.WriteString(b.String())
}

func (P *parmWriter) ints(flag string, v []int) {
	P.header(flag, "10I8")
	f := make([]string, len(v))
	for i, val := range v {
		f[i] = fmt.Sprintf("%8d", val)
	}
	P.fields(f, 10)
}

func (P *parmWriter) floats(flag string, v []float64) {
	P.header(flag, "5E16.8")
	f := make([]string, len(v))
	for i, val := range v {
		f[i] = fmt.Sprintf("%16.8E", val)
	}
	P.fields(f, 5)
}

func (P *parmWriter) strings(flag string, v []string, perline, width int) {
	P.header(flag, fmt.Sprintf("%da%d", perline, width))
	f := make([]string, len(v))
	for i, val := range v {
		if len(val) > width {
			val = val[:width]
		}
		f[i] = fmt.Sprintf("%-*s", width, val)
	}
	P.fields(f, perline)
}
