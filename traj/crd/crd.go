/*
 * crd.go, part of gotraj
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

//Package crd reads and writes Amber ASCII trajectories (mdcrd), the
//format used to hand coordinates to cpptraj.
package crd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	traj "github.com/rmera/gotraj"
	v3 "github.com/rmera/gotraj/v3"
)

const (
	width   = 8  //characters per value
	perline = 10 //values per line
	maxval  = 9999.999
)

//CrdObj reads an Amber ASCII trajectory. It implements traj.Traj.
type CrdObj struct {
	natoms   int
	readable bool
	filename string
	closer   io.Closer
	crd      *bufio.Reader
	box      bool
	buf      []float64
}

//New opens filename as an Amber ASCII trajectory with natoms atoms per frame.
//box must be true if each frame is followed by a line with the box lengths.
func New(filename string, natoms int, box bool) (*CrdObj, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"New"}, true}
	}
	C, err := NewReader(f, natoms, box)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "New")
	}
	C.filename = filename
	C.closer = f
	return C, nil
}

//NewReader returns a CrdObj reading from r.
func NewReader(r io.Reader, natoms int, box bool) (*CrdObj, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("%s: %d atoms", WrongFormat, natoms), "", []string{"NewReader"}, true}
	}
	C := &CrdObj{natoms: natoms, box: box}
	C.crd = bufio.NewReader(r)
	//The first line is just a title
	if _, err := C.crd.ReadString('\n'); err != nil {
		return nil, Error{ReadError + ": no title line", "", []string{"NewReader"}, true}
	}
	C.buf = make([]float64, 0, 3*natoms)
	C.readable = true
	return C, nil
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (C *CrdObj) Readable() bool {
	return C.readable
}

//Len returns the number of atoms per frame.
func (C *CrdObj) Len() int {
	return C.natoms
}

//Close closes the underlying file, if any.
func (C *CrdObj) Close() error {
	C.readable = false
	if C.closer == nil {
		return nil
	}
	return C.closer.Close()
}

//Next reads the next frame into keep, or discards it if keep is nil.
//If the trajectory has box information and a slice of at least 6 elements
//is given, it is filled with the box lengths and 90 degree angles.
func (C *CrdObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !C.readable {
		return Error{TrajUnIni, C.filename, []string{"Next"}, true}
	}
	if keep != nil && keep.NVecs() != C.natoms {
		return Error{fmt.Sprintf("%s: matrix for %d atoms, frame has %d", NotEnoughSpace, keep.NVecs(), C.natoms), C.filename, []string{"Next"}, true}
	}
	vals, err := C.values(3 * C.natoms)
	if err != nil {
		return errDecorate(err, "Next")
	}
	if keep != nil {
		for i := 0; i < C.natoms; i++ {
			keep.SetVec(i, [3]float64{vals[3*i], vals[3*i+1], vals[3*i+2]})
		}
	}
	if !C.box {
		return nil
	}
	//the box always starts in a new line
	b, err := C.values(3)
	if err != nil {
		return errDecorate(err, "Next")
	}
	if len(box) > 0 && len(box[0]) >= 6 {
		copy(box[0], []float64{b[0], b[1], b[2], 90, 90, 90})
	}
	return nil
}

//values reads whole lines until n values are obtained.
func (C *CrdObj) values(n int) ([]float64, error) {
	C.buf = C.buf[:0]
	for len(C.buf) < n {
		line, err := C.crd.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
			C.readable = false
			if err == io.EOF {
				if len(C.buf) == 0 {
					return nil, newlastFrameError(C.filename, "values")
				}
				return nil, Error{ReadError + ": truncated frame", C.filename, []string{"values"}, true}
			}
			return nil, Error{ReadError + ": " + err.Error(), C.filename, []string{"values"}, true}
		}
		line = strings.TrimRight(line, "\r\n")
		for i := 0; i < len(line); i += width {
			end := i + width
			if end > len(line) {
				end = len(line)
			}
			field := strings.TrimSpace(line[i:end])
			if field == "" {
				continue
			}
			v, perr := strconv.ParseFloat(field, 64)
			if perr != nil {
				C.readable = false
				return nil, Error{fmt.Sprint("Unable to read coordinates from Amber trajectory: ", perr.Error()), C.filename, []string{"strconv.ParseFloat", "values"}, true}
			}
			C.buf = append(C.buf, v)
		}
		if err == io.EOF {
			C.readable = false
			break
		}
	}
	if len(C.buf) != n {
		return nil, Error{fmt.Sprintf("%s: expected %d values, read %d", WrongFormat, n, len(C.buf)), C.filename, []string{"values"}, true}
	}
	return C.buf, nil
}

/*****Writing*****/

//CrdWObj writes frames to an Amber ASCII trajectory.
type CrdWObj struct {
	natoms int
	box    bool
	w      *bufio.Writer
	closer io.Closer
}

//NewWriter writes the title line to w and returns an object to write
//frames of natoms atoms. If box is true every frame carries box lengths.
func NewWriter(w io.Writer, title string, natoms int, box bool) (*CrdWObj, error) {
	C := &CrdWObj{natoms: natoms, box: box, w: bufio.NewWriter(w)}
	title = strings.ReplaceAll(title, "\n", " ")
	if _, err := fmt.Fprintln(C.w, title); err != nil {
		return nil, Error{WriteError + ": " + err.Error(), "", []string{"NewWriter"}, true}
	}
	return C, nil
}

//WNext writes the coordinates in coords as the next frame. b is ignored unless
//the writer was created with box information, in which case it can't be nil.
func (C *CrdWObj) WNext(coords *v3.Matrix, b *traj.Box) error {
	if coords.NVecs() != C.natoms {
		return Error{fmt.Sprintf("%s: %d atoms given, %d expected", WrongFormat, coords.NVecs(), C.natoms), "", []string{"WNext"}, true}
	}
	vals := make([]float64, 0, 3*C.natoms)
	for i := 0; i < C.natoms; i++ {
		v := coords.Vec(i)
		vals = append(vals, v[:]...)
	}
	if err := C.line(vals); err != nil {
		return errDecorate(err, "WNext")
	}
	if !C.box {
		return nil
	}
	if b == nil {
		return Error{WriteError + ": frame without box", "", []string{"WNext"}, true}
	}
	return errDecorate(C.line([]float64{b.A, b.B, b.C}), "WNext")
}

func (C *CrdWObj) line(vals []float64) error {
	var s strings.Builder
	for i, v := range vals {
		if math.Abs(v) > maxval || math.IsNaN(v) {
			return Error{fmt.Sprintf("%s: value %f doesn't fit the format", WrongFormat, v), "", []string{"line"}, true}
		}
		fmt.Fprintf(&s, "%8.3f", v)
		if (i+1)%perline == 0 || i == len(vals)-1 {
			s.WriteString("\n")
		}
	}
	if _, err := C.w.WriteString(s.String()); err != nil {
		return Error{WriteError + ": " + err.Error(), "", []string{"line"}, true}
	}
	return nil
}

//Close flushes the writer and closes the underlying file, if any.
func (C *CrdWObj) Close() error {
	if err := C.w.Flush(); err != nil {
		return Error{WriteError + ": " + err.Error(), "", []string{"Close"}, true}
	}
	if C.closer != nil {
		return C.closer.Close()
	}
	return nil
}

//Write writes every frame of t to w. The box of each frame, or that of the
//topology, is written if the topology has one.
func Write(w io.Writer, t *traj.Trajectory) error {
	top := t.Topology()
	hasbox := top.Box() != nil
	C, err := NewWriter(w, top.Title(), t.Len(), hasbox)
	if err != nil {
		return errDecorate(err, "Write")
	}
	for i := 0; i < t.LenFrames(); i++ {
		f := t.Frame(i)
		b := f.Box()
		if b == nil {
			b = top.Box()
		}
		if err := C.WNext(f.Coords(), b); err != nil {
			return errDecorate(err, "Write")
		}
	}
	return errDecorate(C.Close(), "Write")
}

//WriteFile writes t to the file filename.
func WriteFile(filename string, t *traj.Trajectory) error {
	f, err := os.Create(filename)
	if err != nil {
		return Error{UnableToOpen, filename, []string{"WriteFile"}, true}
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return errDecorate(err, "WriteFile")
	}
	return f.Close()
}

//Errors

//errDecorate decorates err with the caller's name, if err is not nil
//and implements traj.Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(traj.Error); ok {
		err2.Decorate(caller)
	}
	return err
}

//Error is the general structure for Crd trajectory errors. It fullfills  traj.Error and traj.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("Amber trajectory file %s error: %s", err.filename, err.message)
}

func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "Amber ASCII" }

func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIni      = "Traj object uninitialized to read"
	ReadError      = "Error reading frame"
	WriteError     = "Error writing frame"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the trajectory file or frame"
	NotEnoughSpace = "Not enough space in passed blocks"
)

//lastFrameError implements traj.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "Amber ASCII" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
