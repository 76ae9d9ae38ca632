/*
 * write.go, part of gotraj
 *
 * Copyright 2012 Raul Mera Adasme <rmera_changeforat_chem-dot-helsinki-dot-fi>
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

package dcd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	traj "github.com/rmera/gotraj"
	v3 "github.com/rmera/gotraj/v3"
)

//charmm version written in the header
const charmmVersion int32 = 24

//DCDWObj is a Charmm/NAMD binary trajectory opened for writing.
//The file is little endian.
type DCDWObj struct {
	natoms    int32
	frames    int32
	box       bool
	writable  bool
	filename  string
	f         *os.File
	w         *bufio.Writer
	endian    binary.ByteOrder
	dcdFields [3][]float32
}

//NewWriter creates the file filename and writes a DCD header for frames of
//natoms atoms. If box is true, every frame carries a unit cell.
func NewWriter(filename, title string, natoms int, box bool) (*DCDWObj, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("%s: %d atoms", WrongFormat, natoms), filename, []string{"NewWriter"}, true}
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"os.Create", "NewWriter"}, true}
	}
	D := &DCDWObj{natoms: int32(natoms), box: box, filename: filename, f: f, w: bufio.NewWriter(f), endian: binary.LittleEndian}
	for i := range D.dcdFields {
		D.dcdFields[i] = make([]float32, natoms)
	}
	if err := D.initWrite(title); err != nil {
		f.Close()
		return nil, errDecorate(err, "NewWriter")
	}
	D.writable = true
	return D, nil
}

//initWrite writes the header. The number of frames is left as zero
//and filled when the file is closed.
func (D *DCDWObj) initWrite(title string) error {
	icntrl := make([]int32, 20)
	icntrl[2] = 1 //step interval (nsavc)
	if D.box {
		icntrl[10] = 1
	}
	icntrl[19] = charmmVersion
	if err := D.write(int32(headerSize), []byte("CORD"), icntrl[:9], float32(1), icntrl[10:], int32(headerSize)); err != nil {
		return errDecorate(err, "initWrite")
	}
	line := make([]byte, mAXTITLE)
	for i := range line {
		line[i] = ' '
	}
	copy(line, title)
	if err := D.write(int32(4+mAXTITLE), int32(1), line, int32(4+mAXTITLE)); err != nil {
		return errDecorate(err, "initWrite")
	}
	return errDecorate(D.write(int32(4), D.natoms, int32(4)), "initWrite")
}

func (D *DCDWObj) write(data ...interface{}) error {
	for _, v := range data {
		if err := binary.Write(D.w, D.endian, v); err != nil {
			return Error{WriteError + ": " + err.Error(), D.filename, []string{"binary.Write", "write"}, true}
		}
	}
	return nil
}

//Len returns the number of atoms per frame.
func (D *DCDWObj) Len() int {
	return int(D.natoms)
}

//WNext writes the coordinates in towrite as the next frame. b is ignored unless
//the writer was created with box information, in which case it can't be nil.
func (D *DCDWObj) WNext(towrite *v3.Matrix, b *traj.Box) error {
	if !D.writable {
		return Error{TrajUnIni, D.filename, []string{"WNext"}, true}
	}
	if towrite == nil {
		return Error{"got nil coordinates", D.filename, []string{"WNext"}, true}
	}
	if int32(towrite.NVecs()) != D.natoms {
		return Error{fmt.Sprintf("%s: %d atoms given, %d expected", WrongFormat, towrite.NVecs(), D.natoms), D.filename, []string{"WNext"}, true}
	}
	if D.box {
		if b == nil {
			return Error{WriteError + ": frame without box", D.filename, []string{"WNext"}, true}
		}
		if err := D.write(int32(cellSize), boxToCell(b), int32(cellSize)); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	for i := 0; i < int(D.natoms); i++ {
		v := towrite.Vec(i)
		for j := range D.dcdFields {
			D.dcdFields[j][i] = float32(v[j])
		}
	}
	size := D.natoms * 4
	for _, block := range D.dcdFields {
		if err := D.write(size, block, size); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	D.frames++
	return nil
}

//Close writes the number of frames to the header and closes the file.
func (D *DCDWObj) Close() error {
	if !D.writable {
		return nil
	}
	D.writable = false
	if err := D.w.Flush(); err != nil {
		D.f.Close()
		return Error{WriteError + ": " + err.Error(), D.filename, []string{"Flush", "Close"}, true}
	}
	if err := D.updateFrames(); err != nil {
		D.f.Close()
		return errDecorate(err, "Close")
	}
	if err := D.f.Close(); err != nil {
		return Error{WriteError + ": " + err.Error(), D.filename, []string{"Close"}, true}
	}
	return nil
}

//DCD requires the number of frames at the begining, right after the magic number.
func (D *DCDWObj) updateFrames() error {
	if _, err := D.f.Seek(8, io.SeekStart); err != nil {
		return Error{err.Error(), D.filename, []string{"Seek", "updateFrames"}, true}
	}
	if err := binary.Write(D.f, D.endian, D.frames); err != nil {
		return Error{WriteError + ": " + err.Error(), D.filename, []string{"binary.Write", "updateFrames"}, true}
	}
	return nil
}

//WriteFile writes every frame of t to the DCD file filename. The box of each
//frame, or that of the topology, is written if the topology has one.
func WriteFile(filename string, t *traj.Trajectory) error {
	top := t.Topology()
	hasbox := top.Box() != nil
	D, err := NewWriter(filename, top.Title(), t.Len(), hasbox)
	if err != nil {
		return errDecorate(err, "WriteFile")
	}
	for i := 0; i < t.LenFrames(); i++ {
		f := t.Frame(i)
		b := f.Box()
		if b == nil {
			b = top.Box()
		}
		if err := D.WNext(f.Coords(), b); err != nil {
			D.Close()
			return errDecorate(err, "WriteFile")
		}
	}
	return errDecorate(D.Close(), "WriteFile")
}
