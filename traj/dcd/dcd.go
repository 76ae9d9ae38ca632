/*
 * dcd.go, part of gotraj
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

//Package dcd reads and writes Charmm/NAMD binary trajectories (DCD).
//Both endiannesses are read, with or without unit cell information.
//Trajectories with fixed atoms are not supported.
package dcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	traj "github.com/rmera/gotraj"
	v3 "github.com/rmera/gotraj/v3"
)

const (
	mAXTITLE   = 80
	headerSize = 84
	cellSize   = 48 //6 float64
	ZstdSuffix = ".zst"
)

//DCDObj is a Charmm/NAMD binary trajectory opened for reading.
//It implements traj.Traj.
type DCDObj struct {
	natoms     int32
	frames     int32
	delta      float32
	title      string
	readable   bool
	charmm     bool
	extrablock bool
	fourdim    bool
	filename   string
	dcd        io.Reader
	closer     io.Closer
	endian     binary.ByteOrder
	dcdFields  [3][]float32
	cell       [6]float64
}

//zstd decoders don't implement io.Closer
type zstdCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

//New opens the DCD file filename for reading. Files with names ending in
//".zst" are decompressed with zstd.
func New(filename string) (*DCDObj, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"os.Open", "New"}, true}
	}
	var r io.Reader = bufio.NewReader(f)
	var closer io.Closer = f
	if strings.HasSuffix(filename, ZstdSuffix) {
		z, err := zstd.NewReader(r)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), filename, []string{"zstd.NewReader", "New"}, true}
		}
		r = z
		closer = zstdCloser{z, f}
	}
	D, err := newReader(r, filename)
	if err != nil {
		closer.Close()
		return nil, errDecorate(err, "New")
	}
	D.closer = closer
	return D, nil
}

//NewReader returns a DCDObj that reads the trajectory from r.
func NewReader(r io.Reader) (*DCDObj, error) {
	D, err := newReader(r, "")
	return D, errDecorate(err, "NewReader")
}

func newReader(r io.Reader, filename string) (*DCDObj, error) {
	D := &DCDObj{dcd: r, filename: filename}
	if err := D.initRead(); err != nil {
		return nil, errDecorate(err, "newReader")
	}
	return D, nil
}

//initRead reads the header. The first int must be an 84, which tells
//us the endianness of the file.
func (D *DCDObj) initRead() error {
	formatErr := func(msg string) error {
		return Error{WrongFormat + ": " + msg, D.filename, []string{"initRead"}, true}
	}
	readErr := func(err error) error {
		return Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "initRead"}, true}
	}
	first := make([]byte, 4)
	if _, err := io.ReadFull(D.dcd, first); err != nil {
		return readErr(err)
	}
	switch {
	case binary.LittleEndian.Uint32(first) == headerSize:
		D.endian = binary.LittleEndian
	case binary.BigEndian.Uint32(first) == headerSize:
		D.endian = binary.BigEndian
	default:
		return formatErr("no header")
	}
	magic := make([]byte, 4)
	if _, err := io.ReadFull(D.dcd, magic); err != nil {
		return readErr(err)
	}
	if string(magic) != "CORD" {
		return formatErr("wrong magic number")
	}
	//We first read a big chunk for random access.
	buf := make([]byte, 80)
	if _, err := io.ReadFull(D.dcd, buf); err != nil {
		return readErr(err)
	}
	icntrl := func(i int) int32 { return int32(D.endian.Uint32(buf[4*i:])) }
	D.frames = icntrl(0)
	//X-plor sets the last int to zero, charmm sets it to its version number.
	//Only charmm files have the flags.
	if icntrl(19) != 0 {
		D.charmm = true
		D.extrablock = icntrl(10) != 0
		D.fourdim = icntrl(11) == 1
		D.delta = math.Float32frombits(D.endian.Uint32(buf[36:]))
	}
	if fixed := icntrl(8); fixed != 0 {
		return formatErr("fixed atoms not supported")
	}
	var check, ntitle int32
	if err := binary.Read(D.dcd, D.endian, &check); err != nil {
		return readErr(err)
	}
	if check != headerSize {
		return formatErr("header block not closed")
	}
	//The title is a block of ntitle lines of 80 characters.
	if err := binary.Read(D.dcd, D.endian, &check); err != nil {
		return readErr(err)
	}
	if err := binary.Read(D.dcd, D.endian, &ntitle); err != nil {
		return readErr(err)
	}
	if ntitle < 0 || check != 4+ntitle*mAXTITLE {
		return formatErr("wrong title block")
	}
	title := make([]byte, mAXTITLE*ntitle)
	if _, err := io.ReadFull(D.dcd, title); err != nil {
		return readErr(err)
	}
	if err := binary.Read(D.dcd, D.endian, &check); err != nil {
		return readErr(err)
	}
	if check != 4+ntitle*mAXTITLE {
		return formatErr("title block not closed")
	}
	lines := make([]string, 0, ntitle)
	for i := 0; i < int(ntitle); i++ {
		l := strings.TrimRight(string(title[i*mAXTITLE:(i+1)*mAXTITLE]), "\x00 ")
		lines = append(lines, l)
	}
	D.title = strings.Join(lines, "\n")
	if err := D.sized(4, &D.natoms); err != nil {
		return errDecorate(err, "initRead")
	}
	if D.natoms <= 0 {
		return formatErr(fmt.Sprintf("%d atoms", D.natoms))
	}
	for i := range D.dcdFields {
		D.dcdFields[i] = make([]float32, D.natoms)
	}
	D.readable = true
	return nil
}

//sized reads a fortran record of size bytes into data. The record must start
//and end with its size.
func (D *DCDObj) sized(size int32, data interface{}) error {
	var check int32
	if err := binary.Read(D.dcd, D.endian, &check); err != nil {
		return Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "sized"}, true}
	}
	if check != size {
		return Error{fmt.Sprintf("%s: block of %d bytes, expected %d", WrongFormat, check, size), D.filename, []string{"sized"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, data); err != nil {
		return Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "sized"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, &check); err != nil {
		return Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "sized"}, true}
	}
	if check != size {
		return Error{WrongFormat + ": block not closed", D.filename, []string{"sized"}, true}
	}
	return nil
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (D *DCDObj) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame.
func (D *DCDObj) Len() int {
	return int(D.natoms)
}

//Frames returns the number of frames given in the header. Some programs
//leave it as zero.
func (D *DCDObj) Frames() int {
	return int(D.frames)
}

//Title returns the title lines of the trajectory, separated by newlines.
func (D *DCDObj) Title() string {
	return D.title
}

//TimeStep returns the time between frames written in the header, in AKMA units.
func (D *DCDObj) TimeStep() float64 {
	return float64(D.delta)
}

//Close closes the underlying file, if any.
func (D *DCDObj) Close() error {
	D.readable = false
	if D.closer == nil {
		return nil
	}
	err := D.closer.Close()
	D.closer = nil
	return err
}

//Next reads the next frame into keep, or discards it if keep is nil.
//If the frame has unit cell information and a slice of at least 6 elements
//is given, it is filled with the 3 lengths and the 3 angles (in degrees) of the cell.
func (D *DCDObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !D.readable {
		return Error{TrajUnIni, D.filename, []string{"Next"}, true}
	}
	if keep != nil && keep.NVecs() != int(D.natoms) {
		return Error{fmt.Sprintf("%s: matrix for %d atoms, frame has %d", NotEnoughSpace, keep.NVecs(), D.natoms), D.filename, []string{"Next"}, true}
	}
	cell, err := D.nextRaw()
	if err != nil {
		D.readable = false
		return errDecorate(err, "Next")
	}
	if keep != nil {
		for i := 0; i < int(D.natoms); i++ {
			keep.SetVec(i, [3]float64{float64(D.dcdFields[0][i]), float64(D.dcdFields[1][i]), float64(D.dcdFields[2][i])})
		}
	}
	if cell && len(box) > 0 && len(box[0]) >= 6 {
		copy(box[0], cellToBox(D.cell))
	}
	return nil
}

//nextRaw reads the blocks of a frame into D.dcdFields and D.cell. It returns
//true if the frame had unit cell information.
func (D *DCDObj) nextRaw() (bool, error) {
	//The size of the first block tells us if the frame starts with
	//the unit cell or directly with the X coordinates.
	var blocksize int32
	if err := binary.Read(D.dcd, D.endian, &blocksize); err != nil {
		if err == io.EOF {
			return false, newlastFrameError(D.filename, "nextRaw")
		}
		return false, Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, true}
	}
	xsize := D.natoms * 4
	cell := false
	if D.extrablock && blocksize != xsize {
		if blocksize != cellSize {
			return false, Error{fmt.Sprintf("%s: unit cell block of %d bytes", WrongFormat, blocksize), D.filename, []string{"nextRaw"}, true}
		}
		if err := D.closeBlock(blocksize, &D.cell); err != nil {
			return false, errDecorate(err, "nextRaw")
		}
		cell = true
		blocksize = 0
	}
	if blocksize == 0 {
		if err := binary.Read(D.dcd, D.endian, &blocksize); err != nil {
			return false, Error{ReadError + ": truncated frame", D.filename, []string{"binary.Read", "nextRaw"}, true}
		}
	}
	if blocksize != xsize {
		return false, Error{fmt.Sprintf("%s: coordinate block of %d bytes, expected %d", WrongFormat, blocksize, xsize), D.filename, []string{"nextRaw"}, true}
	}
	if err := D.closeBlock(blocksize, D.dcdFields[0]); err != nil {
		return false, errDecorate(err, "nextRaw")
	}
	if err := D.sized(xsize, D.dcdFields[1]); err != nil {
		return false, errDecorate(err, "nextRaw")
	}
	if err := D.sized(xsize, D.dcdFields[2]); err != nil {
		return false, errDecorate(err, "nextRaw")
	}
	//The 4th dimension is skipped. Some programs omit it in the last frame.
	if D.fourdim {
		if err := binary.Read(D.dcd, D.endian, &blocksize); err != nil {
			if err == io.EOF {
				return cell, nil
			}
			return false, Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, true}
		}
		if blocksize < 0 {
			return false, Error{WrongFormat + ": negative block size", D.filename, []string{"nextRaw"}, true}
		}
		if err := D.closeBlock(blocksize, make([]byte, blocksize)); err != nil {
			return false, errDecorate(err, "nextRaw")
		}
	}
	return cell, nil
}

//closeBlock reads the contents of a block whose size was already read, and
//the size at the end.
func (D *DCDObj) closeBlock(size int32, data interface{}) error {
	if err := binary.Read(D.dcd, D.endian, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Error{ReadError + ": truncated frame", D.filename, []string{"binary.Read", "closeBlock"}, true}
		}
		return Error{ReadError + ": " + err.Error(), D.filename, []string{"binary.Read", "closeBlock"}, true}
	}
	var check int32
	if err := binary.Read(D.dcd, D.endian, &check); err != nil {
		return Error{ReadError + ": truncated frame", D.filename, []string{"binary.Read", "closeBlock"}, true}
	}
	if check != size {
		return Error{WrongFormat + ": block not closed", D.filename, []string{"closeBlock"}, true}
	}
	return nil
}

//cellToBox takes the unit cell as written by Charmm and NAMD (A, gamma, B, beta, alpha, C)
//and returns it as 3 lengths and 3 angles. Old Charmm versions store the cosines
//of the angles instead of the angles themselves.
func cellToBox(cell [6]float64) []float64 {
	angles := []float64{cell[4], cell[3], cell[1]}
	cosines := true
	for _, v := range angles {
		if math.Abs(v) > 1 {
			cosines = false
		}
	}
	if cosines {
		for i, v := range angles {
			angles[i] = math.Acos(v) * 180 / math.Pi
		}
	}
	return []float64{cell[0], cell[2], cell[5], angles[0], angles[1], angles[2]}
}

//boxToCell is the inverse of cellToBox. The angles are written in degrees.
func boxToCell(b *traj.Box) [6]float64 {
	return [6]float64{b.A, b.Gamma, b.B, b.Beta, b.Alpha, b.C}
}

//ReadTrajectory reads all the frames in the DCD file filename into a trajectory
//with the topology top, which must have the same number of atoms.
func ReadTrajectory(filename string, top *traj.Topology) (*traj.Trajectory, error) {
	D, err := New(filename)
	if err != nil {
		return nil, errDecorate(err, "ReadTrajectory")
	}
	defer D.Close()
	if D.Len() != top.Len() {
		return nil, Error{fmt.Sprintf("%s: trajectory has %d atoms, topology %d", WrongFormat, D.Len(), top.Len()), filename, []string{"ReadTrajectory"}, true}
	}
	t, err := traj.ReadAll(D, top)
	return t, errDecorate(err, "ReadTrajectory")
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

//Error is the general structure for DCD trajectory errors. It fullfills  traj.Error and traj.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dcd file %s error: %s", err.filename, err.message)
}

func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "DCD" }

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

func (E *lastFrameError) Format() string { return "DCD" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
