/*
 * stf.go, part of gotraj.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

package stf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/internal/logging"
	v3 "github.com/rmera/gotraj/v3"
)

const defaultPrec = 2

var log = logging.NamedLogger("stf")

//StfW writes an STF trajectory.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	b         *bufio.Writer
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates the STF file name for frames of natoms atoms. The header
//pairs are written in key order. The precision is taken from the "prec" key,
//which is added, with the default value, if not present. Names ending in "z"
//are gzip-compressed, everything else is compressed with zstd.
func NewWriter(name string, natoms int, header map[string]string) (*StfW, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("%s: %d atoms", WrongFormat, natoms), name, []string{"NewWriter"}, true}
	}
	S := &StfW{natoms: natoms, filename: name, prec: defaultPrec}
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		if strings.ContainsAny(k, "=\n") || strings.Contains(v, "\n") || strings.HasPrefix(k, "*") {
			return nil, Error{fmt.Sprintf("%s: invalid header pair %q=%q", WrongFormat, k, v), name, []string{"NewWriter"}, true}
		}
		h[k] = v
	}
	if p, ok := h["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			log.Warnf("Invalid precision %q for trajectory %s. Will use the default", p, name)
			prec = defaultPrec
		}
		S.prec = prec
	}
	h["prec"] = strconv.Itoa(S.prec)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if strings.HasSuffix(strings.ToLower(name), "z") {
		S.h, err = gzip.NewWriterLevel(S.f, gzip.BestCompression)
	} else {
		S.h, err = zstd.NewWriter(S.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	if err != nil {
		S.f.Close()
		return nil, Error{"Can't create compressor " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.b = bufio.NewWriter(S.h)
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(S.b, "%s=%s\n", k, h[k])
	}
	fmt.Fprintf(S.b, "** %d\n", natoms)
	S.writeable = true
	return S, nil
}

//Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//WNext writes coord as the next frame. If box is given with at least 6
//elements (3 lengths and 3 angles), it is written in the frame termination line.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	if v := coord.NVecs(); v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var temp [3]int
	for i := 0; i < S.natoms; i++ {
		S.b.WriteString(coordsEncode(coord.Vec(i), temp, S.prec))
	}
	var err error
	if len(box) > 0 && len(box[0]) >= 6 {
		b := box[0]
		_, err = fmt.Fprintf(S.b, "* %.4f %.4f %.4f %.4f %.4f %.4f\n", b[0], b[1], b[2], b[3], b[4], b[5])
	} else {
		_, err = S.b.WriteString("*\n")
	}
	if err != nil {
		return Error{WriteError + ": " + err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes and closes the file. The writer can't be used after this call.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	if err := S.b.Flush(); err != nil {
		S.f.Close()
		return Error{WriteError + ": " + err.Error(), S.filename, []string{"Close"}, true}
	}
	if err := S.h.Close(); err != nil {
		S.f.Close()
		return Error{WriteError + ": " + err.Error(), S.filename, []string{"Close"}, true}
	}
	return S.f.Close()
}

func coordsEncode(f [3]float64, temp [3]int, prec int) string {
	p := math.Pow(10.0, float64(prec))
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("ill formatted coordinates line in stf, %d fields: %s", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %w", i, v, err)
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//StfR reads an STF trajectory. It implements traj.Traj.
type StfR struct {
	f        *os.File
	dec      io.Closer
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

//zstd decoders don't implement io.Closer
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the header (never nil, it contains at least
//the precision) and error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{filename: name, prec: defaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	var r io.Reader
	if strings.HasSuffix(strings.ToLower(name), "z") {
		gz, gerr := gzip.NewReader(bufio.NewReader(S.f))
		r, S.dec, err = gz, gz, gerr
	} else {
		zr, zerr := zstd.NewReader(bufio.NewReader(S.f))
		if zerr == nil {
			S.dec = zstdCloser{zr}
		}
		r, err = zr, zerr
	}
	if err != nil {
		S.f.Close()
		return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(r)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.close()
				return nil, nil, Error{fmt.Sprintf("Can't read atom number from '%s'", str), name, []string{"New"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms <= 0 {
				S.close()
				return nil, nil, Error{fmt.Sprintf("Can't read atom number from '%s'", nat[1]), name, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.close()
			return nil, nil, Error{"Malformed header line: " + str, name, []string{"New"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			log.Warnf("Invalid precision %q for trajectory %s. Will assume the default", p, name)
		} else {
			S.prec = prec
		}
	}
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

//Next puts in the given matrix (c) the coordinates for the next frame of the trajectory
//and, if given, and the information is present, puts the box lengths and angles in box.
//At the end of the trajectory, it returns an error implementing traj.LastFrameError.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	if c != nil && c.NVecs() != S.natoms {
		return Error{fmt.Sprintf("%s: matrix for %d atoms, frame has %d", NotEnoughSpace, c.NVecs(), S.natoms), S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			//EOF before the first atom is just the end of the trajectory.
			if err == io.EOF && i == 0 && b == "" {
				S.close()
				return newlastFrameError(S.filename, "Next")
			}
			S.close()
			return Error{ReadError + ": " + err.Error(), S.filename, []string{"Next"}, true}
		}
		if err := coordsDecode(strings.TrimSuffix(b, "\n"), &temp, S.prec); err != nil {
			return Error{err.Error(), S.filename, []string{"coordsDecode", "Next"}, true}
		}
		if c != nil {
			c.SetVec(i, temp)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && s == "" {
		return Error{"Can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if !strings.HasPrefix(s, "*") {
		return Error{WrongFormat + ": wrong number of atoms in frame", S.filename, []string{"Next"}, true}
	}
	if len(box) == 0 || len(box[0]) < 6 {
		return nil
	}
	fields := strings.Fields(s)[1:]
	if len(fields) < 6 {
		log.Debugf("Frame without box information in %s", S.filename)
		return nil
	}
	for j, v := range fields[:6] {
		box[0][j], err = strconv.ParseFloat(v, 64)
		if err != nil {
			log.Warnf("Failed to read box in a frame from %s", S.filename)
			for i := range box[0] {
				box[0][i] = 0
			}
			break
		}
	}
	return nil
}

func (S *StfR) close() {
	S.readable = false
	if S.dec != nil {
		S.dec.Close()
	}
	S.f.Close()
}

//Close closes the object, and marks it as unreadable
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.close()
}

//WriteTrajectory writes all the frames of t to the STF file name. The title of
//the topology goes into the header, under the "title" key.
func WriteTrajectory(name string, t *traj.Trajectory, prec int) error {
	header := map[string]string{"prec": strconv.Itoa(prec)}
	if title := strings.ReplaceAll(t.Topology().Title(), "\n", " "); title != "" {
		header["title"] = title
	}
	W, err := NewWriter(name, t.Len(), header)
	if err != nil {
		return errDecorate(err, "WriteTrajectory")
	}
	topbox := t.Topology().Box()
	for i := 0; i < t.LenFrames(); i++ {
		f := t.Frame(i)
		b := f.Box()
		if b == nil {
			b = topbox
		}
		if b != nil {
			err = W.WNext(f.Coords(), b.Slice())
		} else {
			err = W.WNext(f.Coords())
		}
		if err != nil {
			W.Close()
			return errDecorate(err, "WriteTrajectory")
		}
	}
	return errDecorate(W.Close(), "WriteTrajectory")
}

//ReadTrajectory reads all the frames of the STF file name into a trajectory
//bound to top. It also returns the header of the file.
func ReadTrajectory(name string, top *traj.Topology) (*traj.Trajectory, map[string]string, error) {
	R, header, err := New(name)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadTrajectory")
	}
	defer R.Close()
	t, err := traj.ReadAll(R, top)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadTrajectory")
	}
	return t, header, nil
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

//Error is the general structure for STF trajectory errors. It fullfills traj.Error and traj.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "stf") associated to the error
func (err Error) Format() string { return "stf" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	WriteError     = "Error writing frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
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

func (E *lastFrameError) Format() string { return "stf" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
