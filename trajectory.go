/*
 * trajectory.go, part of gotraj.
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

	v3 "github.com/rmera/gotraj/v3"
)

//Trajectory is an ordered set of frames bound to one Topology. The number of
//frames and atoms is fixed when the trajectory is allocated.
type Trajectory struct {
	top    *Topology
	frames []*Frame
}

//NewTrajectory returns an empty, unallocated trajectory for the topology top.
func NewTrajectory(top *Topology) *Trajectory {
	if top == nil {
		panic("Attempted to create a trajectory with a nil topology")
	}
	return &Trajectory{top: top}
}

//Allocate creates nframes zero-filled frames of natoms atoms each.
//natoms must match the number of atoms in the topology, and the trajectory
//can only be allocated once.
func (T *Trajectory) Allocate(nframes, natoms int) error {
	if T.frames != nil {
		return NewError("Trajectory already allocated", "Allocate")
	}
	if natoms != T.top.Len() {
		return newShapeError("Allocate", []int{nframes, T.top.Len(), 3}, []int{nframes, natoms, 3})
	}
	if nframes < 0 || natoms <= 0 {
		return NewError(fmt.Sprintf("Can't allocate %d frames of %d atoms", nframes, natoms), "Allocate")
	}
	T.frames = make([]*Frame, nframes)
	for i := range T.frames {
		T.frames[i] = NewFrame(natoms)
	}
	return nil
}

//Shape returns the dimensions of the coordinate buffer of the trajectory:
//frames, atoms and 3.
func (T *Trajectory) Shape() [3]int {
	return [3]int{len(T.frames), T.top.Len(), 3}
}

//UpdateCoordinates copies data, a flat row-major buffer of the given shape, into
//the frames of the trajectory. shape must be exactly the shape of the trajectory.
func (T *Trajectory) UpdateCoordinates(data []float64, shape [3]int) error {
	s := T.Shape()
	if shape != s {
		return newShapeError("UpdateCoordinates", s[:], shape[:])
	}
	fsize := s[1] * s[2]
	if len(data) != s[0]*fsize {
		return newShapeError("UpdateCoordinates", s[:], []int{len(data)})
	}
	for i, v := range T.frames {
		if err := v.SetXYZ(data[i*fsize : (i+1)*fsize]); err != nil {
			return ErrDecorate(err, "UpdateCoordinates")
		}
	}
	return nil
}

//Topology returns the topology of the trajectory.
func (T *Trajectory) Topology() *Topology {
	return T.top
}

//Len returns the number of atoms per frame.
func (T *Trajectory) Len() int {
	return T.top.Len()
}

//Atom returns a copy of the ith atom of the topology.
func (T *Trajectory) Atom(i int) *Atom {
	return T.top.Atom(i)
}

//LenFrames returns the number of frames in the trajectory.
func (T *Trajectory) LenFrames() int {
	return len(T.frames)
}

//Frame returns the ith frame. Changes in the coordinates of the
//frame are reflected in the trajectory. Panics if out of range.
func (T *Trajectory) Frame(i int) *Frame {
	if i < 0 || i >= len(T.frames) {
		panic(fmt.Sprintf("Frame requested (%d) out of range", i))
	}
	return T.frames[i]
}

//XYZ returns a copy of all the coordinates in a flat buffer with the shape given by Shape.
func (T *Trajectory) XYZ() []float64 {
	s := T.Shape()
	ret := make([]float64, 0, s[0]*s[1]*s[2])
	for _, v := range T.frames {
		ret = append(ret, v.coords.RawData()...)
	}
	return ret
}

//Reader returns an object that reads the trajectory frame by frame, implementing Traj.
//Each reader keeps its own position.
func (T *Trajectory) Reader() *Reader {
	return &Reader{t: T}
}

//Reader reads the frames of a Trajectory in order.
type Reader struct {
	t       *Trajectory
	current int
}

//Readable returns true while there are frames left to read.
func (R *Reader) Readable() bool {
	return R != nil && R.t != nil && R.current < len(R.t.frames)
}

//Len returns the number of atoms per frame.
func (R *Reader) Len() int {
	return R.t.Len()
}

//Trajectory returns the trajectory being read.
func (R *Reader) Trajectory() *Trajectory {
	return R.t
}

//Next copies the next frame into output, or discards it if output is nil. If given,
//box is filled with the periodic box of the frame, when present.
func (R *Reader) Next(output *v3.Matrix, box ...[]float64) error {
	if R.current >= len(R.t.frames) {
		return newlastFrameError("", "Next")
	}
	f := R.t.frames[R.current]
	R.current++
	if output == nil {
		return nil
	}
	if output.NVecs() != f.Len() {
		return newShapeError("Next", []int{f.Len(), 3}, []int{output.NVecs(), 3})
	}
	output.Copy(f.coords)
	if len(box) > 0 && len(box[0]) >= 6 {
		b := f.Box()
		if b == nil {
			b = R.t.top.Box()
		}
		if b != nil {
			copy(box[0], b.Slice())
		}
	}
	return nil
}

//ReadAll reads every remaining frame from t into a new Trajectory bound to top.
//top must have as many atoms as t has per frame.
func ReadAll(t Traj, top *Topology) (*Trajectory, error) {
	if t.Len() != top.Len() {
		return nil, newShapeError("ReadAll", []int{top.Len()}, []int{t.Len()})
	}
	frames := make([]*Frame, 0, 10)
	box := make([]float64, 6)
	for {
		f := NewFrame(t.Len())
		for i := range box {
			box[i] = 0
		}
		err := t.Next(f.coords, box)
		if err != nil {
			if IsLastFrame(err) {
				break
			}
			return nil, ErrDecorate(err, "ReadAll")
		}
		if box[0] != 0 {
			f.box, _ = NewBox(box)
		}
		frames = append(frames, f)
	}
	ret := NewTrajectory(top)
	ret.frames = frames
	return ret, nil
}
