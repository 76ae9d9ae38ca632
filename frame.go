/*
 * frame.go, part of gotraj.
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
	v3 "github.com/rmera/gotraj/v3"
)

//Op is an element-wise arithmetic operation on a Frame.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

//Frame is a single coordinate snapshot, one 3D point per atom.
//The number of atoms is fixed when the frame is created.
type Frame struct {
	coords *v3.Matrix
	box    *Box
}

//NewFrame returns a zero-filled frame for natoms atoms.
func NewFrame(natoms int) *Frame {
	return &Frame{coords: v3.Zeros(natoms)}
}

//FrameFromXYZ returns a frame with a copy of the flat, row-major, coordinates in xyz.
func FrameFromXYZ(xyz []float64) (*Frame, error) {
	d := make([]float64, len(xyz))
	copy(d, xyz)
	c, err := v3.NewMatrix(d)
	if err != nil {
		return nil, ErrDecorate(err, "FrameFromXYZ")
	}
	return &Frame{coords: c}, nil
}

//Len returns the number of atoms in the frame.
func (F *Frame) Len() int {
	return F.coords.NVecs()
}

//Coords returns the coordinate matrix of the frame. Changes to the matrix
//are reflected in the frame.
func (F *Frame) Coords() *v3.Matrix {
	return F.coords
}

//XYZ returns a copy of the coordinates as a flat, row-major slice.
func (F *Frame) XYZ() []float64 {
	d := F.coords.RawData()
	ret := make([]float64, len(d))
	copy(ret, d)
	return ret
}

//SetXYZ copies xyz, a flat row-major slice with 3 values per atom, into the frame.
func (F *Frame) SetXYZ(xyz []float64) error {
	d := F.coords.RawData()
	if len(xyz) != len(d) {
		return newShapeError("SetXYZ", []int{F.Len(), 3}, []int{len(xyz) / 3, 3})
	}
	copy(d, xyz)
	return nil
}

//At returns the coordinates of the ith atom.
func (F *Frame) At(i int) [3]float64 {
	return F.coords.Vec(i)
}

//Set sets the coordinates of the ith atom.
func (F *Frame) Set(i int, p [3]float64) {
	F.coords.SetVec(i, p)
}

//Box returns the periodic box of the frame, or nil.
func (F *Frame) Box() *Box {
	if F.box == nil {
		return nil
	}
	b := *F.box
	return &b
}

//SetBox sets the periodic box of the frame. A nil box removes it.
func (F *Frame) SetBox(b *Box) {
	if b == nil {
		F.box = nil
		return
	}
	nb := *b
	F.box = &nb
}

//Copy returns a standalone copy of the frame.
func (F *Frame) Copy() *Frame {
	return &Frame{coords: F.coords.Clone(), box: F.Box()}
}

//ScalarInPlace applies op with the value v to every coordinate of the frame.
func (F *Frame) ScalarInPlace(op Op, v float64) {
	switch op {
	case OpAdd:
		F.coords.AddFloat(F.coords, v)
	case OpSub:
		F.coords.AddFloat(F.coords, -v)
	case OpMul:
		F.coords.Scale(v, F.coords)
	case OpDiv:
		F.coords.Scale(1/v, F.coords)
	default:
		panic("Frame: unknown operation")
	}
}

//Scalar returns a new frame with op applied with the value v to every coordinate.
func (F *Frame) Scalar(op Op, v float64) *Frame {
	r := F.Copy()
	r.ScalarInPlace(op, v)
	return r
}

//ElementwiseInPlace applies op between each coordinate of the frame and the
//corresponding one in o. Both frames must have the same number of atoms.
func (F *Frame) ElementwiseInPlace(op Op, o *Frame) error {
	if o.Len() != F.Len() {
		return newShapeError("ElementwiseInPlace", []int{F.Len(), 3}, []int{o.Len(), 3})
	}
	switch op {
	case OpAdd:
		F.coords.Add(F.coords, o.coords)
	case OpSub:
		F.coords.Sub(F.coords, o.coords)
	case OpMul:
		F.coords.MulElem(F.coords, o.coords)
	case OpDiv:
		F.coords.DivElem(F.coords, o.coords)
	default:
		panic("Frame: unknown operation")
	}
	return nil
}

//Elementwise returns a new frame with op applied between each coordinate of the frame
//and the corresponding one in o.
func (F *Frame) Elementwise(op Op, o *Frame) (*Frame, error) {
	r := F.Copy()
	if err := r.ElementwiseInPlace(op, o); err != nil {
		return nil, ErrDecorate(err, "Elementwise")
	}
	return r, nil
}

//Add returns a new frame with v added to every coordinate.
func (F *Frame) Add(v float64) *Frame { return F.Scalar(OpAdd, v) }

//Sub returns a new frame with v subtracted from every coordinate.
func (F *Frame) Sub(v float64) *Frame { return F.Scalar(OpSub, v) }

//Mul returns a new frame with every coordinate multiplied by v.
func (F *Frame) Mul(v float64) *Frame { return F.Scalar(OpMul, v) }

//Div returns a new frame with every coordinate divided by v.
func (F *Frame) Div(v float64) *Frame { return F.Scalar(OpDiv, v) }

//AddFrame returns a new frame with the coordinates of o added to those of the frame.
func (F *Frame) AddFrame(o *Frame) (*Frame, error) { return F.Elementwise(OpAdd, o) }

//SubFrame returns a new frame with the coordinates of o subtracted from those of the frame.
func (F *Frame) SubFrame(o *Frame) (*Frame, error) { return F.Elementwise(OpSub, o) }

//MulFrame returns the element-wise product of the frame and o.
func (F *Frame) MulFrame(o *Frame) (*Frame, error) { return F.Elementwise(OpMul, o) }

//DivFrame returns the element-wise division of the frame by o.
func (F *Frame) DivFrame(o *Frame) (*Frame, error) { return F.Elementwise(OpDiv, o) }
