/*
 * errors.go, part of gotraj.
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

package dataset

import (
	"fmt"

	traj "github.com/rmera/gotraj"
)

//UnsupportedDtypeError is returned when a DataSetList is to be shaped
//into a container that doesn't exist.
type UnsupportedDtypeError struct {
	Value string
	deco  []string
}

func (err *UnsupportedDtypeError) Error() string {
	return fmt.Sprintf("unsupported dtype %q, use one of %v", err.Value, dtypeNames)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *UnsupportedDtypeError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//ShapeMismatchError is returned when sets of different lengths are stacked
//into a matrix.
type ShapeMismatchError struct {
	Legend   string
	Expected int
	Got      int
	deco     []string
}

func (err *ShapeMismatchError) Error() string {
	return fmt.Sprintf("set %q has %d values, expected %d", err.Legend, err.Got, err.Expected)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *ShapeMismatchError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//DuplicateLegendError is returned when two sets with the same legend are
//put in a map.
type DuplicateLegendError struct {
	Legend string
	deco   []string
}

func (err *DuplicateLegendError) Error() string {
	return fmt.Sprintf("legend %q used by more than one set", err.Legend)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *DuplicateLegendError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileError is returned when a data file can't be read or written.
type FileError struct {
	message  string
	filename string
	deco     []string
}

func (err *FileError) Error() string {
	return fmt.Sprintf("data file %s error: %s", err.filename, err.message)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *FileError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err *FileError) FileName() string { return err.filename }

func errDecorate(err error, caller string) error {
	return traj.ErrDecorate(err, caller)
}
