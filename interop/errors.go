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

package interop

import "fmt"

//MissingCoordinatesError is returned when a trajectory is requested from a
//structure without coordinates.
type MissingCoordinatesError struct {
	deco []string
}

func (err *MissingCoordinatesError) Error() string {
	return "can not convert to a trajectory a structure without coordinates"
}

//Decorate adds dec to the decoration slice and returns it.
func (err *MissingCoordinatesError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//InvalidResultKindError is returned for conversions to anything other than
//a topology or a trajectory.
type InvalidResultKindError struct {
	Kind string
	deco []string
}

func (err *InvalidResultKindError) Error() string {
	return fmt.Sprintf("invalid result kind %q, only topology or trajectory are supported", err.Kind)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *InvalidResultKindError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IncompleteStructureError is returned when a structure doesn't describe a
//valid topology.
type IncompleteStructureError struct {
	msg  string
	deco []string
}

func (err *IncompleteStructureError) Error() string {
	return "incomplete structure: " + err.msg
}

//Decorate adds dec to the decoration slice and returns it.
func (err *IncompleteStructureError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//SerializationError is returned when a topology can't be written for the foreign loader.
type SerializationError struct {
	Path string
	Err  error
	deco []string
}

func (err *SerializationError) Error() string {
	return fmt.Sprintf("can't serialize topology to %s: %v", err.Path, err.Err)
}

//Unwrap returns the cause of the error.
func (err *SerializationError) Unwrap() error { return err.Err }

//Decorate adds dec to the decoration slice and returns it.
func (err *SerializationError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//ForeignLoadError is returned when the foreign loader rejects a serialized topology.
type ForeignLoadError struct {
	Path string
	Err  error
	deco []string
}

func (err *ForeignLoadError) Error() string {
	return fmt.Sprintf("foreign loader failed on %s: %v", err.Path, err.Err)
}

//Unwrap returns the cause of the error.
func (err *ForeignLoadError) Unwrap() error { return err.Err }

//Decorate adds dec to the decoration slice and returns it.
func (err *ForeignLoadError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//MissingOptionalDependencyError describes the absence of the foreign structure
//library. It is only logged, never returned.
type MissingOptionalDependencyError struct {
	Name string
}

func (err *MissingOptionalDependencyError) Error() string {
	return fmt.Sprintf("optional dependency %s is not available", err.Name)
}
