/*
 * foreign.go, part of gotraj.
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

import (
	"os"
	"path/filepath"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/internal/logging"
	"github.com/rmera/gotraj/prmtop"
)

var log = logging.NamedLogger("interop")

//TopFileName is the name of the parm7 file handed to the foreign loader.
const TopFileName = "tmp_top.parm7"

//Loader is the file-loading entry point of a foreign structure library.
type Loader interface {
	LoadFile(path string) (Structure, error)
}

//LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (Structure, error)

//LoadFile calls f(path)
func (f LoaderFunc) LoadFile(path string) (Structure, error) {
	return f(path)
}

//Converter sends native topologies to a foreign structure library.
type Converter struct {
	loader  Loader
	name    string
	tempDir string
}

//Option configures a Converter.
type Option func(*Converter)

//WithTempDir sets the directory under which the scratch directories are created.
//The default is os.TempDir().
func WithTempDir(dir string) Option {
	return func(C *Converter) { C.tempDir = dir }
}

//WithName sets the name of the foreign library, used in log messages.
func WithName(name string) Option {
	return func(C *Converter) { C.name = name }
}

//NewConverter returns a Converter using loader. A nil loader means the foreign
//library is not available.
func NewConverter(loader Loader, opts ...Option) *Converter {
	C := &Converter{loader: loader, name: "parmed"}
	for _, o := range opts {
		o(C)
	}
	return C
}

//Available returns true if the foreign library can be used.
func (C *Converter) Available() bool {
	return C.loader != nil
}

//ToForeign writes top as a parm7 file in a scratch directory, and returns the structure
//the foreign loader builds from that file. The directory is removed before returning,
//whatever the outcome. If the foreign library is not available, a warning is logged
//and nil, nil is returned.
func (C *Converter) ToForeign(top *traj.Topology) (Structure, error) {
	if !C.Available() {
		log.Warn((&MissingOptionalDependencyError{Name: C.name}).Error())
		return nil, nil
	}
	dir, err := os.MkdirTemp(C.tempDir, "gotraj")
	if err != nil {
		return nil, &SerializationError{Path: C.tempDir, Err: err, deco: []string{"ToForeign"}}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warnf("Can't remove scratch directory %s: %v", dir, err)
		}
	}()
	name := filepath.Join(dir, TopFileName)
	if err := prmtop.WriteFile(name, top); err != nil {
		return nil, &SerializationError{Path: name, Err: err, deco: []string{"ToForeign"}}
	}
	log.Debugf("Loading %s with %s", name, C.name)
	s, err := C.loader.LoadFile(name)
	if err != nil {
		return nil, &ForeignLoadError{Path: name, Err: err, deco: []string{"ToForeign"}}
	}
	return s, nil
}

//ParmLoader is a Loader that reads parm7 files with the prmtop package.
type ParmLoader struct{}

//LoadFile reads the parm7 file path and returns it as a *Record.
func (ParmLoader) LoadFile(path string) (Structure, error) {
	P, err := prmtop.ReadFile(path)
	if err != nil {
		return nil, err
	}
	top, err := P.Topology()
	if err != nil {
		return nil, err
	}
	return FromTopology(top), nil
}
