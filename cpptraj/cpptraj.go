/*
 * cpptraj.go, part of gotraj.
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

//Package cpptraj runs analyses with the cpptraj program from AmberTools.
//The system is written as a parm7 topology and an Amber ASCII trajectory in
//a scratch directory, cpptraj is run there with an input script, and the data
//files it produces are read back.
package cpptraj

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
	"github.com/rmera/gotraj/hbond"
	"github.com/rmera/gotraj/internal/logging"
	"github.com/rmera/gotraj/prmtop"
	"github.com/rmera/gotraj/traj/crd"
)

var log = logging.NamedLogger("cpptraj")

//Names of the files in the scratch directory.
const (
	TopName           = "top.parm7"
	TrajName          = "traj.crd"
	InputName         = "hbond.in"
	NhbName           = "nhb.dat"
	SeriesName        = "series.dat"
	SolventSeriesName = "solvent.dat"
)

//DataSetName is the name given to the hbond action, so the set with the
//number of solute-solute hydrogen bonds is labeled "HB_00000[UU]".
const DataSetName = "HB_00000"

//Dispatcher runs the actions it provides with the cpptraj executable.
//It implements hbond.Dispatcher.
type Dispatcher struct {
	exe     string
	top     *traj.Topology
	ctx     context.Context
	out     io.Writer
	tempDir string
}

//Option configures a Dispatcher.
type Option func(*Dispatcher)

//WithExecutable sets the name or path of the cpptraj program. The default is "cpptraj".
func WithExecutable(exe string) Option {
	return func(D *Dispatcher) { D.exe = exe }
}

//WithTopology sets the topology used for trajectories that don't carry one.
func WithTopology(top *traj.Topology) Option {
	return func(D *Dispatcher) { D.top = top }
}

//WithContext sets the context that, when done, kills the cpptraj process.
func WithContext(ctx context.Context) Option {
	return func(D *Dispatcher) {
		if ctx != nil {
			D.ctx = ctx
		}
	}
}

//WithOutput sets where PrintOutput writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(D *Dispatcher) { D.out = w }
}

//WithTempDir sets the directory where the scratch directories are created.
func WithTempDir(dir string) Option {
	return func(D *Dispatcher) { D.tempDir = dir }
}

//New returns a Dispatcher, or an error if the cpptraj executable is not found.
func New(opts ...Option) (*Dispatcher, error) {
	D := &Dispatcher{exe: "cpptraj", ctx: context.Background(), out: os.Stdout}
	for _, o := range opts {
		o(D)
	}
	path, err := exec.LookPath(D.exe)
	if err != nil {
		return nil, Error{fmt.Sprintf("cpptraj executable %q not found: %v", D.exe, err), []string{"New"}}
	}
	D.exe = path
	return D, nil
}

//Executable returns the path to the cpptraj program used.
func (D *Dispatcher) Executable() string {
	return D.exe
}

//Action returns a new action named name. Only "hbond" is supported.
func (D *Dispatcher) Action(name string) (hbond.Action, error) {
	if name != hbond.ActionName {
		return nil, &hbond.UnknownActionError{Name: name}
	}
	return &HbondAction{d: D}, nil
}

//HbondAction runs the cpptraj hbond command.
type HbondAction struct {
	d      *Dispatcher
	output []byte
}

//Run reads all the remaining frames of t and runs the hbond command on them.
//t needs a topology: it must be a *traj.Reader, or the Dispatcher must have
//been given one with WithTopology. The data sets produced are added to dsl.
func (H *HbondAction) Run(command string, t traj.Traj, dsl *dataset.DataSetList, args ...string) error {
	top := H.d.top
	if r, ok := t.(*traj.Reader); ok && top == nil {
		top = r.Trajectory().Topology()
	}
	if top == nil {
		return Error{"no topology available for the trajectory", []string{"Run"}}
	}
	all, err := traj.ReadAll(t, top)
	if err != nil {
		return errDecorate(err, "Run")
	}
	dir, err := os.MkdirTemp(H.d.tempDir, "cpptraj")
	if err != nil {
		return Error{err.Error(), []string{"Run"}}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warnf("Can't remove scratch directory %s: %v", dir, err)
		}
	}()
	if err := prmtop.WriteFile(filepath.Join(dir, TopName), top); err != nil {
		return errDecorate(err, "Run")
	}
	if err := crd.WriteFile(filepath.Join(dir, TrajName), all); err != nil {
		return errDecorate(err, "Run")
	}
	script := Script(command, args...)
	if err := os.WriteFile(filepath.Join(dir, InputName), []byte(script), 0644); err != nil {
		return Error{err.Error(), []string{"Run"}}
	}
	log.Debugf("Running %s -p %s -i %s in %s:\n%s", H.d.exe, TopName, InputName, dir, script)
	cmd := exec.CommandContext(H.d.ctx, H.d.exe, "-p", TopName, "-i", InputName)
	cmd.Dir = dir
	H.output, err = cmd.CombinedOutput()
	if err != nil {
		return &RunError{Output: string(H.output), Err: err, deco: []string{"Run"}}
	}
	files := []struct{ name, aspect string }{{NhbName, ""}, {SeriesName, "solutehb"}, {SolventSeriesName, "solventhb"}}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err != nil {
			if f.name == NhbName {
				return Error{fmt.Sprintf("cpptraj didn't produce %s", NhbName), []string{"Run"}}
			}
			continue
		}
		L, err := dataset.ReadDataFile(path)
		if err != nil {
			return errDecorate(err, "Run")
		}
		for _, v := range L.Sets() {
			if f.aspect != "" {
				v.Aspect = f.aspect
				v.Name = DataSetName + "[" + f.aspect + "]"
			}
			dsl.Add(v)
		}
	}
	return nil
}

//PrintOutput writes what cpptraj printed in the last run.
func (H *HbondAction) PrintOutput() error {
	_, err := H.d.out.Write(H.output)
	return err
}

//Script returns the cpptraj input that runs the hbond command with the given
//extra arguments over the trajectory file, and writes the results to the data files.
func Script(command string, args ...string) string {
	fields := append([]string{"hbond", DataSetName}, strings.Fields(command)...)
	fields = append(fields, args...)
	fields = append(fields, "out", NhbName)
	if hasKeyword(command, hbond.SeriesKeyword) {
		fields = append(fields, "uuseries", SeriesName)
		if strings.Contains(command, "solventdonor") || strings.Contains(command, "solventacceptor") {
			fields = append(fields, "uvseries", SolventSeriesName)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "trajin %s\n", TrajName)
	b.WriteString(strings.Join(fields, " "))
	b.WriteString("\nrun\nquit\n")
	return b.String()
}

func hasKeyword(command, key string) bool {
	for _, v := range strings.Fields(command) {
		if v == key {
			return true
		}
	}
	return false
}

//Errors

//errDecorate decorates err with the caller's name if it implements traj.Error.
func errDecorate(err error, caller string) error {
	return traj.ErrDecorate(err, caller)
}

//Error is the general error type of the package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//RunError is returned when the cpptraj process fails. It carries what the
//program printed.
type RunError struct {
	Output string
	Err    error
	deco   []string
}

func (err *RunError) Error() string {
	return fmt.Sprintf("cpptraj failed: %v\n%s", err.Err, err.Output)
}

//Unwrap returns the error given by the process.
func (err *RunError) Unwrap() error { return err.Err }

//Decorate adds dec to the decoration slice and returns it.
func (err *RunError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
