/*
 * cpptraj_test.go, part of gotraj.
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

package cpptraj

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
	"github.com/rmera/gotraj/hbond"
)

//fakeCpptraj checks its input files and writes data files like those of
//the cpptraj hbond command.
const fakeCpptraj = `#!/bin/sh
test "$1" = "-p" -a -f "$2" || exit 3
test -f traj.crd || exit 4
grep -q "^hbond HB_00000" "$4" || exit 5
cat > nhb.dat <<EOF
#Frame HB_00000[UU]
       1 2
       2 1
EOF
if grep -q "uuseries series.dat" "$4"; then
cat > series.dat <<EOF
#Frame SER_20@O-SER_20@OG-HG
       1 1
       2 0
EOF
fi
echo "HBOND: 2 frames analyzed"
`

const failingCpptraj = `#!/bin/sh
echo "Error: bad mask" >&2
exit 1
`

func fakeExe(Te *testing.T, script string) string {
	if runtime.GOOS == "windows" {
		Te.Skip("shell scripts needed")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		Te.Skip("sh not available")
	}
	name := filepath.Join(Te.TempDir(), "cpptraj")
	if err := os.WriteFile(name, []byte(script), 0755); err != nil {
		Te.Fatal(err)
	}
	return name
}

func twoFrames(Te *testing.T) *traj.Trajectory {
	atoms := []*traj.Atom{
		{Name: "OG", Symbol: "O", Mass: 16, Residue: 0},
		{Name: "HG", Symbol: "H", Mass: 1.008, Residue: 0},
	}
	res := []*traj.Residue{{Name: "SER", Number: 20, Chain: "A", First: 0, Last: 2}}
	bonds := []*traj.Bond{{At1: 0, At2: 1}}
	top, err := traj.NewTopology("ser", atoms, res, bonds, nil)
	if err != nil {
		Te.Fatal(err)
	}
	t := traj.NewTrajectory(top)
	if err := t.Allocate(2, 2); err != nil {
		Te.Fatal(err)
	}
	if err := t.UpdateCoordinates([]float64{0, 0, 0, 0.96, 0, 0, 0, 0, 0.1, 0.97, 0, 0.1}, t.Shape()); err != nil {
		Te.Fatal(err)
	}
	return t
}

func TestScript(Te *testing.T) {
	s := Script("series :1-22", "dist", "3.0")
	want := "trajin traj.crd\nhbond HB_00000 series :1-22 dist 3.0 out nhb.dat uuseries series.dat\nrun\nquit\n"
	if s != want {
		Te.Errorf("wrong script:\n%s\nexpected:\n%s", s, want)
	}
	s = Script("series nointramol solventacceptor :WAT@O solventdonor :WAT")
	if !strings.Contains(s, "uuseries series.dat uvseries solvent.dat") {
		Te.Errorf("solvent series not requested:\n%s", s)
	}
	s = Script(":1-22")
	if strings.Contains(s, "series") {
		Te.Errorf("series requested without the keyword:\n%s", s)
	}
}

func TestNotFound(Te *testing.T) {
	if _, err := New(WithExecutable(filepath.Join(Te.TempDir(), "nothere"))); err == nil {
		Te.Error("a missing executable should be reported")
	}
}

func TestHbond(Te *testing.T) {
	scratch := Te.TempDir()
	var out bytes.Buffer
	D, err := New(WithExecutable(fakeExe(Te, fakeCpptraj)), WithOutput(&out), WithTempDir(scratch))
	if err != nil {
		Te.Fatal(err)
	}
	r, err := hbond.Search(D, twoFrames(Te).Reader(), ":1", &hbond.Options{DType: dataset.Mapping, UpdateLegend: true})
	if err != nil {
		Te.Fatal(err)
	}
	M := r.(dataset.MapResult)
	if v := M[dataset.SoluteSoluteAlias]; len(v) != 2 || v[0] != 2 || v[1] != 1 {
		Te.Errorf("wrong solute-solute data: %v", M)
	}
	if v := M["SER20_O-SER20_OG-HG"]; len(v) != 2 || v[0] != 1 {
		Te.Errorf("wrong series data: %v", M)
	}
	if !strings.Contains(out.String(), "HBOND: 2 frames") {
		Te.Errorf("output not printed: %q", out.String())
	}
	entries, err := os.ReadDir(scratch)
	if err != nil {
		Te.Fatal(err)
	}
	if len(entries) != 0 {
		Te.Errorf("the scratch directory was not removed: %v", entries)
	}

	r, err = hbond.SearchNoSeries(D, twoFrames(Te).Reader(), ":1", nil)
	if err != nil {
		Te.Fatal(err)
	}
	dsl := r.(*dataset.DataSetList)
	if dsl.Len() != 1 || dsl.At(0).Legend != "HB_00000[UU]" {
		Te.Errorf("only the number of hydrogen bonds expected, got %v", dsl.Legends())
	}
}

func TestHbondErrors(Te *testing.T) {
	D, err := New(WithExecutable(fakeExe(Te, failingCpptraj)), WithOutput(&bytes.Buffer{}))
	if err != nil {
		Te.Fatal(err)
	}
	_, err = hbond.Search(D, twoFrames(Te).Reader(), ":1", nil)
	var rerr *RunError
	if !errors.As(err, &rerr) || !strings.Contains(rerr.Output, "bad mask") {
		Te.Errorf("expected a RunError with the program output, got %v", err)
	}
	act, err := D.Action(hbond.ActionName)
	if err != nil {
		Te.Fatal(err)
	}
	if err := act.Run(":1", twoFrames(Te).Reader(), dataset.NewDataSetList()); err == nil {
		Te.Error("a failing program should give an error")
	}
	if _, err := D.Action("rmsd"); err == nil {
		Te.Error("only hbond should be provided")
	}
	t := twoFrames(Te)
	D2, err := New(WithExecutable(D.Executable()), WithTopology(t.Topology()))
	if err != nil {
		Te.Fatal(err)
	}
	if D2.top != t.Topology() {
		Te.Error("topology option not applied")
	}
}
