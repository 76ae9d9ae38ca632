/*
 * hbond_test.go, part of gotraj.
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

package hbond

import (
	"errors"
	"strings"
	"testing"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
)

//fakeHbond adds two sets with cpptraj-like legends, with one value per frame.
type fakeHbond struct {
	calls   *[]string
	args    *[]string
	printed *int
	fail    error
}

func (f *fakeHbond) Run(command string, t traj.Traj, dsl *dataset.DataSetList, args ...string) error {
	*f.calls = append(*f.calls, command)
	*f.args = append(*f.args, args...)
	if f.fail != nil {
		return f.fail
	}
	var n int
	for t.Readable() {
		if err := t.Next(nil); err != nil {
			if traj.IsLastFrame(err) {
				break
			}
			return err
		}
		n++
	}
	solsol := make([]float64, n)
	bond := make([]float64, n)
	for i := range bond {
		solsol[i] = float64(i + 1)
		bond[i] = float64(i % 2)
	}
	dsl.AddNew("HB_00000[UU]", "HB_00000[UU]", solsol)
	if strings.HasPrefix(command, SeriesKeyword) {
		dsl.AddNew("HB_00000[solutehb]", "SER_20@O-SER_20@OG-HG", bond)
	}
	return nil
}

func (f *fakeHbond) PrintOutput() error {
	*f.printed++
	return nil
}

type recorder struct {
	*Registry
	calls    []string
	args     []string
	printed  int
	requests int
	fail     error
}

func newRecorder() *recorder {
	R := &recorder{Registry: NewRegistry()}
	R.Register(ActionName, func() Action {
		R.requests++
		return &fakeHbond{calls: &R.calls, args: &R.args, printed: &R.printed, fail: R.fail}
	})
	return R
}

func threeFrames(Te *testing.T) traj.Traj {
	top, err := traj.NewTopology("test", []*traj.Atom{{Name: "O", Symbol: "O"}, {Name: "H", Symbol: "H"}}, nil, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	t := traj.NewTrajectory(top)
	if err := t.Allocate(3, 2); err != nil {
		Te.Fatal(err)
	}
	return t.Reader()
}

func TestCommands(Te *testing.T) {
	R := newRecorder()
	if _, err := SearchNoSeries(R, threeFrames(Te), ":1-22", nil); err != nil {
		Te.Fatal(err)
	}
	if _, err := Search(R, threeFrames(Te), "donormask :1 acceptormask :2", &Options{Args: []string{"dist", "3.5"}}); err != nil {
		Te.Fatal(err)
	}
	if _, err := SearchNoIntramol(R, threeFrames(Te), "", nil); err != nil {
		Te.Fatal(err)
	}
	if _, err := SearchNoIntramol(R, threeFrames(Te), ":1-10", nil); err != nil {
		Te.Fatal(err)
	}
	want := []string{
		":1-22",
		"series donormask :1 acceptormask :2",
		"series nointramol solventacceptor :WAT@O solventdonor :WAT",
		"series nointramol :1-10",
	}
	if len(R.calls) != len(want) {
		Te.Fatalf("expected %d calls, got %v", len(want), R.calls)
	}
	for i, v := range want {
		if R.calls[i] != v {
			Te.Errorf("command %d: got %q, expected %q", i, R.calls[i], v)
		}
	}
	if R.printed != len(want) || R.requests != len(want) {
		Te.Errorf("each search should use a new action and print its output once: %d %d", R.printed, R.requests)
	}
	if len(R.args) != 2 || R.args[1] != "3.5" {
		Te.Errorf("extra arguments not passed: %v", R.args)
	}
}

func TestReservedKeyword(Te *testing.T) {
	R := newRecorder()
	for name, f := range map[string]func(Dispatcher, traj.Traj, string, *Options) (dataset.Shaped, error){
		"SearchNoSeries":   SearchNoSeries,
		"Search":           Search,
		"SearchNoIntramol": SearchNoIntramol,
	} {
		_, err := f(R, threeFrames(Te), "series :1-22", nil)
		var kerr *ReservedKeywordError
		if !errors.As(err, &kerr) || kerr.Keyword != SeriesKeyword {
			Te.Errorf("%s: expected a ReservedKeywordError, got %v", name, err)
		}
	}
	if R.requests != 0 || len(R.calls) != 0 {
		Te.Errorf("the engine should not be called for a rejected mask")
	}
}

func TestShapes(Te *testing.T) {
	R := newRecorder()
	r, err := Search(R, threeFrames(Te), ":1-22", nil)
	if err != nil {
		Te.Fatal(err)
	}
	dsl, ok := r.(*dataset.DataSetList)
	if !ok {
		Te.Fatalf("the default result should be a DataSetList, got %T", r)
	}
	if dsl.Len() != 2 || dsl.At(1).Legend != "SER_20@O-SER_20@OG-HG" {
		Te.Errorf("legends should not change unless asked: %v", dsl.Legends())
	}
	r, err = Search(R, threeFrames(Te), ":1-22", &Options{DType: dataset.NDArray})
	if err != nil {
		Te.Fatal(err)
	}
	A := r.(*dataset.Array)
	if rows, cols := A.Dims(); rows != 2 || cols != 3 {
		Te.Errorf("expected a 2x3 array, got %dx%d", rows, cols)
	}
	r, err = Search(R, threeFrames(Te), ":1-22", &Options{DType: dataset.Mapping, UpdateLegend: true})
	if err != nil {
		Te.Fatal(err)
	}
	M := r.(dataset.MapResult)
	if _, ok := M[dataset.SoluteSoluteAlias]; !ok {
		Te.Errorf("the solute-solute set should be renamed: %v", M)
	}
	if v, ok := M["SER20_O-SER20_OG-HG"]; !ok || len(v) != 3 || v[1] != 1 {
		Te.Errorf("wrong canonical legend or data: %v", M)
	}
	r, err = Search(R, threeFrames(Te), ":1-22", &Options{DType: dataset.DataFrame, UpdateLegend: true})
	if err != nil {
		Te.Fatal(err)
	}
	F := r.(*dataset.Frame)
	if rows, cols := F.Dims(); rows != 2 || cols != 3 {
		Te.Errorf("the data frame should have one row per set, got %dx%d", rows, cols)
	}
}

func TestErrors(Te *testing.T) {
	_, err := Search(NewRegistry(), threeFrames(Te), ":1", nil)
	var uerr *UnknownActionError
	if !errors.As(err, &uerr) || uerr.Name != ActionName {
		Te.Errorf("expected an UnknownActionError, got %v", err)
	}
	R := newRecorder()
	R.fail = errors.New("engine crashed")
	_, err = Search(R, threeFrames(Te), ":1", nil)
	var aerr *ActionError
	if !errors.As(err, &aerr) || !errors.Is(err, R.fail) {
		Te.Errorf("expected an ActionError wrapping the engine error, got %v", err)
	}
	if R.printed != 0 {
		Te.Error("output should not be printed after a failed run")
	}
	R = newRecorder()
	_, err = Search(R, threeFrames(Te), ":1", &Options{DType: dataset.DType(9)})
	var derr *dataset.UnsupportedDtypeError
	if !errors.As(err, &derr) {
		Te.Errorf("expected an UnsupportedDtypeError, got %v", err)
	}
	if R.requests != 0 || len(R.calls) != 0 || R.printed != 0 {
		Te.Errorf("an invalid dtype should be rejected before running: %d actions, %v, %d printed", R.requests, R.calls, R.printed)
	}
	if names := R.Names(); len(names) != 1 || names[0] != ActionName {
		Te.Errorf("wrong registered names %v", names)
	}
}
