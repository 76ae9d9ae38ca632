/*
 * main_test.go, part of gotraj.
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

package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rmera/gotraj/dataset"
	"github.com/rmera/gotraj/hbond"
	"github.com/rmera/gotraj/interop"
	"github.com/rmera/gotraj/prmtop"
	"github.com/rmera/gotraj/traj/stf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

const fakeCpptraj = `#!/bin/sh
test -f "$2" -a -f traj.crd || exit 3
cat > nhb.dat <<EOF
#Frame HB_00000[UU]
       1 2
       2 1
EOF
if grep -q "uuseries" "$4"; then
cat > series.dat <<EOF
#Frame SER_20@O-SER_20@OG-HG
       1 1
       2 0
EOF
fi
echo "HBOND: done"
`

// run executes the gotraj command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errout bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errout)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeStructure writes a serine side chain and a water, with 2 frames, as JSON.
func writeStructure(t *testing.T, dir string) string {
	t.Helper()
	data := []float64{
		0, 0, 0, 1.4, 0, 0, 1.7, 0.9, 0, 4, 0, 0, 4.6, 0.7, 0, 4.6, -0.7, 0,
		0, 0, 0.1, 1.4, 0, 0.1, 1.7, 0.9, 0.1, 4.1, 0, 0, 4.7, 0.7, 0, 4.7, -0.7, 0,
	}
	coords, err := interop.NewCoordArray(2, 6, data)
	require.NoError(t, err)
	R := &interop.Record{
		Name: "ser-wat",
		AtomList: []interop.AtomRecord{
			{Name: "CB", Element: "C", Mass: 12.01, Charge: 0.2117, Residue: 0},
			{Name: "OG", Element: "O", Mass: 16.0, Charge: -0.6546, Residue: 0},
			{Name: "HG", Element: "H", Mass: 1.008, Charge: 0.4275, Residue: 0},
			{Name: "O", Element: "O", Mass: 16.0, Charge: -0.834, Residue: 1},
			{Name: "H1", Element: "H", Mass: 1.008, Charge: 0.417, Residue: 1},
			{Name: "H2", Element: "H", Mass: 1.008, Charge: 0.417, Residue: 1},
		},
		ResList:  []interop.ResidueRecord{{Name: "SER", Number: 20, Chain: "A"}, {Name: "WAT", Number: 21}},
		BondList: [][2]int{{0, 1}, {1, 2}, {3, 4}, {3, 5}},
		Coords:   coords,
	}
	name := filepath.Join(dir, "ser.json")
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, R.Write(f))
	require.NoError(t, f.Close())
	return name
}

func writeDataFile(t *testing.T, dir string) string {
	t.Helper()
	dsl := dataset.NewDataSetList(
		dataset.NewDataSet("HB_00000[UU]", "HB_00000[UU]", []float64{2, 1, 2, 3, 2, 1, 1, 2}),
		dataset.NewDataSet("HB_00000[solutehb]", "SER_20@O-SER_20@OG-HG", []float64{1, 0, 1, 1, 1, 0, 0, 1}),
	)
	name := filepath.Join(dir, "hbonds.dat")
	require.NoError(t, dataset.WriteDataFile(name, dsl))
	return name
}

// =============================================================================
// Tests
// =============================================================================

func TestConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Check())

	dir := t.TempDir()
	name := filepath.Join(dir, "gotraj.yaml")
	require.NoError(t, os.WriteFile(name, []byte("cpptraj: /opt/amber/bin/cpptraj\ndtype: mapping\nupdate_legend: true\ntimestep: 0.002\n"), 0644))
	cfg, err = LoadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, "/opt/amber/bin/cpptraj", cfg.Cpptraj)
	assert.Equal(t, "mapping", cfg.DType)
	assert.True(t, cfg.UpdateLegend)
	assert.Equal(t, 0.002, cfg.TimeStep)
	assert.Equal(t, 3, cfg.Precision, "missing settings keep their defaults")

	for _, bad := range []string{"dtype: pandas\n", "precision: 0\n", "timestep: -1\n", "cpptraj: \"\"\n", "dtype: [\n"} {
		require.NoError(t, os.WriteFile(name, []byte(bad), 0644))
		_, err = LoadConfig(name)
		assert.Error(t, err, bad)
	}
	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeStructure(t, dir)
	parm := filepath.Join(dir, "ser.parm7")
	trj := filepath.Join(dir, "ser.stf")

	out, err := run(t, "convert", in, parm, "--traj", trj, "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Round trip through parm7 preserved 6 atoms, 2 residues and 4 bonds")

	P, err := prmtop.ReadFile(parm)
	require.NoError(t, err)
	assert.Equal(t, 6, P.NumAtoms())
	assert.Equal(t, 2, P.NumResidues())

	back := filepath.Join(dir, "back.json")
	_, err = run(t, "convert", parm, back, "--coords", trj)
	require.NoError(t, err)
	R, err := interop.ReadRecordFile(back)
	require.NoError(t, err)
	require.NotNil(t, R.Coordinates())
	assert.Equal(t, [3]int{2, 6, 3}, R.Coordinates().Shape())
	assert.InDelta(t, 4.1, R.Coordinates().At(1, 3)[0], 1e-3)
	assert.Equal(t, "OG", R.AtomAt(1).Name)

	top, err := interop.ToTopology(R)
	require.NoError(t, err)
	tr, header, err := stf.ReadTrajectory(trj, top)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.LenFrames())
	assert.Equal(t, "3", header["prec"])

	crd := filepath.Join(dir, "ser.crd")
	_, err = run(t, "convert", in, filepath.Join(dir, "again.json"), "--traj", crd)
	require.NoError(t, err)
	_, err = os.Stat(crd)
	assert.NoError(t, err)

	dcdName := filepath.Join(dir, "ser.dcd")
	_, err = run(t, "convert", in, filepath.Join(dir, "again.parm7"), "--traj", dcdName)
	require.NoError(t, err)
	_, err = run(t, "convert", parm, filepath.Join(dir, "fromdcd.json"), "--coords", dcdName)
	require.NoError(t, err)
	R, err = interop.ReadRecordFile(filepath.Join(dir, "fromdcd.json"))
	require.NoError(t, err)
	assert.InDelta(t, 4.1, R.Coordinates().At(1, 3)[0], 1e-3)

	_, err = run(t, "convert", in, filepath.Join(dir, "ser.pdb"))
	assert.Error(t, err, "unknown output format")
	_, err = run(t, "convert", parm, filepath.Join(dir, "x.json"), "--traj", filepath.Join(dir, "x.crd"))
	assert.Error(t, err, "a topology has no coordinates to write")
}

func TestShape(t *testing.T) {
	data := writeDataFile(t, t.TempDir())

	out, err := run(t, "shape", data, "-t", "mapping", "-u")
	require.NoError(t, err)
	assert.Contains(t, out, "avg_solute_solute: [2 1 2 3 2 1 1 2]")
	assert.Contains(t, out, "SER20_O-SER20_OG-HG: [1 0 1 1 1 0 0 1]")

	out, err = run(t, "shape", data, "--dtype", "ndarray")
	require.NoError(t, err)
	assert.Contains(t, out, "array 2x8")

	out, err = run(t, "shape", data, "-t", "dataset")
	require.NoError(t, err)
	assert.Contains(t, out, "Legend")
	assert.Contains(t, out, "SER_20@O-SER_20@OG-HG")

	out, err = run(t, "shape", data)
	require.NoError(t, err)
	assert.Contains(t, out, "HB_00000[UU]", "the default shape is a data frame with the original legends")

	_, err = run(t, "shape", data, "-t", "pandas")
	var derr *dataset.UnsupportedDtypeError
	assert.True(t, errors.As(err, &derr))
}

func TestHbond(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts needed")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	in := writeStructure(t, dir)
	exe := filepath.Join(dir, "cpptraj")
	require.NoError(t, os.WriteFile(exe, []byte(fakeCpptraj), 0755))
	cfg := filepath.Join(dir, "gotraj.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("cpptraj: "+exe+"\ntemp_dir: "+dir+"\n"), 0644))

	out, err := run(t, "hbond", in, ":1", "-c", cfg, "-t", "mapping", "-u")
	require.NoError(t, err)
	assert.Contains(t, out, "avg_solute_solute: [2 1]")
	assert.Contains(t, out, "SER20_O-SER20_OG-HG: [1 0]")

	dat := filepath.Join(dir, "hb.dat.zst")
	out, err = run(t, "hbond", in, "-c", cfg, "--out", dat)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 data sets")
	dsl, err := dataset.ReadDataFile(dat)
	require.NoError(t, err)
	assert.Equal(t, []string{"HB_00000[UU]", "SER_20@O-SER_20@OG-HG"}, dsl.Legends())

	canon := filepath.Join(dir, "canon.dat")
	_, err = run(t, "hbond", in, "-c", cfg, "-u", "--out", canon)
	require.NoError(t, err)
	out, err = run(t, "shape", canon, "-t", "mapping", "-u")
	require.NoError(t, err)
	assert.Contains(t, out, "SER20_O-SER20_OG-HG: [1 0]", "legends read back should not be canonicalized twice")

	out, err = run(t, "hbond", in, ":1", "-c", cfg, "--noseries", "-t", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 [2 1]")

	_, err = run(t, "hbond", in, "series :1", "-c", cfg)
	var kerr *hbond.ReservedKeywordError
	assert.True(t, errors.As(err, &kerr), "got %v", err)

	_, err = run(t, "hbond", in, "-c", cfg, "--noseries", "--nointramol")
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir(), "scratch directory %s left behind", e.Name())
	}
}

func TestPlotAndCorr(t *testing.T) {
	dir := t.TempDir()
	data := writeDataFile(t, dir)
	img := filepath.Join(dir, "hb.png")
	_, err := run(t, "plot", data, img, "-u")
	require.NoError(t, err)
	fi, err := os.Stat(img)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	_, err = run(t, "plot", data, filepath.Join(dir, "hist.png"), "--hist", "HB_00000[UU]", "--bins", "3")
	assert.NoError(t, err)
	_, err = run(t, "plot", data, filepath.Join(dir, "none.png"), "--hist", "nothere")
	assert.Error(t, err)

	out, err := run(t, "corr", data, "SER_20@O-SER_20@OG-HG", "--maxlag", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "#Lag")
	assert.Contains(t, out, "1.000000", "the autocorrelation at lag 0 is 1")
	assert.Contains(t, out, "#Lifetime:")

	_, err = run(t, "corr", data, "HB_00000[UU]", "--cross", "SER_20@O-SER_20@OG-HG")
	assert.NoError(t, err)
	_, err = run(t, "corr", data, "nothere")
	assert.Error(t, err)
}
