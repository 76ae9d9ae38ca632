/*
 * root.go, part of gotraj.
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
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
	"github.com/rmera/gotraj/internal/logging"
	"github.com/rmera/gotraj/interop"
	"github.com/rmera/gotraj/traj/crd"
	"github.com/rmera/gotraj/traj/dcd"
	"github.com/rmera/gotraj/traj/stf"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//app holds the state shared by all the subcommands.
type app struct {
	cfgFile string
	verbose bool
	cfg     *Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig()}
	root := &cobra.Command{
		Use:               "gotraj",
		Short:             "Molecular structure, trajectory and hydrogen bond analysis tools",
		Long:              "gotraj converts structures and trajectories between JSON, parm7, Amber ASCII and STF files,\nruns hydrogen bond searches with cpptraj and shapes, plots and correlates the resulting data sets.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print debug messages")
	root.AddCommand(a.convertCmd(), a.shapeCmd(), a.hbondCmd(), a.plotCmd(), a.corrCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.verbose || cfg.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	} else {
		logging.SetLevel(logrus.InfoLevel)
	}
	logging.SetOutput(cmd.ErrOrStderr())
	log.Debugf("Configuration: %+v", *cfg)
	return nil
}

//dtype returns the container requested with the flag, or the one in the configuration.
func (a *app) dtype(cmd *cobra.Command) (dataset.DType, error) {
	name := a.cfg.DType
	if cmd.Flags().Changed("dtype") {
		name, _ = cmd.Flags().GetString("dtype")
	}
	return dataset.ParseDType(name)
}

func (a *app) updateLegend(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("update-legend") {
		u, _ := cmd.Flags().GetBool("update-legend")
		return u
	}
	return a.cfg.UpdateLegend
}

//loadStructure reads a JSON structure or a parm7 topology, according to
//the extension of name.
func loadStructure(name string) (interop.Structure, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".parm7", ".prmtop", ".top":
		return interop.ParmLoader{}.LoadFile(name)
	case ".json":
		return interop.ReadRecordFile(name)
	}
	return nil, fmt.Errorf("unknown structure format for %s, use .json, .parm7 or .prmtop", name)
}

//readTrajectory reads the coordinates in the file name, an STF, Amber ASCII or DCD
//trajectory, for the topology top.
func readTrajectory(name string, top *traj.Topology) (*traj.Trajectory, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == dcd.ZstdSuffix {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	switch ext {
	case ".dcd":
		return dcd.ReadTrajectory(name, top)
	case ".stf", ".stz":
		t, _, err := stf.ReadTrajectory(name, top)
		return t, err
	case ".crd", ".mdcrd", ".trj":
		C, err := crd.New(name, top.Len(), top.Box() != nil)
		if err != nil {
			return nil, err
		}
		defer C.Close()
		return traj.ReadAll(C, top)
	}
	return nil, fmt.Errorf("unknown trajectory format for %s, use .stf, .stz, .crd, .mdcrd, .dcd or .dcd.zst", name)
}

//writeTrajectory writes t to name, in the STF, Amber ASCII or DCD format.
func (a *app) writeTrajectory(name string, t *traj.Trajectory) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".stf", ".stz":
		return stf.WriteTrajectory(name, t, a.cfg.Precision)
	case ".crd", ".mdcrd", ".trj":
		return crd.WriteFile(name, t)
	case ".dcd":
		return dcd.WriteFile(name, t)
	}
	return fmt.Errorf("unknown trajectory format for %s, use .stf, .stz, .crd, .mdcrd or .dcd", name)
}

//printShaped writes a human-readable rendering of s to w.
func printShaped(w io.Writer, s dataset.Shaped) {
	switch v := s.(type) {
	case *dataset.DataSetList:
		fmt.Fprint(w, v.Summary())
	case dataset.ListResult:
		for i, r := range v {
			fmt.Fprintf(w, "%d %v\n", i, r)
		}
	case *dataset.Array:
		rows, cols := v.Dims()
		fmt.Fprintf(w, "array %dx%d\n", rows, cols)
		for i := 0; i < rows; i++ {
			fmt.Fprintln(w, v.Row(i))
		}
	case *dataset.Frame:
		fmt.Fprint(w, v.String())
	case dataset.MapResult:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %v\n", k, v[k])
		}
	}
}
