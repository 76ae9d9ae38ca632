/*
 * analysis.go, part of gotraj.
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

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/cpptraj"
	"github.com/rmera/gotraj/dataset"
	"github.com/rmera/gotraj/hbond"
	"github.com/rmera/gotraj/interop"
	"github.com/spf13/cobra"
)

func (a *app) shapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shape <datafile>",
		Short: "Print the data sets in a data file in the requested shape",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runShape,
	}
	cmd.Flags().StringP("dtype", "t", "", "Shape of the output: dataset, list, ndarray, dataframe or mapping")
	cmd.Flags().BoolP("update-legend", "u", false, "Canonicalize the legends of hydrogen bond sets")
	return cmd
}

func (a *app) runShape(cmd *cobra.Command, args []string) error {
	dt, err := a.dtype(cmd)
	if err != nil {
		return err
	}
	dsl, err := dataset.ReadDataFile(args[0])
	if err != nil {
		return err
	}
	if a.updateLegend(cmd) {
		dataset.CanonicalizeLegends(dsl)
	}
	s, err := dataset.Shape(dsl, dt)
	if err != nil {
		return err
	}
	printShaped(cmd.OutOrStdout(), s)
	return nil
}

func (a *app) hbondCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hbond <structure> [mask]",
		Short: "Search hydrogen bonds with cpptraj",
		Long: `hbond runs the cpptraj hbond command over the coordinates of the structure, or those
given with --coords. By default, a series with the presence of each hydrogen bond
in each frame is obtained. With --out, the data sets are written to a data file
(compressed if the name ends in .zst) instead of printed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: a.runHbond,
	}
	cmd.Flags().String("coords", "", "Trajectory (.stf, .stz, .crd, .mdcrd, .dcd) with the coordinates")
	cmd.Flags().Bool("noseries", false, "Don't obtain per-frame series")
	cmd.Flags().Bool("nointramol", false, "Only hydrogen bonds between solute and solvent")
	cmd.Flags().StringP("dtype", "t", "", "Shape of the output: dataset, list, ndarray, dataframe or mapping")
	cmd.Flags().BoolP("update-legend", "u", false, "Canonicalize the legends of the hydrogen bond sets")
	cmd.Flags().StringP("out", "o", "", "Write the data sets to this data file")
	cmd.Flags().StringArray("arg", nil, "Extra argument for the cpptraj hbond command (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("noseries", "nointramol")
	return cmd
}

func (a *app) runHbond(cmd *cobra.Command, args []string) error {
	coords, _ := cmd.Flags().GetString("coords")
	noseries, _ := cmd.Flags().GetBool("noseries")
	nointramol, _ := cmd.Flags().GetBool("nointramol")
	out, _ := cmd.Flags().GetString("out")
	extra, _ := cmd.Flags().GetStringArray("arg")
	var mask string
	if len(args) > 1 {
		mask = args[1]
	}
	opts := &hbond.Options{UpdateLegend: a.updateLegend(cmd), Args: extra}
	if out == "" {
		var err error
		if opts.DType, err = a.dtype(cmd); err != nil {
			return err
		}
	}

	s, err := loadStructure(args[0])
	if err != nil {
		return err
	}
	var t *traj.Trajectory
	if coords != "" {
		top, err := interop.ToTopology(s)
		if err != nil {
			return err
		}
		t, err = readTrajectory(coords, top)
		if err != nil {
			return err
		}
	} else {
		t, err = interop.ToTrajectory(s)
		if err != nil {
			return err
		}
	}

	D, err := cpptraj.New(
		cpptraj.WithExecutable(a.cfg.Cpptraj),
		cpptraj.WithTempDir(a.cfg.TempDir),
		cpptraj.WithContext(cmd.Context()),
		cpptraj.WithOutput(cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}
	search := hbond.Search
	switch {
	case noseries:
		search = hbond.SearchNoSeries
	case nointramol:
		search = hbond.SearchNoIntramol
	}
	r, err := search(D, t.Reader(), mask, opts)
	if err != nil {
		return err
	}
	if out != "" {
		if err := dataset.WriteDataFile(out, r.(*dataset.DataSetList)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d data sets to %s\n", r.(*dataset.DataSetList).Len(), out)
		return nil
	}
	printShaped(cmd.OutOrStdout(), r)
	return nil
}
