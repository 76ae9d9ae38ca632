/*
 * plot.go, part of gotraj.
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
	"path/filepath"

	"github.com/rmera/gotraj/chemstat"
	"github.com/rmera/gotraj/dataplot"
	"github.com/rmera/gotraj/dataset"
	"github.com/spf13/cobra"
)

func (a *app) plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <datafile> <image>",
		Short: "Plot the data sets in a data file",
		Long: `plot draws every data set in the file against time. The format of the image is
given by its extension (png, svg, pdf, eps). With --hist, the distribution of the
values of one set is plotted instead.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runPlot,
	}
	cmd.Flags().String("title", "", "Title of the plot (default: the name of the data file)")
	cmd.Flags().String("hist", "", "Plot the histogram of the set with this legend")
	cmd.Flags().Int("bins", 20, "Number of bins for --hist")
	cmd.Flags().BoolP("update-legend", "u", false, "Canonicalize the legends of hydrogen bond sets")
	return cmd
}

func (a *app) runPlot(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	hist, _ := cmd.Flags().GetString("hist")
	bins, _ := cmd.Flags().GetInt("bins")
	if title == "" {
		title = filepath.Base(args[0])
	}
	dsl, err := dataset.ReadDataFile(args[0])
	if err != nil {
		return err
	}
	if a.updateLegend(cmd) {
		dataset.CanonicalizeLegends(dsl)
	}
	if hist != "" {
		ds := dsl.ByLegend(hist)
		if ds == nil {
			return fmt.Errorf("no set with legend %q in %s", hist, args[0])
		}
		return dataplot.Histogram(ds, bins, title, args[1])
	}
	xlabel := "Frame"
	if a.cfg.TimeStep != 1 {
		xlabel = "Time"
	}
	return dataplot.TimeSeries(dsl, title, args[1], dataplot.WithTimeStep(a.cfg.TimeStep), dataplot.WithLabels(xlabel, "Value"))
}

func (a *app) corrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corr <datafile> <legend>",
		Short: "Print the autocorrelation function of a data set",
		Long: `corr prints the normalized autocorrelation function of the set with the given
legend or, with --cross, its cross-correlation with another set. The integral of the
function up to its first zero, a lifetime estimate for hydrogen bond series, is printed
at the end.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runCorr,
	}
	cmd.Flags().String("cross", "", "Legend of the second set for a cross-correlation")
	cmd.Flags().Int("maxlag", 0, "Print only up to this lag (0 means all)")
	return cmd
}

func (a *app) runCorr(cmd *cobra.Command, args []string) error {
	cross, _ := cmd.Flags().GetString("cross")
	maxlag, _ := cmd.Flags().GetInt("maxlag")
	dsl, err := dataset.ReadDataFile(args[0])
	if err != nil {
		return err
	}
	ds := dsl.ByLegend(args[1])
	if ds == nil {
		return fmt.Errorf("no set with legend %q in %s", args[1], args[0])
	}
	var corr []float64
	if cross == "" {
		corr, err = chemstat.AutoCorr(ds)
	} else {
		ds2 := dsl.ByLegend(cross)
		if ds2 == nil {
			return fmt.Errorf("no set with legend %q in %s", cross, args[0])
		}
		corr, err = chemstat.CrossCorr(ds.Data, ds2.Data)
	}
	if err != nil {
		return err
	}
	if maxlag <= 0 || maxlag >= len(corr) {
		maxlag = len(corr) - 1
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "#%-11s %12s\n", "Lag", "C(t)")
	for i := 0; i <= maxlag; i++ {
		fmt.Fprintf(w, "%12g %12.6f\n", float64(i)*a.cfg.TimeStep, corr[i])
	}
	fmt.Fprintf(w, "#Lifetime: %g\n", chemstat.Lifetime(corr, a.cfg.TimeStep))
	return nil
}
