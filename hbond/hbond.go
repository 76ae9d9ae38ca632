/*
 * hbond.go, part of gotraj.
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

//Package hbond builds hydrogen bond search commands and runs them through the
//"hbond" action of an external analysis engine. The masks follow the Amber mask
//syntax, see the cpptraj manual for the keywords accepted by the hbond action.
package hbond

import (
	"strings"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
	"github.com/rmera/gotraj/internal/logging"
)

var log = logging.NamedLogger("hbond")

const (
	//ActionName is the name of the action requested from the Dispatcher.
	ActionName = "hbond"

	//SeriesKeyword asks the engine for one data set per hydrogen bond, with one value per frame.
	SeriesKeyword = "series"

	//NoIntramolKeyword excludes the hydrogen bonds within a molecule.
	NoIntramolKeyword = "nointramol"

	//SolventMask is the mask used by SearchNoIntramol when none is given.
	SolventMask = "solventacceptor :WAT@O solventdonor :WAT"
)

//Options for the search functions. The zero value returns the DataSetList
//without changing the legends.
type Options struct {
	//DType is the container the results are shaped into.
	DType dataset.DType

	//UpdateLegend canonicalizes the legends before shaping.
	UpdateLegend bool

	//Args are passed as they are to the action.
	Args []string
}

//SearchNoSeries searches the hydrogen bonds given by mask, without
//per-frame series.
func SearchNoSeries(d Dispatcher, t traj.Traj, mask string, opts *Options) (dataset.Shaped, error) {
	r, err := search(d, t, mask, mask, opts)
	if err != nil {
		return nil, traj.ErrDecorate(err, "SearchNoSeries")
	}
	return r, nil
}

//Search searches the hydrogen bonds given by mask, and obtains
//a series with the bond's presence in each frame.
//For instance "donormask :1 acceptormask :2" looks for hydrogen bonds between
//donors in residue 1 and acceptors in residue 2.
func Search(d Dispatcher, t traj.Traj, mask string, opts *Options) (dataset.Shaped, error) {
	r, err := search(d, t, mask, SeriesKeyword+" "+mask, opts)
	if err != nil {
		return nil, traj.ErrDecorate(err, "Search")
	}
	return r, nil
}

//SearchNoIntramol searches, with series, the hydrogen bonds between solute and solvent,
//ignoring the intramolecular ones. An empty mask is replaced by SolventMask.
func SearchNoIntramol(d Dispatcher, t traj.Traj, mask string, opts *Options) (dataset.Shaped, error) {
	if mask == "" {
		mask = SolventMask
	}
	r, err := search(d, t, mask, SeriesKeyword+" "+NoIntramolKeyword+" "+mask, opts)
	if err != nil {
		return nil, traj.ErrDecorate(err, "SearchNoIntramol")
	}
	return r, nil
}

//search runs command with a new action from d and shapes the results.
//mask is the part of the command given by the caller.
func search(d Dispatcher, t traj.Traj, mask, command string, opts *Options) (dataset.Shaped, error) {
	if strings.Contains(mask, SeriesKeyword) {
		return nil, &ReservedKeywordError{Keyword: SeriesKeyword, Mask: mask, deco: []string{"search"}}
	}
	if opts == nil {
		opts = new(Options)
	}
	//nothing is run if the results can't be shaped.
	if !opts.DType.Valid() {
		return nil, traj.ErrDecorate(&dataset.UnsupportedDtypeError{Value: opts.DType.String()}, "search")
	}
	act, err := d.Action(ActionName)
	if err != nil {
		return nil, traj.ErrDecorate(err, "search")
	}
	dsl := dataset.NewDataSetList()
	log.Debugf("Running %s %q", ActionName, command)
	if err := act.Run(command, t, dsl, opts.Args...); err != nil {
		return nil, &ActionError{Command: command, Err: err, deco: []string{"search"}}
	}
	if err := act.PrintOutput(); err != nil {
		return nil, &ActionError{Command: command, Err: err, deco: []string{"PrintOutput", "search"}}
	}
	log.Debugf("%s returned %d data sets", ActionName, dsl.Len())
	if opts.UpdateLegend {
		dataset.CanonicalizeLegends(dsl)
	}
	r, err := dataset.Shape(dsl, opts.DType)
	if err != nil {
		return nil, traj.ErrDecorate(err, "search")
	}
	return r, nil
}
