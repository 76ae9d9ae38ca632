/*
 * legend.go, part of gotraj.
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

package dataset

import "strings"

const (
	//SoluteSoluteLegend is the legend cpptraj gives, once underscores are removed,
	//to the number of solute-solute hydrogen bonds per frame.
	SoluteSoluteLegend = "HB00000[UU]"
	SoluteSoluteAlias  = "avg_solute_solute"
)

//CanonicalLegend returns the canonical form of legend: all underscores removed,
//then every "@" replaced by an underscore. The aggregate solute-solute legend is
//renamed to SoluteSoluteAlias. i.e. "SER_20@O-SER_20@OG-HG" becomes "SER20_O-SER20_OG-HG".
func CanonicalLegend(legend string) string {
	l := strings.ReplaceAll(legend, "_", "")
	l = strings.ReplaceAll(l, "@", "_")
	if l == SoluteSoluteLegend {
		return SoluteSoluteAlias
	}
	return l
}

//CanonicalizeLegends replaces, in place, the legend of every set in dsl with its
//canonical form. Sets already canonicalized are left alone, so calling it more
//than once on a list has the effect of calling it once. Data and order are not changed.
//Write keeps track of the canonicalized legends, so lists read back with Read
//are not canonicalized twice.
func CanonicalizeLegends(dsl *DataSetList) {
	if dsl == nil {
		return
	}
	for _, v := range dsl.sets {
		if v.canonical {
			continue
		}
		v.Legend = CanonicalLegend(v.Legend)
		v.canonical = true
	}
}

func (L *DataSetList) anyCanonical() bool {
	if L == nil {
		return false
	}
	for _, v := range L.sets {
		if v.canonical {
			return true
		}
	}
	return false
}
