/*
 * dataset.go, part of gotraj.
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

//Package dataset contains the named data series produced by an analysis run,
//and the functions to shape them into the containers callers ask for.
package dataset

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"
)

//DataSet is one named result series, usually one value per trajectory frame.
type DataSet struct {
	Name   string
	Legend string
	Aspect string //what the set describes, i.e. "solutehb"
	Data   []float64

	canonical bool //the legend has already been canonicalized
}

//NewDataSet returns a DataSet with a copy of data. The legend defaults to the name.
func NewDataSet(name, legend string, data []float64) *DataSet {
	if legend == "" {
		legend = name
	}
	d := make([]float64, len(data))
	copy(d, data)
	return &DataSet{Name: name, Legend: legend, Data: d}
}

//Len returns the number of values in the set.
func (D *DataSet) Len() int {
	return len(D.Data)
}

//Mean returns the mean of the values in the set, NaN if it is empty.
func (D *DataSet) Mean() float64 {
	return stat.Mean(D.Data, nil)
}

//StdDev returns the sample standard deviation of the values in the set.
func (D *DataSet) StdDev() float64 {
	return stat.StdDev(D.Data, nil)
}

//DataSetList is an ordered collection of DataSets. The zero value is an empty list
//ready to use.
type DataSetList struct {
	sets []*DataSet
}

//NewDataSetList returns a list with the given sets, in order.
func NewDataSetList(sets ...*DataSet) *DataSetList {
	L := &DataSetList{}
	for _, v := range sets {
		L.Add(v)
	}
	return L
}

//Add appends ds to the list. A nil set is ignored.
func (L *DataSetList) Add(ds *DataSet) {
	if ds == nil {
		return
	}
	L.sets = append(L.sets, ds)
}

//AddNew creates a set with the given name, legend and a copy of data,
//appends it and returns it.
func (L *DataSetList) AddNew(name, legend string, data []float64) *DataSet {
	ds := NewDataSet(name, legend, data)
	L.Add(ds)
	return ds
}

//Len returns the number of sets in the list.
func (L *DataSetList) Len() int {
	if L == nil {
		return 0
	}
	return len(L.sets)
}

//At returns the ith set. Panics if out of range.
func (L *DataSetList) At(i int) *DataSet {
	return L.sets[i]
}

//Sets returns a slice with the sets in the list. The slice is
//new, the sets are not.
func (L *DataSetList) Sets() []*DataSet {
	ret := make([]*DataSet, len(L.sets))
	copy(ret, L.sets)
	return ret
}

//Legends returns the legends of all sets, in order.
func (L *DataSetList) Legends() []string {
	ret := make([]string, len(L.sets))
	for i, v := range L.sets {
		ret[i] = v.Legend
	}
	return ret
}

//ByLegend returns the first set with the given legend, or nil.
func (L *DataSetList) ByLegend(legend string) *DataSet {
	for _, v := range L.sets {
		if v.Legend == legend {
			return v
		}
	}
	return nil
}

//ByName returns the sets which name starts with prefix, in order.
//cpptraj names the sets of one action with a common prefix.
func (L *DataSetList) ByName(prefix string) []*DataSet {
	var ret []*DataSet
	for _, v := range L.sets {
		if strings.HasPrefix(v.Name, prefix) {
			ret = append(ret, v)
		}
	}
	return ret
}

//DType returns Dataset. A DataSetList is its own shaped form.
func (L *DataSetList) DType() DType {
	return Dataset
}

//Summary returns a table with the legend, number of values, mean and
//standard deviation of each set.
func (L *DataSetList) Summary() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Legend\tN\tMean\tStdDev")
	for _, v := range L.sets {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\n", v.Legend, v.Len(), v.Mean(), v.StdDev())
	}
	w.Flush()
	return b.String()
}
