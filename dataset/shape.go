/*
 * shape.go, part of gotraj.
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

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"
)

//DType is the container a DataSetList is shaped into. The zero value is Dataset.
type DType int

const (
	Dataset DType = iota
	List
	NDArray
	DataFrame
	Mapping
)

var dtypeNames = [...]string{"dataset", "list", "ndarray", "dataframe", "mapping"}

func (d DType) String() string {
	if d < 0 || int(d) >= len(dtypeNames) {
		return fmt.Sprintf("DType(%d)", int(d))
	}
	return dtypeNames[d]
}

//Valid returns true if d is one of the known containers.
func (d DType) Valid() bool {
	return d >= Dataset && d <= Mapping
}

//ParseDType returns the DType named s. The match is exact.
func ParseDType(s string) (DType, error) {
	for i, v := range dtypeNames {
		if s == v {
			return DType(i), nil
		}
	}
	return -1, &UnsupportedDtypeError{Value: s, deco: []string{"ParseDType"}}
}

//Shaped is the result of shaping a DataSetList.
type Shaped interface {
	DType() DType
}

//Shape renders dsl into the container given by dt:
//Dataset returns dsl itself, List a slice with the payloads, NDArray a matrix with one row
//per set, DataFrame a table with one row per legend and one column per frame, and Mapping
//a map from legend to payload.
func Shape(dsl *DataSetList, dt DType) (Shaped, error) {
	if dsl == nil {
		dsl = &DataSetList{}
	}
	var ret Shaped
	var err error
	switch dt {
	case Dataset:
		ret = dsl
	case List:
		ret = toList(dsl)
	case NDArray:
		ret, err = toNDArray(dsl)
	case DataFrame:
		ret = toDataFrame(dsl)
	case Mapping:
		ret, err = toMapping(dsl)
	default:
		return nil, &UnsupportedDtypeError{Value: dt.String(), deco: []string{"Shape"}}
	}
	if err != nil {
		return nil, errDecorate(err, "Shape")
	}
	return ret, nil
}

//ShapeString is Shape with the container given by name.
func ShapeString(dsl *DataSetList, dtype string) (Shaped, error) {
	dt, err := ParseDType(dtype)
	if err != nil {
		return nil, errDecorate(err, "ShapeString")
	}
	return Shape(dsl, dt)
}

/*****List*****/

//ListResult holds the payloads of a DataSetList, in order. The payloads are
//shared with the sets, not copied.
type ListResult [][]float64

//DType returns List
func (L ListResult) DType() DType { return List }

func toList(dsl *DataSetList) ListResult {
	ret := make(ListResult, dsl.Len())
	for i, v := range dsl.sets {
		ret[i] = v.Data
	}
	return ret
}

/*****NDArray*****/

//Array is a dense matrix with one row per set. An empty DataSetList, or one with empty
//payloads, gives an array with no data (Dense is nil), as gonum matrices can't have a zero dimension.
type Array struct {
	Dense *mat.Dense
	rows  int
	cols  int
}

//DType returns NDArray
func (A *Array) DType() DType { return NDArray }

//Dims returns the number of rows (sets) and columns (values per set).
func (A *Array) Dims() (int, int) { return A.rows, A.cols }

//Row returns a copy of the ith row.
func (A *Array) Row(i int) []float64 {
	if A.Dense == nil {
		if i < 0 || i >= A.rows {
			panic(mat.ErrRowAccess)
		}
		return []float64{}
	}
	return mat.Row(nil, i, A.Dense)
}

func toNDArray(dsl *DataSetList) (*Array, error) {
	n := dsl.Len()
	if n == 0 {
		return &Array{}, nil
	}
	cols := dsl.sets[0].Len()
	for _, v := range dsl.sets[1:] {
		if v.Len() != cols {
			return nil, &ShapeMismatchError{Legend: v.Legend, Expected: cols, Got: v.Len(), deco: []string{"toNDArray"}}
		}
	}
	if cols == 0 {
		return &Array{rows: n}, nil
	}
	data := make([]float64, 0, n*cols)
	for _, v := range dsl.sets {
		data = append(data, v.Data...)
	}
	return &Array{Dense: mat.NewDense(n, cols, data), rows: n, cols: cols}, nil
}

/*****DataFrame*****/

//Frame is a table with one row per set, indexed by the legends, and one column per
//trajectory frame. Rows shorter than the longest one are padded with NaN.
type Frame struct {
	Index   []string
	Columns []int
	Data    *mat.Dense //nil if there are no rows or no columns
}

//DType returns DataFrame
func (F *Frame) DType() DType { return DataFrame }

//Dims returns the number of rows and columns of the table.
func (F *Frame) Dims() (int, int) { return len(F.Index), len(F.Columns) }

//Row returns a copy of the row with the given legend, or nil if there is none.
func (F *Frame) Row(legend string) []float64 {
	for i, v := range F.Index {
		if v == legend {
			if F.Data == nil {
				return []float64{}
			}
			return mat.Row(nil, i, F.Data)
		}
	}
	return nil
}

//At returns the value in row i and column j.
func (F *Frame) At(i, j int) float64 {
	return F.Data.At(i, j)
}

//String renders the table with aligned columns.
func (F *Frame) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "\t")
	for _, c := range F.Columns {
		fmt.Fprintf(w, "%d\t", c)
	}
	fmt.Fprintln(w)
	for i, legend := range F.Index {
		fmt.Fprintf(w, "%s\t", legend)
		for j := range F.Columns {
			fmt.Fprintf(w, "%.4g\t", F.At(i, j))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}

func toDataFrame(dsl *DataSetList) *Frame {
	n := dsl.Len()
	cols := 0
	for _, v := range dsl.sets {
		if v.Len() > cols {
			cols = v.Len()
		}
	}
	F := &Frame{Index: dsl.Legends(), Columns: make([]int, cols)}
	for i := range F.Columns {
		F.Columns[i] = i
	}
	if n == 0 || cols == 0 {
		return F
	}
	F.Data = mat.NewDense(n, cols, nil)
	for i, v := range dsl.sets {
		for j := 0; j < cols; j++ {
			if j < v.Len() {
				F.Data.Set(i, j, v.Data[j])
			} else {
				F.Data.Set(i, j, math.NaN())
			}
		}
	}
	return F
}

/*****Mapping*****/

//MapResult maps each legend to its payload. The payloads are shared with the sets.
type MapResult map[string][]float64

//DType returns Mapping
func (M MapResult) DType() DType { return Mapping }

func toMapping(dsl *DataSetList) (MapResult, error) {
	ret := make(MapResult, dsl.Len())
	for _, v := range dsl.sets {
		if _, ok := ret[v.Legend]; ok {
			return nil, &DuplicateLegendError{Legend: v.Legend, deco: []string{"toMapping"}}
		}
		ret[v.Legend] = v.Data
	}
	return ret, nil
}
