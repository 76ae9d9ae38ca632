/*
 * datafile.go, part of gotraj.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Files with this suffix are zstd-compressed.
const ZstdSuffix = ".zst"

//canonicalTag starts the comment line that marks, with 1 or 0 per column, the
//legends already canonicalized.
const canonicalTag = "#Canonical"

//Write writes the sets in dsl to w in the cpptraj data file format: a header
//"#Frame" followed by the legends, then one line per frame, starting with the
//frame number (from 1). All sets must have the same length.
//If any legend has been canonicalized, a canonicalTag comment line follows the header.
func Write(w io.Writer, dsl *DataSetList) error {
	n := 0
	if dsl.Len() > 0 {
		n = dsl.At(0).Len()
	}
	for _, v := range dsl.sets {
		if v.Len() != n {
			return &ShapeMismatchError{Legend: v.Legend, Expected: n, Got: v.Len(), deco: []string{"Write"}}
		}
		if v.Legend == "" || strings.ContainsAny(v.Legend, " \t\n") {
			return &FileError{message: fmt.Sprintf("legend %q can't be written as a column name", v.Legend), deco: []string{"Write"}}
		}
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "%-8s", "#Frame")
	for _, v := range dsl.sets {
		fmt.Fprintf(b, " %12s", v.Legend)
	}
	b.WriteString("\n")
	if dsl.anyCanonical() {
		fmt.Fprintf(b, "%-8s", canonicalTag)
		for _, v := range dsl.sets {
			c := 0
			if v.canonical {
				c = 1
			}
			fmt.Fprintf(b, " %12d", c)
		}
		b.WriteString("\n")
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "%8d", i+1)
		for _, v := range dsl.sets {
			fmt.Fprintf(b, " %12s", strconv.FormatFloat(v.Data[i], 'g', -1, 64))
		}
		b.WriteString("\n")
	}
	if err := b.Flush(); err != nil {
		return &FileError{message: err.Error(), deco: []string{"Write"}}
	}
	return nil
}

//Read reads a data file in the cpptraj format from r. Each column becomes a set
//named and labeled after the header. The frame column is not kept.
func Read(r io.Reader) (*DataSetList, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var legends []string
	var canonical []bool
	var data [][]float64
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			fields := strings.Fields(text)
			switch {
			case legends == nil:
				legends = fields[1:]
				data = make([][]float64, len(legends))
			case fields[0] == canonicalTag && canonical == nil:
				if len(fields) != len(legends)+1 {
					return nil, &FileError{message: fmt.Sprintf("line %d has %d canonical flags, expected %d", line, len(fields)-1, len(legends)), deco: []string{"Read"}}
				}
				canonical = make([]bool, len(legends))
				for i, v := range fields[1:] {
					canonical[i] = v == "1"
				}
			}
			continue
		}
		if legends == nil {
			return nil, &FileError{message: "no header line", deco: []string{"Read"}}
		}
		fields := strings.Fields(text)
		if len(fields) != len(legends)+1 {
			return nil, &FileError{message: fmt.Sprintf("line %d has %d columns, expected %d", line, len(fields), len(legends)+1), deco: []string{"Read"}}
		}
		for i, v := range fields[1:] {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, &FileError{message: fmt.Sprintf("line %d: %s", line, err.Error()), deco: []string{"Read"}}
			}
			data[i] = append(data[i], f)
		}
	}
	if err := s.Err(); err != nil {
		return nil, &FileError{message: err.Error(), deco: []string{"Read"}}
	}
	if legends == nil {
		return nil, &FileError{message: "no header line", deco: []string{"Read"}}
	}
	L := &DataSetList{}
	for i, v := range legends {
		d := &DataSet{Name: v, Legend: v, Data: data[i]}
		if canonical != nil {
			d.canonical = canonical[i]
		}
		L.Add(d)
	}
	return L, nil
}

//WriteDataFile writes dsl to the file name, compressing it with zstd
//if the name ends in ".zst".
func WriteDataFile(name string, dsl *DataSetList) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return &FileError{message: err.Error(), filename: name, deco: []string{"WriteDataFile"}}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{message: cerr.Error(), filename: name, deco: []string{"WriteDataFile"}}
		}
	}()
	var w io.Writer = f
	var z *zstd.Encoder
	if strings.HasSuffix(name, ZstdSuffix) {
		z, err = zstd.NewWriter(f)
		if err != nil {
			return &FileError{message: err.Error(), filename: name, deco: []string{"WriteDataFile"}}
		}
		w = z
	}
	if err = Write(w, dsl); err != nil {
		if z != nil {
			z.Close()
		}
		return withFileName(err, name, "WriteDataFile")
	}
	if z != nil {
		if err = z.Close(); err != nil {
			return &FileError{message: err.Error(), filename: name, deco: []string{"WriteDataFile"}}
		}
	}
	return nil
}

//ReadDataFile reads the data file name, which is decompressed with zstd if
//its name ends in ".zst".
func ReadDataFile(name string) (*DataSetList, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &FileError{message: err.Error(), filename: name, deco: []string{"ReadDataFile"}}
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ZstdSuffix) {
		z, err := zstd.NewReader(f)
		if err != nil {
			return nil, &FileError{message: err.Error(), filename: name, deco: []string{"ReadDataFile"}}
		}
		defer z.Close()
		r = z
	}
	L, err := Read(r)
	if err != nil {
		return nil, withFileName(err, name, "ReadDataFile")
	}
	return L, nil
}

func withFileName(err error, name, caller string) error {
	if e, ok := err.(*FileError); ok {
		e.filename = name
	}
	return errDecorate(err, caller)
}
