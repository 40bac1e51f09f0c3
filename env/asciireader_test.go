/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.*/

package env

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

const sampleGrid = `ncols 3
nrows 2
xllcorner 0
yllcorner 0
cellsize 30
NODATA_value -9999
1 2 3
4 5 -9999
`

func writeSampleGrid(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.asc")
	if err := writeFile(path, sampleGrid); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAsciiGridReaderParsesHeaderAndValues(t *testing.T) {
	path := writeSampleGrid(t)
	r := AsciiGridReader{}
	raster, err := r.ReadRaster(path)
	if err != nil {
		t.Fatal(err)
	}
	if raster.Grid.Rows != 2 || raster.Grid.Columns != 3 {
		t.Errorf("Grid = %dx%d, want 2x3", raster.Grid.Rows, raster.Grid.Columns)
	}
	if raster.Grid.CellSize != 30 {
		t.Errorf("CellSize = %v, want 30", raster.Grid.CellSize)
	}
	if raster.NoData != -9999 {
		t.Errorf("NoData = %v, want -9999", raster.NoData)
	}
	want := []float64{1, 2, 3, 4, 5, -9999}
	if len(raster.Values) != len(want) {
		t.Fatalf("got %d values, want %d", len(raster.Values), len(want))
	}
	for i, v := range want {
		if raster.Values[i] != v {
			t.Errorf("Values[%d] = %v, want %v", i, raster.Values[i], v)
		}
	}
}

func TestAsciiGridReaderRejectsMissingFile(t *testing.T) {
	r := AsciiGridReader{}
	if _, err := r.ReadRaster("/nonexistent/path.asc"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestAsciiGridReaderRejectsBadHeaderKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.asc")
	bad := "ncols 3\nnrows 2\nxllcorner 0\nyllcorner 0\nwrongkey 30\nNODATA_value -9999\n1 2 3\n4 5 6\n"
	if err := writeFile(path, bad); err != nil {
		t.Fatal(err)
	}
	r := AsciiGridReader{}
	if _, err := r.ReadRaster(path); err == nil {
		t.Fatal("expected an error for an unexpected header key")
	}
}

func TestAsciiGridReaderRejectsTruncatedValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.asc")
	short := "ncols 3\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 30\nNODATA_value -9999\n1 2 3\n4 5\n"
	if err := writeFile(path, short); err != nil {
		t.Fatal(err)
	}
	r := AsciiGridReader{}
	if _, err := r.ReadRaster(path); err == nil {
		t.Fatal("expected an error when fewer values are present than ncols*nrows")
	}
}
