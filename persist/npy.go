// Package persist writes pipeline outputs to durable form: NumPy .npy
// arrays for the matrix and vector, CSV snapshots of intermediate record
// sets and a PostgreSQL sink for encoded rows.
package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/pkg/errors"
)

// npy format v1.0: magic, version, little-endian header length, then a
// Python dict literal padded with spaces so the data starts at a 64-byte
// boundary. Arrays are written C-ordered float64 little-endian.
var npyMagic = []byte("\x93NUMPY\x01\x00")

const npyAlign = 64

func npyHeader(shape ...int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}
	dict := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%s), }", tuple)

	total := len(npyMagic) + 2 + len(dict) + 1
	pad := (npyAlign - total%npyAlign) % npyAlign
	return []byte(dict + strings.Repeat(" ", pad) + "\n")
}

func writeNpy(w io.Writer, data []float64, shape ...int) error {
	header := npyHeader(shape...)
	if _, err := w.Write(npyMagic); err != nil {
		return errors.WithStack(err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(header); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(binary.Write(w, binary.LittleEndian, data))
}

// WriteMatrixNpy writes m as a 2-D float64 .npy file.
func WriteMatrixNpy(path string, m mat.Matrix) error {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := writeNpy(f, data, r, c); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.WithStack(f.Close())
}

// WriteVectorNpy writes v as a 1-D float64 .npy file.
func WriteVectorNpy(path string, v mat.Vector) error {
	n := v.Len()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = v.AtVec(i)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := writeNpy(f, data, n); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.WithStack(f.Close())
}

// ReadNpy reads a float64 .npy file written by this package (or NumPy
// itself, for C-ordered '<f8' arrays of one or two dimensions) and
// returns the flat data with its shape.
func ReadNpy(path string) ([]float64, []int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read %s", path)
	}
	if !bytes.HasPrefix(raw, npyMagic) {
		return nil, nil, errors.Newf("%s: not a v1.0 npy file", path)
	}
	rest := raw[len(npyMagic):]
	if len(rest) < 2 {
		return nil, nil, errors.Newf("%s: truncated header", path)
	}
	hlen := int(binary.LittleEndian.Uint16(rest))
	rest = rest[2:]
	if len(rest) < hlen {
		return nil, nil, errors.Newf("%s: truncated header", path)
	}
	header := string(rest[:hlen])
	body := rest[hlen:]

	if !strings.Contains(header, "'descr': '<f8'") {
		return nil, nil, errors.Newf("%s: unsupported dtype in %q", path, header)
	}
	if !strings.Contains(header, "'fortran_order': False") {
		return nil, nil, errors.Newf("%s: fortran order not supported", path)
	}
	shape, err := parseNpyShape(header)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s", path)
	}

	n := 1
	for _, d := range shape {
		n *= d
	}
	if len(body) < n*8 {
		return nil, nil, errors.Newf("%s: body holds %d bytes, shape needs %d", path, len(body), n*8)
	}
	data := make([]float64, n)
	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, data); err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return data, shape, nil
}

// ReadMatrixNpy reads a 2-D .npy file into a dense matrix.
func ReadMatrixNpy(path string) (*mat.Dense, error) {
	data, shape, err := ReadNpy(path)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, errors.Newf("%s: want 2 dimensions, got %d", path, len(shape))
	}
	return mat.NewDense(shape[0], shape[1], data), nil
}

// ReadVectorNpy reads a 1-D .npy file into a dense vector.
func ReadVectorNpy(path string) (*mat.VecDense, error) {
	data, shape, err := ReadNpy(path)
	if err != nil {
		return nil, err
	}
	if len(shape) != 1 {
		return nil, errors.Newf("%s: want 1 dimension, got %d", path, len(shape))
	}
	return mat.NewVecDense(shape[0], data), nil
}

func parseNpyShape(header string) ([]int, error) {
	open := strings.Index(header, "(")
	end := strings.Index(header, ")")
	if open < 0 || end < open {
		return nil, errors.New("shape tuple not found")
	}
	var shape []int
	for _, part := range strings.Split(header[open+1:end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "shape dimension %q", part)
		}
		shape = append(shape, d)
	}
	if len(shape) == 0 {
		return nil, errors.New("empty shape")
	}
	return shape, nil
}
