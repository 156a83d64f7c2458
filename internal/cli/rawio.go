// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Raw volumes are headerless little-endian float64 samples in z→y→x order;
// vector volumes interleave (X, Y, Z) per voxel and complex volumes (re, im).

var errRawSize = errors.New("raw volume size does not match shape")

func readRaw(path string, count int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	buf := make([]float64, count)
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, errRawSize)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: trailing data: %w", path, errRawSize)
	}

	return buf, nil
}

func writeRaw(path string, data []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
