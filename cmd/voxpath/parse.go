package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/voxpath/grid"
)

var errBadCoord = errors.New("coordinate must look like x,y,z")

// parseCoord parses "x,y,z".
func parseCoord(s string) (grid.Coord, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return grid.Coord{}, fmt.Errorf("%w: %q", errBadCoord, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return grid.Coord{}, fmt.Errorf("%w: %q", errBadCoord, s)
		}
		v[i] = n
	}

	return grid.Coord{X: v[0], Y: v[1], Z: v[2]}, nil
}

// parseBox parses "x,y,z" or "x1,y1,z1:x2,y2,z2" into an inclusive box.
func parseBox(s string) (lo, hi grid.Coord, err error) {
	a, b, found := strings.Cut(s, ":")
	if lo, err = parseCoord(a); err != nil {
		return grid.Coord{}, grid.Coord{}, err
	}
	if !found {
		return lo, lo, nil
	}
	if hi, err = parseCoord(b); err != nil {
		return grid.Coord{}, grid.Coord{}, err
	}

	return lo, hi, nil
}
