/*
 * Copyright 2018 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package geo computes S2 cell coverings for parsed geometries, so parse
// results can be fed straight into a cell-based geospatial index.
package geo

import (
	"github.com/golang/geo/s2"
	geom "github.com/twpayne/go-geom"

	"github.com/dgraph-io/wkt/x"
)

const (
	// MinCellLevel is the smallest cell level (largest cell size) used by coverings.
	MinCellLevel = 5 // Approx 250km x 380km
	// MaxCellLevel is the largest cell level (smallest cell size) used by coverings.
	MaxCellLevel = 16 // Approx 120m x 180m
	// MaxCells is the maximum number of cells to use when covering regions.
	MaxCells = 18

	parentPrefix = "p/"
	coverPrefix  = "c/"
)

// IndexCells returns two cell unions for a parsed geometry. The first is the
// list of parents, all the cells up to the min level that contain the
// geometry. The second is the cover, the smallest cells required to cover
// the region. Points and polygons with 2D coordinates are supported.
func IndexCells(g geom.T) (parents, cover s2.CellUnion, err error) {
	if g.Stride() != 2 {
		return nil, nil, x.Errorf("covering is only available for 2D coordinates")
	}
	switch v := g.(type) {
	case *geom.Point:
		p, c := indexCellsForPoint(v, MinCellLevel, MaxCellLevel)
		return p, c, nil
	case *geom.Polygon:
		l, err := loopFromPolygon(v)
		if err != nil {
			return nil, nil, err
		}
		cover := coverLoop(l, MinCellLevel, MaxCellLevel, MaxCells)
		parents := getParentCells(cover, MinCellLevel)
		return parents, cover, nil
	default:
		return nil, nil, x.Errorf("cannot cover geometry of type %T", v)
	}
}

// Tokens returns the parent and cover cells of a geometry as prefixed string
// tokens, the form consumed by a term-based index.
func Tokens(g geom.T) ([]string, error) {
	parents, cover, err := IndexCells(g)
	if err != nil {
		return nil, err
	}
	toks := make([]string, 0, len(parents)+len(cover))
	for _, c := range parents {
		toks = append(toks, parentPrefix+c.ToToken())
	}
	for _, c := range cover {
		toks = append(toks, coverPrefix+c.ToToken())
	}
	return toks, nil
}

func pointFromCoord(r geom.Coord) s2.Point {
	// Coordinates are [long, lat] per the geojson convention.
	ll := s2.LatLngFromDegrees(r.Y(), r.X())
	return s2.PointFromLatLng(ll)
}

// indexCellsForPoint creates cells for a point from minLevel to maxLevel,
// both inclusive.
func indexCellsForPoint(p *geom.Point, minLevel, maxLevel int) (s2.CellUnion, s2.CellUnion) {
	ll := s2.LatLngFromDegrees(p.Y(), p.X())
	c := s2.CellIDFromLatLng(ll)
	cells := make([]s2.CellID, maxLevel-minLevel+1)
	for l := minLevel; l <= maxLevel; l++ {
		cells[l-minLevel] = c.Parent(l)
	}
	return cells, []s2.CellID{c.Parent(maxLevel)}
}

// loopFromPolygon converts a geom.Polygon to an s2.Loop. Only the outer ring
// is used; the s2 loop model has no holes.
func loopFromPolygon(p *geom.Polygon) (*s2.Loop, error) {
	if p.NumLinearRings() == 0 {
		return nil, x.Errorf("can't cover an empty polygon")
	}
	r := p.LinearRing(0)
	n := r.NumCoords()
	if n < 4 {
		return nil, x.Errorf("can't convert ring with less than 4 points")
	}
	// S2 wants counter-clockwise loops. There is no orientation restriction
	// in WKT, so orient using a planar approximation and confirm with the
	// cap bound, which catches loops bigger than a hemisphere.
	reverse := isClockwise(r)
	l := loopFromRing(r, reverse)
	if l.CapBound().Radius().Degrees() > 90 {
		l = loopFromRing(r, !reverse)
	}
	return l, nil
}

// isClockwise checks ring orientation with the shoelace formula. This is a
// planar approximation; it breaks for rings containing a pole or crossing
// the antimeridian, which is acceptable for coverings.
func isClockwise(r *geom.LinearRing) bool {
	var a float64
	n := r.NumCoords()
	for i := 0; i < n; i++ {
		p1 := r.Coord(i)
		p2 := r.Coord((i + 1) % n)
		a += (p2.X() - p1.X()) * (p1.Y() + p2.Y())
	}
	return a > 0
}

func loopFromRing(r *geom.LinearRing, reverse bool) *s2.Loop {
	// The last coordinate of a WKT ring repeats the first to close the
	// loop. S2 assumes closure and rejects repeated points, so drop it.
	n := r.NumCoords()
	pts := make([]s2.Point, n-1)
	for i := 0; i < n-1; i++ {
		var c geom.Coord
		if reverse {
			c = r.Coord(n - 1 - i)
		} else {
			c = r.Coord(i)
		}
		pts[i] = pointFromCoord(c)
	}
	return s2.LoopFromPoints(pts)
}

func getParentCells(cu s2.CellUnion, minLevel int) s2.CellUnion {
	parents := make(map[s2.CellID]bool)
	for _, c := range cu {
		for l := c.Level(); l >= minLevel; l-- {
			parents[c.Parent(l)] = true
		}
	}
	cells := make([]s2.CellID, 0, len(parents))
	for k := range parents {
		cells = append(cells, k)
	}
	return cells
}

func coverLoop(l *s2.Loop, minLevel, maxLevel, maxCells int) s2.CellUnion {
	rc := &s2.RegionCoverer{
		MinLevel: minLevel,
		MaxLevel: maxLevel,
		LevelMod: 0,
		MaxCells: maxCells,
	}
	return rc.Covering(l)
}
