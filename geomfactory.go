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

package wkt

import (
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
)

// GeomFactory is the default Factory. It builds go-geom values, picking the
// layout (XY, XYZ, XYM, XYZM) from the axes present in the parse.
type GeomFactory struct {
	// MaxLayout bounds the axes this factory admits. A factory with
	// MaxLayout geom.XY reports no Z or M support.
	MaxLayout geom.Layout

	// SRID is stamped onto every geometry built by this factory.
	SRID int
}

// NewGeomFactory returns a factory supporting all four coordinate axes.
func NewGeomFactory() *GeomFactory {
	return &GeomFactory{MaxLayout: geom.XYZM}
}

func (f *GeomFactory) Capabilities() Capabilities {
	return Capabilities{
		Z: f.MaxLayout.ZIndex() != -1,
		M: f.MaxLayout.MIndex() != -1,
	}
}

func (f *GeomFactory) Point(x, y float64, z, m *float64) (Geometry, error) {
	layout := geom.XY
	flat := []float64{x, y}
	switch {
	case z != nil && m != nil:
		layout = geom.XYZM
		flat = append(flat, *z, *m)
	case z != nil:
		layout = geom.XYZ
		flat = append(flat, *z)
	case m != nil:
		layout = geom.XYM
		flat = append(flat, *m)
	}
	return geom.NewPointFlat(layout, flat).SetSRID(f.SRID), nil
}

func (f *GeomFactory) LineString(points []Geometry) (Geometry, error) {
	layout, flat, err := flatten(points)
	if err != nil {
		return nil, err
	}
	return geom.NewLineStringFlat(layout, flat).SetSRID(f.SRID), nil
}

func (f *GeomFactory) LinearRing(points []Geometry) (Geometry, error) {
	layout, flat, err := flatten(points)
	if err != nil {
		return nil, err
	}
	return geom.NewLinearRingFlat(layout, flat).SetSRID(f.SRID), nil
}

func (f *GeomFactory) Polygon(outer Geometry, holes []Geometry) (Geometry, error) {
	ring, err := f.asRing(outer)
	if err != nil {
		return nil, err
	}
	poly := geom.NewPolygon(ring.Layout()).SetSRID(f.SRID)
	if ring.NumCoords() == 0 && len(holes) == 0 {
		// Empty outer ring means an empty polygon: no rings at all.
		return poly, nil
	}
	if err := poly.Push(ring); err != nil {
		return nil, errors.Wrap(err, "pushing outer ring")
	}
	for _, h := range holes {
		hole, err := f.asRing(h)
		if err != nil {
			return nil, err
		}
		if err := poly.Push(hole); err != nil {
			return nil, errors.Wrap(err, "pushing hole")
		}
	}
	return poly, nil
}

func (f *GeomFactory) MultiPoint(points []Geometry) (Geometry, error) {
	pts, err := asPoints(points)
	if err != nil {
		return nil, err
	}
	layout := geom.XY
	if len(pts) > 0 {
		layout = pts[0].Layout()
	}
	mp := geom.NewMultiPoint(layout).SetSRID(f.SRID)
	for _, pt := range pts {
		if err := mp.Push(pt); err != nil {
			return nil, errors.Wrap(err, "pushing point")
		}
	}
	return mp, nil
}

func (f *GeomFactory) MultiLineString(lines []Geometry) (Geometry, error) {
	layout := geom.XY
	lss := make([]*geom.LineString, 0, len(lines))
	for _, l := range lines {
		ls, ok := l.(*geom.LineString)
		if !ok {
			return nil, errors.Errorf("expected *geom.LineString, got %T", l)
		}
		lss = append(lss, ls)
	}
	if len(lss) > 0 {
		layout = lss[0].Layout()
	}
	mls := geom.NewMultiLineString(layout).SetSRID(f.SRID)
	for _, ls := range lss {
		if err := mls.Push(ls); err != nil {
			return nil, errors.Wrap(err, "pushing line string")
		}
	}
	return mls, nil
}

func (f *GeomFactory) MultiPolygon(polygons []Geometry) (Geometry, error) {
	layout := geom.XY
	polys := make([]*geom.Polygon, 0, len(polygons))
	for _, p := range polygons {
		poly, ok := p.(*geom.Polygon)
		if !ok {
			return nil, errors.Errorf("expected *geom.Polygon, got %T", p)
		}
		polys = append(polys, poly)
	}
	if len(polys) > 0 {
		layout = polys[0].Layout()
	}
	mp := geom.NewMultiPolygon(layout).SetSRID(f.SRID)
	for _, poly := range polys {
		if err := mp.Push(poly); err != nil {
			return nil, errors.Wrap(err, "pushing polygon")
		}
	}
	return mp, nil
}

func (f *GeomFactory) Collection(geometries []Geometry) (Geometry, error) {
	gc := geom.NewGeometryCollection().SetSRID(f.SRID)
	for _, g := range geometries {
		t, ok := g.(geom.T)
		if !ok {
			return nil, errors.Errorf("expected geom.T, got %T", g)
		}
		if err := gc.Push(t); err != nil {
			return nil, errors.Wrap(err, "pushing geometry")
		}
	}
	return gc, nil
}

// asRing converts a builder-produced line string into a linear ring. The
// polygon grammar parses its rings through the line string production, so
// both forms show up here.
func (f *GeomFactory) asRing(g Geometry) (*geom.LinearRing, error) {
	switch v := g.(type) {
	case *geom.LinearRing:
		return v, nil
	case *geom.LineString:
		return geom.NewLinearRingFlat(v.Layout(), v.FlatCoords()), nil
	}
	return nil, errors.Errorf("expected ring geometry, got %T", g)
}

func asPoints(points []Geometry) ([]*geom.Point, error) {
	pts := make([]*geom.Point, 0, len(points))
	for _, p := range points {
		pt, ok := p.(*geom.Point)
		if !ok {
			return nil, errors.Errorf("expected *geom.Point, got %T", p)
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

func flatten(points []Geometry) (geom.Layout, []float64, error) {
	pts, err := asPoints(points)
	if err != nil {
		return geom.NoLayout, nil, err
	}
	layout := geom.XY
	if len(pts) > 0 {
		layout = pts[0].Layout()
	}
	flat := make([]float64, 0, len(pts)*layout.Stride())
	for _, pt := range pts {
		flat = append(flat, pt.FlatCoords()...)
	}
	return layout, flat, nil
}
