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

// Geometry is the opaque result built by a Factory. The parser never
// inspects it; it only passes coordinate tuples and sub-geometry lists to
// factory constructors and hands the final value back to the caller.
type Geometry interface{}

// Capabilities reports which coordinate axes a factory can represent.
type Capabilities struct {
	Z bool
	M bool
}

// Factory builds concrete geometry objects on behalf of the parser. The z
// and m arguments to Point are nil when the axis is absent for the parse or
// unsupported by the factory.
type Factory interface {
	Capabilities() Capabilities
	Point(x, y float64, z, m *float64) (Geometry, error)
	LineString(points []Geometry) (Geometry, error)
	LinearRing(points []Geometry) (Geometry, error)
	Polygon(outer Geometry, holes []Geometry) (Geometry, error)
	MultiPoint(points []Geometry) (Geometry, error)
	MultiLineString(lines []Geometry) (Geometry, error)
	MultiPolygon(polygons []Geometry) (Geometry, error)
	Collection(geometries []Geometry) (Geometry, error)
}

// Tri is a three-valued flag: unknown until the parse establishes it, then
// fixed at true or false for the remainder of that parse.
type Tri int8

const (
	TriUnknown Tri = iota
	TriTrue
	TriFalse
)

func triOf(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

// Known reports whether the flag has been established.
func (t Tri) Known() bool { return t != TriUnknown }

// True reports whether the flag has been established as true.
func (t Tri) True() bool { return t == TriTrue }

func (t Tri) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	}
	return "unknown"
}

// FactoryRequest describes what the parser knows at the moment a factory is
// resolved: the SRID from an EWKT prefix if one was present, and the Z/M
// expectations, which may still be unknown if no tag declared them.
type FactoryRequest struct {
	SRID    int
	HasSRID bool
	Z       Tri
	M       Tri
}

// FactoryGenerator selects a factory for one parse. It is invoked at most
// once per parse; returning nil falls back to the configured default.
type FactoryGenerator func(req FactoryRequest) Factory
