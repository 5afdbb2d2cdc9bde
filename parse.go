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

// Package wkt parses Well-Known Text geometry representations, including the
// PostGIS EWKT extensions (SRID prefix, measure marker fused into the type
// tag) and the SFS 1.2 dimension tokens (Z, M, ZM). Geometries are built
// through a pluggable Factory; by default they come out as go-geom values.
package wkt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgraph-io/wkt/lex"
)

// Parser parses WKT strings according to its Config. A Parser carries no
// state across calls: all transient parse state lives in a per-call context,
// so one Parser is safe for concurrent use as long as Config is not mutated
// while parses are in flight.
type Parser struct {
	Config Config
}

func NewParser(config Config) *Parser {
	return &Parser{Config: config}
}

// Parse is shorthand for parsing with a zero Config: plain WKT 1.1, default
// factory, no extensions.
func Parse(input string) (Geometry, error) {
	return NewParser(Config{}).Parse(input)
}

var sridPrefix = regexp.MustCompile(`^srid=([0-9]+);`)

// Parse parses one WKT string and returns the geometry built by the
// negotiated factory, or a *ParseError describing the first violation.
func (p *Parser) Parse(input string) (Geometry, error) {
	c := &parseContext{cfg: p.Config.normalized()}

	input = strings.ToLower(input)
	if c.cfg.SupportEWKT {
		if m := sridPrefix.FindStringSubmatch(input); m != nil {
			srid, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, parseErrorf("bad srid %q", m[1])
			}
			c.srid, c.hasSRID = srid, true
			input = input[len(m[0]):]
		}
	}

	c.it = lex.NewLexer(input).Run(lexText).NewIterator()
	if err := c.advance(); err != nil {
		return nil, err
	}
	geo, err := c.parseTaggedGeometry(false)
	if err != nil {
		return nil, err
	}
	if !c.cfg.IgnoreExtraTokens && c.cur.Typ != lex.ItemEOF {
		return nil, parseErrorf("extra tokens beginning with %q", c.cur.Val)
	}
	return geo, nil
}

// parseContext holds the state of one parse. It lives for exactly one Parse
// call and is threaded by pointer through the grammar methods.
type parseContext struct {
	cfg Config
	it  *lex.ItemIterator
	cur lex.Item

	srid    int
	hasSRID bool

	// expectZ and expectM are fixed for the whole parse once established,
	// whether by a tag marker or by the first coordinate tuple.
	expectZ Tri
	expectM Tri

	factory Factory
	caps    Capabilities
}

// advance moves to the next token. Lexing failures surface here as
// *ParseError carrying the lexer's message.
func (c *parseContext) advance() error {
	if !c.it.Next() {
		c.cur = lex.Item{Typ: lex.ItemEOF}
		return nil
	}
	c.cur = c.it.Item()
	if c.cur.Typ == lex.ItemError {
		return &ParseError{Msg: c.cur.Val}
	}
	return nil
}

func (c *parseContext) expect(t lex.ItemType) error {
	if c.cur.Typ != t {
		return parseErrorf("expected %s but found %s", itemName(t), c.describeCur())
	}
	return nil
}

func (c *parseContext) describeCur() string {
	if c.cur.Typ == lex.ItemEOF {
		return "end of input"
	}
	return itemName(c.cur.Typ) + " " + strconv.Quote(c.cur.Val)
}

func (c *parseContext) isWord(s string) bool {
	return c.cur.Typ == itemWord && c.cur.Val == s
}

// resolveFactory negotiates the factory on first need and caches its
// capabilities. Once resolved, the factory is fixed for the rest of the
// parse; nested geometries never switch factories.
func (c *parseContext) resolveFactory() error {
	if c.factory != nil {
		return nil
	}
	if gen := c.cfg.FactoryGenerator; gen != nil {
		c.factory = gen(FactoryRequest{
			SRID:    c.srid,
			HasSRID: c.hasSRID,
			Z:       c.expectZ,
			M:       c.expectM,
		})
	}
	if c.factory == nil {
		c.factory = c.cfg.DefaultFactory
	}
	c.caps = c.factory.Capabilities()
	if c.expectZ.Known() {
		return c.checkCapabilities()
	}
	return nil
}

func (c *parseContext) checkCapabilities() error {
	if c.expectZ.True() && !c.caps.Z {
		return parseErrorf("geometry has z coordinates but the factory does not support them")
	}
	if c.expectM.True() && !c.caps.M {
		return parseErrorf("geometry has m coordinates but the factory does not support them")
	}
	return nil
}

// parseTaggedGeometry reads a type tag with its optional dimension marker
// and dispatches to the matching builder. nested is true inside a
// geometry collection.
func (c *parseContext) parseTaggedGeometry(nested bool) (Geometry, error) {
	if err := c.expect(itemWord); err != nil {
		return nil, err
	}
	tag := c.cur.Val
	if err := c.advance(); err != nil {
		return nil, err
	}

	var marker string
	var hasMarker bool
	if c.cfg.SupportEWKT && len(tag) > 1 && strings.HasSuffix(tag, "m") {
		// EWKT fuses the measure marker into the tag, e.g. "pointm".
		tag, marker, hasMarker = tag[:len(tag)-1], "m", true
	}
	if !hasMarker && c.cfg.SupportWKT12 && c.cur.Typ == itemWord && isDimMarker(c.cur.Val) {
		marker, hasMarker = c.cur.Val, true
		if err := c.advance(); err != nil {
			return nil, err
		}
	}
	if hasMarker || c.cfg.StrictWKT11 {
		wantZ := strings.HasPrefix(marker, "z")
		wantM := strings.HasSuffix(marker, "m")
		if err := c.declareDims(wantZ, wantM, nested); err != nil {
			return nil, err
		}
	}

	switch tag {
	case "point":
		return c.parsePoint(true, false)
	case "linestring":
		return c.parseLineString()
	case "polygon":
		return c.parsePolygon()
	case "geometrycollection":
		return c.parseCollection()
	case "multipoint":
		return c.parseMultiPoint()
	case "multilinestring":
		return c.parseMultiLineString()
	case "multipolygon":
		return c.parseMultiPolygon()
	}
	return nil, parseErrorf("unknown geometry type tag %q", tag)
}

func isDimMarker(s string) bool {
	return s == "z" || s == "m" || s == "zm"
}

// declareDims establishes the Z/M expectations from an explicit declaration.
// Once established they are immutable for the parse: a nested geometry whose
// tag implies different values is a hard error.
func (c *parseContext) declareDims(wantZ, wantM, nested bool) error {
	creating := !c.expectZ.Known()
	if !c.expectZ.Known() {
		c.expectZ = triOf(wantZ)
	} else if c.expectZ.True() != wantZ {
		return c.dimMismatch("z", wantZ, nested)
	}
	if !c.expectM.Known() {
		c.expectM = triOf(wantM)
	} else if c.expectM.True() != wantM {
		return c.dimMismatch("m", wantM, nested)
	}
	if creating {
		if c.factory != nil {
			return c.checkCapabilities()
		}
		return c.resolveFactory()
	}
	return nil
}

func (c *parseContext) dimMismatch(axis string, itemHas, nested bool) error {
	if nested {
		if itemHas {
			return parseErrorf("collection item has %s coordinates but the surrounding geometry does not", axis)
		}
		return parseErrorf("surrounding geometry has %s coordinates but the collection item does not", axis)
	}
	return parseErrorf("conflicting %s dimension declarations", axis)
}

// number consumes one numeric token and returns its value.
func (c *parseContext) number() (float64, error) {
	if err := c.expect(itemNumber); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(c.cur.Val, 64)
	if err != nil {
		return 0, parseErrorf("bad numeric literal %q", c.cur.Val)
	}
	return v, c.advance()
}

// parseCoords reads one coordinate tuple and builds a point. When the Z/M
// expectations are still unknown, the count of trailing numbers in this
// first tuple fixes the dimensionality for the whole parse; bare WKT cannot
// distinguish XYM from XYZ, so a lone extra is always Z.
func (c *parseContext) parseCoords() (Geometry, error) {
	x, err := c.number()
	if err != nil {
		return nil, err
	}
	y, err := c.number()
	if err != nil {
		return nil, err
	}

	var z, m *float64
	if !c.expectZ.Known() {
		var extra []float64
		for c.cur.Typ == itemNumber {
			v, err := c.number()
			if err != nil {
				return nil, err
			}
			extra = append(extra, v)
		}
		switch len(extra) {
		case 0:
			c.expectZ, c.expectM = TriFalse, TriFalse
		case 1:
			c.expectZ, c.expectM = TriTrue, TriFalse
			z = &extra[0]
		case 2:
			c.expectZ, c.expectM = TriTrue, TriTrue
			z, m = &extra[0], &extra[1]
		default:
			return nil, parseErrorf("found %d coordinates, which is too many", len(extra)+2)
		}
	} else {
		// A parsed value is forwarded to the factory only if the factory
		// supports that axis; the capability check only forbids a factory
		// lacking an axis the tag requires, not the other direction.
		if c.expectZ.True() {
			v, err := c.number()
			if err != nil {
				return nil, err
			}
			if c.caps.Z {
				z = &v
			}
		}
		if c.expectM.True() {
			v, err := c.number()
			if err != nil {
				return nil, err
			}
			if c.caps.M {
				m = &v
			}
		}
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.Point(x, y, z, m)
}

// parsePoint parses a point body. convertEmpty enables the historical
// behavior of producing an empty multi-point for POINT EMPTY. allowBare
// permits a tuple without parentheses, which PostGIS emits for the elements
// of a MULTIPOINT.
func (c *parseContext) parsePoint(convertEmpty, allowBare bool) (Geometry, error) {
	if convertEmpty && c.isWord("empty") {
		if err := c.advance(); err != nil {
			return nil, err
		}
		if err := c.resolveFactory(); err != nil {
			return nil, err
		}
		return c.factory.MultiPoint(nil)
	}
	paren := c.cur.Typ == itemBegin
	if paren {
		if err := c.advance(); err != nil {
			return nil, err
		}
	} else if !allowBare {
		return nil, c.expect(itemBegin)
	}
	pt, err := c.parseCoords()
	if err != nil {
		return nil, err
	}
	if paren {
		if err := c.expect(itemEnd); err != nil {
			return nil, err
		}
		if err := c.advance(); err != nil {
			return nil, err
		}
	}
	return pt, nil
}

func (c *parseContext) parseLineString() (Geometry, error) {
	points, err := c.parseCoordList()
	if err != nil {
		return nil, err
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.LineString(points)
}

// parseCoordList parses "empty" or a parenthesized, comma-separated list of
// coordinate tuples. EMPTY yields a nil slice; the constructors treat that
// as the degenerate zero-point form.
func (c *parseContext) parseCoordList() ([]Geometry, error) {
	if c.isWord("empty") {
		return nil, c.advance()
	}
	if err := c.expect(itemBegin); err != nil {
		return nil, err
	}
	if err := c.advance(); err != nil {
		return nil, err
	}
	var points []Geometry
	for {
		pt, err := c.parseCoords()
		if err != nil {
			return nil, err
		}
		points = append(points, pt)
		if c.cur.Typ == itemEnd {
			break
		}
		if err := c.expect(itemComma); err != nil {
			return nil, err
		}
		if err := c.advance(); err != nil {
			return nil, err
		}
	}
	return points, c.advance()
}

func (c *parseContext) parsePolygon() (Geometry, error) {
	var outer Geometry
	var holes []Geometry
	if c.isWord("empty") {
		if err := c.advance(); err != nil {
			return nil, err
		}
		if err := c.resolveFactory(); err != nil {
			return nil, err
		}
		// An empty polygon is built from an empty ring constructed
		// directly, with no surrounding parentheses parsed.
		ring, err := c.factory.LinearRing(nil)
		if err != nil {
			return nil, err
		}
		outer = ring
	} else {
		if err := c.expect(itemBegin); err != nil {
			return nil, err
		}
		if err := c.advance(); err != nil {
			return nil, err
		}
		ring, err := c.parseLineString()
		if err != nil {
			return nil, err
		}
		outer = ring
		for c.cur.Typ != itemEnd {
			if err := c.expect(itemComma); err != nil {
				return nil, err
			}
			if err := c.advance(); err != nil {
				return nil, err
			}
			hole, err := c.parseLineString()
			if err != nil {
				return nil, err
			}
			holes = append(holes, hole)
		}
		if err := c.advance(); err != nil {
			return nil, err
		}
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.Polygon(outer, holes)
}

func (c *parseContext) parseCollection() (Geometry, error) {
	var geometries []Geometry
	err := c.parseElements(func() error {
		geo, err := c.parseTaggedGeometry(true)
		if err != nil {
			return err
		}
		geometries = append(geometries, geo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.Collection(geometries)
}

func (c *parseContext) parseMultiPoint() (Geometry, error) {
	var points []Geometry
	err := c.parseElements(func() error {
		pt, err := c.parsePoint(false, true)
		if err != nil {
			return err
		}
		points = append(points, pt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.MultiPoint(points)
}

func (c *parseContext) parseMultiLineString() (Geometry, error) {
	var lines []Geometry
	err := c.parseElements(func() error {
		ls, err := c.parseLineString()
		if err != nil {
			return err
		}
		lines = append(lines, ls)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.MultiLineString(lines)
}

func (c *parseContext) parseMultiPolygon() (Geometry, error) {
	var polygons []Geometry
	err := c.parseElements(func() error {
		poly, err := c.parsePolygon()
		if err != nil {
			return err
		}
		polygons = append(polygons, poly)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.resolveFactory(); err != nil {
		return nil, err
	}
	return c.factory.MultiPolygon(polygons)
}

// parseElements parses "empty" or a parenthesized, comma-separated list,
// calling parseOne for each element and advancing past the final ')'.
func (c *parseContext) parseElements(parseOne func() error) error {
	if c.isWord("empty") {
		return c.advance()
	}
	if err := c.expect(itemBegin); err != nil {
		return err
	}
	if err := c.advance(); err != nil {
		return err
	}
	for {
		if err := parseOne(); err != nil {
			return err
		}
		if c.cur.Typ == itemEnd {
			break
		}
		if err := c.expect(itemComma); err != nil {
			return err
		}
		if err := c.advance(); err != nil {
			return err
		}
	}
	return c.advance()
}
