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

// Config holds the parse-mode flags and factory wiring for a Parser. It may
// be changed between parses but must not be changed during one.
type Config struct {
	// DefaultFactory builds geometries when no generator is configured or
	// the generator declines. Nil means NewGeomFactory().
	DefaultFactory Factory

	// FactoryGenerator, if set, is consulted once per parse to pick the
	// factory, receiving the SRID and the Z/M expectations known so far.
	FactoryGenerator FactoryGenerator

	// SupportEWKT enables the PostGIS extensions: an srid=<digits>; prefix
	// and the measure marker fused into the type tag (e.g. POINTM).
	SupportEWKT bool

	// SupportWKT12 enables the SFS 1.2 dimension tokens Z, M and ZM
	// following the type tag.
	SupportWKT12 bool

	// StrictWKT11 treats every geometry as explicitly two-dimensional
	// unless a tag says otherwise. It is ignored when either extension
	// flag is on.
	StrictWKT11 bool

	// IgnoreExtraTokens accepts input with trailing tokens after a
	// complete geometry instead of failing.
	IgnoreExtraTokens bool
}

// normalized returns a copy with the inter-flag invariant applied and the
// default factory filled in. StrictWKT11 contradicts both extension modes,
// so it is forced off when either is enabled.
func (c Config) normalized() Config {
	if c.SupportEWKT || c.SupportWKT12 {
		c.StrictWKT11 = false
	}
	if c.DefaultFactory == nil {
		c.DefaultFactory = NewGeomFactory()
	}
	return c
}
