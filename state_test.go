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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgraph-io/wkt/lex"
)

func lexAll(input string) []lex.Item {
	it := lex.NewLexer(input).Run(lexText).NewIterator()
	var items []lex.Item
	for it.Next() {
		items = append(items, it.Item())
	}
	return items
}

func TestLexBasic(t *testing.T) {
	require.Equal(t, []lex.Item{
		{Typ: itemWord, Val: "point"},
		{Typ: itemBegin, Val: "("},
		{Typ: itemNumber, Val: "1"},
		{Typ: itemNumber, Val: "2"},
		{Typ: itemEnd, Val: ")"},
		{Typ: lex.ItemEOF, Val: ""},
	}, lexAll("point (1 2)"))
}

func TestLexBracketsAndCommas(t *testing.T) {
	require.Equal(t, []lex.Item{
		{Typ: itemBegin, Val: "["},
		{Typ: itemNumber, Val: "1"},
		{Typ: itemComma, Val: ","},
		{Typ: itemNumber, Val: "2"},
		{Typ: itemEnd, Val: "]"},
		{Typ: lex.ItemEOF, Val: ""},
	}, lexAll("[1, 2]"))
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		in   string
		vals []string
	}{
		{"1 2 3", []string{"1", "2", "3"}},
		{"-1.5 +2.25", []string{"-1.5", "+2.25"}},
		{".5 2.", []string{".5", "2."}},
		{"-1.5e2 3e-10 4.25e+3", []string{"-1.5e2", "3e-10", "4.25e+3"}},
	}
	for _, tc := range tests {
		items := lexAll(tc.in)
		require.Len(t, items, len(tc.vals)+1, "input: %q", tc.in)
		for i, v := range tc.vals {
			require.Equal(t, lex.Item{Typ: itemNumber, Val: v}, items[i], "input: %q", tc.in)
		}
	}
}

func TestLexBadTokens(t *testing.T) {
	for _, in := range []string{"!", "1 2 @foo", "-", ".", "1e", "1e+"} {
		items := lexAll(in)
		require.NotEmpty(t, items, "input: %q", in)
		last := items[len(items)-1]
		require.Equal(t, lex.ItemError, last.Typ, "input: %q", in)
		require.Contains(t, last.Val, "bad token", "input: %q", in)
	}
}

func TestLexBadTokenCarriesOffendingRun(t *testing.T) {
	items := lexAll("point (#2)")
	last := items[len(items)-1]
	require.Equal(t, lex.ItemError, last.Typ)
	require.Contains(t, last.Val, `"#2"`)
}
