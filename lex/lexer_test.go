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

package lex

import (
	"reflect"
	"testing"
)

const (
	itemDigits ItemType = 5 + iota
	itemLetters
)

// lexSplit is a toy state function: runs of digits, runs of letters,
// everything else is an error.
func lexSplit(l *Lexer) StateFn {
	for {
		r := l.Next()
		switch {
		case r == EOF:
			l.Emit(ItemEOF)
			return nil
		case r >= '0' && r <= '9':
			l.AcceptRun(func(r rune) bool { return r >= '0' && r <= '9' })
			l.Emit(itemDigits)
		case r >= 'a' && r <= 'z':
			l.AcceptRun(func(r rune) bool { return r >= 'a' && r <= 'z' })
			l.Emit(itemLetters)
		default:
			return l.Errorf("unexpected rune %q", r)
		}
	}
}

func lexToItems(input string) []Item {
	l := NewLexer(input).Run(lexSplit)
	it := l.NewIterator()
	var items []Item
	for it.Next() {
		items = append(items, it.Item())
	}
	return items
}

func TestLexerRun(t *testing.T) {
	got := lexToItems("abc123de")
	want := []Item{
		{Typ: itemLetters, Val: "abc"},
		{Typ: itemDigits, Val: "123"},
		{Typ: itemLetters, Val: "de"},
		{Typ: ItemEOF, Val: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
}

func TestLexerError(t *testing.T) {
	got := lexToItems("ab?cd")
	if len(got) == 0 || got[len(got)-1].Typ != ItemError {
		t.Fatalf("expected trailing error item, got %v", got)
	}
}

func TestLexerBackupPeek(t *testing.T) {
	l := NewLexer("xy")
	if r := l.Peek(); r != 'x' {
		t.Errorf("Peek = %q, want 'x'", r)
	}
	if r := l.Next(); r != 'x' {
		t.Errorf("Next = %q, want 'x'", r)
	}
	l.Backup()
	if l.Pos != 0 {
		t.Errorf("Pos after Backup = %d, want 0", l.Pos)
	}
}

func TestAcceptRunTimes(t *testing.T) {
	l := NewLexer("aaab")
	isA := func(r rune) bool { return r == 'a' }
	if n := l.AcceptRunTimes(isA, 2); n != 2 {
		t.Errorf("AcceptRunTimes = %d, want 2", n)
	}
	if l.Pos != 2 {
		t.Errorf("Pos = %d, want 2", l.Pos)
	}
}
