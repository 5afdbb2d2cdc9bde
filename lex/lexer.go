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

// Package lex implements a state-function lexer. The domain-specific state
// functions and item types live with the parser that consumes them; this
// package only provides the rune-level machinery and the item stream.
package lex

import (
	"fmt"
	"unicode/utf8"
)

// EOF is returned by Next and Peek once the input is exhausted.
const EOF = -1

// ItemType identifies the type of a lexed item. Values for domain-specific
// item types should be >= 5 to leave room for the predefined ones.
type ItemType int

const (
	// ItemEOF marks the end of the item stream.
	ItemEOF ItemType = iota
	// ItemError carries a lexing failure message in its Val.
	ItemError
)

// StateFn represents the state of the lexer as a function that returns the
// next state. Lexing terminates when a state function returns nil.
type StateFn func(*Lexer) StateFn

// Item is a single lexed token: its type and the matched substring.
type Item struct {
	Typ ItemType
	Val string
}

func (i Item) String() string {
	switch i.Typ {
	case ItemEOF:
		return "EOF"
	}
	return fmt.Sprintf("lex.Item [%v] %q", i.Typ, i.Val)
}

// Lexer holds the state of the scanner.
type Lexer struct {
	Input string // string being scanned.
	Start int    // start position of the current item.
	Pos   int    // current position in the input.
	Width int    // width of the last rune read from input.
	items []Item // lexed items, in order.
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		Input: input,
		items: make([]Item, 0, 32),
	}
}

// Run drives the lexer from the given start state until a state function
// returns nil, then returns the lexer for iteration over its items.
func (l *Lexer) Run(f StateFn) *Lexer {
	for state := f; state != nil; {
		state = state(l)
	}
	return l
}

// ItemIterator walks the lexed items one at a time.
type ItemIterator struct {
	l   *Lexer
	idx int
}

func (l *Lexer) NewIterator() *ItemIterator {
	return &ItemIterator{l: l, idx: -1}
}

// Next advances the iterator and returns false once all items are consumed.
func (p *ItemIterator) Next() bool {
	p.idx++
	return p.idx < len(p.l.items)
}

// Item returns the item at the current position.
func (p *ItemIterator) Item() Item {
	return p.l.items[p.idx]
}

// Errorf emits an ItemError item carrying the formatted message and
// terminates the lexer by returning the nil state.
func (l *Lexer) Errorf(format string, args ...interface{}) StateFn {
	l.items = append(l.items, Item{
		Typ: ItemError,
		Val: fmt.Sprintf(format, args...),
	})
	return nil
}

// Emit emits the pending input [Start:Pos) as an item of the given type.
func (l *Lexer) Emit(t ItemType) {
	if t != ItemEOF && l.Pos < l.Start {
		// Let ItemEOF go through.
		return
	}
	l.items = append(l.items, Item{
		Typ: t,
		Val: l.Input[l.Start:l.Pos],
	})
	l.Start = l.Pos
}

// Next reads the next rune from the input, sets Width and advances Pos.
func (l *Lexer) Next() rune {
	if l.Pos >= len(l.Input) {
		l.Width = 0
		return EOF
	}
	r, w := utf8.DecodeRuneInString(l.Input[l.Pos:])
	l.Width = w
	l.Pos += w
	return r
}

// Backup steps back one rune. Valid only once per call of Next.
func (l *Lexer) Backup() {
	l.Pos -= l.Width
}

// Peek returns the next rune without consuming it.
func (l *Lexer) Peek() rune {
	r := l.Next()
	l.Backup()
	return r
}

// Ignore discards the pending input.
func (l *Lexer) Ignore() {
	l.Start = l.Pos
}

// CheckRune is the predicate signature for accepting runes from the input.
type CheckRune func(r rune) bool

// AcceptRun consumes runes while c accepts them, stopping at the first
// rejection or EOF. Returns the last rune accepted and how many were.
func (l *Lexer) AcceptRun(c CheckRune) (lastr rune, validRunes int) {
	for {
		r := l.Next()
		if r == EOF || !c(r) {
			break
		}
		validRunes++
		lastr = r
	}
	l.Backup()
	return lastr, validRunes
}

// AcceptUntil consumes runes until c accepts one or EOF is reached.
func (l *Lexer) AcceptUntil(c CheckRune) {
	for {
		r := l.Next()
		if r == EOF || c(r) {
			break
		}
	}
	l.Backup()
}

// AcceptRunTimes consumes at most the given number of runes accepted by c
// and returns how many were consumed.
func (l *Lexer) AcceptRunTimes(c CheckRune, times int) int {
	i := 0
	for ; i < times; i++ {
		r := l.Next()
		if r == EOF || !c(r) {
			break
		}
	}
	l.Backup()
	return i
}
