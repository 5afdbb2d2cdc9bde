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
	"unicode"

	"github.com/dgraph-io/wkt/lex"
)

// The constants represent the token types produced when lexing WKT input.
const (
	itemNumber lex.ItemType = 5 + iota // signed decimal, optional exponent
	itemWord                           // run of lowercase letters
	itemBegin                          // ( or [
	itemEnd                            // ) or ]
	itemComma                          // ,
)

func itemName(t lex.ItemType) string {
	switch t {
	case itemNumber:
		return "number"
	case itemWord:
		return "word"
	case itemBegin:
		return "'('"
	case itemEnd:
		return "')'"
	case itemComma:
		return "','"
	case lex.ItemEOF:
		return "end of input"
	}
	return "unknown token"
}

// lexText is the entry state. The input has already been lower-cased, so
// only 'a'-'z' can start a word and exponents appear as 'e'.
func lexText(l *lex.Lexer) lex.StateFn {
	for {
		r := l.Next()
		switch {
		case r == lex.EOF:
			l.Emit(lex.ItemEOF)
			return nil
		case isSpace(r):
			l.Ignore()
		case r == '(' || r == '[':
			l.Emit(itemBegin)
		case r == ')' || r == ']':
			l.Emit(itemEnd)
		case r == ',':
			l.Emit(itemComma)
		case isDigit(r) || r == '-' || r == '+' || r == '.':
			l.Backup()
			return lexNumber
		case r >= 'a' && r <= 'z':
			l.Backup()
			return lexWord
		default:
			return lexBadToken(l)
		}
	}
}

func lexNumber(l *lex.Lexer) lex.StateFn {
	l.AcceptRunTimes(isSign, 1)
	_, whole := l.AcceptRun(isDigit)
	frac := 0
	if l.Peek() == '.' {
		l.Next()
		_, frac = l.AcceptRun(isDigit)
	}
	if whole == 0 && frac == 0 {
		return lexBadToken(l)
	}
	if l.Peek() == 'e' {
		l.Next()
		l.AcceptRunTimes(isSign, 1)
		if _, n := l.AcceptRun(isDigit); n == 0 {
			return lexBadToken(l)
		}
	}
	l.Emit(itemNumber)
	return lexText
}

func lexWord(l *lex.Lexer) lex.StateFn {
	l.AcceptRun(func(r rune) bool { return r >= 'a' && r <= 'z' })
	l.Emit(itemWord)
	return lexText
}

// lexBadToken extends the pending input to the next boundary so the error
// carries the whole offending run, then emits the error item.
func lexBadToken(l *lex.Lexer) lex.StateFn {
	l.AcceptUntil(isBoundary)
	return l.Errorf("bad token %q", l.Input[l.Start:l.Pos])
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSign(r rune) bool {
	return r == '-' || r == '+'
}

func isBoundary(r rune) bool {
	switch r {
	case '(', ')', '[', ']', ',':
		return true
	}
	return isSpace(r)
}
