// Copyright (C) 2025 The jdoc authors. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrClosed is reported by operations on a Parser after it has been closed.
var ErrClosed = errors.New("parser is closed")

// A Parser is a pull cursor over the structural events of a JSON input. Each
// call to Next consumes input through the end of the next event and reports
// its kind; the accessor methods expose the event standing at the cursor.
//
// Parser implements the Source interface. It maintains an explicit frame
// stack rather than recursing, so input nesting depth is limited only by
// available memory.
type Parser struct {
	sc     *Scanner
	stack  []frame
	closed bool

	// lookahead token captured by More
	peeked  bool
	peekTok Token
	peekTxt string
	peekLoc Location
	peekErr error

	// current event
	cur   Kind
	text  string // decoded key or string text, or number literal
	isInt bool
	loc   Location
}

type frameKind byte

const (
	frameObject frameKind = iota
	frameArray
)

type frameState byte

const (
	stKeyAny frameState = iota // object: expect a key or "}"
	stKeyReq                   // object: expect a key
	stColon                    // object: expect ":"
	stValue                    // expect a value
	stFirst                    // array: expect a value or "]"
	stNext                     // expect "," or the frame terminator
)

type frame struct {
	kind  frameKind
	state frameState
}

// NewParser constructs a Parser that consumes input from r.
func NewParser(r io.Reader) *Parser { return &Parser{sc: NewScanner(r)} }

// NewParserWithScanner constructs a Parser that consumes tokens from s.
func NewParserWithScanner(s *Scanner) *Parser { return &Parser{sc: s} }

// More reports whether another event is available from the input. It does
// not advance the cursor.
func (p *Parser) More() bool {
	if p.closed {
		return false
	}
	if p.peeked || p.peekErr != nil {
		return true
	}
	err := p.sc.Next()
	if err == io.EOF {
		return false
	} else if err != nil {
		p.peekErr = err // delivered by the next call to Next
		return true
	}
	p.peeked = true
	p.peekTok = p.sc.Token()
	p.peekTxt = string(p.sc.Text())
	p.peekLoc = p.sc.Location()
	return true
}

// Next advances the cursor and returns the next event. At the end of a
// well-formed input it returns io.EOF; a malformed input is reported as a
// *SyntaxError.
func (p *Parser) Next() (Kind, error) {
	if p.closed {
		return Invalid, ErrClosed
	}
	for {
		tok, text, loc, err := p.nextToken()
		if err == io.EOF {
			if len(p.stack) != 0 {
				return Invalid, p.syntaxf(loc, nil, "unexpected end of input")
			}
			p.cur = Invalid
			return Invalid, io.EOF
		} else if err != nil {
			return Invalid, err
		}

		if len(p.stack) == 0 {
			return p.beginValue(tok, text, loc)
		}
		f := &p.stack[len(p.stack)-1]
		switch f.state {
		case stKeyAny, stKeyReq:
			if tok == String {
				dec, err := Unquote(text)
				if err != nil {
					return Invalid, p.syntaxf(loc, err, "invalid key: %v", err)
				}
				f.state = stColon
				p.text = string(dec)
				return p.emit(KeyName, loc)
			}
			if tok == RBrace && f.state == stKeyAny {
				p.pop()
				return p.emit(ObjectEnd, loc)
			}
			return Invalid, p.syntaxf(loc, nil, `expected key, got %v`, tok)

		case stColon:
			if tok != Colon {
				return Invalid, p.syntaxf(loc, nil, `expected ":", got %v`, tok)
			}
			f.state = stValue

		case stValue:
			f.state = stNext
			return p.beginValue(tok, text, loc)

		case stFirst:
			if tok == RSquare {
				p.pop()
				return p.emit(ArrayEnd, loc)
			}
			f.state = stNext
			return p.beginValue(tok, text, loc)

		case stNext:
			if f.kind == frameObject {
				switch tok {
				case Comma:
					f.state = stKeyReq
				case RBrace:
					p.pop()
					return p.emit(ObjectEnd, loc)
				default:
					return Invalid, p.syntaxf(loc, nil, `expected "," or "}", got %v`, tok)
				}
			} else {
				switch tok {
				case Comma:
					f.state = stValue
				case RSquare:
					p.pop()
					return p.emit(ArrayEnd, loc)
				default:
					return Invalid, p.syntaxf(loc, nil, `expected "," or "]", got %v`, tok)
				}
			}
		}
	}
}

// Current returns the event most recently returned by Next, or Invalid if
// Next has not yet been called or the parser is exhausted.
func (p *Parser) Current() Kind { return p.cur }

// Text returns the decoded text of the current key or string event, or the
// literal text of the current number event. It panics for any other event.
func (p *Parser) Text() string {
	switch p.cur {
	case KeyName, StringValue, NumberValue:
		return p.text
	}
	panic(&StateError{Op: "Text", Event: p.cur})
}

// IsInt reports whether the current number event was written as an integer
// literal. It panics if the current event is not a number.
func (p *Parser) IsInt() bool {
	if p.cur != NumberValue {
		panic(&StateError{Op: "IsInt", Event: p.cur})
	}
	return p.isInt
}

// Int64 returns the value of the current number event as an integer,
// truncating any fractional part. It panics if the current event is not a
// number.
func (p *Parser) Int64() int64 {
	if p.cur != NumberValue {
		panic(&StateError{Op: "Int64", Event: p.cur})
	}
	v, err := strconv.ParseInt(p.text, 10, 64)
	if err != nil {
		return int64(p.Float64())
	}
	return v
}

// Float64 returns the value of the current number event. It panics if the
// current event is not a number.
func (p *Parser) Float64() float64 {
	if p.cur != NumberValue {
		panic(&StateError{Op: "Float64", Event: p.cur})
	}
	v, err := strconv.ParseFloat(p.text, 64)
	if err != nil {
		panic(err) // unreachable: the scanner validated the literal
	}
	return v
}

// Location returns the position of the current event in the input.
func (p *Parser) Location() Location { return p.loc }

// Close releases the parser. After Close, More reports false and Next
// reports ErrClosed. Close is idempotent.
func (p *Parser) Close() error {
	p.closed = true
	return nil
}

// SkipObject consumes and discards events through the end of the object
// currently being read, tracking nested structures without building any
// values. The cursor is left on the matching object end event.
func (p *Parser) SkipObject() error {
	level := 1
	for level > 0 && p.More() {
		k, err := p.Next()
		if err != nil {
			return err
		}
		switch k {
		case ObjectStart:
			level++
		case ObjectEnd:
			level--
		}
	}
	return nil
}

// SkipArray consumes and discards events through the end of the array
// currently being read. It is a no-op if the cursor is not inside an array.
func (p *Parser) SkipArray() error {
	if !p.inArray() {
		return nil
	}
	level := 1
	for level > 0 && p.More() {
		k, err := p.Next()
		if err != nil {
			return err
		}
		switch k {
		case ArrayStart:
			level++
		case ArrayEnd:
			level--
		}
	}
	return nil
}

func (p *Parser) inArray() bool {
	return len(p.stack) != 0 && p.stack[len(p.stack)-1].kind == frameArray
}

func (p *Parser) pop() { p.stack = p.stack[:len(p.stack)-1] }

func (p *Parser) emit(k Kind, loc Location) (Kind, error) {
	p.cur, p.loc = k, loc
	return k, nil
}

// beginValue maps a token that must begin a value to its event, pushing a
// frame for a structural start.
func (p *Parser) beginValue(tok Token, text string, loc Location) (Kind, error) {
	switch tok {
	case LBrace:
		p.stack = append(p.stack, frame{kind: frameObject, state: stKeyAny})
		return p.emit(ObjectStart, loc)
	case LSquare:
		p.stack = append(p.stack, frame{kind: frameArray, state: stFirst})
		return p.emit(ArrayStart, loc)
	case String:
		dec, err := Unquote(text)
		if err != nil {
			return Invalid, p.syntaxf(loc, err, "invalid string: %v", err)
		}
		p.text = string(dec)
		return p.emit(StringValue, loc)
	case Integer:
		p.text, p.isInt = text, true
		return p.emit(NumberValue, loc)
	case Number:
		p.text, p.isInt = text, false
		return p.emit(NumberValue, loc)
	case True:
		return p.emit(TrueValue, loc)
	case False:
		return p.emit(FalseValue, loc)
	case Null:
		return p.emit(NullValue, loc)
	default:
		return Invalid, p.syntaxf(loc, nil, "unexpected %v", tok)
	}
}

// nextToken returns the next lexical token, honoring any lookahead captured
// by More. The token text is copied out of the scanner's buffer.
func (p *Parser) nextToken() (Token, string, Location, error) {
	if err := p.peekErr; err != nil {
		p.peekErr = nil
		return NoToken, "", p.sc.Location(), p.syntaxf(p.sc.Location(), err, "%v", err)
	}
	if p.peeked {
		p.peeked = false
		return p.peekTok, p.peekTxt, p.peekLoc, nil
	}
	if err := p.sc.Next(); err != nil {
		if err == io.EOF {
			return NoToken, "", p.sc.Location(), io.EOF
		}
		return NoToken, "", p.sc.Location(), p.syntaxf(p.sc.Location(), err, "%v", err)
	}
	return p.sc.Token(), string(p.sc.Text()), p.sc.Location(), nil
}

func (p *Parser) syntaxf(loc Location, err error, msg string, args ...any) error {
	return &SyntaxError{
		Location: loc.First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

// SyntaxError is the concrete type of errors reported by the parser for
// malformed input.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
