// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

import "errors"

// C40 and TEXT compaction pack three base-40 values into two codewords:
// v = 1600*c1 + 40*c2 + c3 + 1. The two modes share everything but the
// character tables: C40 keeps uppercase in the basic set, TEXT keeps
// lowercase there and demotes uppercase to shift 3.

// c40Entry maps a 7-bit character to its base-40 representation.
// set 0 is the basic set (no prefix); sets 1-3 are reached through the
// shift values 0-2.
type c40Entry struct {
	set   byte
	value byte
}

var c40Table [128]c40Entry
var textTable [128]c40Entry

func init() {
	fillShared := func(tab *[128]c40Entry) {
		tab[' '] = c40Entry{0, 3}
		for c := '0'; c <= '9'; c++ {
			tab[c] = c40Entry{0, byte(c-'0') + 4}
		}
		for c := 0; c <= 0x1F; c++ {
			tab[c] = c40Entry{1, byte(c)}
		}
		for c := '!'; c <= '/'; c++ {
			tab[c] = c40Entry{2, byte(c - '!')}
		}
		for c := ':'; c <= '@'; c++ {
			tab[c] = c40Entry{2, byte(c-':') + 15}
		}
		for c := '['; c <= '_'; c++ {
			tab[c] = c40Entry{2, byte(c-'[') + 22}
		}
	}

	fillShared(&c40Table)
	for c := 'A'; c <= 'Z'; c++ {
		c40Table[c] = c40Entry{0, byte(c-'A') + 14}
	}
	for c := 0x60; c <= 0x7F; c++ {
		c40Table[c] = c40Entry{3, byte(c - 0x60)}
	}

	fillShared(&textTable)
	for c := 'a'; c <= 'z'; c++ {
		textTable[c] = c40Entry{0, byte(c-'a') + 14}
	}
	textTable['`'] = c40Entry{3, 0}
	for c := 'A'; c <= 'Z'; c++ {
		textTable[c] = c40Entry{3, byte(c-'A') + 1}
	}
	for c := '{'; c <= 0x7F; c++ {
		textTable[c] = c40Entry{3, byte(c-'{') + 27}
	}
}

const (
	c40Shift2     = 1  // shift 2 prefix value
	c40UpperShift = 30 // upper shift, lives in the shift 2 set
)

// appendC40Value appends the base-40 values for c to buf using the
// given table. Extended ASCII is expressed as shift 2 + upper shift
// followed by the encoding of c-128.
func appendC40Value(buf []byte, tab *[128]c40Entry, c byte) []byte {
	if c >= 128 {
		buf = append(buf, c40Shift2, c40UpperShift)
		return appendC40Value(buf, tab, c-128)
	}
	e := tab[c]
	if e.set == 0 {
		return append(buf, e.value)
	}
	return append(buf, e.set-1, e.value)
}

func encodeC40(ctx *encoderContext) error {
	return encodeC40Impl(ctx, &c40Table, modeC40)
}

func encodeText(ctx *encoderContext) error {
	return encodeC40Impl(ctx, &textTable, modeText)
}

// encodeC40Impl runs one C40 or TEXT segment: it consumes characters
// into a base-40 buffer, hands control back when the look-ahead oracle
// picks another mode at a triplet boundary, and finishes with the
// end-of-data handling of annex P step C.
func encodeC40Impl(ctx *encoderContext, tab *[128]c40Entry, encodingMode int) error {
	var buffer []byte
	lastCharSize := 0
	for ctx.hasMoreCharacters() {
		c := ctx.currentChar()
		ctx.pos++
		before := len(buffer)
		buffer = appendC40Value(buffer, tab, c)
		lastCharSize = len(buffer) - before

		unwritten := len(buffer) / 3 * 2
		curCodewordCount := ctx.codewordCount() + unwritten
		symbolInfo, err := ctx.updateSymbolInfo(curCodewordCount)
		if err != nil {
			return err
		}
		available := symbolInfo.DataCapacity - curCodewordCount

		if !ctx.hasMoreCharacters() {
			// Triplets are indivisible: with an under-full last triplet
			// and the wrong number of leftover codewords, push
			// characters back so the tail can be re-encoded as ASCII.
			if len(buffer)%3 == 2 && available != 2 {
				buffer, lastCharSize = backtrackOneCharacter(ctx, tab, buffer, lastCharSize)
			}
			for len(buffer)%3 == 1 && (lastCharSize > 3 || available != 1) {
				buffer, lastCharSize = backtrackOneCharacter(ctx, tab, buffer, lastCharSize)
			}
			break
		}

		if len(buffer)%3 == 0 {
			newMode := lookAheadTest(ctx.msg, ctx.pos, encodingMode)
			if newMode != encodingMode {
				ctx.signalEncoderChange(newMode)
				break
			}
		}
	}
	return handleC40EOD(ctx, buffer)
}

// backtrackOneCharacter removes the most recently consumed character
// from the base-40 buffer and rewinds the input cursor, dropping the
// symbol version so a smaller one may fit afterwards.
func backtrackOneCharacter(ctx *encoderContext, tab *[128]c40Entry, buffer []byte, lastCharSize int) ([]byte, int) {
	buffer = buffer[:len(buffer)-lastCharSize]
	ctx.pos--
	c := ctx.currentChar()
	lastCharSize = len(appendC40Value(nil, tab, c))
	ctx.resetSymbolInfo()
	return buffer, lastCharSize
}

// writeNextTriplet emits the first three buffered base-40 values as a
// codeword pair and returns the shortened buffer.
func writeNextTriplet(ctx *encoderContext, buffer []byte) []byte {
	v := 1600*int(buffer[0]) + 40*int(buffer[1]) + int(buffer[2]) + 1
	ctx.addCodeword(byte(v / 256))
	ctx.addCodeword(byte(v % 256))
	return buffer[3:]
}

// handleC40EOD finishes a C40/TEXT segment: it flushes full triplets,
// pads a two-value remainder with shift 1, and emits the unlatch when
// characters or free codewords remain.
func handleC40EOD(ctx *encoderContext, buffer []byte) error {
	unwritten := len(buffer) / 3 * 2
	rest := len(buffer) % 3

	curCodewordCount := ctx.codewordCount() + unwritten
	symbolInfo, err := ctx.updateSymbolInfo(curCodewordCount)
	if err != nil {
		return err
	}
	available := symbolInfo.DataCapacity - curCodewordCount

	switch {
	case rest == 2:
		buffer = append(buffer, 0) // shift 1 as filler
		for len(buffer) >= 3 {
			buffer = writeNextTriplet(ctx, buffer)
		}
		if ctx.hasMoreCharacters() {
			ctx.addCodeword(c40Unlatch)
		}
	case available == 1 && rest == 1:
		for len(buffer) >= 3 {
			buffer = writeNextTriplet(ctx, buffer)
		}
		if ctx.hasMoreCharacters() {
			ctx.addCodeword(c40Unlatch)
		}
		// The leftover character is re-encoded as ASCII into the one
		// remaining codeword.
		ctx.pos--
	case rest == 0:
		for len(buffer) >= 3 {
			buffer = writeNextTriplet(ctx, buffer)
		}
		if available > 0 || ctx.hasMoreCharacters() {
			ctx.addCodeword(c40Unlatch)
		}
	default:
		return errors.New("datamatrix/encoder: unexpected end-of-data state in C40/Text segment")
	}
	ctx.signalEncoderChange(modeASCII)
	return nil
}
