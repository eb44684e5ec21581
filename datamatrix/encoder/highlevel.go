// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tokenevents/zxing-cpp/charset"
)

// Encoding mode constants for the high-level encoder, in the order
// annex P indexes them.
const (
	modeASCII   = 0
	modeC40     = 1
	modeText    = 2
	modeX12     = 3
	modeEDIFACT = 4
	modeBase256 = 5
)

// Special codeword values.
const (
	asciiPad        = 129 // padding codeword
	asciiUpperShift = 235 // shifts to the upper 128 characters
	macro05         = 236 // "[)>\x1E05\x1D" header, "\x1E\x04" trailer
	macro06         = 237 // "[)>\x1E06\x1D" header, "\x1E\x04" trailer
)

// Latch and unlatch codewords.
const (
	latchToC40     = 230
	latchToBase256 = 231
	latchToX12     = 238
	latchToText    = 239
	latchToEDIFACT = 240
	c40Unlatch     = 254 // unlatch from C40/Text/X12 back to ASCII
)

// latches maps a mode constant to the codeword that switches a decoder
// into it. ASCII needs no latch.
var latches = [6]byte{0, latchToC40, latchToText, latchToX12, latchToEDIFACT, latchToBase256}

var (
	macro05Header = []byte("[)>\x1e05\x1d")
	macro06Header = []byte("[)>\x1e06\x1d")
	macroTrailer  = []byte("\x1e\x04")
)

// startsWith and endsWith deliberately require the message to be
// strictly longer than the affix: a message that is nothing but the
// macro header is not macro-compacted.
func startsWith(msg, prefix []byte) bool {
	return len(msg) > len(prefix) && bytes.HasPrefix(msg, prefix)
}

func endsWith(msg, suffix []byte) bool {
	return len(msg) > len(suffix) && bytes.HasSuffix(msg, suffix)
}

// EncodeHighLevel performs message encoding of a Data Matrix message
// using the algorithm described in annex P of ISO/IEC 16022:2000(E).
// The returned codewords fill the selected symbol's data capacity
// exactly, padding included.
func EncodeHighLevel(msg string) ([]byte, error) {
	return EncodeHighLevelWithShape(msg, ShapeHintForceNone, 0, 0, 0, 0)
}

// EncodeHighLevelWithShape is EncodeHighLevel with a symbol shape hint
// and module size bounds (zero bounds mean unconstrained).
func EncodeHighLevelWithShape(msg string, shape SymbolShapeHint, minWidth, minHeight, maxWidth, maxHeight int) ([]byte, error) {
	if len(msg) == 0 {
		return nil, errors.New("datamatrix/encoder: empty message")
	}

	data, err := charset.EncodeISO8859_1(msg)
	if err != nil {
		return nil, err
	}

	ctx := newEncoderContext(data)
	ctx.shape = shape
	ctx.setSizeConstraints(minWidth, minHeight, maxWidth, maxHeight)

	if startsWith(data, macro05Header) && endsWith(data, macroTrailer) {
		ctx.addCodeword(macro05)
		ctx.skipAtEnd = len(macroTrailer)
		ctx.pos = len(macro05Header)
	} else if startsWith(data, macro06Header) && endsWith(data, macroTrailer) {
		ctx.addCodeword(macro06)
		ctx.skipAtEnd = len(macroTrailer)
		ctx.pos = len(macro06Header)
	}

	mode := modeASCII
	for ctx.hasMoreCharacters() {
		var err error
		switch mode {
		case modeASCII:
			err = encodeASCII(ctx)
		case modeC40:
			err = encodeC40(ctx)
		case modeText:
			err = encodeText(ctx)
		case modeX12:
			err = encodeX12(ctx)
		case modeEDIFACT:
			err = encodeEdifact(ctx)
		case modeBase256:
			err = encodeBase256(ctx)
		}
		if err != nil {
			return nil, err
		}
		if ctx.newEncoding >= 0 {
			mode = ctx.newEncoding
			ctx.resetEncoderSignal()
		}
	}

	length := ctx.codewordCount()
	symbolInfo, err := ctx.updateSymbolInfo(length)
	if err != nil {
		return nil, err
	}
	capacity := symbolInfo.DataCapacity

	if length < capacity && mode != modeASCII && mode != modeBase256 {
		ctx.addCodeword(c40Unlatch)
	}
	if ctx.codewordCount() < capacity {
		ctx.addCodeword(asciiPad)
	}
	for ctx.codewordCount() < capacity {
		ctx.addCodeword(randomize253State(asciiPad, ctx.codewordCount()+1))
	}

	return ctx.codewords, nil
}

// encodeASCII runs one ASCII step (annex P step B): a digit pair, or a
// single character, or a latch into the mode the look-ahead oracle
// picked.
func encodeASCII(ctx *encoderContext) error {
	if determineConsecutiveDigitCount(ctx.msg, ctx.pos) >= 2 {
		ctx.addCodeword(encodeASCIIDigits(ctx.msg[ctx.pos], ctx.msg[ctx.pos+1]))
		ctx.pos += 2
		return nil
	}

	c := ctx.currentChar()
	newMode := lookAheadTest(ctx.msg, ctx.pos, modeASCII)
	switch {
	case newMode != modeASCII:
		ctx.addCodeword(latches[newMode])
		ctx.signalEncoderChange(newMode)
	case isExtendedASCII(c):
		ctx.addCodeword(asciiUpperShift)
		ctx.addCodeword(c - 128 + 1)
		ctx.pos++
	default:
		ctx.addCodeword(c + 1)
		ctx.pos++
	}
	return nil
}

// determineConsecutiveDigitCount counts the decimal digits starting at
// startpos.
func determineConsecutiveDigitCount(msg []byte, startpos int) int {
	n := 0
	for startpos+n < len(msg) && isDigit(msg[startpos+n]) {
		n++
	}
	return n
}

// encodeASCIIDigits packs a digit pair into one codeword: "00" encodes
// as 130, "99" as 229.
func encodeASCIIDigits(digit1, digit2 byte) byte {
	return (digit1-'0')*10 + (digit2 - '0') + 130
}

// randomize253State whitens a PAD codeword. codewordPosition is the
// 1-based position in the data stream.
func randomize253State(c byte, codewordPosition int) byte {
	pseudoRandom := (149*codewordPosition)%253 + 1
	tmp := int(c) + pseudoRandom
	if tmp > 254 {
		tmp -= 254
	}
	return byte(tmp)
}

// Visualize renders codewords as space-separated decimal values, the
// form used in test fixtures and diagnostics.
func Visualize(codewords []byte) string {
	var buf bytes.Buffer
	for i, cw := range codewords {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%d", cw)
	}
	return buf.String()
}
