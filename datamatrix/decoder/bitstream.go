// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

// Package decoder parses Data Matrix ECC-200 data codeword streams back
// into message text. It covers all six encodation modes and the macro
// headers, and is the round-trip oracle for the encoder tests.
package decoder

import (
	"errors"
	"strings"
)

// ErrFormat indicates a malformed codeword stream.
var ErrFormat = errors.New("datamatrix/decoder: invalid codeword stream")

// DecoderResult holds the decoded text and raw bytes of a Data Matrix
// data codeword stream.
type DecoderResult struct {
	Text     string
	RawBytes []byte
}

// Data Matrix encoding modes
const (
	modeASCII   = iota // default start mode
	modeC40            // C40 encoding
	modeText           // Text encoding
	modeX12            // ANSI X12 encoding
	modeEDIFACT        // EDIFACT encoding
	modeBase256        // Base 256 encoding
	modePad            // padding reached — stop
)

// c40TextShift2 is the C40/Text shift 2 set. Index 0-26 map to
// printable characters, 27 = FNC1, 28-29 reserved, 30 = Upper Shift.
var c40TextShift2 = [32]byte{
	'!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^', '_',
	0x1D, // 27: FNC1 (GS)
	0,    // 28: reserved (Structured Append)
	0,    // 29: reserved
	0,    // 30: Upper Shift — handled in code
	0,    // 31: padding placeholder
}

// DecodeBitStream decodes the data codewords of a Data Matrix symbol
// into text. Macro-compacted streams get their header and trailer
// restored.
func DecodeBitStream(bytes []byte) (*DecoderResult, error) {
	var result strings.Builder
	var trailer string
	mode := modeASCII
	pos := 0

	for pos < len(bytes) {
		var err error
		var newMode int
		switch mode {
		case modeASCII:
			newMode, err = decodeASCII(&result, &trailer, bytes, &pos)
		case modeC40:
			newMode, err = decodeC40Text(&result, bytes, &pos, false)
		case modeText:
			newMode, err = decodeC40Text(&result, bytes, &pos, true)
		case modeX12:
			newMode, err = decodeAnsiX12(&result, bytes, &pos)
		case modeEDIFACT:
			newMode, err = decodeEdifact(&result, bytes, &pos)
		case modeBase256:
			newMode, err = decodeBase256(&result, bytes, &pos)
		}
		if err != nil {
			return nil, err
		}
		if newMode == modePad {
			break
		}
		mode = newMode
	}

	result.WriteString(trailer)
	return &DecoderResult{
		Text:     result.String(),
		RawBytes: bytes,
	}, nil
}

// decodeASCII processes codewords in ASCII mode until a mode latch is
// hit, padding starts, or the data runs out.
func decodeASCII(result *strings.Builder, trailer *string, bytes []byte, pos *int) (int, error) {
	for *pos < len(bytes) {
		b := int(bytes[*pos])
		*pos++

		switch {
		case b == 0:
			return 0, ErrFormat
		case b <= 128:
			// ASCII data: encoded value is char + 1
			result.WriteByte(byte(b - 1))
		case b == 129:
			// PAD codeword — done
			return modePad, nil
		case b <= 229:
			// Two-digit numeric pair: value 130 encodes "00", 229 encodes "99"
			pair := b - 130
			result.WriteByte(byte('0' + pair/10))
			result.WriteByte(byte('0' + pair%10))
		case b == 230:
			return modeC40, nil
		case b == 231:
			return modeBase256, nil
		case b == 232:
			// FNC1
			result.WriteByte(0x1D)
		case b == 233:
			// Structured Append — read and ignore 2 identifier bytes
			*pos += 2
		case b == 234:
			// Reader Programming — ignore
		case b == 235:
			// Upper Shift: next codeword value + 128
			if *pos >= len(bytes) {
				return 0, ErrFormat
			}
			next := int(bytes[*pos])
			*pos++
			result.WriteByte(byte(next - 1 + 128))
		case b == 236:
			// 05 Macro
			result.WriteString("[)>\x1e05\x1d")
			*trailer = "\x1e\x04"
		case b == 237:
			// 06 Macro
			result.WriteString("[)>\x1e06\x1d")
			*trailer = "\x1e\x04"
		case b == 238:
			return modeX12, nil
		case b == 239:
			return modeText, nil
		case b == 240:
			return modeEDIFACT, nil
		case b == 241:
			// ECI — not supported; skip
		default:
			// 242-255: not used; skipped
		}
	}
	return modeASCII, nil
}

// unpackTriplet splits a codeword pair into its three base-40 values.
func unpackTriplet(c1, c2 int) [3]int {
	v := c1*256 + c2 - 1
	return [3]int{v / 1600, (v / 40) % 40, v % 40}
}

// decodeC40Text decodes C40 or Text mode data. The basic set holds
// space, digits and letters (uppercase for C40, lowercase for Text);
// the shift sets hold everything else.
func decodeC40Text(result *strings.Builder, bytes []byte, pos *int, textMode bool) (int, error) {
	shift := 0
	upperShift := false

	// A lone final byte is an ASCII codeword after an implicit unlatch.
	for *pos < len(bytes)-1 {
		c1 := int(bytes[*pos])
		*pos++
		if c1 == 254 {
			return modeASCII, nil
		}
		c2 := int(bytes[*pos])
		*pos++

		for _, cVal := range unpackTriplet(c1, c2) {
			switch shift {
			case 0: // Basic set
				switch {
				case cVal < 3:
					shift = cVal + 1
				case cVal == 3:
					appendWithShift(result, ' ', &upperShift)
				case cVal <= 13:
					appendWithShift(result, byte('0'+cVal-4), &upperShift)
				case textMode:
					appendWithShift(result, byte('a'+cVal-14), &upperShift)
				default:
					appendWithShift(result, byte('A'+cVal-14), &upperShift)
				}

			case 1: // Shift 1 set: ASCII 0-31
				appendWithShift(result, byte(cVal), &upperShift)
				shift = 0

			case 2: // Shift 2 set: punctuation, FNC1, Upper Shift
				switch {
				case cVal < 27:
					appendWithShift(result, c40TextShift2[cVal], &upperShift)
				case cVal == 27:
					appendWithShift(result, 0x1D, &upperShift) // FNC1
				case cVal == 30:
					upperShift = true
				}
				// 28, 29, 31 are reserved
				shift = 0

			case 3: // Shift 3 set: ` then letters of the other case, { | } ~ DEL
				var ch byte
				switch {
				case cVal == 0:
					ch = '`'
				case cVal <= 26 && textMode:
					ch = byte('A' + cVal - 1)
				case cVal <= 26:
					ch = byte('a' + cVal - 1)
				default:
					ch = byte('{' + cVal - 27)
				}
				appendWithShift(result, ch, &upperShift)
				shift = 0
			}
		}
	}
	return modeASCII, nil
}

// appendWithShift writes ch, honouring and clearing a pending Upper Shift.
func appendWithShift(result *strings.Builder, ch byte, upperShift *bool) {
	if *upperShift {
		ch += 128
		*upperShift = false
	}
	result.WriteByte(ch)
}

// decodeAnsiX12 decodes X12 data. Basic set: CR, *, >, space, 0-9, A-Z.
func decodeAnsiX12(result *strings.Builder, bytes []byte, pos *int) (int, error) {
	for *pos < len(bytes)-1 {
		c1 := int(bytes[*pos])
		*pos++
		if c1 == 254 {
			return modeASCII, nil
		}
		c2 := int(bytes[*pos])
		*pos++

		for _, cVal := range unpackTriplet(c1, c2) {
			switch {
			case cVal == 0:
				result.WriteByte('\r')
			case cVal == 1:
				result.WriteByte('*')
			case cVal == 2:
				result.WriteByte('>')
			case cVal == 3:
				result.WriteByte(' ')
			case cVal >= 4 && cVal <= 13:
				result.WriteByte(byte('0' + cVal - 4))
			case cVal >= 14 && cVal <= 39:
				result.WriteByte(byte('A' + cVal - 14))
			}
		}
	}
	return modeASCII, nil
}

// decodeEdifact decodes EDIFACT data: three codewords carry four 6-bit
// values. The value 31 unlatches; the rest of the codeword holding its
// last bit is zero-fill, and ASCII resumes at the next codeword. When
// fewer than three bytes remain the tail was encoded as ASCII.
func decodeEdifact(result *strings.Builder, bytes []byte, pos *int) (int, error) {
	for *pos+3 <= len(bytes) {
		b1 := int(bytes[*pos])
		b2 := int(bytes[*pos+1])
		b3 := int(bytes[*pos+2])
		*pos += 3

		vals := [4]int{
			(b1 >> 2) & 0x3F,
			(b1&0x03)<<4 | (b2>>4)&0x0F,
			(b2&0x0F)<<2 | (b3>>6)&0x03,
			b3 & 0x3F,
		}
		for i, ev := range vals {
			if ev == 31 {
				// Give back the group's codewords that lie past the
				// unlatch: value i ends in codeword ceil(6*(i+1)/8).
				*pos += (6*(i+1)+7)/8 - 3
				return modeASCII, nil
			}
			// Values with bit 6 clear map to ASCII 64-95.
			if ev&0x20 == 0 {
				ev |= 0x40
			}
			result.WriteByte(byte(ev))
		}
	}
	return modeASCII, nil
}

// decodeBase256 decodes Base 256 data: a randomised length field
// followed by randomised literal bytes.
func decodeBase256(result *strings.Builder, bytes []byte, pos *int) (int, error) {
	if *pos >= len(bytes) {
		return 0, ErrFormat
	}
	d1 := unRandomize255State(int(bytes[*pos]), *pos+1)
	*pos++

	var count int
	switch {
	case d1 == 0:
		// Length 0: the segment runs to the end of the symbol data.
		count = len(bytes) - *pos
	case d1 < 250:
		count = d1
	default:
		if *pos >= len(bytes) {
			return 0, ErrFormat
		}
		d2 := unRandomize255State(int(bytes[*pos]), *pos+1)
		*pos++
		count = 250*(d1-249) + d2
	}

	if count < 0 || *pos+count > len(bytes) {
		return 0, ErrFormat
	}
	for i := 0; i < count; i++ {
		result.WriteByte(byte(unRandomize255State(int(bytes[*pos]), *pos+1)))
		*pos++
	}
	return modeASCII, nil
}

// unRandomize255State removes the 255-state masking used in Base 256
// mode. codewordPosition is the 1-based position of the codeword in the
// data stream, length field included.
func unRandomize255State(randomized, codewordPosition int) int {
	pseudoRandom := (149*codewordPosition)%255 + 1
	tmp := randomized - pseudoRandom
	if tmp < 0 {
		tmp += 256
	}
	return tmp
}
