// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

import "fmt"

// X12 is C40 triplet packing over the restricted ANSI X12 alphabet:
// CR, the segment terminators * and >, space, digits and uppercase.
// There are no shifts, so every character is exactly one base-40 value.

func x12Value(c byte) (byte, error) {
	switch {
	case c == '\r':
		return 0, nil
	case c == '*':
		return 1, nil
	case c == '>':
		return 2, nil
	case c == ' ':
		return 3, nil
	case c >= '0' && c <= '9':
		return c - '0' + 4, nil
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 14, nil
	}
	return 0, fmt.Errorf("datamatrix/encoder: illegal character for X12 encodation: %#02x", c)
}

// encodeX12 runs one X12 segment. Triplets are emitted as soon as they
// complete; the look-ahead oracle is consulted at each triplet
// boundary.
func encodeX12(ctx *encoderContext) error {
	var buffer []byte
	for ctx.hasMoreCharacters() {
		c := ctx.currentChar()
		ctx.pos++
		v, err := x12Value(c)
		if err != nil {
			return err
		}
		buffer = append(buffer, v)

		if len(buffer)%3 == 0 {
			buffer = writeNextTriplet(ctx, buffer)

			newMode := lookAheadTest(ctx.msg, ctx.pos, modeX12)
			if newMode != modeX12 {
				// The unlatch below returns the stream to ASCII; the
				// oracle runs again from there.
				ctx.signalEncoderChange(modeASCII)
				break
			}
		}
	}
	return handleX12EOD(ctx, buffer)
}

// handleX12EOD rewinds the characters of an incomplete triplet (they
// are re-encoded by the next mode) and emits the unlatch unless nothing
// is left to encode and the symbol is full, or a single character is
// left and exactly one codeword is free for it as ASCII.
func handleX12EOD(ctx *encoderContext, buffer []byte) error {
	codewordCount := ctx.codewordCount()
	symbolInfo, err := ctx.updateSymbolInfo(codewordCount)
	if err != nil {
		return err
	}
	available := symbolInfo.DataCapacity - codewordCount
	ctx.pos -= len(buffer)

	if ctx.remainingCharacters() > 1 || available > 1 ||
		ctx.remainingCharacters() != available {
		ctx.addCodeword(c40Unlatch)
	}
	if ctx.newEncoding < 0 {
		ctx.signalEncoderChange(modeASCII)
	}
	return nil
}
