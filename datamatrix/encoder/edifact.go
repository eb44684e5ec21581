// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

import (
	"errors"
	"fmt"
)

// EDIFACT packs four 6-bit values into three codewords. Characters
// 0x20-0x3F encode as themselves, 0x40-0x5E as c-64. The unlatch is the
// value 31 carried inside a (possibly partial) group.

const edifactUnlatchValue = 31

func edifactValue(c byte) (byte, error) {
	switch {
	case c >= ' ' && c <= '?':
		return c, nil
	case c >= '@' && c <= '^':
		return c - 64, nil
	}
	return 0, fmt.Errorf("datamatrix/encoder: illegal character for EDIFACT encodation: %#02x", c)
}

// encodeEdifactGroup emits a group of one to four 6-bit values as one
// to three codewords, filled from the high bits downward.
func encodeEdifactGroup(ctx *encoderContext, group []byte) error {
	n := len(group)
	if n == 0 || n > 4 {
		return errors.New("datamatrix/encoder: EDIFACT group must hold 1 to 4 values")
	}
	var c2, c3, c4 byte
	if n >= 2 {
		c2 = group[1]
	}
	if n >= 3 {
		c3 = group[2]
	}
	if n >= 4 {
		c4 = group[3]
	}
	v := int(group[0])<<18 | int(c2)<<12 | int(c3)<<6 | int(c4)
	ctx.addCodeword(byte(v >> 16))
	if n >= 2 {
		ctx.addCodeword(byte(v >> 8))
	}
	if n >= 3 {
		ctx.addCodeword(byte(v))
	}
	return nil
}

// encodeEdifact runs one EDIFACT segment (annex P step F). Full groups
// of four are emitted immediately; the oracle is consulted after each
// group, and any exit goes through the unlatch value in handleEdifactEOD.
func encodeEdifact(ctx *encoderContext) error {
	var buffer []byte
	for ctx.hasMoreCharacters() {
		c := ctx.currentChar()
		v, err := edifactValue(c)
		if err != nil {
			return err
		}
		buffer = append(buffer, v)
		ctx.pos++

		if len(buffer) >= 4 {
			if err := encodeEdifactGroup(ctx, buffer[:4]); err != nil {
				return err
			}
			buffer = buffer[4:]

			newMode := lookAheadTest(ctx.msg, ctx.pos, modeEDIFACT)
			if newMode != modeEDIFACT {
				// The unlatch below returns the stream to ASCII; the
				// oracle runs again from there.
				ctx.signalEncoderChange(modeASCII)
				break
			}
		}
	}
	buffer = append(buffer, edifactUnlatchValue)
	return handleEdifactEOD(ctx, buffer)
}

// handleEdifactEOD finishes an EDIFACT segment. The unlatch is dropped
// entirely when the symbol ends within the current group, and a tail of
// up to two characters is handed back to ASCII when fewer than three
// codewords remain.
func handleEdifactEOD(ctx *encoderContext, buffer []byte) error {
	count := len(buffer)
	if count == 0 {
		return nil // already finished
	}
	if count == 1 {
		// Buffer holds only the unlatch.
		codewordCount := ctx.codewordCount()
		symbolInfo, err := ctx.updateSymbolInfo(codewordCount)
		if err != nil {
			return err
		}
		available := symbolInfo.DataCapacity - codewordCount
		if ctx.remainingCharacters() == 0 && available <= 2 {
			// The decoder infers the mode end from the symbol end. The
			// mode signal stays unset so the driver's finalisation sees
			// the segment ended inside EDIFACT.
			return nil
		}
	}
	if count > 4 {
		return errors.New("datamatrix/encoder: EDIFACT end-of-data buffer exceeds one group")
	}

	restChars := count - 1
	endOfSymbolReached := !ctx.hasMoreCharacters()
	restInASCII := endOfSymbolReached && restChars <= 2

	if restChars <= 2 {
		codewordCount := ctx.codewordCount()
		symbolInfo, err := ctx.updateSymbolInfo(codewordCount + restChars)
		if err != nil {
			return err
		}
		available := symbolInfo.DataCapacity - codewordCount
		if available >= 3 {
			restInASCII = false
			encodedLen := count
			if count == 4 {
				encodedLen = 3
			}
			if _, err := ctx.updateSymbolInfo(codewordCount + encodedLen); err != nil {
				return err
			}
		}
	}

	if restInASCII {
		ctx.resetSymbolInfo()
		ctx.pos -= restChars
	} else {
		if err := encodeEdifactGroup(ctx, buffer); err != nil {
			return err
		}
	}
	ctx.signalEncoderChange(modeASCII)
	return nil
}
