// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

import "fmt"

// BASE256 carries arbitrary bytes behind a length field. Every emitted
// byte, length field included, goes through the 255-state randomiser so
// that no reserved codeword value appears in the region.

// randomize255State whitens a BASE256 byte. codewordPosition is the
// 1-based position of the codeword in the data stream.
func randomize255State(c byte, codewordPosition int) byte {
	pseudoRandom := (149*codewordPosition)%255 + 1
	tmp := int(c) + pseudoRandom
	if tmp > 255 {
		tmp -= 256
	}
	return byte(tmp)
}

// encodeBase256 runs one BASE256 segment. The buffer front is reserved
// for the length field, which is resolved once the segment length is
// known.
func encodeBase256(ctx *encoderContext) error {
	buffer := []byte{0} // length field placeholder
	for ctx.hasMoreCharacters() {
		c := ctx.currentChar()
		buffer = append(buffer, c)
		ctx.pos++

		newMode := lookAheadTest(ctx.msg, ctx.pos, modeBase256)
		if newMode != modeBase256 {
			ctx.signalEncoderChange(newMode)
			break
		}
	}

	dataCount := len(buffer) - 1
	const lengthFieldSize = 1
	currentSize := ctx.codewordCount() + dataCount + lengthFieldSize
	symbolInfo, err := ctx.updateSymbolInfo(currentSize)
	if err != nil {
		return err
	}
	mustPad := symbolInfo.DataCapacity-currentSize > 0

	// A segment that runs to the very end of a full symbol keeps the
	// length field at 0, which the decoder reads as "to the symbol end".
	if ctx.hasMoreCharacters() || mustPad {
		switch {
		case dataCount <= 249:
			buffer[0] = byte(dataCount)
		case dataCount <= 1555:
			buffer[0] = byte(dataCount/250 + 249)
			buffer = append(buffer, 0)
			copy(buffer[2:], buffer[1:])
			buffer[1] = byte(dataCount % 250)
		default:
			return fmt.Errorf("datamatrix/encoder: BASE256 segment of %d bytes exceeds the 1555-byte limit", dataCount)
		}
	}

	for _, c := range buffer {
		ctx.addCodeword(randomize255State(c, ctx.codewordCount()+1))
	}
	return nil
}
