// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

// encoderContext holds the state shared by the mode encoders during one
// high-level encoding run: the input cursor, the emitted codewords, the
// currently selected symbol version and the pending mode-change signal.
//
// The context is owned by a single EncodeHighLevel call; mode encoders
// borrow it for the extent of one segment.
type encoderContext struct {
	msg       []byte
	codewords []byte
	pos       int

	shape                SymbolShapeHint
	minWidth, minHeight  int
	maxWidth, maxHeight  int

	symbolInfo *SymbolInfo

	// newEncoding is the mode a segment encoder hands control back
	// with, or -1 when no switch is pending.
	newEncoding int

	// skipAtEnd is the number of trailing message bytes the mode
	// encoders must not consume (the macro trailer).
	skipAtEnd int
}

func newEncoderContext(msg []byte) *encoderContext {
	return &encoderContext{
		msg:         msg,
		codewords:   make([]byte, 0, len(msg)+2),
		newEncoding: -1,
	}
}

func (ctx *encoderContext) setSizeConstraints(minWidth, minHeight, maxWidth, maxHeight int) {
	ctx.minWidth = minWidth
	ctx.minHeight = minHeight
	ctx.maxWidth = maxWidth
	ctx.maxHeight = maxHeight
}

func (ctx *encoderContext) currentChar() byte {
	return ctx.msg[ctx.pos]
}

func (ctx *encoderContext) addCodeword(cw byte) {
	ctx.codewords = append(ctx.codewords, cw)
}

func (ctx *encoderContext) codewordCount() int {
	return len(ctx.codewords)
}

// totalMessageCharCount is the number of encodable characters, leaving
// out the trailing bytes reserved by skipAtEnd.
func (ctx *encoderContext) totalMessageCharCount() int {
	return len(ctx.msg) - ctx.skipAtEnd
}

func (ctx *encoderContext) hasMoreCharacters() bool {
	return ctx.pos < ctx.totalMessageCharCount()
}

func (ctx *encoderContext) remainingCharacters() int {
	return ctx.totalMessageCharCount() - ctx.pos
}

// updateSymbolInfo re-resolves the symbol version so that at least
// minCodewords data codewords fit. The selected version only ever
// grows; resetSymbolInfo drops it so a smaller one may be chosen after
// backtracking.
func (ctx *encoderContext) updateSymbolInfo(minCodewords int) (*SymbolInfo, error) {
	if ctx.symbolInfo == nil || minCodewords > ctx.symbolInfo.DataCapacity {
		si, err := LookupConstrained(minCodewords, ctx.shape,
			ctx.minWidth, ctx.minHeight, ctx.maxWidth, ctx.maxHeight)
		if err != nil {
			return nil, err
		}
		ctx.symbolInfo = si
	}
	return ctx.symbolInfo, nil
}

func (ctx *encoderContext) resetSymbolInfo() {
	ctx.symbolInfo = nil
}

func (ctx *encoderContext) signalEncoderChange(encoding int) {
	ctx.newEncoding = encoding
}

func (ctx *encoderContext) resetEncoderSignal() {
	ctx.newEncoding = -1
}
