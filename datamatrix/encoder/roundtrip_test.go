package encoder

import (
	"strings"
	"testing"

	"github.com/tokenevents/zxing-cpp/charset"
	"github.com/tokenevents/zxing-cpp/datamatrix/decoder"
)

// latin1 builds a message string whose ISO-8859-1 encoding is exactly
// the given bytes.
func latin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// roundTrip encodes msg and feeds the codewords through the bit-stream
// decoder, expecting the original ISO-8859-1 bytes back.
func roundTrip(t *testing.T, msg string) {
	t.Helper()
	codewords, err := EncodeHighLevel(msg)
	if err != nil {
		t.Fatalf("EncodeHighLevel(%q): %v", msg, err)
	}
	result, err := decoder.DecodeBitStream(codewords)
	if err != nil {
		t.Fatalf("DecodeBitStream(%s): %v", Visualize(codewords), err)
	}
	want, err := charset.EncodeISO8859_1(msg)
	if err != nil {
		t.Fatalf("EncodeISO8859_1(%q): %v", msg, err)
	}
	if result.Text != string(want) {
		t.Errorf("round-trip of %q\n got %q\nwant %q\ncodewords %s",
			msg, result.Text, string(want), Visualize(codewords))
	}
}

func TestRoundTripBasic(t *testing.T) {
	msgs := []string{
		"A",
		"AB",
		"ABC",
		"1",
		"12",
		"123456",
		"1234567890123",
		"Hello, World!",
		"Hello World",
		"http://example.com/q?x=1&y=2",
		"\r\n\t\x00\x1f",
		" ",
		"*>\r",
	}
	for _, msg := range msgs {
		roundTrip(t, msg)
	}
}

func TestRoundTripC40AndText(t *testing.T) {
	// Every end-of-data branch: growing uppercase runs, plus shift and
	// upper-shift excursions.
	for n := 1; n <= 26; n++ {
		roundTrip(t, strings.Repeat("AIM", 3)+strings.Repeat("X", n))
	}
	msgs := []string{
		"AIMAIMAIM",
		"AIMAIMAIMAIM",
		"AIMAIAB",
		"AIMAIAb",
		"AIMAIMAIMË",
		"AIMAIMAIMA",
		"AIMAIMAIMAI",
		"UPPER case AND lower 123",
		"aimaimaim",
		"aimaimaim'av",
		"aimaimaimaimaimaimaim",
		"text with punctuation: [brackets] {braces} _under_",
	}
	for _, msg := range msgs {
		roundTrip(t, msg)
	}
}

func TestRoundTripX12(t *testing.T) {
	msgs := []string{
		"ABC>ABC123>AB",
		"ABC>ABC123>ABC",
		"ABC>ABC123>ABCD",
		"ABC>ABC123>ABCDE",
		"ABC>ABC123>ABCDEF",
		"*DTCP01*V02*D20051015*52000057*\r",
	}
	for _, msg := range msgs {
		roundTrip(t, msg)
	}
}

func TestRoundTripEDIFACT(t *testing.T) {
	msgs := []string{
		".A.C1.3.DATA.123DATA.123DATA",
		".A.C1.3.X.X2..",
		".A.C1.3.XY",
		".A.C1.3.X.X2.",
		".A.C1.3.X.X2",
		"?*.A?*.B?*.C?*",
	}
	for _, msg := range msgs {
		roundTrip(t, msg)
	}
}

func TestRoundTripBase256(t *testing.T) {
	roundTrip(t, "«äöüé»")
	roundTrip(t, latin1([]byte{0x80, 0x81, 0x82}))
	for _, n := range []int{10, 100, 249, 250, 300} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(0x80 + i%96)
		}
		roundTrip(t, latin1(data))
	}
}

func TestRoundTripAllByteValues(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	roundTrip(t, latin1(data))
}

func TestRoundTripMacro(t *testing.T) {
	roundTrip(t, "[)>\x1e05\x1dPO123\x1e\x04")
	roundTrip(t, "[)>\x1e06\x1dSERIAL42\x1e\x04")
	roundTrip(t, "[)>\x1e05\x1d")
}

func TestRoundTripMixedModes(t *testing.T) {
	msgs := []string{
		"123456ABCDEFGH.a.b.c.«»",
		"ORDER-0001>SHIP>TRACK 99887766554433221100",
		"abcdefgh12345678ABCDEFGH\u0080\u0081\u0082\u0083\u0084",
		"A1B2C3D4E5F6G7H8I9J0K1L2",
	}
	for _, msg := range msgs {
		roundTrip(t, msg)
	}
}
