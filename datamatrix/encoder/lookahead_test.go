package encoder

import "testing"

func TestLookAheadTest(t *testing.T) {
	tests := []struct {
		name        string
		msg         string
		startpos    int
		currentMode int
		want        int
	}{
		{"digits", "123456", 0, modeASCII, modeASCII},
		{"uppercase triplets", "AIMAIMAIM", 0, modeASCII, modeC40},
		{"lowercase triplets", "aimaimaim", 0, modeASCII, modeText},
		{"x12 with terminators", "ABC>ABC123>AB", 0, modeASCII, modeX12},
		{"edifact punctuation mix", ".A.C1.3.DATA", 0, modeASCII, modeEDIFACT},
		{"mid-message offset", "AIMAIMAIMAIM", 3, modeC40, modeC40},
		{"staying in c40 is free", "AIM", 0, modeC40, modeC40},
		{"short uppercase stays ascii", "ABCD", 0, modeASCII, modeASCII},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := lookAheadTest([]byte(tc.msg), tc.startpos, tc.currentMode)
			if got != tc.want {
				t.Errorf("lookAheadTest(%q, %d, %d) = %d, want %d",
					tc.msg, tc.startpos, tc.currentMode, got, tc.want)
			}
		})
	}
}

func TestLookAheadBase256WithinFourChars(t *testing.T) {
	msg := []byte{0x80, 0x90, 0xA0, 0xB0, 0xC0, 0xD0}
	if got := lookAheadTest(msg, 0, modeASCII); got != modeBase256 {
		t.Errorf("lookAheadTest(extended bytes) = %d, want BASE256", got)
	}
}

func TestLookAheadPastEnd(t *testing.T) {
	if got := lookAheadTest([]byte("AB"), 2, modeX12); got != modeX12 {
		t.Errorf("lookAheadTest at end of message = %d, want the current mode", got)
	}
}

func TestLookAheadX12TieBreak(t *testing.T) {
	// Uppercase/digit mixes keep C40 and X12 at identical cost; the tie
	// goes to X12 only when a terminator shows up before the native run
	// ends.
	withTerm := []byte("A1B2C3D4E5F6G7H8I9J0>1L2M3N4")
	if got := lookAheadTest(withTerm, 0, modeASCII); got != modeX12 {
		t.Errorf("tie with upcoming terminator = %d, want X12", got)
	}
	without := []byte("A1B2C3D4E5F6G7H8I9J0K1L2M3N4")
	if got := lookAheadTest(without, 0, modeASCII); got != modeC40 {
		t.Errorf("tie without terminator = %d, want C40", got)
	}
}

func TestCeilCodewords(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0}, {1, 12}, {11, 12}, {12, 12}, {13, 24}, {24, 24},
	}
	for _, tc := range tests {
		if got := ceilCodewords(tc.in); got != tc.want {
			t.Errorf("ceilCodewords(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
