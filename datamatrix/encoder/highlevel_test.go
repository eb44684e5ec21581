package encoder

import "testing"

func checkHighLevel(t *testing.T, msg, want string) {
	t.Helper()
	got, err := EncodeHighLevel(msg)
	if err != nil {
		t.Fatalf("EncodeHighLevel(%q): %v", msg, err)
	}
	if v := Visualize(got); v != want {
		t.Errorf("EncodeHighLevel(%q)\n got %s\nwant %s", msg, v, want)
	}
}

func TestASCIIEncodation(t *testing.T) {
	tests := []struct {
		name, msg, want string
	}{
		{"digit pairs", "123456", "142 164 186"},
		{"digit pairs with extended tail", "123456£", "142 164 186 235 36"},
		{"mixed digits and letters", "30Q324343430794<OQQ", "160 82 162 173 173 173 137 224 61 80 82 82"},
		{"single letter", "A", "66 129 70"},
		{"single digit", "1", "50 129 70"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkHighLevel(t, tc.msg, tc.want)
		})
	}
}

func TestC40Encodation(t *testing.T) {
	tests := []struct {
		name, msg, want string
	}{
		{"three triplets", "AIMAIMAIM", "230 91 11 91 11 91 11 254"},
		{"four triplets", "AIMAIMAIMAIM", "230 91 11 91 11 91 11 91 11 254"},
		{"six triplets with padding", "AIMAIMAIMAIMAIMAIM",
			"230 91 11 91 11 91 11 91 11 91 11 91 11 254 129 237"},
		{"backtrack one into ascii", "AIMAIAB", "230 91 11 90 255 254 67 129"},
		{"lowercase breaks c40", "AIMAIAb", "66 74 78 66 74 66 99 129"},
		{"extended tail after unlatch", "AIMAIMAIMË", "230 91 11 91 11 91 11 254 235 76"},
		{"one leftover fills last codeword", "AIMAIMAIMA", "230 91 11 91 11 91 11 66"},
		{"two leftovers backtrack", "AIMAIMAIMAI", "230 91 11 91 11 91 11 254 66 74"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkHighLevel(t, tc.msg, tc.want)
		})
	}
}

func TestTextEncodation(t *testing.T) {
	checkHighLevel(t, "aimaimaim", "239 91 11 91 11 91 11 254")
}

func TestX12Encodation(t *testing.T) {
	tests := []struct {
		name, msg, want string
	}{
		{"one leftover no unlatch", "ABC>ABC123>AB",
			"238 89 233 14 192 100 207 44 31 67"},
		{"two leftovers unlatch", "ABC>ABC123>ABC",
			"238 89 233 14 192 100 207 44 31 254 67 68"},
		{"exact triplets unlatch", "ABC>ABC123>ABCD",
			"238 89 233 14 192 100 207 44 31 96 82 254"},
		{"leftover fills last codeword", "ABC>ABC123>ABCDE",
			"238 89 233 14 192 100 207 44 31 96 82 70"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkHighLevel(t, tc.msg, tc.want)
		})
	}
}

func TestEDIFACTEncodation(t *testing.T) {
	checkHighLevel(t, ".A.C1.3.DATA.123DATA.123DATA",
		"240 184 27 131 198 236 238 16 21 1 187 28 179 16 21 1 187 28 179 16 21 1")
}

func TestBase256Encodation(t *testing.T) {
	checkHighLevel(t, "«äöüé»", "231 44 108 59 226 126 1 104")
}

func TestBase256TwoByteLength(t *testing.T) {
	msg := make([]byte, 300)
	for i := range msg {
		msg[i] = 0x80
	}
	got, err := EncodeHighLevel(latin1(msg))
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != latchToBase256 {
		t.Fatalf("first codeword = %d, want %d (latch BASE256)", got[0], latchToBase256)
	}
	// 300 = 250*1 + 50: the length field is (300/250)+249 = 250, then 50.
	if want := randomize255State(250, 2); got[1] != want {
		t.Errorf("length byte 1 = %d, want %d", got[1], want)
	}
	if want := randomize255State(50, 3); got[2] != want {
		t.Errorf("length byte 2 = %d, want %d", got[2], want)
	}
	// latch + 2 length bytes + 300 data = 303 codewords, padded to the
	// 72x72 symbol's 368.
	if len(got) != 368 {
		t.Errorf("codeword count = %d, want 368", len(got))
	}
}

func TestMacroEncodation(t *testing.T) {
	t.Run("macro 05", func(t *testing.T) {
		checkHighLevel(t, "[)>\x1e05\x1dA\x1e\x04", "236 66 129")
	})
	t.Run("macro 06", func(t *testing.T) {
		checkHighLevel(t, "[)>\x1e06\x1dA\x1e\x04", "237 66 129")
	})
	t.Run("header alone is not a macro", func(t *testing.T) {
		got, err := EncodeHighLevel("[)>\x1e05\x1d")
		if err != nil {
			t.Fatal(err)
		}
		if got[0] == macro05 || got[0] == macro06 {
			t.Errorf("header-only message must not be macro-compacted, got leading %d", got[0])
		}
	})
	t.Run("missing trailer is not a macro", func(t *testing.T) {
		got, err := EncodeHighLevel("[)>\x1e05\x1dABC")
		if err != nil {
			t.Fatal(err)
		}
		if got[0] == macro05 {
			t.Errorf("message without trailer must not be macro-compacted, got leading %d", got[0])
		}
	})
}

func TestShapeConstraints(t *testing.T) {
	t.Run("force square", func(t *testing.T) {
		got, err := EncodeHighLevelWithShape("AIMAIMAIMAIM", ShapeHintForceSquare, 0, 0, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		// The 16x16 square (12 codewords) replaces the 32x8 rectangle.
		if want := "230 91 11 91 11 91 11 91 11 254 129 147"; Visualize(got) != want {
			t.Errorf("got %s\nwant %s", Visualize(got), want)
		}
	})
	t.Run("force rectangle", func(t *testing.T) {
		got, err := EncodeHighLevelWithShape("A", ShapeHintForceRectangle, 0, 0, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if want := "66 129 70 220 115"; Visualize(got) != want {
			t.Errorf("got %s\nwant %s", Visualize(got), want)
		}
	})
}

func TestDigitPairProperty(t *testing.T) {
	got, err := EncodeHighLevel("12345678901234567890")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Fatalf("codeword count = %d, want 10", len(got))
	}
	for i, cw := range got {
		if cw < 130 || cw > 229 {
			t.Errorf("codeword[%d] = %d, outside the digit-pair range 130-229", i, cw)
		}
	}
}

func TestCodewordCountMatchesCapacity(t *testing.T) {
	msgs := []string{
		"A", "1", "Hello, World!", "AIMAIMAIM", "aimaimaim",
		"ABC>ABC123>ABCDE", ".A.C1.3.DATA.123DATA.123DATA",
		"12345678", "«äöüé»", "http://example.com/q?x=1&y=2",
	}
	for _, msg := range msgs {
		got, err := EncodeHighLevel(msg)
		if err != nil {
			t.Fatalf("EncodeHighLevel(%q): %v", msg, err)
		}
		si, err := Lookup(len(got), ShapeHintForceNone)
		if err != nil {
			t.Fatalf("Lookup(%d): %v", len(got), err)
		}
		if si.DataCapacity != len(got) {
			t.Errorf("EncodeHighLevel(%q) emitted %d codewords, not a symbol capacity (nearest %d)",
				msg, len(got), si.DataCapacity)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	if _, err := EncodeHighLevel(""); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestNonLatin1Message(t *testing.T) {
	if _, err := EncodeHighLevel("€10"); err == nil {
		t.Error("expected error for message outside ISO-8859-1")
	}
}

func TestRandomize253State(t *testing.T) {
	tests := []struct {
		position int
		want     byte
	}{
		{2, 175},
		{3, 70},
	}
	for _, tc := range tests {
		if got := randomize253State(asciiPad, tc.position); got != tc.want {
			t.Errorf("randomize253State(129, %d) = %d, want %d", tc.position, got, tc.want)
		}
	}
}

func TestRandomize255State(t *testing.T) {
	if got := randomize255State(0, 2); got != 44 {
		t.Errorf("randomize255State(0, 2) = %d, want 44", got)
	}
	if got := randomize255State(171, 3); got != 108 {
		t.Errorf("randomize255State(171, 3) = %d, want 108", got)
	}
}
