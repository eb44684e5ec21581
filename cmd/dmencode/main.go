// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command dmencode encodes text as a Data Matrix ECC-200 symbol.
//
// The symbol is written to standard output as text art by default, or
// as a PBM image with -P. With -c only the data codewords are printed,
// which is handy for debugging the high-level encoder.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/tokenevents/zxing-cpp/bitutil"
	"github.com/tokenevents/zxing-cpp/datamatrix/encoder"
)

var g = struct {
	square    bool   // force a square symbol
	rect      bool   // force a rectangular symbol
	codewords bool   // print data codewords only
	pbm       bool   // PBM output
	minSize   string // minimum symbol size, WxH in modules
	maxSize   string // maximum symbol size, WxH in modules
	out       string // output file
	help      bool
}{}

func parseSize(s string) (w, h int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	if _, err = fmt.Sscanf(s, "%dx%d", &w, &h); err != nil || w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	return w, h, nil
}

func readMessage() (string, error) {
	if args := getopt.Args(); len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "reading message from terminal, end with ^D")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	// Strip the final newline; shells add one to everything.
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func writePBM(w io.Writer, m *bitutil.BitMatrix) error {
	if _, err := fmt.Fprintf(w, "P1\n%d %d\n", m.Width(), m.Height()); err != nil {
		return err
	}
	for y := 0; y < m.Height(); y++ {
		var row strings.Builder
		for x := 0; x < m.Width(); x++ {
			if x > 0 {
				row.WriteByte(' ')
			}
			if m.Get(x, y) {
				row.WriteByte('1')
			} else {
				row.WriteByte('0')
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "dmencode:", err)
	os.Exit(1)
}

func main() {
	getopt.SetParameters("[string ...]")
	getopt.FlagLong(&g.square, "square", 's', "force a square symbol").SetFlag()
	getopt.FlagLong(&g.rect, "rectangle", 'r', "force a rectangular symbol").SetFlag()
	getopt.FlagLong(&g.codewords, "codewords", 'c', "print data codewords instead of the symbol").SetFlag()
	getopt.FlagLong(&g.pbm, "pbm", 'P', "write the symbol as a PBM image").SetFlag()
	getopt.FlagLong(&g.minSize, "min-size", 'm', "minimum symbol size in modules", "WxH")
	getopt.FlagLong(&g.maxSize, "max-size", 'M', "maximum symbol size in modules", "WxH")
	getopt.FlagLong(&g.out, "output", 'o', "output file (default standard output)", "file")
	getopt.FlagLong(&g.help, "help", 'h', "show this help").SetFlag()
	getopt.Parse()

	if g.help {
		getopt.PrintUsage(os.Stdout)
		return
	}
	if g.square && g.rect {
		fatal(fmt.Errorf("-s and -r are mutually exclusive"))
	}

	shape := encoder.ShapeHintForceNone
	if g.square {
		shape = encoder.ShapeHintForceSquare
	} else if g.rect {
		shape = encoder.ShapeHintForceRectangle
	}

	minW, minH, err := parseSize(g.minSize)
	if err != nil {
		fatal(err)
	}
	maxW, maxH, err := parseSize(g.maxSize)
	if err != nil {
		fatal(err)
	}

	msg, err := readMessage()
	if err != nil {
		fatal(err)
	}

	out := io.Writer(os.Stdout)
	if g.out != "" {
		f, err := os.Create(g.out)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}

	if g.codewords {
		cws, err := encoder.EncodeHighLevelWithShape(msg, shape, minW, minH, maxW, maxH)
		if err != nil {
			fatal(err)
		}
		fmt.Fprintln(out, encoder.Visualize(cws))
		return
	}

	matrix, err := encoder.EncodeWithConstraints(msg, shape, minW, minH, maxW, maxH)
	if err != nil {
		fatal(err)
	}
	if g.pbm {
		if err := writePBM(out, matrix); err != nil {
			fatal(err)
		}
		return
	}
	fmt.Fprint(out, matrix.StringWithChars("##", "  "))
}
