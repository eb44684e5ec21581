// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package charset converts between Go strings and the ISO-8859-1 byte
// encoding that Data Matrix messages are built from.
package charset

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EncodeISO8859_1 converts a UTF-8 string to its ISO-8859-1 byte
// representation. Runes outside the ISO-8859-1 repertoire are an error.
func EncodeISO8859_1(s string) ([]byte, error) {
	encoded, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: message is not encodable as ISO-8859-1: %w", err)
	}
	return encoded, nil
}

// DecodeISO8859_1 converts ISO-8859-1 bytes back to a UTF-8 string.
// Every byte sequence is valid ISO-8859-1, so there is no error case.
func DecodeISO8859_1(data []byte) string {
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		// Cannot happen: ISO-8859-1 maps all 256 byte values.
		return string(data)
	}
	return string(decoded)
}
