package markdown

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// uriUnreserved holds the bytes encodeURI leaves untouched.
var uriUnreserved = func() [256]bool {
	var t [256]bool
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for _, c := range ";,/?:@&=+$-_.!~*'()#" {
		t[c] = true
	}
	return t
}()

// uriReserved holds the bytes decodeURI keeps percent-encoded.
var uriReserved = func() [256]bool {
	var t [256]bool
	for _, c := range ";/?:@&=+$,#" {
		t[c] = true
	}
	return t
}()

var errMalformedURI = errors.New("malformed percent-encoding")

// encodeURI percent-encodes every byte outside the URI unreserved and reserved
// sets, leaving existing path structure readable.
func encodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved[c] {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// decodeURI reverses encodeURI. Escapes of reserved characters are kept as
// written. Truncated escapes or escapes that decode to invalid UTF-8 fail.
func decodeURI(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
			return "", errMalformedURI
		}
		c := unhex(s[i+1])<<4 | unhex(s[i+2])
		if uriReserved[c] {
			b.WriteString(s[i : i+3])
		} else {
			b.WriteByte(c)
		}
		i += 2
	}
	out := b.String()
	if !utf8.ValidString(out) {
		return "", errMalformedURI
	}
	return out, nil
}

// normalizeURI makes a path safe for native link syntax: decode then encode, so
// already-encoded input is not double encoded. Undecodable input is encoded as is.
func normalizeURI(s string) string {
	decoded, err := decodeURI(s)
	if err != nil {
		return encodeURI(s)
	}
	return encodeURI(decoded)
}

func ishex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
