package python

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// decodeEscapes resolves the backslash escapes of a non-raw string literal
// body. Unknown escapes are kept verbatim, backslash included, as Python
// does. In bytes literals \N, \u and \U are not escapes.
func decodeEscapes(body string, isBytes bool) string {
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			i++
			continue
		}

		next := body[i+1]
		switch next {
		case '\n':
			i += 2
			continue
		case '\r':
			i += 2
			if i < len(body) && body[i] == '\n' {
				i++
			}
			continue
		case '\\', '\'', '"':
			b.WriteByte(next)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < len(body) && j < i+4 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(body[i+1:j], 8, 32)
			writeCode(&b, rune(v), isBytes)
			i = j
			continue
		case 'x':
			if r, ok := hexEscape(body, i+2, 2); ok {
				writeCode(&b, r, isBytes)
				i += 4
				continue
			}
			b.WriteString(body[i : i+2])
		case 'u', 'U':
			width := 4
			if next == 'U' {
				width = 8
			}
			if r, ok := hexEscape(body, i+2, width); ok && !isBytes && utf8.ValidRune(r) {
				b.WriteRune(r)
				i += 2 + width
				continue
			}
			b.WriteString(body[i : i+2])
		case 'N':
			if end := strings.IndexByte(body[i:], '}'); !isBytes && end > 2 && body[i+2] == '{' {
				if r, ok := lookupRuneName(body[i+3 : i+end]); ok {
					b.WriteRune(r)
					i += end + 1
					continue
				}
			}
			b.WriteString(body[i : i+2])
		default:
			b.WriteString(body[i : i+2])
		}
		i += 2
	}
	return b.String()
}

func hexEscape(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// writeCode writes a numeric escape: a code point in str literals, a single
// byte in bytes literals.
func writeCode(b *strings.Builder, r rune, isBytes bool) {
	if isBytes {
		b.WriteByte(byte(r))
		return
	}
	b.WriteRune(r)
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// lookupRuneName resolves a \N{...} character name. The reverse index is
// built on first use.
func lookupRuneName(name string) (rune, bool) {
	runeNamesOnce.Do(func() {
		runeNames = make(map[string]rune)
		for r := rune(0); r <= utf8.MaxRune; r++ {
			if n := runenames.Name(r); n != "" && n[0] != '<' {
				if _, seen := runeNames[n]; !seen {
					runeNames[n] = r
				}
			}
		}
	})
	r, ok := runeNames[strings.ToUpper(name)]
	return r, ok
}
