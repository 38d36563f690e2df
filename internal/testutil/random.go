// Package testutil defines support code for unit tests.
package testutil

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Fragments of valid string content, including escapes and multi-byte text.
var stringParts = []string{
	"a", "xyz", " ", "caf\xc3\xa9", "\xf0\x9d\x84\x9e",
	`\"`, `\\`, `\/`, `\b`, `\f`, `\n`, `\r`, `\t`,
	`\u0041`, `\u00e9`, `\u20AC`, `\uD834\uDD1E`, `\u0000`,
}

// RandomJSON returns a randomly-generated valid JSON document whose arrays
// and objects are nested no more than depth levels. Whitespace is inserted at
// random between tokens.
func RandomJSON(rng *rand.Rand, depth int) string {
	var sb strings.Builder
	writeValue(&sb, rng, depth)
	return sb.String()
}

func writeValue(sb *strings.Builder, rng *rand.Rand, depth int) {
	n := 5
	if depth > 0 {
		n = 7
	}
	switch rng.IntN(n) {
	case 0:
		sb.WriteString("null")
	case 1:
		sb.WriteString("true")
	case 2:
		sb.WriteString("false")
	case 3:
		writeNumber(sb, rng)
	case 4:
		writeString(sb, rng)
	case 5:
		sb.WriteByte('[')
		for i := range rng.IntN(5) {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeSpace(sb, rng)
			writeValue(sb, rng, depth-1)
			writeSpace(sb, rng)
		}
		sb.WriteByte(']')
	case 6:
		sb.WriteByte('{')
		for i := range rng.IntN(5) {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeSpace(sb, rng)
			writeString(sb, rng)
			writeSpace(sb, rng)
			sb.WriteByte(':')
			writeSpace(sb, rng)
			writeValue(sb, rng, depth-1)
		}
		sb.WriteByte('}')
	}
}

func writeNumber(sb *strings.Builder, rng *rand.Rand) {
	switch rng.IntN(4) {
	case 0:
		sb.WriteString(strconv.Itoa(rng.IntN(2000) - 1000))
	case 1:
		sb.WriteString(strconv.FormatFloat(rng.NormFloat64()*1e6, 'f', -1, 64))
	case 2:
		sb.WriteString(strconv.FormatFloat(rng.ExpFloat64(), 'e', -1, 64))
	default:
		sb.WriteString("-0.5E+3")
	}
}

func writeString(sb *strings.Builder, rng *rand.Rand) {
	sb.WriteByte('"')
	for range rng.IntN(6) {
		sb.WriteString(stringParts[rng.IntN(len(stringParts))])
	}
	sb.WriteByte('"')
}

func writeSpace(sb *strings.Builder, rng *rand.Rand) {
	switch rng.IntN(4) {
	case 0:
		sb.WriteByte(' ')
	case 1:
		sb.WriteString("\n\t ")
	case 2:
		sb.WriteString("\r\n")
	}
}

// Damage for Mutate: bytes that are likely to disturb the structure of a
// JSON document.
const damage = "{}[],:\"\\ \x00\x01-+.eE0u"

// Mutate returns a copy of s with a random edit applied: a truncation, a
// deleted byte, an inserted byte, or a replaced byte. The result may or may
// not be valid JSON.
func Mutate(rng *rand.Rand, s string) string {
	if s == "" {
		return string(damage[rng.IntN(len(damage))])
	}
	i := rng.IntN(len(s))
	c := damage[rng.IntN(len(damage))]
	switch rng.IntN(4) {
	case 0:
		return s[:i]
	case 1:
		return s[:i] + s[i+1:]
	case 2:
		return s[:i] + string(c) + s[i:]
	default:
		return s[:i] + string(c) + s[i+1:]
	}
}
