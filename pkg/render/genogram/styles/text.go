package styles

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	nameWrapLimit   = 15
	captionLimit    = 25
	captionEllipsis = "..."
)

// WrapName splits a name longer than 15 characters into two lines at the
// middle word boundary. Single long words are kept on one line.
func WrapName(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if utf8.RuneCountInString(name) <= nameWrapLimit {
		return []string{name}
	}
	words := strings.Fields(name)
	if len(words) < 2 {
		return []string{name}
	}
	mid := len(words) / 2
	return []string{strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")}
}

// Caption picks the text shown under a person: the occupation, or short
// notes when there is no occupation. Long captions are truncated.
func Caption(occupation, notes string) string {
	text := strings.TrimSpace(occupation)
	if text == "" {
		if n := strings.TrimSpace(notes); utf8.RuneCountInString(n) < captionLimit {
			text = n
		}
	}
	return Truncate(text, captionLimit)
}

// Truncate shortens s to n runes followed by an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + captionEllipsis
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a coordinate with at most one decimal.
func Num(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
