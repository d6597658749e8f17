// Package service provides Unicode text analysis for the line editor.
package service

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// csiFinals is the set of bytes that terminate a CSI escape sequence for the
// purpose of width accounting. The classic linenoise set (A-H, J, K, S, T, f, m) is
// extended with l, h, n and ~ so that mode toggles and DSR replies embedded in
// a prompt are skipped instead of counted as a column.
const csiFinals = "ABCDEFGHJKSTfmlhn~"

// UnicodeService answers the width and segmentation questions the editor
// needs: how many terminal columns a string occupies, where grapheme cluster
// boundaries are, and how a line wraps at a given column count.
//
// Width rules:
//   - combining marks and other zero-width code points: 0 columns
//   - East-Asian wide characters and emoji: 2 columns
//   - everything else: 1 column
//
// All methods are pure. Malformed UTF-8 never panics; invalid bytes are
// measured as single-column replacement characters.
type UnicodeService struct{}

// NewUnicodeService creates a new Unicode service instance.
func NewUnicodeService() *UnicodeService {
	return &UnicodeService{}
}

// ClusterWidth calculates the visual width of a single grapheme cluster.
//
// For multi-rune clusters the width of the first (base) rune wins: emoji
// modifiers, ZWJ tails and combining marks add no visual width. Variation
// selectors are the exception - they flip the base between text (1) and emoji
// (2) presentation, which uniwidth resolves for the whole cluster.
func (s *UnicodeService) ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}

	runes := []rune(cluster)
	if len(runes) == 1 {
		return uniwidth.RuneWidth(runes[0])
	}

	if isZeroWidth(runes[0]) {
		return 0
	}

	if runes[1] == 0xFE0E || runes[1] == 0xFE0F {
		return uniwidth.StringWidth(cluster)
	}

	return uniwidth.RuneWidth(runes[0])
}

// StringWidth calculates the visual width of a string in terminal columns.
// Grapheme clusters are measured as units, so "é" is 1 column and
// a skin-toned emoji is 2.
func (s *UnicodeService) StringWidth(str string) int {
	width := 0
	gr := uniseg.NewGraphemes(str)
	for gr.Next() {
		width += s.ClusterWidth(gr.Str())
	}
	return width
}

// VisibleWidth calculates the visual width of a string, skipping ANSI CSI
// escape sequences entirely. A colored prompt therefore measures the same as
// its plain-text rendition:
//
//	VisibleWidth("\x1b[32mok\x1b[0m> ") == VisibleWidth("ok> ")
func (s *UnicodeService) VisibleWidth(str string) int {
	width := 0
	for off := 0; off < len(str); {
		if n := ansiEscapeLen(str[off:]); n > 0 {
			off += n
			continue
		}
		g := s.GraphemeLen(str, off)
		if g == 0 {
			break
		}
		width += s.ClusterWidth(str[off : off+g])
		off += g
	}
	return width
}

// GraphemeLen returns the byte length of the grapheme cluster starting at
// byte offset pos, or 0 when pos is at or past the end of the string.
// pos must lie on a cluster boundary.
func (s *UnicodeService) GraphemeLen(str string, pos int) int {
	if pos >= len(str) {
		return 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(str[pos:], -1)
	return len(cluster)
}

// PrevGraphemeLen returns the byte length of the grapheme cluster ending at
// byte offset pos, or 0 when pos is 0. pos must lie on a cluster boundary.
func (s *UnicodeService) PrevGraphemeLen(str string, pos int) int {
	if pos <= 0 {
		return 0
	}

	last := 0
	gr := uniseg.NewGraphemes(str[:pos])
	for gr.Next() {
		last = len(gr.Bytes())
	}
	return last
}

// WrapColumn returns the display column of byte offset pos when the content,
// prefixed by promptCols columns of prompt, wraps at width cols. The column
// is counted from the end of the prompt across all rows, not within the
// cursor's row, and includes the cells left blank when a cluster overflows a
// row and moves to the next one; callers take (promptCols+col)%cols for the
// column within the row.
//
// Passing pos == len(content) yields the column after the last cluster, which
// is what the multi-line refresher uses to size the row span.
func (s *UnicodeService) WrapColumn(content string, pos, cols, promptCols int) int {
	ret := 0
	colWidth := promptCols

	off := 0
	gr := uniseg.NewGraphemes(content)
	for gr.Next() {
		wid := s.ClusterWidth(gr.Str())

		diff := colWidth + wid - cols
		switch {
		case diff > 0:
			ret += diff
			colWidth = wid
		case diff == 0:
			colWidth = 0
		default:
			colWidth += wid
		}

		if off >= pos {
			break
		}

		off += len(gr.Bytes())
		ret += wid
	}

	return ret
}

// ansiEscapeLen reports the inclusive byte length of the CSI escape sequence
// at the start of str, or 0 if str does not start with one. A sequence is
// "ESC [" followed by parameter bytes up to a final from csiFinals; an
// unterminated sequence is not an escape.
func ansiEscapeLen(str string) int {
	if !strings.HasPrefix(str, "\x1b[") {
		return 0
	}
	for off := 2; off < len(str); off++ {
		if strings.IndexByte(csiFinals, str[off]) >= 0 {
			return off + 1
		}
	}
	return 0
}

// isZeroWidth checks if a rune occupies no terminal columns: combining marks,
// format characters, zero-width space and BOM.
func isZeroWidth(r rune) bool {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc, unicode.Cf) {
		return true
	}
	return r == '\u200B' || r == '\uFEFF'
}
