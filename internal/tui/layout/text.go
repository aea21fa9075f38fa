package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiRegex matches ANSI SGR escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const ansiReset = "\x1b[0m"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth runes, ending in the ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}
	return string([]rune(text)[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// TruncateLabel truncates text while keeping prefix and suffix intact,
// e.g. a section header "▾ " + name + " (12)".
// Falls back to TruncateText on the whole label when even the decorations don't fit.
func TruncateLabel(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	label := prefix + text + suffix
	if utf8.RuneCountInString(label) <= maxWidth {
		return label, false
	}

	overhead := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix) + utf8.RuneCountInString(cfg.Ellipsis)
	if overhead >= maxWidth {
		return TruncateText(label, maxWidth, cfg)
	}

	keep := maxWidth - overhead
	return prefix + string([]rune(text)[:keep]) + cfg.Ellipsis + suffix, true
}

// TruncateANSIAware truncates styled text to maxWidth visible runes.
// Escape sequences are copied through untouched and a reset is appended
// after the ellipsis so styles don't bleed into the next cell.
func TruncateANSIAware(styled string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(styled) <= maxWidth {
		return styled
	}

	budget := maxWidth - utf8.RuneCountInString(cfg.Ellipsis)
	if budget < 0 {
		budget = 0
	}

	var b strings.Builder
	rest := styled
	for budget > 0 && rest != "" {
		if loc := ansiRegex.FindStringIndex(rest); loc != nil && loc[0] == 0 {
			b.WriteString(rest[:loc[1]])
			rest = rest[loc[1]:]
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		if r != utf8.RuneError {
			b.WriteRune(r)
			budget--
		}
		rest = rest[size:]
	}

	b.WriteString(cfg.Ellipsis)
	b.WriteString(ansiReset)
	return b.String()
}
