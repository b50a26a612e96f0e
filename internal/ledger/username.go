package ledger

import (
	"strconv"
	"strings"
	"unicode"
)

// SuggestUsername derives a username for game that the player does not own yet.
//
// The base is the first token of the player's name followed by the game name
// with whitespace removed, both lowercased. Collisions retry with numeric
// suffixes starting at 2.
func SuggestUsername(p *Player, game string) string {
	first := "player"
	if p != nil {
		if fields := strings.Fields(p.Name); len(fields) > 0 {
			first = fields[0]
		}
	}
	gamePart := stripSpace(game)
	if gamePart == "" {
		gamePart = "game"
	}
	base := strings.ToLower(first) + strings.ToLower(gamePart)

	candidate := base
	for suffix := 2; p != nil && p.HasUsername(candidate); suffix++ {
		candidate = base + strconv.Itoa(suffix)
	}
	return candidate
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseAmount reads a leading base-10 integer the way a lenient form field
// would: surrounding text after the digits is ignored and anything that does
// not start with a number yields 0.
func ParseAmount(raw string) int64 {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
