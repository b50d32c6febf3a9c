package caption

import "strings"

var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F700, 0x1F77F},
	{0x1F780, 0x1F7FF},
	{0x1F800, 0x1F8FF},
	{0x2600, 0x26FF}, // misc symbols
	{0x2700, 0x27BF}, // dingbats
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// joiners are left behind when a composed emoji is stripped
func isJoiner(r rune) bool {
	return r == 0xFE0F || r == 0x200D
}

// ContainsEmoji reports whether text has at least one emoji rune
func ContainsEmoji(text string) bool {
	return strings.IndexFunc(text, isEmoji) >= 0
}

// StripEmoji removes emoji runes and trims the surrounding space
func StripEmoji(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if isEmoji(r) || isJoiner(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(stripped)
}
