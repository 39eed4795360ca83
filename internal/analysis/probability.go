package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxProbability is the upper bound of a valid probability value.
const MaxProbability = 100

var probabilityTag = regexp.MustCompile(`<PROBABILITY>(\d+)</PROBABILITY>`)

// ParseProbability extracts the first <PROBABILITY>n</PROBABILITY> tag from
// raw. When present the tag is removed and the remaining text trimmed; values
// above MaxProbability count as 0. Without a tag the text is returned as is
// with probability 0.
func ParseProbability(raw string) (text string, probability int) {
	loc := probabilityTag.FindStringSubmatchIndex(raw)
	if loc == nil {
		return raw, 0
	}

	n, err := strconv.Atoi(raw[loc[2]:loc[3]])
	if err != nil || n > MaxProbability {
		n = 0
	}
	return strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:]), n
}

// Band classifies a probability for display.
type Band string

// Probability bands, lowest first.
const (
	BandCritical Band = "critical"
	BandCaution  Band = "caution"
	BandOnTrack  Band = "on-track"
	BandSecure   Band = "secure"
)

// BandFor returns the display band for p.
func BandFor(p int) Band {
	switch {
	case p > 90:
		return BandSecure
	case p > 75:
		return BandOnTrack
	case p > 40:
		return BandCaution
	default:
		return BandCritical
	}
}
