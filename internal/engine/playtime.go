package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/harulab/AibouCheck/internal/models"
)

// TierScheme selects how extracted minutes are bucketed. The two
// schemes existed as separate engine revisions; a deployment picks one
// and sticks with it.
type TierScheme string

const (
	// ThreeTier buckets minutes as ≤30 short, ≤120 normal, else long.
	ThreeTier TierScheme = "three"
	// FourTier adds a very_long bucket: ≤30, ≤120, ≤240, else very_long.
	FourTier TierScheme = "four"
)

// playMinutesRe matches the first integer immediately followed by the
// minutes unit marker.
var playMinutesRe = regexp.MustCompile(`(\d+)\s*分`)

// fullWidthDigits normalizes full-width digits so "９０分" parses the
// same as "90分".
var fullWidthDigits = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
)

// ExtractPlayMinutes extracts a play duration in minutes from free
// text. It returns the minutes and whether a duration was found. A
// parse miss is not an error: callers treat it as zero minutes, which
// lands in the shortest tier.
func ExtractPlayMinutes(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	m := playMinutesRe.FindStringSubmatch(fullWidthDigits.Replace(text))
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		// Only possible on absurdly long digit runs; treat as a miss.
		return 0, false
	}
	return minutes, true
}

// ClassifyPlayTime buckets minutes into a severity tier. Bounds are
// inclusive and checked in ascending order, so the mapping is
// monotonic non-decreasing in minutes.
func ClassifyPlayTime(minutes int, scheme TierScheme) models.PlayTimeTag {
	switch {
	case minutes <= 30:
		return models.PlayTimeShort
	case minutes <= 120:
		return models.PlayTimeNormal
	}
	if scheme == FourTier {
		if minutes <= 240 {
			return models.PlayTimeLong
		}
		return models.PlayTimeVeryLong
	}
	return models.PlayTimeLong
}
