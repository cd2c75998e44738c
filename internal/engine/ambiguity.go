package engine

import "github.com/harulab/AibouCheck/internal/models"

// DetectAmbiguity runs the single-pass hedge classifier over one
// answer. Groups are checked in fixed order (neutral hedge >
// uncertain > mild negative > strong negative) and the first match
// wins. The second return value is false when the answer contains no
// hedging at all; such answers never trigger a supplement.
func DetectAmbiguity(text string) (models.AmbiguityTag, bool) {
	if text == "" {
		return "", false
	}
	for _, g := range ambiguityGroups {
		if containsAny(text, g.words) {
			return g.tag, true
		}
	}
	return "", false
}
