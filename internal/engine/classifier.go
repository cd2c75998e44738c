package engine

import (
	"strings"

	"github.com/harulab/AibouCheck/internal/models"
)

// ClassifyPolicy selects which text each axis is classified against.
type ClassifyPolicy string

const (
	// PolicyPooled concatenates the condition, sleep and mood answers
	// and classifies all three axes against the pooled text. This is
	// the canonical behavior: a keyword in one answer can influence
	// another axis.
	PolicyPooled ClassifyPolicy = "pooled"
	// PolicyPerAxis classifies each answer only against its own axis.
	PolicyPerAxis ClassifyPolicy = "per_axis"
)

// Tags holds the resolved classification for one answer set.
type Tags struct {
	PlayTime  models.PlayTimeTag
	Condition models.ConditionTag
	Sleep     models.SleepTag
	Mood      models.MoodTag
}

// ClassifyCondition scans text against the condition keyword groups in
// priority order (pain > eye > posture > fatigue > positive) and
// returns the first matching tag. A pain keyword always outranks a
// positive one even when both are present. Unmatched text is neutral.
func ClassifyCondition(text string) models.ConditionTag {
	for _, g := range conditionGroups {
		if containsAny(text, g.words) {
			return g.tag
		}
	}
	return models.ConditionNeutral
}

// ClassifySleep checks the negative group before the positive group,
// defaulting to neutral.
func ClassifySleep(text string) models.SleepTag {
	if containsAny(text, sleepNegativeWords) {
		return models.SleepNegative
	}
	if containsAny(text, sleepPositiveWords) {
		return models.SleepPositive
	}
	return models.SleepNeutral
}

// ClassifyMood checks the negative group (including lowercased latin
// hedges like "tilt") before the positive group, defaulting to neutral.
func ClassifyMood(text string) models.MoodTag {
	lower := strings.ToLower(text)
	if containsAny(lower, moodNegativeLatin) || containsAny(text, moodNegativeWords) {
		return models.MoodNegative
	}
	if containsAny(text, moodPositiveWords) {
		return models.MoodPositive
	}
	return models.MoodNeutral
}

// ClassifyAnswers resolves the condition, sleep and mood tags for an
// answer set under the given policy. The play-time axis is handled
// separately by the play-time parser.
func ClassifyAnswers(answers models.AnswerSet, policy ClassifyPolicy) (models.ConditionTag, models.SleepTag, models.MoodTag) {
	if policy == PolicyPerAxis {
		return ClassifyCondition(answers.Condition), ClassifySleep(answers.Sleep), ClassifyMood(answers.Mood)
	}
	pooled := answers.Condition + " " + answers.Sleep + " " + answers.Mood
	return ClassifyCondition(pooled), ClassifySleep(pooled), ClassifyMood(pooled)
}
