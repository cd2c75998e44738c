// Package models defines the core data structures for AibouCheck.
//
// It includes the tone (persona) identifiers, the four-answer survey
// record, classification tags, messaging events, and the persisted
// per-user and check-log records shared across modules.
package models

import (
	"errors"
	"time"
)

// Tone identifies one of the six fixed response personas. A tone only
// affects phrasing, never classification logic.
type Tone string

const (
	ToneGentleFemale   Tone = "gentle_female"
	ToneBrightGirl     Tone = "bright_girl"
	ToneCheerfulFriend Tone = "cheerful_friend"
	ToneCoolGirl       Tone = "cool_girl"
	ToneStrictFemale   Tone = "strict_female"
	ToneCalmMale       Tone = "calm_male"
)

// DefaultTone is used whenever a tone id is unknown or unset.
const DefaultTone = ToneGentleFemale

// AllTones lists the valid tones in menu order (1-6).
var AllTones = []Tone{
	ToneGentleFemale,
	ToneBrightGirl,
	ToneCheerfulFriend,
	ToneCoolGirl,
	ToneStrictFemale,
	ToneCalmMale,
}

// ToneLabels maps each tone to its user-facing Japanese label.
var ToneLabels = map[Tone]string{
	ToneGentleFemale:   "やさしい女性",
	ToneBrightGirl:     "明るい女の子",
	ToneCheerfulFriend: "気さくで快活な女子",
	ToneCoolGirl:       "クールな女性",
	ToneStrictFemale:   "厳しめの女性",
	ToneCalmMale:       "落ち着いた男性",
}

// IsValidTone checks whether the given tone is one of the six personas.
func IsValidTone(t Tone) bool {
	_, ok := ToneLabels[t]
	return ok
}

// ToneFromChoice resolves a numbered menu choice ("1".."6") to a tone.
func ToneFromChoice(choice string) (Tone, bool) {
	switch choice {
	case "1":
		return ToneGentleFemale, true
	case "2":
		return ToneBrightGirl, true
	case "3":
		return ToneCheerfulFriend, true
	case "4":
		return ToneCoolGirl, true
	case "5":
		return ToneStrictFemale, true
	case "6":
		return ToneCalmMale, true
	}
	return "", false
}

// AnswerSet holds the four free-text survey answers in canonical
// semantic order: play time, condition, sleep, mood.
type AnswerSet struct {
	PlayTime  string `json:"play_time"`
	Condition string `json:"condition"`
	Sleep     string `json:"sleep"`
	Mood      string `json:"mood"`
}

// Slice returns the answers in canonical order for per-answer passes.
func (a AnswerSet) Slice() [4]string {
	return [4]string{a.PlayTime, a.Condition, a.Sleep, a.Mood}
}

// PlayTimeTag classifies the extracted play duration.
type PlayTimeTag string

const (
	PlayTimeShort    PlayTimeTag = "short"
	PlayTimeNormal   PlayTimeTag = "normal"
	PlayTimeLong     PlayTimeTag = "long"
	PlayTimeVeryLong PlayTimeTag = "very_long"
)

// ConditionTag classifies the physical-condition answer.
type ConditionTag string

const (
	ConditionPain     ConditionTag = "pain"
	ConditionEye      ConditionTag = "eye"
	ConditionPosture  ConditionTag = "posture"
	ConditionFatigue  ConditionTag = "fatigue"
	ConditionPositive ConditionTag = "positive"
	ConditionNeutral  ConditionTag = "neutral"
)

// SleepTag classifies the sleep answer.
type SleepTag string

const (
	SleepNegative SleepTag = "negative"
	SleepPositive SleepTag = "positive"
	SleepNeutral  SleepTag = "neutral"
)

// MoodTag classifies the mood answer.
type MoodTag string

const (
	MoodNegative MoodTag = "negative"
	MoodPositive MoodTag = "positive"
	MoodNeutral  MoodTag = "neutral"
)

// AmbiguityTag classifies hedging or uncertain phrasing in a single
// answer. It is a separate axis from the condition/sleep/mood tags and
// only decides whether a supplemental remark is requested.
type AmbiguityTag string

const (
	AmbiguityNeutral   AmbiguityTag = "neutral"
	AmbiguityUncertain AmbiguityTag = "uncertain"
	AmbiguityMildNeg   AmbiguityTag = "mild_neg"
	AmbiguityStrongNeg AmbiguityTag = "strong_neg"
)

// UserRecord is the durable per-user document: chosen tone, whether the
// first-contact guide was delivered, and the latest four answers.
type UserRecord struct {
	UserID    string    `json:"user_id" bson:"_id"`
	Tone      Tone      `json:"tone,omitempty" bson:"tone,omitempty"`
	SeenGuide bool      `json:"seen_guide,omitempty" bson:"seen_guide,omitempty"`
	Answers   AnswerSet `json:"answers" bson:"answers"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CheckRecord is one append-only log entry for a completed check-in.
type CheckRecord struct {
	ID      string    `json:"id" bson:"_id"`
	UserID  string    `json:"user_id" bson:"user_id"`
	Tone    Tone      `json:"tone" bson:"tone"`
	Answers AnswerSet `json:"answers" bson:"answers"`
	Reply   string    `json:"reply" bson:"reply"`
	Time    time.Time `json:"time" bson:"time"`
}

// StatusType represents a message delivery status.
type StatusType string

const (
	StatusTypeSent      StatusType = "sent"
	StatusTypeDelivered StatusType = "delivered"
	StatusTypeRead      StatusType = "read"
	StatusTypeFailed    StatusType = "failed"
)

// Receipt records a delivery status event for an outgoing message.
type Receipt struct {
	To     string     `json:"to"`
	Status StatusType `json:"status"`
	Time   int64      `json:"time"`
}

// Response represents an incoming message from a user.
type Response struct {
	From string `json:"from"`
	Body string `json:"body"`
	Time int64  `json:"time"`
}

// Error variables shared across modules.
var (
	ErrEmptyRecipient  = errors.New("recipient cannot be empty")
	ErrEmptyBody       = errors.New("message body cannot be empty")
	ErrUnknownTone     = errors.New("unknown tone id")
	ErrStoreNotReady   = errors.New("store not initialized")
	ErrServiceStopped  = errors.New("messaging service stopped")
	ErrSessionNotFound = errors.New("session not found")
)
