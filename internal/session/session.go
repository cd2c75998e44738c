// Package session provides the per-user conversation session store.
//
// A session tracks where one user is inside the check-in dialogue
// (tone selection or one of the four questions) plus the answers
// collected so far. The store abstraction is injected into the bot so
// session state is never ambient module state; sessions are created on
// the trigger phrase and deleted on completion or cancellation.
package session

import (
	"context"
	"time"

	"github.com/harulab/AibouCheck/internal/models"
)

// Mode identifies where a session is in the dialogue.
type Mode string

const (
	// ModeChooseTone waits for a 1-6 persona menu choice.
	ModeChooseTone Mode = "choose_tone"
	// ModeAskPlayTime through ModeAskMood wait for the answer to the
	// corresponding survey question, in canonical order.
	ModeAskPlayTime  Mode = "ask_play_time"
	ModeAskCondition Mode = "ask_condition"
	ModeAskSleep     Mode = "ask_sleep"
	ModeAskMood      Mode = "ask_mood"
)

// Session is one user's in-flight dialogue state.
type Session struct {
	UserID    string           `json:"user_id"`
	Mode      Mode             `json:"mode"`
	Answers   models.AnswerSet `json:"answers"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store is the get/set/delete contract for session state. Get returns
// nil without error when the user has no active session.
type Store interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Set(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, userID string) error
}
