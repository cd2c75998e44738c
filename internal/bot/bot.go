// Package bot drives the check-in dialogue over a messaging service.
//
// The bot consumes incoming responses, walks each user through tone
// selection and the four survey questions, and hands the completed
// answer set to the engine. Messages from different users are handled
// concurrently; messages from the same user are handled strictly in
// arrival order.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harulab/AibouCheck/internal/engine"
	"github.com/harulab/AibouCheck/internal/messaging"
	"github.com/harulab/AibouCheck/internal/models"
	"github.com/harulab/AibouCheck/internal/session"
	"github.com/harulab/AibouCheck/internal/store"
)

// DefaultUserQueueSize bounds the per-user pending message queue.
const DefaultUserQueueSize = 16

// Opts holds configuration options for the bot.
type Opts struct {
	Engine   *engine.Engine
	Store    store.Store
	Sessions session.Store
	Msg      messaging.Service
}

// Option defines a configuration option for the bot.
type Option func(*Opts)

// WithEngine sets the reply engine.
func WithEngine(e *engine.Engine) Option {
	return func(o *Opts) { o.Engine = e }
}

// WithStore sets the durable user/check-record store.
func WithStore(s store.Store) Option {
	return func(o *Opts) { o.Store = s }
}

// WithSessionStore sets the per-user session store.
func WithSessionStore(s session.Store) Option {
	return func(o *Opts) { o.Sessions = s }
}

// WithMessagingService sets the message transport.
func WithMessagingService(m messaging.Service) Option {
	return func(o *Opts) { o.Msg = m }
}

// Bot routes incoming messages through the check-in dialogue.
type Bot struct {
	engine   *engine.Engine
	store    store.Store
	sessions session.Store
	msg      messaging.Service

	mu     sync.Mutex
	queues map[string]chan models.Response
	wg     sync.WaitGroup
}

// New creates a bot. Engine, store, session store and messaging
// service must all be provided.
func New(opts ...Option) *Bot {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bot{
		engine:   cfg.Engine,
		store:    cfg.Store,
		sessions: cfg.Sessions,
		msg:      cfg.Msg,
		queues:   make(map[string]chan models.Response),
	}
}

// Start launches the dispatch loops. It returns immediately; the loops
// run until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.msg.Start(ctx); err != nil {
		return err
	}
	b.wg.Add(2)
	go b.dispatchResponses(ctx)
	go b.drainReceipts(ctx)
	slog.Info("Bot started")
	return nil
}

// Wait blocks until the dispatch loops and all per-user workers exit.
func (b *Bot) Wait() {
	b.wg.Wait()
}

// dispatchResponses fans incoming messages out to per-user queues so
// one user's messages stay ordered while users proceed in parallel.
func (b *Bot) dispatchResponses(ctx context.Context) {
	defer b.wg.Done()
	for {
		select {
		case <-ctx.Done():
			b.closeQueues()
			return
		case resp, ok := <-b.msg.Responses():
			if !ok {
				b.closeQueues()
				return
			}
			if resp.From == "" || resp.Body == "" {
				slog.Debug("Bot ignoring empty response", "from", resp.From)
				continue
			}
			b.enqueue(ctx, resp)
		}
	}
}

func (b *Bot) enqueue(ctx context.Context, resp models.Response) {
	b.mu.Lock()
	queue, ok := b.queues[resp.From]
	if !ok {
		queue = make(chan models.Response, DefaultUserQueueSize)
		b.queues[resp.From] = queue
		b.wg.Add(1)
		go b.userWorker(ctx, resp.From, queue)
	}
	b.mu.Unlock()

	select {
	case queue <- resp:
	default:
		slog.Warn("Bot user queue full, dropping message", "from", resp.From)
	}
}

func (b *Bot) closeQueues() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, queue := range b.queues {
		close(queue)
	}
	b.queues = make(map[string]chan models.Response)
}

// userWorker processes one user's messages strictly in order.
func (b *Bot) userWorker(ctx context.Context, userID string, queue <-chan models.Response) {
	defer b.wg.Done()
	for resp := range queue {
		b.handleMessage(ctx, resp)
	}
	slog.Debug("Bot user worker stopped", "user", userID)
}

// drainReceipts logs delivery status events. Receipts do not affect
// the dialogue but leaving the channel undrained would stall the
// transport.
func (b *Bot) drainReceipts(ctx context.Context) {
	defer b.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case receipt, ok := <-b.msg.Receipts():
			if !ok {
				return
			}
			slog.Debug("Bot delivery receipt", "to", receipt.To, "status", receipt.Status)
		}
	}
}

// handleMessage advances one user's dialogue by one step.
func (b *Bot) handleMessage(ctx context.Context, resp models.Response) {
	sess, err := b.sessions.Get(ctx, resp.From)
	if err != nil {
		slog.Error("Bot failed to load session", "error", err, "user", resp.From)
		return
	}

	if sess != nil && matchesAny(resp.Body, cancelTriggers) {
		if err := b.sessions.Delete(ctx, resp.From); err != nil {
			slog.Error("Bot failed to delete session", "error", err, "user", resp.From)
		}
		b.send(ctx, resp.From, cancelledText)
		return
	}

	if sess == nil {
		b.handleIdleMessage(ctx, resp)
		return
	}

	switch sess.Mode {
	case session.ModeChooseTone:
		b.handleToneChoice(ctx, resp, sess)
	case session.ModeAskPlayTime, session.ModeAskCondition, session.ModeAskSleep:
		b.handleAnswer(ctx, resp, sess)
	case session.ModeAskMood:
		b.completeCheckIn(ctx, resp, sess)
	default:
		slog.Warn("Bot session in unknown mode, resetting", "user", resp.From, "mode", sess.Mode)
		if err := b.sessions.Delete(ctx, resp.From); err != nil {
			slog.Error("Bot failed to delete session", "error", err, "user", resp.From)
		}
	}
}

// handleIdleMessage handles a message from a user with no active
// session. Anything that is not a trigger phrase is ignored.
func (b *Bot) handleIdleMessage(ctx context.Context, resp models.Response) {
	switch {
	case matchesAny(resp.Body, checkTriggers):
		b.startCheckIn(ctx, resp.From)
	case matchesAny(resp.Body, toneChangeTriggers):
		b.startToneSelection(ctx, resp.From)
	default:
		slog.Debug("Bot ignoring message outside any dialogue", "from", resp.From)
	}
}

// startCheckIn begins a check-in: first-contact guide if needed, then
// tone selection for users without a tone, then the first question.
func (b *Bot) startCheckIn(ctx context.Context, userID string) {
	user, err := b.store.GetUser(userID)
	if err != nil {
		slog.Error("Bot failed to load user record", "error", err, "user", userID)
		return
	}

	if user == nil || !user.SeenGuide {
		b.send(ctx, userID, guideText)
		if err := b.store.MergeUser(models.UserRecord{UserID: userID, SeenGuide: true}); err != nil {
			slog.Error("Bot failed to record guide delivery", "error", err, "user", userID)
		}
	}

	if user == nil || user.Tone == "" {
		b.startToneSelection(ctx, userID)
		return
	}

	b.askFirstQuestion(ctx, userID)
}

// startToneSelection opens the persona menu and waits for a choice.
func (b *Bot) startToneSelection(ctx context.Context, userID string) {
	sess := &session.Session{UserID: userID, Mode: session.ModeChooseTone, UpdatedAt: time.Now()}
	if err := b.sessions.Set(ctx, sess); err != nil {
		slog.Error("Bot failed to save session", "error", err, "user", userID)
		return
	}
	b.send(ctx, userID, toneMenuText())
}

func (b *Bot) askFirstQuestion(ctx context.Context, userID string) {
	sess := &session.Session{UserID: userID, Mode: session.ModeAskPlayTime, UpdatedAt: time.Now()}
	if err := b.sessions.Set(ctx, sess); err != nil {
		slog.Error("Bot failed to save session", "error", err, "user", userID)
		return
	}
	b.send(ctx, userID, questionTexts[0])
}

// handleToneChoice processes a numbered menu reply. An unrecognized
// choice re-prompts the menu without losing the session.
func (b *Bot) handleToneChoice(ctx context.Context, resp models.Response, sess *session.Session) {
	tone, ok := models.ToneFromChoice(trimBody(resp.Body))
	if !ok {
		b.send(ctx, resp.From, "1〜6の番号で教えてね。\n"+toneMenuText())
		return
	}

	if err := b.store.MergeUser(models.UserRecord{UserID: resp.From, Tone: tone}); err != nil {
		slog.Error("Bot failed to save tone", "error", err, "user", resp.From)
	}
	b.send(ctx, resp.From, toneChosenText(tone))
	b.askFirstQuestion(ctx, resp.From)
}

// handleAnswer records an answer for Q1-Q3 and asks the next question.
func (b *Bot) handleAnswer(ctx context.Context, resp models.Response, sess *session.Session) {
	answer := trimBody(resp.Body)
	switch sess.Mode {
	case session.ModeAskPlayTime:
		sess.Answers.PlayTime = answer
		sess.Mode = session.ModeAskCondition
		b.saveAndAsk(ctx, sess, questionTexts[1])
	case session.ModeAskCondition:
		sess.Answers.Condition = answer
		sess.Mode = session.ModeAskSleep
		b.saveAndAsk(ctx, sess, questionTexts[2])
	case session.ModeAskSleep:
		sess.Answers.Sleep = answer
		sess.Mode = session.ModeAskMood
		b.saveAndAsk(ctx, sess, questionTexts[3])
	}
}

func (b *Bot) saveAndAsk(ctx context.Context, sess *session.Session, question string) {
	sess.UpdatedAt = time.Now()
	if err := b.sessions.Set(ctx, sess); err != nil {
		slog.Error("Bot failed to save session", "error", err, "user", sess.UserID)
		return
	}
	b.send(ctx, sess.UserID, question)
}

// completeCheckIn records the final answer, composes the reply, sends
// it, and persists the completed check-in.
func (b *Bot) completeCheckIn(ctx context.Context, resp models.Response, sess *session.Session) {
	sess.Answers.Mood = trimBody(resp.Body)

	tone := models.DefaultTone
	user, err := b.store.GetUser(resp.From)
	if err != nil {
		slog.Error("Bot failed to load user record, using default tone", "error", err, "user", resp.From)
	} else if user != nil && models.IsValidTone(user.Tone) {
		tone = user.Tone
	}

	reply := b.engine.GenerateHealthReply(ctx, tone, sess.Answers)
	b.send(ctx, resp.From, reply)

	if err := b.store.MergeUser(models.UserRecord{UserID: resp.From, Answers: sess.Answers}); err != nil {
		slog.Error("Bot failed to save answers", "error", err, "user", resp.From)
	}
	record := models.CheckRecord{
		ID:      uuid.NewString(),
		UserID:  resp.From,
		Tone:    tone,
		Answers: sess.Answers,
		Reply:   reply,
		Time:    time.Now(),
	}
	if err := b.store.AddCheckRecord(record); err != nil {
		slog.Error("Bot failed to append check record", "error", err, "user", resp.From)
	}
	if err := b.sessions.Delete(ctx, resp.From); err != nil {
		slog.Error("Bot failed to delete session", "error", err, "user", resp.From)
	}
	slog.Info("Check-in completed", "user", resp.From, "tone", tone)
}

func (b *Bot) send(ctx context.Context, to string, body string) {
	if err := b.msg.SendMessage(ctx, to, body); err != nil {
		slog.Error("Bot failed to send message", "error", err, "to", to)
	}
}

func trimBody(body string) string {
	return strings.TrimSpace(body)
}
