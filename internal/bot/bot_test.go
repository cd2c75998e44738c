package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/harulab/AibouCheck/internal/engine"
	"github.com/harulab/AibouCheck/internal/models"
	"github.com/harulab/AibouCheck/internal/session"
	"github.com/harulab/AibouCheck/internal/store"
)

// fakeMsgService records outgoing messages. The bot's handleMessage is
// driven directly so no channels are needed.
type fakeMsgService struct {
	sent []string
}

func (f *fakeMsgService) ValidateAndCanonicalizeRecipient(recipient string) (string, error) {
	return recipient, nil
}

func (f *fakeMsgService) SendMessage(ctx context.Context, to string, body string) error {
	f.sent = append(f.sent, body)
	return nil
}

func (f *fakeMsgService) Start(ctx context.Context) error { return nil }
func (f *fakeMsgService) Stop() error                     { return nil }

func (f *fakeMsgService) Receipts() <-chan models.Receipt   { return nil }
func (f *fakeMsgService) Responses() <-chan models.Response { return nil }

func (f *fakeMsgService) lastSent(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("no message was sent")
	}
	return f.sent[len(f.sent)-1]
}

func newTestBot() (*Bot, *fakeMsgService, *store.InMemoryStore, *session.MemoryStore) {
	msg := &fakeMsgService{}
	st := store.NewInMemoryStore()
	sessions := session.NewMemoryStore()
	b := New(
		WithEngine(engine.New()),
		WithStore(st),
		WithSessionStore(sessions),
		WithMessagingService(msg),
	)
	return b, msg, st, sessions
}

func deliver(b *Bot, from, body string) {
	b.handleMessage(context.Background(), models.Response{From: from, Body: body})
}

func TestFullCheckInFlowNewUser(t *testing.T) {
	ctx := context.Background()
	b, msg, st, sessions := newTestBot()

	deliver(b, "12345678", "体調チェック")
	if len(msg.sent) != 2 {
		t.Fatalf("sent %d messages after trigger, want guide + tone menu", len(msg.sent))
	}
	if !strings.Contains(msg.sent[0], "はじめまして") {
		t.Errorf("first message is not the guide: %q", msg.sent[0])
	}
	if !strings.Contains(msg.sent[1], models.ToneLabels[models.ToneCalmMale]) {
		t.Errorf("second message is not the tone menu: %q", msg.sent[1])
	}

	deliver(b, "12345678", "2")
	if !strings.Contains(msg.lastSent(t), "Q1.") {
		t.Errorf("expected first question after tone choice, got %q", msg.lastSent(t))
	}

	deliver(b, "12345678", "90分くらい")
	if !strings.Contains(msg.lastSent(t), "Q2.") {
		t.Errorf("expected second question, got %q", msg.lastSent(t))
	}
	deliver(b, "12345678", "特になし")
	deliver(b, "12345678", "ぐっすり寝た")
	deliver(b, "12345678", "楽しい気分")

	reply := msg.lastSent(t)
	if !strings.Contains(reply, "📊") {
		t.Errorf("final message is not a composed reply: %q", reply)
	}

	user, err := st.GetUser("12345678")
	if err != nil || user == nil {
		t.Fatalf("GetUser after check-in: rec=%v err=%v", user, err)
	}
	if user.Tone != models.ToneBrightGirl {
		t.Errorf("Tone = %s, want %s", user.Tone, models.ToneBrightGirl)
	}
	if !user.SeenGuide {
		t.Error("SeenGuide not recorded")
	}
	if user.Answers.Mood != "楽しい気分" {
		t.Errorf("Answers.Mood = %q, want final answer", user.Answers.Mood)
	}

	records, err := st.GetCheckRecords("12345678")
	if err != nil || len(records) != 1 {
		t.Fatalf("GetCheckRecords = %d records (err=%v), want 1", len(records), err)
	}
	if records[0].Reply != reply {
		t.Error("check record reply differs from the sent reply")
	}
	if records[0].ID == "" {
		t.Error("check record has no id")
	}

	sess, _ := sessions.Get(ctx, "12345678")
	if sess != nil {
		t.Errorf("session still present after completion: %+v", sess)
	}
}

func TestReturningUserSkipsGuideAndMenu(t *testing.T) {
	b, msg, st, _ := newTestBot()
	if err := st.MergeUser(models.UserRecord{
		UserID:    "111111",
		Tone:      models.ToneCoolGirl,
		SeenGuide: true,
	}); err != nil {
		t.Fatalf("MergeUser error: %v", err)
	}

	deliver(b, "111111", "たいちょう")
	if len(msg.sent) != 1 {
		t.Fatalf("sent %d messages, want only the first question", len(msg.sent))
	}
	if !strings.Contains(msg.sent[0], "Q1.") {
		t.Errorf("expected first question, got %q", msg.sent[0])
	}
}

func TestInvalidToneChoiceReprompts(t *testing.T) {
	ctx := context.Background()
	b, msg, _, sessions := newTestBot()

	deliver(b, "222222", "体調チェック")
	deliver(b, "222222", "9")

	if !strings.Contains(msg.lastSent(t), "1〜6") {
		t.Errorf("expected re-prompt, got %q", msg.lastSent(t))
	}
	sess, _ := sessions.Get(ctx, "222222")
	if sess == nil || sess.Mode != session.ModeChooseTone {
		t.Errorf("session = %+v, want still choosing tone", sess)
	}
}

func TestCancelMidFlow(t *testing.T) {
	ctx := context.Background()
	b, msg, _, sessions := newTestBot()

	deliver(b, "333333", "体調チェック")
	deliver(b, "333333", "1")
	deliver(b, "333333", "キャンセル")

	if !strings.Contains(msg.lastSent(t), "ここまで") {
		t.Errorf("expected cancellation message, got %q", msg.lastSent(t))
	}
	sess, _ := sessions.Get(ctx, "333333")
	if sess != nil {
		t.Errorf("session survived cancellation: %+v", sess)
	}
}

// A trigger phrase buried inside a longer sentence must not start a
// check-in.
func TestEmbeddedTriggerIgnored(t *testing.T) {
	b, msg, _, _ := newTestBot()
	deliver(b, "444444", "そろそろ体調チェックしようかな")
	if len(msg.sent) != 0 {
		t.Errorf("sent %d messages for a non-trigger, want 0", len(msg.sent))
	}
}

func TestToneChangeTrigger(t *testing.T) {
	b, msg, st, _ := newTestBot()
	if err := st.MergeUser(models.UserRecord{
		UserID:    "555555",
		Tone:      models.ToneGentleFemale,
		SeenGuide: true,
	}); err != nil {
		t.Fatalf("MergeUser error: %v", err)
	}

	deliver(b, "555555", "トーン変更")
	if !strings.Contains(msg.lastSent(t), models.ToneLabels[models.ToneStrictFemale]) {
		t.Errorf("expected tone menu, got %q", msg.lastSent(t))
	}

	deliver(b, "555555", "6")
	user, _ := st.GetUser("555555")
	if user.Tone != models.ToneCalmMale {
		t.Errorf("Tone = %s, want %s", user.Tone, models.ToneCalmMale)
	}
}
