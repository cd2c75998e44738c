package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/harulab/AibouCheck/internal/models"
)

// fakeSender satisfies both the whatsapp and twilio Sender interfaces.
type fakeSender struct {
	to   []string
	body []string
	err  error
}

func (f *fakeSender) SendMessage(ctx context.Context, to string, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}

func TestWhatsAppValidateAndCanonicalizeRecipient(t *testing.T) {
	s := NewWhatsAppService(&fakeSender{})
	tests := []struct {
		name      string
		recipient string
		want      string
		wantErr   bool
	}{
		{"formatted number", "+81 90-1234-5678", "819012345678", false},
		{"bare digits", "819012345678", "819012345678", false},
		{"empty", "", "", true},
		{"no digits", "abc", "", true},
		{"too short", "12345", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ValidateAndCanonicalizeRecipient(tt.recipient)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("canonical = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhatsAppSendMessageEmitsReceipt(t *testing.T) {
	sender := &fakeSender{}
	s := NewWhatsAppService(sender)

	if err := s.SendMessage(context.Background(), "+81 90-1234-5678", "hello"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if len(sender.to) != 1 || sender.to[0] != "819012345678" {
		t.Errorf("sender received %v, want canonicalized recipient", sender.to)
	}

	select {
	case receipt := <-s.Receipts():
		if receipt.Status != models.StatusTypeSent || receipt.To != "819012345678" {
			t.Errorf("receipt = %+v, want sent receipt", receipt)
		}
	default:
		t.Error("no receipt emitted")
	}
}

func TestWhatsAppSendMessageErrorPropagates(t *testing.T) {
	sendErr := errors.New("boom")
	s := NewWhatsAppService(&fakeSender{err: sendErr})
	if err := s.SendMessage(context.Background(), "819012345678", "hello"); !errors.Is(err, sendErr) {
		t.Errorf("err = %v, want %v", err, sendErr)
	}
}

func TestTwilioServiceStoppedRejectsSends(t *testing.T) {
	s := NewTwilioService(&fakeSender{})
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if err := s.SendMessage(context.Background(), "819012345678", "hello"); !errors.Is(err, models.ErrServiceStopped) {
		t.Errorf("err = %v, want %v", err, models.ErrServiceStopped)
	}
	// Stop must be idempotent.
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop error: %v", err)
	}
}

func TestTwilioInjectResponse(t *testing.T) {
	s := NewTwilioService(&fakeSender{})
	s.InjectResponse(models.Response{From: "819012345678", Body: "check", Time: 1})

	select {
	case resp := <-s.Responses():
		if resp.From != "819012345678" || resp.Body != "check" {
			t.Errorf("response = %+v", resp)
		}
	default:
		t.Error("no response injected")
	}
}

func TestTwilioInjectResponseAfterStop(t *testing.T) {
	s := NewTwilioService(&fakeSender{})
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	// Must not panic on the closed channel.
	s.InjectResponse(models.Response{From: "819012345678", Body: "late"})
}
