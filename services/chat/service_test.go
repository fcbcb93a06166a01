package chat

import (
	"context"
	"errors"
	"testing"
)

type fakeRelay struct {
	reply       string
	err         error
	seenHistory [][]Message
}

func (f *fakeRelay) Reply(_ context.Context, history []Message, _ string) (string, error) {
	snapshot := make([]Message, len(history))
	copy(snapshot, history)
	f.seenHistory = append(f.seenHistory, snapshot)
	return f.reply, f.err
}

func TestSendRecordsBothTurns(t *testing.T) {
	relay := &fakeRelay{reply: "Guten Morgen! (早上好)"}
	svc := NewService(nil, relay)
	ctx := context.Background()

	session := svc.NewSessionID()
	got := svc.Send(ctx, session, "早上好怎么说")
	if got != relay.reply {
		t.Fatalf("expected relay reply, got %q", got)
	}

	// The second send must carry the first exchange as history.
	svc.Send(ctx, session, "Danke")
	if len(relay.seenHistory) != 2 {
		t.Fatalf("expected 2 relay calls, got %d", len(relay.seenHistory))
	}
	if len(relay.seenHistory[0]) != 0 {
		t.Fatalf("first call should see no history, got %d", len(relay.seenHistory[0]))
	}
	second := relay.seenHistory[1]
	if len(second) != 2 || second[0].Text != "早上好怎么说" || second[1].Text != relay.reply {
		t.Fatalf("unexpected history on second call: %+v", second)
	}
}

func TestSendSessionsAreIsolated(t *testing.T) {
	relay := &fakeRelay{reply: "ok"}
	svc := NewService(nil, relay)
	ctx := context.Background()

	a := svc.NewSessionID()
	b := svc.NewSessionID()
	if a == b {
		t.Fatal("expected distinct session ids")
	}

	svc.Send(ctx, a, "erste")
	svc.Send(ctx, b, "zweite")
	if len(relay.seenHistory) != 2 {
		t.Fatalf("expected 2 relay calls, got %d", len(relay.seenHistory))
	}
	if len(relay.seenHistory[1]) != 0 {
		t.Fatalf("session b must not see session a's history, got %d messages", len(relay.seenHistory[1]))
	}
}

func TestSendFallsBackOnRelayError(t *testing.T) {
	relay := &fakeRelay{err: errors.New("upstream down")}
	svc := NewService(nil, relay)
	ctx := context.Background()

	session := svc.NewSessionID()
	if got := svc.Send(ctx, session, "Hallo"); got != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", got)
	}

	// A failed turn leaves the history untouched.
	history, err := svc.store.History(ctx, session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected no history after a failed turn, got %d", len(history))
	}
}

func TestEndSession(t *testing.T) {
	relay := &fakeRelay{reply: "ok"}
	svc := NewService(nil, relay)
	ctx := context.Background()

	session := svc.NewSessionID()
	svc.Send(ctx, session, "Hallo")
	if err := svc.EndSession(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history, err := svc.store.History(ctx, session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected history cleared after end, got %d", len(history))
	}
}
