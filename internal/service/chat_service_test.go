package service

import (
	"context"
	"errors"
	"testing"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/pkg/assistant/resolver"
	"shop-assistant-be/pkg/assistant/session"
)

type fakeTurnResolver struct {
	result *resolver.TurnResult
	err    error
	calls  int
}

func (f *fakeTurnResolver) HandleTurn(ctx context.Context, sessionID, message string) (*resolver.TurnResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeDeduper struct {
	claimed  map[string]bool
	releases []string
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{claimed: map[string]bool{}}
}

func (f *fakeDeduper) Claim(ctx context.Context, messageID string) bool {
	if f.claimed[messageID] {
		return false
	}
	f.claimed[messageID] = true
	return true
}

func (f *fakeDeduper) Release(ctx context.Context, messageID string) {
	f.releases = append(f.releases, messageID)
	delete(f.claimed, messageID)
}

type fakePublisher struct {
	published int
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.published++
	return nil
}

func newChatServiceUnderTest(res *fakeTurnResolver, deduper *fakeDeduper) (IChatService, *fakePublisher) {
	pub := &fakePublisher{}
	svc := NewChatService(res, session.NewLocker(), deduper, pub, logger.NewNoopLogger())
	return svc, pub
}

func TestHandleMessageDuplicateShortCircuits(t *testing.T) {
	res := &fakeTurnResolver{result: &resolver.TurnResult{Reply: "ok", Action: "search"}}
	deduper := newFakeDeduper()
	svc, _ := newChatServiceUnderTest(res, deduper)

	req := &dto.ChatMessageRequest{SessionId: "s1", Message: "buscar leite", MessageId: "m1"}

	first, err := svc.HandleMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if first.Duplicate {
		t.Fatal("first delivery flagged as duplicate")
	}

	second, err := svc.HandleMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleMessage() retry error = %v", err)
	}
	if !second.Duplicate {
		t.Error("redelivery of an answered message should be flagged duplicate")
	}
	if res.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", res.calls)
	}
}

func TestHandleMessageFailedTurnReleasesClaim(t *testing.T) {
	res := &fakeTurnResolver{err: errors.New("context store unavailable")}
	deduper := newFakeDeduper()
	svc, _ := newChatServiceUnderTest(res, deduper)

	req := &dto.ChatMessageRequest{SessionId: "s1", Message: "buscar leite", MessageId: "m1"}

	_, err := svc.HandleMessage(context.Background(), req)
	if err == nil {
		t.Fatal("expected the infrastructure error to propagate")
	}
	if len(deduper.releases) != 1 || deduper.releases[0] != "m1" {
		t.Fatalf("releases = %v, want the failed message id released", deduper.releases)
	}

	// The transport retry must now run the turn again, not be swallowed.
	res.err = nil
	res.result = &resolver.TurnResult{Reply: "ok", Action: "search"}
	resp, err := svc.HandleMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleMessage() retry error = %v", err)
	}
	if resp.Duplicate {
		t.Error("retry after a failed turn must not be treated as duplicate")
	}
	if res.calls != 2 {
		t.Errorf("resolver calls = %d, want 2", res.calls)
	}
}

func TestHandleMessageSuccessKeepsClaim(t *testing.T) {
	res := &fakeTurnResolver{result: &resolver.TurnResult{Reply: "ok", Action: "search"}}
	deduper := newFakeDeduper()
	svc, pub := newChatServiceUnderTest(res, deduper)

	req := &dto.ChatMessageRequest{SessionId: "s1", Message: "buscar leite", MessageId: "m1"}
	resp, err := svc.HandleMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if resp.Reply != "ok" {
		t.Errorf("reply = %q, want ok", resp.Reply)
	}
	if len(deduper.releases) != 0 {
		t.Errorf("releases = %v, want none on success", deduper.releases)
	}
	if pub.published != 1 {
		t.Errorf("published interactions = %d, want 1", pub.published)
	}
}
