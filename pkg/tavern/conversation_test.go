package tavern

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
)

// responderFunc adapts a function to the Responder interface.
type responderFunc func(ctx context.Context, messages []chat.Message) (string, error)

func (f responderFunc) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	return f(ctx, messages)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func keeper() *npc.Character {
	return &npc.Character{
		ID:       "greta",
		Map:      "eastmarch",
		Location: "gilded_boar",
		CanEject: true,
		Background: npc.Background{
			Name:       "Greta",
			Occupation: "tavern keeper",
			Backstory:  "Twenty years behind the bar.",
		},
		Behavior: npc.BehavioralRules{
			Dealbreakers: []string{"threaten your family"},
		},
		Speech: npc.SpeechPatterns{
			Greetings: []string{"What'll it be?"},
		},
		Relationship: relationship.New(),
	}
}

func TestNewConversation_SeedsGreeting(t *testing.T) {
	conv := NewConversation(keeper())
	if len(conv.Transcript) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(conv.Transcript))
	}
	if conv.Transcript[0].Role != chat.SpeakerNPC {
		t.Errorf("greeting role = %q, want npc", conv.Transcript[0].Role)
	}
	if conv.Transcript[0].Content != "What'll it be?" {
		t.Errorf("greeting = %q", conv.Transcript[0].Content)
	}
}

func TestTurn_HappyPath(t *testing.T) {
	c := keeper()
	conv := NewConversation(c)
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		if messages[0].Role != chat.RoleSystem {
			t.Error("first wire message should be the compiled system prompt")
		}
		return "Aye, the ale's fresh.", nil
	}), testLogger())

	result, err := engine.Turn(context.Background(), conv, c, "got any ale?")
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if result.Reply != "Aye, the ale's fresh." {
		t.Errorf("reply = %q", result.Reply)
	}
	if len(conv.Transcript) != 3 {
		t.Errorf("transcript length = %d, want greeting + player + npc", len(conv.Transcript))
	}
	if c.Relationship.Interactions != 1 {
		t.Errorf("interactions = %d, want 1", c.Relationship.Interactions)
	}
}

func TestTurn_AppliesEvaluationOnce(t *testing.T) {
	c := keeper()
	conv := NewConversation(c)
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "Hmph.", nil
	}), testLogger())

	before := c.Relationship.Affection
	result, err := engine.Turn(context.Background(), conv, c, "please, thank you kindly")
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if result.Evaluation.AffectionDelta != 4 {
		t.Errorf("evaluation affection delta = %d, want 4", result.Evaluation.AffectionDelta)
	}
	if c.Relationship.Affection != before+4 {
		t.Errorf("affection = %d, want %d: delta applied exactly once",
			c.Relationship.Affection, before+4)
	}
}

func TestTurn_TransportFailureDegrades(t *testing.T) {
	c := keeper()
	conv := NewConversation(c)
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", errors.New("connection refused")
	}), testLogger())

	result, err := engine.Turn(context.Background(), conv, c, "hello?")
	if err != nil {
		t.Fatalf("transport failure must not surface, got %v", err)
	}
	if !strings.Contains(result.Reply, "Greta") {
		t.Errorf("fallback line should stay in character, got %q", result.Reply)
	}
	if len(conv.Transcript) != 3 {
		t.Errorf("transcript length = %d, transcript must still advance", len(conv.Transcript))
	}
}

func TestTurn_EjectionFiresOnce(t *testing.T) {
	c := keeper()
	conv := NewConversation(c)

	var ejections atomic.Int32
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "That's it. Get out of my tavern!", nil
	}), testLogger()).
		WithEjectDelay(10 * time.Millisecond).
		WithEjectFunc(func(conv *Conversation, c *npc.Character, phrase string) {
			ejections.Add(1)
		})

	result, err := engine.Turn(context.Background(), conv, c, "your ale is piss")
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if !result.Ejection {
		t.Fatal("ejection should have triggered")
	}
	if !conv.Ejected {
		t.Error("conversation should be flagged ejected")
	}

	// Further sends are suppressed once ejection has triggered, so a second
	// qualifying response can never schedule the sequence twice.
	if _, err := engine.Turn(context.Background(), conv, c, "wait, I'm sorry!"); !errors.Is(err, ErrConversationClosed) {
		t.Errorf("Turn() after ejection = %v, want ErrConversationClosed", err)
	}

	time.Sleep(50 * time.Millisecond)
	if got := ejections.Load(); got != 1 {
		t.Errorf("ejection side effect ran %d times, want exactly 1", got)
	}
	if !conv.Closed {
		t.Error("conversation should be closed after the delay")
	}
	if c.Relationship.Status != relationship.StatusBanned {
		t.Errorf("status = %s, want banned", c.Relationship.Status)
	}
}

func TestTurn_NoEjectionWithoutAuthority(t *testing.T) {
	c := keeper()
	c.CanEject = false
	conv := NewConversation(c)
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "Get out of my tavern!", nil
	}), testLogger())

	result, err := engine.Turn(context.Background(), conv, c, "hello")
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if result.Ejection {
		t.Error("ejection scan must only run for NPCs with authority")
	}
}

func TestTurn_SkillUnlockIsOneWay(t *testing.T) {
	c := keeper()
	c.SkillUnlockKeywords = []string{"sword forms", "blade work"}
	conv := NewConversation(c)
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "Aye.", nil
	}), testLogger())

	if _, err := engine.Turn(context.Background(), conv, c, "teach me the sword forms"); err != nil {
		t.Fatal(err)
	}
	if !c.SkillUnlocked {
		t.Fatal("skill should unlock on keyword match")
	}

	if _, err := engine.Turn(context.Background(), conv, c, "nothing relevant"); err != nil {
		t.Fatal(err)
	}
	if !c.SkillUnlocked {
		t.Error("skill unlock flag must never reset")
	}
}

func TestTurn_HistoryWindow(t *testing.T) {
	c := keeper()
	conv := NewConversation(c)
	for i := 0; i < 20; i++ {
		conv.Transcript = append(conv.Transcript, chat.Message{
			Role:    chat.SpeakerPlayer,
			Content: "filler",
		})
	}

	var wireCount int
	engine := NewEngine(responderFunc(func(ctx context.Context, messages []chat.Message) (string, error) {
		wireCount = len(messages)
		return "Aye.", nil
	}), testLogger())

	if _, err := engine.Turn(context.Background(), conv, c, "latest"); err != nil {
		t.Fatal(err)
	}
	// System prompt plus at most the last 10 transcript messages.
	if wireCount != PromptHistoryLimit+1 {
		t.Errorf("wire messages = %d, want %d", wireCount, PromptHistoryLimit+1)
	}
}

func TestDetectEjection(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"direct order", "Get out of my tavern, now!", true},
		{"not welcome", "You're not welcome here anymore.", true},
		{"case insensitive", "LEAVE MY TAVERN", true},
		{"banned", "That's it. You're banned.", true},
		{"ordinary reply", "The stew is two coppers.", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := DetectEjection(tt.reply)
			if got != tt.want {
				t.Errorf("DetectEjection(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}
