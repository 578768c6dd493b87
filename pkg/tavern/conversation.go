// Package tavern orchestrates conversations between the player and an NPC:
// it sequences message evaluation, prompt compilation, the LLM call, ejection
// detection and the resulting side effects.
package tavern

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/evaluate"
	"github.com/tavernkeep/npc-engine/pkg/match"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/prompt"
)

// PromptHistoryLimit caps how many transcript messages are sent to the LLM.
const PromptHistoryLimit = 10

// DefaultEjectDelay is how long after an ejection line fires before the
// conversation is force-closed and the ban is made persistent. The pause
// lets the player read the NPC's parting words.
const DefaultEjectDelay = 4 * time.Second

// ErrConversationClosed is returned when a message is sent to a conversation
// that has ended, including one where ejection has already triggered.
var ErrConversationClosed = errors.New("conversation is closed")

// Conversation is one chat session between the player and an NPC.
type Conversation struct {
	ID         uuid.UUID      `json:"id"`
	NPCID      string         `json:"npc_id"`
	Transcript []chat.Message `json:"transcript"`
	Ejected    bool           `json:"ejected,omitempty"`
	Closed     bool           `json:"closed,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewConversation opens a session with an NPC. When the NPC has configured
// greetings, the first one seeds the transcript.
func NewConversation(c *npc.Character) *Conversation {
	now := time.Now()
	conv := &Conversation{
		ID:         uuid.New(),
		NPCID:      c.ID,
		Transcript: make([]chat.Message, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if len(c.Speech.Greetings) > 0 {
		conv.Transcript = append(conv.Transcript, chat.Message{
			Role:    chat.SpeakerNPC,
			Content: c.Speech.Greetings[0],
		})
	}
	return conv
}

// Responder is the narrow slice of the LLM service the orchestrator needs.
type Responder interface {
	Chat(ctx context.Context, messages []chat.Message) (string, error)
}

// EjectFunc runs the delayed terminal side effects of an ejection: closing
// the conversation and making the ban persistent. It is invoked exactly once
// per conversation, after the eject delay.
type EjectFunc func(conv *Conversation, c *npc.Character, phrase string)

// TurnResult is the outcome of one player message.
type TurnResult struct {
	Reply      string
	Evaluation evaluate.Result
	Ejection   bool // an ejection line fired this turn
}

// Engine runs conversation turns. One Engine serves all conversations. A
// single conversation never has overlapping turns in flight; callers disable
// input while a turn is outstanding.
type Engine struct {
	llm        Responder
	logger     *slog.Logger
	ejectDelay time.Duration
	onEject    EjectFunc
}

// NewEngine creates a conversation engine.
func NewEngine(llm Responder, logger *slog.Logger) *Engine {
	return &Engine{
		llm:        llm,
		logger:     logger,
		ejectDelay: DefaultEjectDelay,
	}
}

// WithEjectDelay overrides the delay before ejection side effects run.
// Returns the Engine for chaining.
func (e *Engine) WithEjectDelay(d time.Duration) *Engine {
	e.ejectDelay = d
	return e
}

// WithEjectFunc sets the callback that applies ejection side effects.
// Returns the Engine for chaining.
func (e *Engine) WithEjectFunc(fn EjectFunc) *Engine {
	e.onEject = fn
	return e
}

// fallbackLine returns the in-character line used when the LLM call fails.
// Alternating on transcript length keeps repeated failures from reading
// identically while staying deterministic.
func fallbackLine(c *npc.Character, transcriptLen int) string {
	if transcriptLen%2 == 0 {
		return fmt.Sprintf("*%s seems lost in thought*", c.Name())
	}
	return fmt.Sprintf("*%s looks confused*", c.Name())
}

// Turn processes one player message:
// append to transcript, run the skill-unlock check, evaluate and apply the
// relationship delta, call the LLM with the compiled prompt, append the
// reply, and scan for ejection when the NPC has that authority.
//
// An LLM transport failure never surfaces: the reply degrades to an
// in-character filler line and the transcript still advances.
func (e *Engine) Turn(ctx context.Context, conv *Conversation, c *npc.Character, message string) (*TurnResult, error) {
	if conv.Closed || conv.Ejected {
		return nil, ErrConversationClosed
	}

	conv.Transcript = append(conv.Transcript, chat.Message{
		Role:    chat.SpeakerPlayer,
		Content: message,
	})
	conv.UpdatedAt = time.Now()

	if len(c.SkillUnlockKeywords) > 0 && !c.SkillUnlocked {
		if match.NewPhrases(c.SkillUnlockKeywords).Contains(message) {
			c.UnlockSkill()
			e.logger.Info("Skill knowledge unlocked", "npc_id", c.ID)
		}
	}

	// Each player message is evaluated and applied exactly once, here.
	eval := evaluate.Evaluate(message, c)
	rel := c.Rel()
	rel.ApplyDelta(eval.TrustDelta, 0, eval.AffectionDelta, 0)
	rel.RecordInteraction()
	if eval.Note != "" {
		e.logger.Debug("Message evaluated",
			"npc_id", c.ID,
			"trust_delta", eval.TrustDelta,
			"affection_delta", eval.AffectionDelta,
			"note", eval.Note)
	}

	reply, err := e.llm.Chat(ctx, e.promptMessages(conv, c))
	if err != nil {
		e.logger.Warn("LLM call failed, degrading to fallback line",
			"npc_id", c.ID, "error", err)
		reply = fallbackLine(c, len(conv.Transcript))
	}

	conv.Transcript = append(conv.Transcript, chat.Message{
		Role:    chat.SpeakerNPC,
		Content: reply,
	})
	conv.UpdatedAt = time.Now()

	result := &TurnResult{
		Reply:      reply,
		Evaluation: eval,
	}

	if c.CanEject {
		if phrase, ok := DetectEjection(reply); ok {
			result.Ejection = true
			e.scheduleEjection(conv, c, phrase)
		}
	}

	return result, nil
}

// scheduleEjection arms the one-shot delayed terminal sequence. The Ejected
// flag is set synchronously, and Turn refuses ejected conversations, so the
// sequence can never be scheduled twice.
func (e *Engine) scheduleEjection(conv *Conversation, c *npc.Character, phrase string) {
	conv.Ejected = true
	e.logger.Info("Ejection triggered",
		"npc_id", c.ID,
		"conversation_id", conv.ID,
		"phrase", phrase)

	time.AfterFunc(e.ejectDelay, func() {
		conv.Closed = true
		c.Rel().Ban()
		if e.onEject != nil {
			e.onEject(conv, c, phrase)
		}
	})
}

// promptMessages assembles the wire messages for the LLM: the compiled
// system prompt followed by the most recent transcript window mapped to wire
// roles.
func (e *Engine) promptMessages(conv *Conversation, c *npc.Character) []chat.Message {
	history := conv.Transcript
	if len(history) > PromptHistoryLimit {
		history = history[len(history)-PromptHistoryLimit:]
	}

	messages := make([]chat.Message, 0, len(history)+1)
	messages = append(messages, chat.Message{
		Role:    chat.RoleSystem,
		Content: prompt.Compile(c),
	})
	for _, m := range history {
		messages = append(messages, chat.Message{
			Role:    chat.ToWireRole(m.Role),
			Content: m.Content,
		})
	}
	return messages
}
