package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

// TurnState is the lifecycle of one conversation turn.
type TurnState string

const (
	TurnIdle               TurnState = "idle"
	TurnAwaitingFirstChunk TurnState = "awaiting-first-chunk"
	TurnStreaming          TurnState = "streaming"
	TurnComplete           TurnState = "complete"
	TurnErrored            TurnState = "errored"
)

func (s TurnState) String() string {
	return string(s)
}

// apologyReply replaces the assistant content when a turn fails. Fixed text,
// same as the dashboard's chat panel.
const apologyReply = "Sorry, there was an error processing your request. Please try again."

// StreamFunc delivers an assistant reply incrementally. onChunk receives
// fragments in arrival order; the assembled text is returned at the end.
type StreamFunc func(ctx context.Context, question string, onChunk func(chunk string)) (string, error)

// UpdateFunc observes every message-list mutation, including per-chunk
// content updates of the streaming assistant message.
type UpdateFunc func(messages []domain.Message)

// Session holds one conversation: an append-only ordered message list where
// only the currently streaming assistant message is mutated in place. At
// most one turn streams at a time.
type Session struct {
	stream   StreamFunc
	onUpdate UpdateFunc
	logger   *zap.Logger

	mu       sync.Mutex
	id       string
	messages []domain.Message
	state    TurnState
	nextID   int

	// now is swappable for tests.
	now func() time.Time
}

func NewSession(id string, stream StreamFunc, onUpdate UpdateFunc, logger *zap.Logger) *Session {
	return &Session{
		stream:   stream,
		onUpdate: onUpdate,
		logger:   logger,
		id:       id,
		state:    TurnIdle,
		nextID:   1,
		now:      time.Now,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() TurnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a snapshot of the conversation.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) notifyLocked() {
	if s.onUpdate == nil {
		return
	}
	s.onUpdate(s.snapshotLocked())
}

func (s *Session) newMessageIDLocked() string {
	id := fmt.Sprintf("%s-%d", s.id, s.nextID)
	s.nextID++
	return id
}

// Send runs one full turn: append the user message, stream the assistant
// reply into a placeholder, and settle the turn as complete or errored. The
// user message is immutable once appended; the assistant content is replaced
// with the cumulative decoded text on every chunk. Send never fails on
// transport errors - those settle the turn with the apology reply - but it
// rejects a second turn while one is in flight.
func (s *Session) Send(ctx context.Context, question string) (domain.Message, error) {
	s.mu.Lock()
	if s.state == TurnAwaitingFirstChunk || s.state == TurnStreaming {
		s.mu.Unlock()
		return domain.Message{}, fmt.Errorf("a turn is already in progress")
	}

	timestamp := domain.FormatTimestamp(s.now())
	s.messages = append(s.messages, domain.Message{
		ID:        s.newMessageIDLocked(),
		Role:      domain.RoleUser,
		Content:   question,
		Timestamp: timestamp,
	})

	assistantID := s.newMessageIDLocked()
	s.messages = append(s.messages, domain.Message{
		ID:          assistantID,
		Role:        domain.RoleAssistant,
		Content:     "",
		Timestamp:   timestamp,
		IsStreaming: true,
	})
	assistantIdx := len(s.messages) - 1
	s.state = TurnAwaitingFirstChunk
	s.notifyLocked()
	s.mu.Unlock()

	var accumulated string
	full, err := s.stream(ctx, question, func(chunk string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		accumulated += chunk
		s.state = TurnStreaming
		s.messages[assistantIdx].Content = accumulated
		s.notifyLocked()
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Chat turn failed", zap.String("session", s.id), zap.Error(err))
		s.messages[assistantIdx].Content = apologyReply
		s.messages[assistantIdx].IsStreaming = false
		s.state = TurnErrored
		s.notifyLocked()
		return s.messages[assistantIdx], nil
	}

	s.messages[assistantIdx].Content = full
	s.messages[assistantIdx].IsStreaming = false
	s.state = TurnComplete
	s.notifyLocked()
	return s.messages[assistantIdx], nil
}

// Conversation exports the session for the conversation picker, deriving
// title and preview from the first and last message.
func (s *Session) Conversation() domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := domain.Conversation{
		ID:       s.id,
		Date:     "Just now",
		Messages: s.snapshotLocked(),
	}
	conv.DeriveMeta()
	return conv
}
