package domain

import (
	"time"

	"github.com/nmoreaux/instalens-go/internal/util"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) String() string {
	return string(r)
}

// ChatMode selects the assistant persona, both for the backend prompt and
// for the local fallback reply.
type ChatMode string

const (
	ModeContentAnalysis ChatMode = "content_analysis"
	ModeMonetization    ChatMode = "monetization"
	ModeStrategy        ChatMode = "strategy"
	ModeAudience        ChatMode = "audience"
)

func (m ChatMode) String() string {
	return string(m)
}

func (m ChatMode) IsValid() bool {
	switch m {
	case ModeContentAnalysis, ModeMonetization, ModeStrategy, ModeAudience:
		return true
	default:
		return false
	}
}

// Message is one entry of a conversation. Content of a streaming assistant
// message is mutated in place until the stream closes; everything else is
// immutable once appended.
type Message struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
	IsStreaming bool   `json:"isStreaming,omitempty"`
}

// Conversation is an ordered message list with display metadata for the
// conversation picker.
type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Preview  string    `json:"preview"`
	Date     string    `json:"date"`
	Messages []Message `json:"messages"`
}

// DeriveMeta fills Title and Preview from the first and last message, the
// way the dashboard labels a conversation when the user navigates back.
func (c *Conversation) DeriveMeta() {
	if c == nil || len(c.Messages) == 0 {
		return
	}
	c.Title = util.TruncateString(c.Messages[0].Content, 40)
	c.Preview = util.TruncateString(c.Messages[len(c.Messages)-1].Content, 50)
}

// FormatTimestamp renders a message timestamp the way the chat panel shows
// it: hour and minute only.
func FormatTimestamp(t time.Time) string {
	return t.Format("15:04")
}
