package domain

type EventType string

const (
	EventLike    EventType = "like"
	EventComment EventType = "comment"
	EventFollow  EventType = "follow"
)

func (e EventType) String() string {
	return string(e)
}

func (e EventType) IsValid() bool {
	switch e {
	case EventLike, EventComment, EventFollow:
		return true
	default:
		return false
	}
}

// Event is one entry of the monitoring tab's activity feed.
type Event struct {
	ID     string    `json:"id"`
	Type   EventType `json:"type"`
	User   string    `json:"user"`
	Avatar string    `json:"avatar,omitempty"`
	Action string    `json:"action"`
	Time   string    `json:"time"`
}

type AlertType string

const (
	AlertSpike     AlertType = "spike"
	AlertMilestone AlertType = "milestone"
	AlertWarning   AlertType = "warning"
)

func (a AlertType) String() string {
	return string(a)
}

// Alert is a monitoring notification derived from the feed or pushed by the
// backend.
type Alert struct {
	ID      string    `json:"id"`
	Type    AlertType `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    string    `json:"time"`
}
