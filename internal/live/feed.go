package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/nmoreaux/instalens-go/internal/metrics"
	"go.uber.org/zap"
)

type FeedState string

const (
	FeedDisconnected FeedState = "disconnected"
	FeedConnecting   FeedState = "connecting"
	FeedConnected    FeedState = "connected"
	FeedReconnecting FeedState = "reconnecting"
	FeedFailed       FeedState = "failed"
)

func (s FeedState) String() string {
	return string(s)
}

type EventCallback func(event *domain.Event)

type StateCallback func(state FeedState)

type callbackEntry struct {
	id       int
	callback EventCallback
}

type stateCallbackEntry struct {
	id       int
	callback StateCallback
}

// Feed streams the monitoring tab's activity events over a websocket. It
// reconnects with bounded attempts and fans incoming events out to every
// registered callback in arrival order.
type Feed struct {
	wsURL                string
	conn                 *websocket.Conn
	state                FeedState
	stateMu              sync.RWMutex
	eventCallbacks       []callbackEntry
	stateCallbacks       []stateCallbackEntry
	nextCallbackID       int
	callbacksMu          sync.RWMutex
	reconnectAttempts    int
	maxReconnectAttempts int
	reconnectDelay       time.Duration
	logger               *zap.Logger
	stopCh               chan struct{}
	stopOnce             sync.Once
	listenerWg           sync.WaitGroup
}

func NewFeed(wsURL string, maxReconnectAttempts int, reconnectDelay time.Duration, logger *zap.Logger) *Feed {
	return &Feed{
		wsURL:                wsURL,
		state:                FeedDisconnected,
		maxReconnectAttempts: maxReconnectAttempts,
		reconnectDelay:       reconnectDelay,
		logger:               logger,
		stopCh:               make(chan struct{}),
		eventCallbacks:       make([]callbackEntry, 0),
		stateCallbacks:       make([]stateCallbackEntry, 0),
		nextCallbackID:       1,
	}
}

func (f *Feed) Connect(ctx context.Context) error {
	f.stateMu.Lock()
	if f.state == FeedConnected || f.state == FeedConnecting {
		f.stateMu.Unlock()
		f.logger.Warn("Feed already connected or connecting")
		return nil
	}
	f.stateMu.Unlock()

	f.setState(FeedConnecting)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, f.wsURL, nil)
	if err != nil {
		f.logger.Error("Failed to connect activity feed", zap.Error(err))
		f.setState(FeedFailed)
		f.scheduleReconnect(ctx)
		return err
	}

	f.conn = conn
	f.setState(FeedConnected)
	f.reconnectAttempts = 0

	f.logger.Info("Activity feed connected", zap.String("url", f.wsURL))

	f.listenerWg.Add(1)
	go f.listen(ctx)

	return nil
}

func (f *Feed) listen(ctx context.Context) {
	defer f.listenerWg.Done()
	defer f.logger.Info("Activity feed listener stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopCh:
			return
		default:
			if f.conn == nil {
				return
			}

			_, msgBytes, err := f.conn.ReadMessage()
			if err != nil {
				f.logger.Error("Activity feed read error", zap.Error(err))
				f.setState(FeedDisconnected)
				f.scheduleReconnect(ctx)
				return
			}

			f.handleMessage(msgBytes)
		}
	}
}

func (f *Feed) handleMessage(data []byte) {
	var event domain.Event
	if err := json.Unmarshal(data, &event); err != nil {
		dataStr := string(data)
		if len(dataStr) > 200 {
			dataStr = dataStr[:200]
		}
		f.logger.Error("Failed to parse activity event",
			zap.Error(err),
			zap.String("data", dataStr),
		)
		return
	}

	if !event.Type.IsValid() {
		f.logger.Warn("Unknown activity event type", zap.String("type", event.Type.String()))
		return
	}

	f.callbacksMu.RLock()
	callbacks := make([]callbackEntry, len(f.eventCallbacks))
	copy(callbacks, f.eventCallbacks)
	f.callbacksMu.RUnlock()

	for _, entry := range callbacks {
		entry.callback(&event)
	}
}

func (f *Feed) scheduleReconnect(ctx context.Context) {
	f.reconnectAttempts++
	metrics.FeedReconnects.Inc()

	if f.reconnectAttempts > f.maxReconnectAttempts {
		f.logger.Error("Max feed reconnect attempts reached",
			zap.Int("attempts", f.reconnectAttempts),
		)
		f.setState(FeedFailed)
		return
	}

	f.setState(FeedReconnecting)

	f.logger.Info("Scheduling feed reconnect",
		zap.Int("attempt", f.reconnectAttempts),
		zap.Int("max", f.maxReconnectAttempts),
		zap.Duration("delay", f.reconnectDelay),
	)

	go func() {
		select {
		case <-time.After(f.reconnectDelay):
			if err := f.Connect(ctx); err != nil {
				f.logger.Error("Feed reconnect failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}()
}

// OnEvent registers a callback for incoming events; the returned function
// unregisters it.
func (f *Feed) OnEvent(callback EventCallback) func() {
	f.callbacksMu.Lock()
	id := f.nextCallbackID
	f.nextCallbackID++
	f.eventCallbacks = append(f.eventCallbacks, callbackEntry{id: id, callback: callback})
	f.callbacksMu.Unlock()

	return func() {
		f.callbacksMu.Lock()
		defer f.callbacksMu.Unlock()
		for i, entry := range f.eventCallbacks {
			if entry.id == id {
				f.eventCallbacks = append(f.eventCallbacks[:i], f.eventCallbacks[i+1:]...)
				break
			}
		}
	}
}

func (f *Feed) OnStateChange(callback StateCallback) func() {
	f.callbacksMu.Lock()
	id := f.nextCallbackID
	f.nextCallbackID++
	f.stateCallbacks = append(f.stateCallbacks, stateCallbackEntry{id: id, callback: callback})
	f.callbacksMu.Unlock()

	return func() {
		f.callbacksMu.Lock()
		defer f.callbacksMu.Unlock()
		for i, entry := range f.stateCallbacks {
			if entry.id == id {
				f.stateCallbacks = append(f.stateCallbacks[:i], f.stateCallbacks[i+1:]...)
				break
			}
		}
	}
}

func (f *Feed) setState(newState FeedState) {
	f.stateMu.Lock()
	oldState := f.state
	f.state = newState
	f.stateMu.Unlock()

	if oldState != newState {
		f.logger.Info("Feed state changed",
			zap.String("from", oldState.String()),
			zap.String("to", newState.String()),
		)

		f.callbacksMu.RLock()
		callbacks := make([]stateCallbackEntry, len(f.stateCallbacks))
		copy(callbacks, f.stateCallbacks)
		f.callbacksMu.RUnlock()

		for _, entry := range callbacks {
			entry.callback(newState)
		}
	}
}

func (f *Feed) GetState() FeedState {
	f.stateMu.RLock()
	defer f.stateMu.RUnlock()
	return f.state
}

func (f *Feed) IsConnected() bool {
	return f.GetState() == FeedConnected
}

func (f *Feed) Disconnect() error {
	f.stopOnce.Do(func() {
		close(f.stopCh)
	})

	if f.conn != nil {
		if err := f.conn.Close(); err != nil {
			f.logger.Error("Failed to close activity feed", zap.Error(err))
			return err
		}
		f.conn = nil
	}

	f.reconnectAttempts = 0
	f.setState(FeedDisconnected)
	f.logger.Info("Activity feed disconnected")

	done := make(chan struct{})
	go func() {
		f.listenerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		f.logger.Warn("Timeout waiting for feed listener to stop")
	}

	return nil
}
