// Package notify delivers outcome notices for visitor actions without ever
// blocking the action that produced them.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level distinguishes success from failure notices
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is one message for a session
type Notice struct {
	SessionID uuid.UUID `json:"-"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier publishes notices. Implementations must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// Success builds a success notice
func Success(sessionID uuid.UUID, message string) Notice {
	return Notice{SessionID: sessionID, Level: LevelSuccess, Message: message, CreatedAt: time.Now()}
}

// Failure builds a failure notice
func Failure(sessionID uuid.UUID, message string) Notice {
	return Notice{SessionID: sessionID, Level: LevelError, Message: message, CreatedAt: time.Now()}
}

// LogNotifier writes notices to the logger
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, notice Notice) {
	n.logger.Debug("Notice",
		zap.String("session_id", notice.SessionID.String()),
		zap.String("level", string(notice.Level)),
		zap.String("message", notice.Message),
	)
}

// DefaultMaxSessions bounds how many sessions an Inbox tracks at once
const DefaultMaxSessions = 10000

type mailbox struct {
	notices []Notice
	touched time.Time
}

// Inbox keeps the most recent notices per session so a client can poll them.
// Each session holds at most capacity notices; older ones are dropped.
// Sessions untouched for ttl are swept, and past maxSessions the least
// recently touched session is evicted.
type Inbox struct {
	mu          sync.Mutex
	capacity    int
	ttl         time.Duration
	maxSessions int
	boxes       map[uuid.UUID]*mailbox
	lastSweep   time.Time
	now         func() time.Time
	next        Notifier
}

// NewInbox creates an inbox that also forwards every notice to next, if set
func NewInbox(capacity int, ttl time.Duration, next Notifier) *Inbox {
	if capacity <= 0 {
		capacity = 10
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Inbox{
		capacity:    capacity,
		ttl:         ttl,
		maxSessions: DefaultMaxSessions,
		boxes:       make(map[uuid.UUID]*mailbox),
		now:         time.Now,
		next:        next,
	}
}

func (b *Inbox) Notify(ctx context.Context, notice Notice) {
	b.mu.Lock()
	now := b.now()
	b.sweep(now)

	box, ok := b.boxes[notice.SessionID]
	if !ok {
		if len(b.boxes) >= b.maxSessions {
			b.evictOldest()
		}
		box = &mailbox{}
		b.boxes[notice.SessionID] = box
	}
	box.touched = now
	box.notices = append(box.notices, notice)
	if len(box.notices) > b.capacity {
		box.notices = box.notices[len(box.notices)-b.capacity:]
	}
	b.mu.Unlock()

	if b.next != nil {
		b.next.Notify(ctx, notice)
	}
}

// sweep drops idle sessions. It runs at most once per half ttl so Notify
// stays amortized constant time. Callers must hold mu.
func (b *Inbox) sweep(now time.Time) {
	if now.Sub(b.lastSweep) < b.ttl/2 {
		return
	}
	b.lastSweep = now

	for id, box := range b.boxes {
		if now.Sub(box.touched) >= b.ttl {
			delete(b.boxes, id)
		}
	}
}

// evictOldest drops the least recently touched session. Callers must hold mu.
func (b *Inbox) evictOldest() {
	var (
		oldest   uuid.UUID
		earliest time.Time
		found    bool
	)
	for id, box := range b.boxes {
		if !found || box.touched.Before(earliest) {
			oldest, earliest, found = id, box.touched, true
		}
	}
	if found {
		delete(b.boxes, oldest)
	}
}

// Len reports how many sessions currently hold notices
func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.boxes)
}

// Drain returns and forgets a session's pending notices, oldest first
func (b *Inbox) Drain(sessionID uuid.UUID) []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	box, ok := b.boxes[sessionID]
	delete(b.boxes, sessionID)
	if !ok || box.notices == nil {
		return []Notice{}
	}
	return box.notices
}

// Forget drops a session's notices
func (b *Inbox) Forget(sessionID uuid.UUID) {
	b.mu.Lock()
	delete(b.boxes, sessionID)
	b.mu.Unlock()
}
