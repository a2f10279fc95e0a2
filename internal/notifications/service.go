package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/models"
)

// Service is the session notification feed. It lives in memory only: the
// feed starts empty on boot and is discarded on logout, never persisted.
type Service interface {
	List(ctx context.Context) []models.Notification
	Add(ctx context.Context, title, description, link string) models.Notification
	MarkAllRead(ctx context.Context)
	UnreadCount(ctx context.Context) int
	Clear(ctx context.Context)
}

type service struct {
	now func() time.Time

	mu     sync.RWMutex
	lastID int64
	feed   []models.Notification
}

func NewService() Service {
	return &service{now: time.Now}
}

// List returns the feed newest first with relative time labels refreshed.
func (s *service) List(ctx context.Context) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]models.Notification, len(s.feed))
	for i, n := range s.feed {
		n.Time = relativeLabel(now.Sub(n.CreatedAt))
		out[i] = n
	}
	return out
}

func (s *service) Add(ctx context.Context, title, description, link string) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := now.UnixMilli()
	// Bursts within the same millisecond still get distinct ids.
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := models.Notification{
		ID:          id,
		Title:       title,
		Description: description,
		Link:        link,
		Unread:      true,
		CreatedAt:   now,
		Time:        "Just now",
	}
	s.feed = append([]models.Notification{entry}, s.feed...)
	return entry
}

func (s *service) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feed {
		s.feed[i].Unread = false
	}
}

func (s *service) UnreadCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.feed {
		if n.Unread {
			count++
		}
	}
	return count
}

func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = nil
}

func relativeLabel(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
