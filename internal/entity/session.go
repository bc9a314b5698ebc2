package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

const SessionCookieName = "ttt_session"

// Session is the state of one browser tab's game between requests.
type Session struct {
	ID        string      `json:"id"`
	Revision  int64       `json:"revision"`
	State     ui.Snapshot `json:"state"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		State:     ui.Snapshot{},
		UpdatedAt: time.Now().UTC(),
	}
}

// IsValidID - rejects cookie values that could not have been issued by NewSession.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
