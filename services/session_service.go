package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/live"
	"github.com/tomdewit/bartab-app/models"
)

// SessionService handles serving-window commands and queries.
type SessionService struct {
	Bars *BarService
}

func NewSessionService(bars *BarService) *SessionService {
	return &SessionService{Bars: bars}
}

// CreateSession opens a new serving window. Fails with a conflict while the
// bar still has an open session.
func (ss *SessionService) CreateSession(barID uuid.UUID, name string) (*models.Session, error) {
	var created *models.Session
	err := ss.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.NewSession(name)
		if err != nil {
			return err
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		created = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	live.Broadcast(live.EventSessionCreated, barID, created)
	return created, nil
}

// GetSessions lists the bar's session history in creation order.
func (ss *SessionService) GetSessions(barID uuid.UUID) ([]models.Session, error) {
	bar, err := ss.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.Sessions, nil
}

func (ss *SessionService) GetSession(barID, sessionID uuid.UUID) (*models.Session, error) {
	bar, err := ss.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.Session(sessionID)
}

// GetActiveSession returns the bar's currently open session.
func (ss *SessionService) GetActiveSession(barID uuid.UUID) (*models.Session, error) {
	bar, err := ss.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	if open := bar.OpenSession(); open != nil {
		return open, nil
	}
	return nil, fmt.Errorf("bar %s has no open session: %w", barID, models.ErrNotFound)
}

// RenameSession changes a session's display name.
func (ss *SessionService) RenameSession(barID, sessionID uuid.UUID, name string) (*models.Session, error) {
	if name == "" {
		return nil, fmt.Errorf("session name is required: %w", models.ErrInvalidArgument)
	}
	var updated *models.Session
	err := ss.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		if session.Status == models.SessionEnded {
			return fmt.Errorf("session %s has ended: %w", sessionID, models.ErrInvalidState)
		}
		session.Name = name
		if err := tx.Model(&models.Session{}).Where("id = ?", sessionID).Update("name", name).Error; err != nil {
			return err
		}
		updated = session
		return nil
	})
	return updated, err
}

// LockSession stops new bills and orders; settlement stays possible.
func (ss *SessionService) LockSession(barID, sessionID uuid.UUID) (*models.Session, error) {
	var locked *models.Session
	err := ss.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		if err := session.Lock(); err != nil {
			return err
		}
		if err := tx.Model(&models.Session{}).Where("id = ?", sessionID).Update("status", session.Status).Error; err != nil {
			return err
		}
		locked = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	live.Broadcast(live.EventSessionLocked, barID, locked)
	return locked, nil
}

// EndSession terminates the serving window and stamps its end time.
func (ss *SessionService) EndSession(barID, sessionID uuid.UUID) (*models.Session, error) {
	var ended *models.Session
	err := ss.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		if err := session.End(); err != nil {
			return err
		}
		if err := tx.Model(&models.Session{}).Where("id = ?", sessionID).
			Updates(map[string]interface{}{"status": session.Status, "ended_at": session.EndedAt}).Error; err != nil {
			return err
		}
		ended = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	live.Broadcast(live.EventSessionEnded, barID, ended)
	return ended, nil
}

// DeleteSession removes the session; its bills and orders are discarded.
func (ss *SessionService) DeleteSession(barID, sessionID uuid.UUID) error {
	return ss.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		if err := deleteSessionRows(tx, session); err != nil {
			return err
		}
		return bar.RemoveSession(sessionID)
	})
}
