package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a serving window.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionLocked SessionStatus = "LOCKED"
	SessionEnded  SessionStatus = "ENDED"
)

// Session is a bar's time-boxed serving window. It owns the bills opened
// during the window and enforces one bill per customer.
//
// Lifecycle: OPEN --Lock--> LOCKED; OPEN|LOCKED --End--> ENDED. ENDED is
// terminal. Repeating a transition the session is already past is a no-op;
// any other illegal transition fails with ErrInvalidState.
type Session struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	BarID     uuid.UUID     `gorm:"type:char(36);not null;index" json:"bar_id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Status    SessionStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	Bills     []Bill        `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"bills"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	EndedAt   *time.Time    `json:"ended_at,omitempty"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func newSession(barID uuid.UUID, name string) Session {
	now := time.Now()
	return Session{
		ID:        uuid.New(),
		BarID:     barID,
		Name:      name,
		Status:    SessionOpen,
		Bills:     []Bill{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Active reports whether the session still accepts new bills and orders.
func (s *Session) Active() bool {
	return s.Status == SessionOpen
}

// Lock stops new bill and order creation while still allowing settlement.
func (s *Session) Lock() error {
	switch s.Status {
	case SessionOpen:
		s.Status = SessionLocked
		s.UpdatedAt = time.Now()
		return nil
	case SessionLocked:
		return nil
	default:
		return fmt.Errorf("cannot lock session in status %s: %w", s.Status, ErrInvalidState)
	}
}

// End terminates the session and stamps the end time. Ended sessions are
// immutable; ending twice is a no-op.
func (s *Session) End() error {
	switch s.Status {
	case SessionOpen, SessionLocked:
		now := time.Now()
		s.Status = SessionEnded
		s.EndedAt = &now
		s.UpdatedAt = now
		return nil
	default:
		return nil
	}
}

// AddCustomer opens a tab for the customer in this session. If the customer
// already has a bill here, the existing bill is returned with created=false,
// and callers decide whether a duplicate add is an error. A retry of "open a
// tab" must never fork the tab in two.
func (s *Session) AddCustomer(customer Person) (*Bill, bool, error) {
	if s.Status == SessionEnded {
		return nil, false, fmt.Errorf("session %s has ended: %w", s.ID, ErrInvalidState)
	}
	for i := range s.Bills {
		if s.Bills[i].PersonID == customer.ID {
			return &s.Bills[i], false, nil
		}
	}
	if s.Status == SessionLocked {
		return nil, false, fmt.Errorf("session %s is locked: %w", s.ID, ErrInvalidState)
	}
	s.Bills = append(s.Bills, newBill(s.ID, customer))
	s.UpdatedAt = time.Now()
	return &s.Bills[len(s.Bills)-1], true, nil
}

// Bill returns the bill with the given id.
func (s *Session) Bill(billID uuid.UUID) (*Bill, error) {
	for i := range s.Bills {
		if s.Bills[i].ID == billID {
			return &s.Bills[i], nil
		}
	}
	return nil, fmt.Errorf("session has no bill with id %s: %w", billID, ErrNotFound)
}

// RemoveBill detaches the bill with the given id; its orders go with it.
func (s *Session) RemoveBill(billID uuid.UUID) error {
	for i := range s.Bills {
		if s.Bills[i].ID == billID {
			s.Bills = append(s.Bills[:i], s.Bills[i+1:]...)
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("session has no bill with id %s: %w", billID, ErrNotFound)
}
