package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T) *Session {
	t.Helper()
	s := newSession(uuid.New(), "Friday night")
	return &s
}

func TestSessionLifecycle(t *testing.T) {
	s := openSession(t)
	assert.Equal(t, SessionOpen, s.Status)
	assert.Nil(t, s.EndedAt)

	require.NoError(t, s.Lock())
	assert.Equal(t, SessionLocked, s.Status)

	// Locking twice is a no-op.
	require.NoError(t, s.Lock())
	assert.Equal(t, SessionLocked, s.Status)

	require.NoError(t, s.End())
	assert.Equal(t, SessionEnded, s.Status)
	require.NotNil(t, s.EndedAt)

	// Ending twice is a no-op and keeps the original end time.
	endedAt := *s.EndedAt
	require.NoError(t, s.End())
	assert.Equal(t, endedAt, *s.EndedAt)

	// ENDED is terminal: no way back to LOCKED.
	assert.ErrorIs(t, s.Lock(), ErrInvalidState)
}

func TestEndSkipsLock(t *testing.T) {
	s := openSession(t)
	require.NoError(t, s.End())
	assert.Equal(t, SessionEnded, s.Status)
}

func TestAddCustomerCreatesOneBillPerCustomer(t *testing.T) {
	s := openSession(t)
	alice := NewPerson(s.BarID, "Alice", "0611111111")

	bill, created, err := s.AddCustomer(alice)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, bill.Paid)
	assert.Empty(t, bill.Orders)
	assert.Equal(t, alice.ID, bill.PersonID)

	// A retried add returns the same bill instead of forking the tab.
	again, created, err := s.AddCustomer(alice)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, bill.ID, again.ID)
	assert.Len(t, s.Bills, 1)

	bob := NewPerson(s.BarID, "Bob", "0622222222")
	_, created, err = s.AddCustomer(bob)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, s.Bills, 2)
}

func TestAddCustomerOnLockedSession(t *testing.T) {
	s := openSession(t)
	alice := NewPerson(s.BarID, "Alice", "")
	bill, _, err := s.AddCustomer(alice)
	require.NoError(t, err)

	require.NoError(t, s.Lock())

	// Existing bills stay reachable for settlement.
	again, created, err := s.AddCustomer(alice)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, bill.ID, again.ID)

	// New tabs cannot open anymore.
	bob := NewPerson(s.BarID, "Bob", "")
	_, _, err = s.AddCustomer(bob)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAddCustomerOnEndedSession(t *testing.T) {
	s := openSession(t)
	require.NoError(t, s.End())

	_, _, err := s.AddCustomer(NewPerson(s.BarID, "Alice", ""))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSessionBillLookupAndRemoval(t *testing.T) {
	s := openSession(t)
	bill, _, err := s.AddCustomer(NewPerson(s.BarID, "Alice", ""))
	require.NoError(t, err)

	found, err := s.Bill(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, found.ID)

	_, err = s.Bill(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.RemoveBill(bill.ID))
	assert.Empty(t, s.Bills)
	assert.ErrorIs(t, s.RemoveBill(bill.ID), ErrNotFound)
}
