package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextValidTransitions(t *testing.T) {
	cases := []struct {
		from  Status
		event Event
		to    Status
	}{
		{StatusPendingAdminApproval, EventAdminApprove, StatusApproved},
		{StatusPendingAdminApproval, EventAdminReject, StatusRejected},
		{StatusApproved, EventVerifyDocuments, StatusAwaitingPayment},
		{StatusAwaitingPayment, EventPaymentCompleted, StatusInProgress},
		{StatusInProgress, EventMarkComplete, StatusCompleted},
	}

	for _, c := range cases {
		next, err := Next(c.from, c.event)
		require.NoError(t, err, "event %s from %s", c.event, c.from)
		assert.Equal(t, c.to, next)
	}
}

func TestNextRejectsWrongStatus(t *testing.T) {
	// Каждое событие допустимо ровно из одного статуса
	events := []Event{EventAdminApprove, EventAdminReject, EventVerifyDocuments, EventPaymentCompleted, EventMarkComplete}
	statuses := []Status{StatusPendingAdminApproval, StatusApproved, StatusAwaitingPayment, StatusInProgress, StatusCompleted, StatusRejected}

	for _, e := range events {
		valid := 0
		for _, s := range statuses {
			if _, err := Next(s, e); err == nil {
				valid++
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		}
		assert.Equal(t, 1, valid, "event %s", e)
	}
}

func TestNextUnknownEvent(t *testing.T) {
	_, err := Next(StatusApproved, Event("upload_document"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	events := []Event{EventAdminApprove, EventAdminReject, EventVerifyDocuments, EventPaymentCompleted, EventMarkComplete}

	for _, s := range []Status{StatusCompleted, StatusRejected} {
		assert.True(t, IsTerminal(s))
		for _, e := range events {
			_, err := Next(s, e)
			assert.ErrorIs(t, err, ErrInvalidTransition, "event %s from %s", e, s)
		}
	}

	assert.False(t, IsTerminal(StatusPendingAdminApproval))
	assert.False(t, IsTerminal(StatusInProgress))
}

func TestHappyPath(t *testing.T) {
	// Полный путь заявки от создания до завершения
	status := StatusPendingAdminApproval
	path := []struct {
		event Event
		want  Status
	}{
		{EventAdminApprove, StatusApproved},
		{EventVerifyDocuments, StatusAwaitingPayment},
		{EventPaymentCompleted, StatusInProgress},
		{EventMarkComplete, StatusCompleted},
	}

	for _, step := range path {
		next, err := Next(status, step.event)
		require.NoError(t, err)
		assert.Equal(t, step.want, next)
		status = next
	}

	assert.True(t, IsTerminal(status))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPendingAdminApproval, StatusApproved, StatusAwaitingPayment, StatusInProgress, StatusCompleted, StatusRejected} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus(Status("cancelled")))
	assert.False(t, ValidStatus(Status("")))
}

func TestTransitionTargetsAreValid(t *testing.T) {
	// Таблица переходов не должна вести в статус вне замкнутого набора
	for event, tr := range transitions {
		assert.True(t, ValidStatus(tr.From), "event %s", event)
		assert.True(t, ValidStatus(tr.To), "event %s", event)
	}
}
