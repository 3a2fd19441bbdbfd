package notification

import (
	"context"
	"errors"
	"plan-fulfillment/internal/model"
	"plan-fulfillment/internal/packaging"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailSender struct {
	failFirst int
	calls     int
	lastTo    string
	lastBody  string
	lastFile  string
}

func (f *fakeMailSender) Send(to, subject, body, attachmentPath string) error {
	f.calls++
	f.lastTo = to
	f.lastBody = body
	f.lastFile = attachmentPath
	if f.calls <= f.failFirst {
		return errors.New("smtp: connection reset")
	}
	return nil
}

func newTestEmailSender(mail *fakeMailSender) EmailSender {
	return &emailSenderImpl{
		mail:            mail,
		logger:          zerolog.Nop(),
		initialInterval: time.Millisecond,
	}
}

func testOrderAndPackage() (*model.Order, *packaging.DeliveryPackage) {
	order := &model.Order{
		OrderID:       "ord-1",
		Plan:          "starter",
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Buyer",
	}
	pkg := &packaging.DeliveryPackage{
		ArchivePath: "/tmp/starter.zip",
		Password:    "s3cret-pass-here",
	}
	return order, pkg
}

func TestSendWithRetry_FirstAttempt(t *testing.T) {
	mail := &fakeMailSender{}
	order, pkg := testOrderAndPackage()

	err := newTestEmailSender(mail).SendWithRetry(context.Background(), order, pkg)
	require.NoError(t, err)
	assert.Equal(t, 1, mail.calls)
	assert.Equal(t, "buyer@example.com", mail.lastTo)
	assert.Equal(t, "/tmp/starter.zip", mail.lastFile)
	assert.Contains(t, mail.lastBody, pkg.Password)
	assert.Contains(t, mail.lastBody, order.Plan)
}

func TestSendWithRetry_RecoversWithinBudget(t *testing.T) {
	mail := &fakeMailSender{failFirst: 2}
	order, pkg := testOrderAndPackage()

	err := newTestEmailSender(mail).SendWithRetry(context.Background(), order, pkg)
	require.NoError(t, err)
	assert.Equal(t, 3, mail.calls)
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	mail := &fakeMailSender{failFirst: 100}
	order, pkg := testOrderAndPackage()

	err := newTestEmailSender(mail).SendWithRetry(context.Background(), order, pkg)
	assert.ErrorIs(t, err, ErrEmailDelivery)
	assert.Equal(t, emailMaxAttempts, mail.calls)
}
