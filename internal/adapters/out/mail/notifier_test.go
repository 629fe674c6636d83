package mail_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"starmap/internal/adapters/out/mail"
	"starmap/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleNotification() ports.Notification {
	return ports.Notification{
		OrderID:       1001,
		OrderName:     "#1001",
		CustomerEmail: "anna@example.com",
		PlaceName:     "Amsterdam, Noord-Holland, Nederland",
		Coordinates:   "52.37° N, 4.90° E",
		ArtifactURL:   "http://localhost:8080/artifacts/orders/1001-1.pdf",
		ArtifactSize:  2048,
	}
}

func TestNewNotifier_RequiresAddresses(t *testing.T) {
	_, err := mail.NewNotifier(nil, "", "", discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sender")
	assert.Contains(t, err.Error(), "from")
	assert.Contains(t, err.Error(), "to")
}

func TestBody(t *testing.T) {
	body, err := mail.Body(sampleNotification())

	require.NoError(t, err)
	assert.Contains(t, body, "#1001")
	assert.Contains(t, body, "anna@example.com")
	assert.Contains(t, body, "2.00 KB")
	assert.Contains(t, body, `href="http://localhost:8080/artifacts/orders/1001-1.pdf"`)
}

func TestNotifier_Send(t *testing.T) {
	sender := &MockSender{}
	var sent []*gomail.Msg
	sender.On("DialAndSendWithContext", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).([]*gomail.Msg)
		}).
		Return(nil)

	notifier, err := mail.NewNotifier(sender, "shop@example.com", "ops@example.com", discardLogger())
	require.NoError(t, err)

	require.NoError(t, notifier.Send(t.Context(), sampleNotification()))

	require.Len(t, sent, 1)
	to := sent[0].GetTo()
	require.Len(t, to, 1)
	assert.Equal(t, "ops@example.com", to[0].Address)
	assert.Equal(t, []string{"Star map poster ready: #1001"}, sent[0].GetGenHeader(gomail.HeaderSubject))
	sender.AssertExpectations(t)
}

func TestNotifier_Send_WrapsSenderError(t *testing.T) {
	sender := &MockSender{}
	smtpErr := errors.New("connection refused")
	sender.On("DialAndSendWithContext", mock.Anything, mock.Anything).Return(smtpErr)

	notifier, err := mail.NewNotifier(sender, "shop@example.com", "ops@example.com", discardLogger())
	require.NoError(t, err)

	err = notifier.Send(t.Context(), sampleNotification())

	require.ErrorIs(t, err, smtpErr)
	assert.Contains(t, err.Error(), "order 1001")
}

func TestNewClient_RequiresHost(t *testing.T) {
	_, err := mail.NewClient(mail.ServerSettings{Port: 587})

	assert.Error(t, err)
}
