package workers

import (
	"chat-relay/domain/chat"
	"chat-relay/mocks"
	"context"
	goerrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMailWorker_Sends_Every_Mail(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	mailer := mocks.NewMockMailer(ctrl)

	// Given two queued mails, the first failing to send
	first := chat.Mail{To: "bob@example.com", Subject: "New direct message", Body: "hi"}
	second := chat.Mail{To: "carol@example.com", Subject: "New direct message", Body: "hi"}
	mails := make(chan chat.Mail, 2)
	mails <- first
	mails <- second
	close(mails)

	gomock.InOrder(
		mailer.EXPECT().Send(gomock.Any(), first).Return(goerrors.New("smtp down")),
		mailer.EXPECT().Send(gomock.Any(), second).DoAndReturn(func(ctx context.Context, mail chat.Mail) error {
			// Then each send runs under its own deadline
			_, ok := ctx.Deadline()
			req.True(ok)
			return nil
		}),
	)

	// When the worker drains the queue
	err := NewMailWorker(mailer, mails, time.Second, log).Run(context.Background())

	// Then it returns once the queue is closed
	req.NoError(err)
}

func TestChannelCapacityWorker_Sample(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	almostFull := make(chan int, 4)
	almostFull <- 1
	almostFull <- 2
	almostFull <- 3
	empty := make(chan int, 4)

	worker := NewChannelCapacityWorker(log, []NamedChannel{
		{Name: "commands", Channel: almostFull},
		{Name: "mails", Channel: empty},
		{Name: "unbuffered", Channel: make(chan int)},
		{Name: "not a channel", Channel: 42},
	}, time.Second, 1, nil)

	req.Equal([]string{"commands"}, worker.Sample())
}
