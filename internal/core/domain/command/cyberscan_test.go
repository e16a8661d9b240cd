package command

import (
	"context"
	"siggibot/internal/core/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCyberScanStagesThenReplaces(t *testing.T) {
	ms := new(MockSender)
	cmd := NewCyberScan(CyberScanParams{Sender: ms, Command: "cyberscan", Delay: time.Millisecond, Salt: "test"})

	inv := bind(t, cmd, map[string]any{"user": "<@1234>"})

	var replies []domain.Reply
	ms.On("SendReply", mock.Anything, inv, mock.Anything).
		Run(func(args mock.Arguments) { replies = append(replies, args.Get(2).(domain.Reply)) }).
		Return(nil).Twice()

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
	require.Len(t, replies, 2)

	assert.Contains(t, replies[0].Body, "Scanning 1234")
	assert.Equal(t, "CYBERSCAN COMPLETE: 1234", replies[1].Title)

	level, ok := findField(replies[1].Fields, "Threat level")
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(level, ")"))
	ms.AssertExpectations(t)
}

func TestCyberScanIsStablePerUser(t *testing.T) {
	render := func() domain.Reply {
		ms := new(MockSender)
		cmd := NewCyberScan(CyberScanParams{Sender: ms, Command: "cyberscan", Salt: "test"})
		inv := bind(t, cmd, nil)

		var last domain.Reply
		ms.On("SendReply", mock.Anything, inv, mock.Anything).
			Run(func(args mock.Arguments) { last = args.Get(2).(domain.Reply) }).
			Return(nil)

		require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
		return last
	}

	assert.Equal(t, render(), render())
}

func TestCyberScanCancelledDuringDelay(t *testing.T) {
	ms := new(MockSender)
	cmd := NewCyberScan(CyberScanParams{Sender: ms, Command: "cyberscan", Delay: time.Hour, Salt: "test"})
	inv := bind(t, cmd, nil)

	ms.On("SendReply", mock.Anything, inv, mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := cmd.Respond(ctx, time.Second, inv)
	require.ErrorIs(t, err, context.Canceled)
	ms.AssertNumberOfCalls(t, "SendReply", 1)
}

func TestUpgradeRespond(t *testing.T) {
	ms := new(MockSender)
	cmd := NewUpgrade(ms, "upgrade", "test")
	inv := bind(t, cmd, map[string]any{"user": "@Neo"})

	ms.On("SendReply", mock.Anything, inv, mock.MatchedBy(func(r domain.Reply) bool {
		return strings.HasPrefix(r.Title, "UPGRADE AVAILABLE: ") &&
			r.Body == "Ripperdoc recommendation for Neo" &&
			len(r.Fields) == 3
	})).Return(nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
	ms.AssertExpectations(t)
}
