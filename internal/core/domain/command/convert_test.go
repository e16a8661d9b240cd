package command

import (
	"siggibot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConvertRespond(t *testing.T) {
	testCases := []struct {
		description string
		raw         map[string]any
		want        string
	}{
		{
			description: "temperature",
			raw:         map[string]any{"value": 100.0, "from": "c", "to": "f"},
			want:        "100 °C = **212 °F**",
		},
		{
			description: "length from strings",
			raw:         map[string]any{"value": "5", "from": "KM", "to": "m"},
			want:        "5 km = **5000 m**",
		},
		{
			description: "rounded weight",
			raw:         map[string]any{"value": 1, "from": "lb", "to": "kg"},
			want:        "1 lb = **0.4536 kg**",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ms := new(MockSender)
			cmd := NewConvert(ms, "convert")
			inv := bind(t, cmd, tc.raw)

			ms.On("SendReply", mock.Anything, inv, domain.TextReply(tc.want)).Return(nil)

			require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
			ms.AssertExpectations(t)
		})
	}
}

func TestConvertRespondIncompatible(t *testing.T) {
	ms := new(MockSender)
	cmd := NewConvert(ms, "convert")
	inv := bind(t, cmd, map[string]any{"value": 20, "from": "c", "to": "km"})

	ms.On("NotifyAndReturnError", mock.Anything, mock.MatchedBy(isValidation), inv).Once()

	err := cmd.Respond(t.Context(), time.Second, inv)
	require.EqualError(t, err, "can't convert c (temperature) to km (length)")
	ms.AssertExpectations(t)
}

func TestConvertUnknownUnitRejectedByBinding(t *testing.T) {
	_, err := NewConvert(new(MockSender), "convert").Spec().Bind(map[string]any{"value": 1, "from": "mi", "to": "km"})
	require.Error(t, err)
	assert.True(t, isValidation(err))
}
