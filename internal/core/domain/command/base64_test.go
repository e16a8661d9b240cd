package command

import (
	"encoding/base64"
	"siggibot/internal/core/domain"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		want        string
		wantErr     bool
	}{
		{description: "padded", input: "aGVsbG8gd29ybGQ=", want: "hello world"},
		{description: "unpadded", input: "aGVsbG8gd29ybGQ", want: "hello world"},
		{description: "url alphabet", input: "Pz8_", want: "???"},
		{description: "not base64", input: "this is not base64!", wantErr: true},
		{description: "binary output", input: "//79/A==", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := DecodeBase64(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, isValidation(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBase64RespondEncode(t *testing.T) {
	ms := new(MockSender)
	cmd := NewBase64(ms, "base64")

	inv := bind(t, cmd, map[string]any{"action": "encode", "text": "hello world"})

	ms.On("SendReply", mock.Anything, inv, mock.MatchedBy(func(r domain.Reply) bool {
		return r.Body == "```\naGVsbG8gd29ybGQ=\n```"
	})).Return(nil)

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
	ms.AssertExpectations(t)
}

func TestBase64RespondDecodeInvalid(t *testing.T) {
	ms := new(MockSender)
	cmd := NewBase64(ms, "base64")

	inv := bind(t, cmd, map[string]any{"action": "decode", "text": "not base64 at all!"})

	ms.On("NotifyAndReturnError", mock.Anything, mock.MatchedBy(isValidation), inv).Once()

	err := cmd.Respond(t.Context(), time.Second, inv)
	require.Error(t, err)
	assert.True(t, isValidation(err))
	ms.AssertNotCalled(t, "SendReply", mock.Anything, mock.Anything, mock.Anything)
	ms.AssertExpectations(t)
}

func TestBase64RespondEncodeLongestInput(t *testing.T) {
	ms := new(MockSender)
	cmd := NewBase64(ms, "base64")
	sent := captureReply(ms)

	input := strings.Repeat("a", MaxEncodeBytes)
	inv := bind(t, cmd, map[string]any{"action": "encode", "text": input})

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))

	body := strings.TrimSuffix(strings.TrimPrefix(sent.Body, "```\n"), "\n```")
	assert.LessOrEqual(t, utf8.RuneCountInString(body), domain.PageBudget)

	decoded, err := base64.StdEncoding.DecodeString(body)
	require.NoError(t, err)
	assert.Equal(t, input, string(decoded))
}

func TestBase64RespondEncodeTooLong(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		bindErr     bool
	}{
		{description: "too many characters", input: strings.Repeat("a", MaxEncodeBytes+1), bindErr: true},
		{description: "multibyte text within the character limit", input: strings.Repeat("é", 700)},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ms := new(MockSender)
			cmd := NewBase64(ms, "base64")

			raw := map[string]any{"action": "encode", "text": tc.input}
			if tc.bindErr {
				_, err := cmd.Spec().Bind(raw)
				require.Error(t, err)
				assert.True(t, isValidation(err))
				return
			}

			inv := bind(t, cmd, raw)
			ms.On("NotifyAndReturnError", mock.Anything, mock.MatchedBy(isValidation), inv).Once()

			err := cmd.Respond(t.Context(), time.Second, inv)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "1350 bytes")
			ms.AssertNotCalled(t, "SendReply", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBase64RespondEncodeKeepsWhitespace(t *testing.T) {
	ms := new(MockSender)
	cmd := NewBase64(ms, "base64")
	sent := captureReply(ms)

	inv := bind(t, cmd, map[string]any{"action": "encode", "text": " hi "})

	require.NoError(t, cmd.Respond(t.Context(), time.Second, inv))
	assert.Equal(t, "```\nIGhpIA==\n```", sent.Body)
}
