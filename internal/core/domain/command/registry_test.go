package command

import (
	"context"
	"errors"
	"siggibot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ time.Duration, _ *domain.Invocation) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

func (m *MockResponder) Spec() domain.CommandSpec {
	return domain.CommandSpec{Name: m.command, Description: "mock " + m.command}
}

func TestRegister(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "test"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)
}

func TestGetNotRegistered(t *testing.T) {
	cr := &Registry{}

	_, err := cr.Get("test")
	require.EqualError(t, err, "can't fetch command, registry not initialized")
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "test"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)

	_, err := cr.Get("foo")
	require.True(t, errors.Is(err, domain.ErrUnknownCommand))
}

func TestGetCommandFound(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "test"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)

	cmd, err := cr.Get("test")
	require.NoError(t, err)
	assert.NotNil(t, cmd)

	assert.Equal(t, "test", cmd.GetCommand())
}

func TestListCommandsAndSpecs(t *testing.T) {
	cr := &Registry{}
	cr.Register(&MockResponder{command: "foo"})
	cr.Register(&MockResponder{command: "bar"})
	assert.Len(t, cr.commands, 2)

	assert.Equal(t, []string{"bar", "foo"}, cr.ListCommands())

	specs := cr.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, "bar", specs[0].Name)
	assert.Equal(t, "mock foo", specs[1].Description)
}

func TestParseCommandArgs(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should discard first word",
			args:        "/weather Glasgow",
			want:        "Glasgow",
		},
		{
			description: "should only discard first word",
			args:        "/weather New York",
			want:        "New York",
		},
		{
			description: "empty on no args",
			args:        "/saint",
			want:        "",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommandArgs(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseCommand(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should strip the slash",
			args:        "/siggi",
			want:        "siggi",
		},
		{
			description: "should discard following words",
			args:        "/Hash hello sha256",
			want:        "hash",
		},
		{
			description: "should strip the bot name",
			args:        "/news@siggibot 3",
			want:        "news",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommand(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}
