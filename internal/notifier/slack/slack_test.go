package slack

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mauv0809/kindred/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestPush_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	n := NewNotifierWithAPI(api, "C123")
	err := n.Push(context.Background(), notifier.Push{Address: "tok", Title: "New Message", Body: "hi"})

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}

func TestPush_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	n := NewNotifierWithAPI(api, "C123")
	err := n.Push(context.Background(), notifier.Push{Address: "tok"})

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
}

func TestFormatPush(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatPush(notifier.Push{Address: "tok-42", Title: "New Message", Body: "You have a new message!"})
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	// 1. Header Block
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "Block 0 should be a HeaderBlock")
	assert.Equal(t, "New Message", header.Text.Text)

	// 2. Body
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Block 1 should be a SectionBlock")
	assert.Equal(t, "You have a new message!", section.Text.Text)

	// 3. Address
	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok, "Block 2 should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	text, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "to `tok-42`", text.Text)
}

func TestFormatPush_TruncatesLongText(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	body := strings.Repeat("é", 5000)
	msg := n.formatPush(notifier.Push{Address: "tok", Title: strings.Repeat("t", 200), Body: body})

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, maxHeaderText, utf8.RuneCountInString(header.Text.Text))

	section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, maxSectionText, utf8.RuneCountInString(section.Text.Text))
	assert.True(t, strings.HasSuffix(section.Text.Text, "..."))
	assert.True(t, utf8.ValidString(section.Text.Text))

	short := n.formatPush(notifier.Push{Address: "tok", Title: "New Message", Body: "hi"})
	assert.Equal(t, "hi", short.Blocks.BlockSet[1].(*slackapi.SectionBlock).Text.Text)
}
