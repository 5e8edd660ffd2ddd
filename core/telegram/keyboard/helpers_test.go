package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyButtonsLayout(t *testing.T) {
	markup := ReplyButtons([]string{"Quick Count", "Candidate"}, []string{"Help"})
	require.Len(t, markup.ReplyKeyboard, 2)
	require.Len(t, markup.ReplyKeyboard[0], 2)
	assert.Equal(t, "Quick Count", markup.ReplyKeyboard[0][0].Text)
	assert.Equal(t, "Candidate", markup.ReplyKeyboard[0][1].Text)
	assert.Equal(t, "Help", markup.ReplyKeyboard[1][0].Text)
	assert.True(t, markup.ResizeKeyboard)
	assert.False(t, markup.OneTimeKeyboard)
}

func TestOneTimeReplyButtons(t *testing.T) {
	markup := OneTimeReplyButtons([]string{"Quick Count", "Candidate"})
	assert.True(t, markup.OneTimeKeyboard)
	assert.Len(t, markup.ReplyKeyboard, 1)
}
