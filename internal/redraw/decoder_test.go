package redraw

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderMessageTypes(t *testing.T) {
	stream := encodeStream(t,
		[]any{0, 1, "nvim_ui_attach", []any{80, 24, map[string]any{"ext_hlstate": true}}},
		[]any{1, 1, nil, true},
		redrawNotification(batch("flush", []any{})),
	)

	dec := NewDecoder(stream)

	msg, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, MessageRequest, msg.Type)
	assert.Equal(t, uint32(1), msg.MsgID)
	assert.Equal(t, "nvim_ui_attach", msg.Method)
	assert.Len(t, msg.Params, 3)

	msg, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, MessageResponse, msg.Type)
	assert.Nil(t, msg.Error)
	assert.Equal(t, true, msg.Result)

	msg, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, MessageNotification, msg.Type)
	assert.Equal(t, RedrawMethod, msg.Method)
	require.Len(t, msg.Params, 1)

	_, err = dec.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoderInvalidEnvelopeIsRecoverable(t *testing.T) {
	stream := encodeStream(t,
		"not an array",
		[]any{7, "bogus"},
		[]any{2, 99, []any{}},
		[]any{2, RedrawMethod, []any{}},
	)

	dec := NewDecoder(stream)
	for i := 0; i < 3; i++ {
		_, err := dec.Next()
		if !errors.Is(err, ErrInvalidMessage) {
			t.Fatalf("message %d: expected ErrInvalidMessage, got %v", i, err)
		}
	}

	msg, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, RedrawMethod, msg.Method)
}

func TestDecoderTruncatedStream(t *testing.T) {
	stream := encodeStream(t, redrawNotification(batch("hl_group_set", []any{"Normal", 1})))
	truncated := stream.Bytes()[:stream.Len()-2]

	dec := NewDecoder(bytes.NewReader(truncated))
	_, err := dec.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidMessage)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "notification", MessageNotification.String())
	assert.Equal(t, "MessageType(9)", MessageType(9).String())
}
