// Package redraw reads msgpack-rpc traffic from Neovim and routes the
// highlight events of "redraw" notifications into an hlstate.State.
package redraw

import (
	"errors"
	"fmt"
	"io"

	"github.com/opencode-ai/hlstate/internal/wire"
	"github.com/vmihailenco/msgpack/v5"
)

// MessageType is the first element of every msgpack-rpc message.
type MessageType int

const (
	MessageRequest      MessageType = 0
	MessageResponse     MessageType = 1
	MessageNotification MessageType = 2
)

func (t MessageType) String() string {
	switch t {
	case MessageRequest:
		return "request"
	case MessageResponse:
		return "response"
	case MessageNotification:
		return "notification"
	}
	return fmt.Sprintf("MessageType(%d)", int(t))
}

// RedrawMethod is the notification carrying UI events.
const RedrawMethod = "redraw"

// Decoder errors.
var (
	ErrInvalidMessage = errors.New("invalid msgpack-rpc message")
)

// Message is one decoded msgpack-rpc message. Fields that do not apply to
// the message type are left zero.
type Message struct {
	Type   MessageType
	MsgID  uint32
	Method string
	Params []any
	Error  any
	Result any
}

// Decoder reads consecutive msgpack-rpc messages from a stream.
type Decoder struct {
	dec *msgpack.Decoder
}

// NewDecoder returns a decoder reading from r. Maps decode with untyped keys
// so that a stray non-string key does not fail the whole message.
func NewDecoder(r io.Reader) *Decoder {
	dec := msgpack.NewDecoder(r)
	dec.SetMapDecoder(func(d *msgpack.Decoder) (interface{}, error) {
		return d.DecodeUntypedMap()
	})
	return &Decoder{dec: dec}
}

// Next returns the next message. It returns io.EOF at a clean end of stream.
// A message with a bad envelope is reported as ErrInvalidMessage; the stream
// stays positioned after it, so callers may continue.
func (d *Decoder) Next() (Message, error) {
	raw, err := d.dec.DecodeInterface()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Message{}, io.EOF
		}
		return Message{}, fmt.Errorf("failed to decode message: %w", err)
	}
	return parseMessage(raw)
}

func parseMessage(raw any) (Message, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return Message{}, fmt.Errorf("%w: expected array, got %T", ErrInvalidMessage, raw)
	}

	kind, ok := wire.Int64(arr[0])
	if !ok {
		return Message{}, fmt.Errorf("%w: message type %v", ErrInvalidMessage, arr[0])
	}

	msg := Message{Type: MessageType(kind)}
	switch msg.Type {
	case MessageRequest:
		if len(arr) != 4 {
			return Message{}, fmt.Errorf("%w: request has %d elements", ErrInvalidMessage, len(arr))
		}
		id, ok := wire.Int64(arr[1])
		if !ok || id < 0 {
			return Message{}, fmt.Errorf("%w: request id %v", ErrInvalidMessage, arr[1])
		}
		msg.MsgID = uint32(id)
		msg.Method, _ = wire.String(arr[2])
		msg.Params, _ = arr[3].([]any)
	case MessageResponse:
		if len(arr) != 4 {
			return Message{}, fmt.Errorf("%w: response has %d elements", ErrInvalidMessage, len(arr))
		}
		id, ok := wire.Int64(arr[1])
		if !ok || id < 0 {
			return Message{}, fmt.Errorf("%w: response id %v", ErrInvalidMessage, arr[1])
		}
		msg.MsgID = uint32(id)
		msg.Error = arr[2]
		msg.Result = arr[3]
	case MessageNotification:
		if len(arr) != 3 {
			return Message{}, fmt.Errorf("%w: notification has %d elements", ErrInvalidMessage, len(arr))
		}
		method, ok := wire.String(arr[1])
		if !ok {
			return Message{}, fmt.Errorf("%w: notification method %v", ErrInvalidMessage, arr[1])
		}
		msg.Method = method
		msg.Params, _ = arr[2].([]any)
	default:
		return Message{}, fmt.Errorf("%w: unknown message type %d", ErrInvalidMessage, kind)
	}
	return msg, nil
}
