package redraw

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func encodeStream(t *testing.T, msgs ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, msg := range msgs {
		if err := enc.Encode(msg); err != nil {
			t.Fatalf("encode %v: %v", msg, err)
		}
	}
	return &buf
}

func redrawNotification(batches ...[]any) []any {
	params := make([]any, 0, len(batches))
	for _, batch := range batches {
		params = append(params, batch)
	}
	return []any{2, RedrawMethod, params}
}

func batch(name string, occurrences ...[]any) []any {
	out := []any{name}
	for _, args := range occurrences {
		out = append(out, args)
	}
	return out
}
