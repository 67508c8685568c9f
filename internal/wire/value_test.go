package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int", 7, 7, true},
		{"int8 negative", int8(-1), -1, true},
		{"int64", int64(1) << 40, 1 << 40, true},
		{"uint", uint(42), 42, true},
		{"uint8", uint8(255), 255, true},
		{"uint32", uint32(math.MaxUint32), math.MaxUint32, true},
		{"uint64 max int64", uint64(math.MaxInt64), math.MaxInt64, true},
		{"uint64 overflow", uint64(math.MaxUint64), 0, false},
		{"float", 1.5, 0, false},
		{"string", "3", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int64(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Int64(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	n, ok := Number(float32(0.5))
	require.True(t, ok)
	assert.Equal(t, 0.5, n)

	n, ok = Number(uint16(30))
	require.True(t, ok)
	assert.Equal(t, 30.0, n)

	_, ok = Number(true)
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	s, ok := String([]byte("Normal"))
	require.True(t, ok)
	assert.Equal(t, "Normal", s)

	_, ok = String(5)
	assert.False(t, ok)
}

func TestMapNormalisesKeys(t *testing.T) {
	m, ok := Map(map[any]any{"foreground": 1, []byte("bold"): true, 3: "dropped"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"foreground": 1, "bold": true}, m)

	_, ok = Map([]any{})
	assert.False(t, ok)
}

func TestAt(t *testing.T) {
	args := []any{1, "two"}
	assert.Equal(t, "two", At(args, 1))
	assert.Nil(t, At(args, 2))
	assert.Nil(t, At(args, -1))
	assert.Nil(t, At(nil, 0))
}
