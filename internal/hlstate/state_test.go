package hlstate

import (
	"testing"

	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *State {
	return New(WithLogger(zerolog.Nop()))
}

func TestNewStateDefaults(t *testing.T) {
	s := newTestState()

	defaults := s.DefaultColors()
	if defaults.ID != DefaultID {
		t.Fatalf("default id = %d", defaults.ID)
	}
	if defaults.Foreground.Valid || defaults.Background.Valid || defaults.Special.Valid {
		t.Fatalf("expected zeroed default colours, got %+v", defaults)
	}
	if defaults.Opacity != 1 {
		t.Fatalf("default opacity = %v", defaults.Opacity)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty table, got %d", s.Len())
	}
}

func TestSetIDAttrThenAttrForID(t *testing.T) {
	s := newTestState()

	attr := models.NewAttr(5)
	attr.Foreground = models.SomeColor(models.Color{R: 1, G: 2, B: 3})
	attr.Reverse = true
	attr.State = []models.AttrState{{Kind: models.KindSyntax, HiName: "Comment", ID: 5}}

	s.SetIDAttr(5, attr)

	got := s.AttrForID(5)
	require.True(t, got.Equal(attr), "got %+v", got)
}

func TestSetIDAttrReplacesWholeRecord(t *testing.T) {
	s := newTestState()

	first := models.NewAttr(5)
	first.Foreground = models.SomeColor(models.Color{R: 255})
	first.Reverse = true
	s.SetIDAttr(5, first)

	second := models.NewAttr(5)
	second.Background = models.SomeColor(models.Color{B: 255})
	s.SetIDAttr(5, second)

	got := s.AttrForID(5)
	assert.False(t, got.Foreground.Valid, "foreground should not be merged")
	assert.False(t, got.Reverse)
	assert.True(t, got.Background.Valid)
}

func TestStoredRecordsAreNotAliased(t *testing.T) {
	s := newTestState()

	attr := models.NewAttr(1)
	attr.State = []models.AttrState{{HiName: "Normal"}}
	s.SetIDAttr(1, attr)
	s.SetIDAttr(2, attr)

	attr.State[0].HiName = "mutated"
	read := s.AttrForID(1)
	read.State[0].HiName = "also mutated"

	assert.Equal(t, "Normal", s.AttrForID(1).State[0].HiName)
	assert.Equal(t, "Normal", s.AttrForID(2).State[0].HiName)
}

func TestAttrForIDUnknownFallsBackToDefaults(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.DefaultColorsSet([]any{0xFFFFFF, 0x000000, 0xFF0000}))

	got := s.AttrForID(42)
	require.True(t, got.Equal(s.DefaultColors()))
	assert.Equal(t, DefaultID, got.ID)

	_, ok := s.Lookup(42)
	assert.False(t, ok)
}

func TestSetNameIDOverwrites(t *testing.T) {
	s := newTestState()

	s.SetNameID("Normal", 5)
	if got := s.IDForName("Normal"); got != 5 {
		t.Fatalf("IDForName = %d, want 5", got)
	}

	s.SetNameID("Normal", 9)
	if got := s.IDForName("Normal"); got != 9 {
		t.Fatalf("IDForName after overwrite = %d, want 9", got)
	}

	s.SetNameID("Normal", 9)
	if got := s.IDForName("Normal"); got != 9 {
		t.Fatalf("repeated set changed id to %d", got)
	}
}

func TestIDForNameUnknown(t *testing.T) {
	s := newTestState()
	if got := s.IDForName("Missing"); got != NotFound {
		t.Fatalf("IDForName(Missing) = %d, want %d", got, NotFound)
	}
}

func TestNamesMayShareID(t *testing.T) {
	s := newTestState()
	s.SetNameID("Comment", 3)
	s.SetNameID("SpecialComment", 3)

	assert.Equal(t, 3, s.IDForName("Comment"))
	assert.Equal(t, 3, s.IDForName("SpecialComment"))
	assert.Equal(t, []string{"Comment", "SpecialComment"}, s.Names())
}

func TestAttrForName(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.Define([]any{3, map[string]any{"foreground": 0x00FF00}, map[string]any{}, []any{}}))
	s.SetNameID("String", 3)
	s.SetNameID("Pending", 11)

	attr, ok := s.AttrForName("String")
	require.True(t, ok)
	assert.Equal(t, models.SomeColor(models.Color{G: 255}), attr.Foreground)

	attr, ok = s.AttrForName("Pending")
	require.True(t, ok, "bound name with undefined id is still bound")
	assert.Equal(t, DefaultID, attr.ID)

	_, ok = s.AttrForName("Nope")
	assert.False(t, ok)
}

func TestIDsSorted(t *testing.T) {
	s := newTestState()
	for _, id := range []int{9, 2, 5} {
		s.SetIDAttr(id, models.NewAttr(id))
	}
	assert.Equal(t, []int{2, 5, 9}, s.IDs())
	assert.Equal(t, 3, s.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.Define([]any{1, map[string]any{"foreground": 0x112233}}))
	s.SetNameID("Normal", 1)

	snap := s.Clone()

	require.NoError(t, s.Define([]any{1, map[string]any{"foreground": 0x445566}}))
	s.SetNameID("Normal", 2)
	require.NoError(t, s.DefaultColorsSet([]any{0xFFFFFF}))

	assert.Equal(t, models.Color{R: 0x11, G: 0x22, B: 0x33}, snap.AttrForID(1).Foreground.Color)
	assert.Equal(t, 1, snap.IDForName("Normal"))
	assert.False(t, snap.DefaultColors().Foreground.Valid)
}
