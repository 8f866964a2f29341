package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		id   string
		pos  int
		want []string
	}{
		{name: "into empty", ids: nil, id: "a", pos: 0, want: []string{"a"}},
		{name: "front", ids: []string{"a", "b"}, id: "x", pos: 0, want: []string{"x", "a", "b"}},
		{name: "middle", ids: []string{"a", "b"}, id: "x", pos: 1, want: []string{"a", "x", "b"}},
		{name: "end", ids: []string{"a", "b"}, id: "x", pos: 2, want: []string{"a", "b", "x"}},
		{name: "past end clamps", ids: []string{"a", "b"}, id: "x", pos: 99, want: []string{"a", "b", "x"}},
		{name: "negative clamps", ids: []string{"a", "b"}, id: "x", pos: -3, want: []string{"x", "a", "b"}},
		{name: "existing id moves", ids: []string{"a", "b", "c"}, id: "a", pos: 2, want: []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insert(tt.ids, tt.id, tt.pos))
		})
	}
}

func TestInsert_DoesNotMutateInput(t *testing.T) {
	ids := []string{"a", "b", "c"}
	_ = Insert(ids, "x", 1)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRemove(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, Remove([]string{"a", "b", "c"}, "b"))
	assert.Equal(t, []string{"a", "b"}, Remove([]string{"a", "b"}, "zz"))
	assert.Empty(t, Remove([]string{"a"}, "a"))
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		id   string
		want []string
	}{
		{name: "down", id: "a", pos: 2, want: []string{"b", "c", "a", "d"}},
		{name: "up", id: "d", pos: 0, want: []string{"d", "a", "b", "c"}},
		{name: "same slot", id: "b", pos: 1, want: []string{"a", "b", "c", "d"}},
		{name: "past end clamps to last", id: "a", pos: 10, want: []string{"b", "c", "d", "a"}},
		{name: "unknown id unchanged", id: "zz", pos: 0, want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Move([]string{"a", "b", "c", "d"}, tt.id, tt.pos))
		})
	}
}

func TestAppend(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "x", "y"}, Append([]string{"a", "b"}, "x", "y"))
	assert.Equal(t, []string{"b", "a"}, Append([]string{"a", "b"}, "a"))
}

func TestDiff(t *testing.T) {
	stored := []Slot{{"a", 0}, {"b", 1}, {"c", 2}}

	t.Run("no change", func(t *testing.T) {
		assert.Empty(t, Diff(stored, []string{"a", "b", "c"}))
	})

	t.Run("shift after insert", func(t *testing.T) {
		got := Diff(append(stored, Slot{"x", 1}), []string{"a", "x", "b", "c"})
		assert.Equal(t, []Slot{{"b", 2}, {"c", 3}}, got)
	})

	t.Run("compact after removal", func(t *testing.T) {
		got := Diff(stored, []string{"a", "c"})
		assert.Equal(t, []Slot{{"c", 1}}, got)
	})

	t.Run("gaps are compacted", func(t *testing.T) {
		got := Diff([]Slot{{"a", 3}, {"b", 7}}, []string{"a", "b"})
		assert.Equal(t, []Slot{{"a", 0}, {"b", 1}}, got)
	})

	t.Run("unknown ids are written", func(t *testing.T) {
		got := Diff(nil, []string{"a"})
		assert.Equal(t, []Slot{{"a", 0}}, got)
	})
}

// Applying Diff to the stored slots must always yield positions 0..n-1 in order.
func TestDiff_ProducesDenseOrder(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := r.Intn(8)
		ids := make([]string, n)
		stored := make([]Slot, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
			stored[i] = Slot{ID: ids[i], Position: r.Intn(20)}
		}

		var order []string
		switch r.Intn(3) {
		case 0:
			order = Insert(ids, "new", r.Intn(n+3)-1)
			stored = append(stored, Slot{ID: "new", Position: -1})
		case 1:
			if n > 0 {
				order = Remove(ids, ids[r.Intn(n)])
			}
		default:
			if n > 0 {
				order = Move(ids, ids[r.Intn(n)], r.Intn(n+2)-1)
			}
		}

		applied := make(map[string]int, len(stored))
		for _, s := range stored {
			applied[s.ID] = s.Position
		}
		for _, u := range Diff(stored, order) {
			applied[u.ID] = u.Position
		}
		for i, id := range order {
			assert.Equal(t, i, applied[id], "round %d id %s", round, id)
		}
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(0, 0))
	assert.Equal(t, 0, Progress(3, 0))
	assert.Equal(t, 33, Progress(3, 1))
	assert.Equal(t, 66, Progress(3, 2))
	assert.Equal(t, 100, Progress(3, 3))
	assert.Equal(t, 100, Progress(3, 5))

	assert.False(t, Complete(0, 0))
	assert.False(t, Complete(2, 1))
	assert.True(t, Complete(2, 2))
}
