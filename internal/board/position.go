// Package board holds the ordering rules for kanban columns and tasks.
//
// A container (the columns of a project, the live tasks of a column) is kept
// as an ordered slice of IDs. Every operation returns a new slice; the index
// of an ID is its position. Diff turns the new order into the minimal set of
// position writes against what is currently stored, which also compacts any
// gaps left behind by removals.
package board

// Slot is an item and its stored position.
type Slot struct {
	ID       string
	Position int
}

// IDs returns the IDs of slots in the order given.
func IDs(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.ID
	}
	return out
}

// Clamp bounds pos to [0, n].
func Clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// Insert places id at pos (clamped to the end) and shifts later items right.
// If id is already present it is moved instead.
func Insert(ids []string, id string, pos int) []string {
	rest := Remove(ids, id)
	pos = Clamp(pos, len(rest))

	out := make([]string, 0, len(rest)+1)
	out = append(out, rest[:pos]...)
	out = append(out, id)
	out = append(out, rest[pos:]...)
	return out
}

// Remove drops id and shifts later items left. Unknown IDs are a no-op.
func Remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Move relocates id to pos within the same container.
// pos refers to the final index, clamped to the last slot.
func Move(ids []string, id string, pos int) []string {
	if IndexOf(ids, id) < 0 {
		return append([]string(nil), ids...)
	}
	return Insert(ids, id, pos)
}

// Append adds ids to the end of the container, keeping their relative order.
func Append(ids []string, more ...string) []string {
	out := append([]string(nil), ids...)
	for _, id := range more {
		out = append(Remove(out, id), id)
	}
	return out
}

// IndexOf returns the position of id or -1.
func IndexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Diff returns the writes that bring stored positions in line with order.
// Items in order but absent from stored are always written.
func Diff(stored []Slot, order []string) []Slot {
	current := make(map[string]int, len(stored))
	for _, s := range stored {
		current[s.ID] = s.Position
	}

	var updates []Slot
	for i, id := range order {
		if pos, ok := current[id]; ok && pos == i {
			continue
		}
		updates = append(updates, Slot{ID: id, Position: i})
	}
	return updates
}
