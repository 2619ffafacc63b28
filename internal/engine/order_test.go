package engine

import (
	"reflect"
	"testing"
)

func TestBringForwardIDs(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		selected []string
		want     []string
		changed  bool
	}{
		{
			name:     "bottom element moves up one slot",
			ids:      []string{"a", "b", "c"},
			selected: []string{"a"},
			want:     []string{"b", "a", "c"},
			changed:  true,
		},
		{
			name:     "top element is a fixed point",
			ids:      []string{"a", "b", "c"},
			selected: []string{"c"},
			want:     []string{"a", "b", "c"},
			changed:  false,
		},
		{
			name:     "contiguous block keeps internal order",
			ids:      []string{"a", "b", "c", "d"},
			selected: []string{"a", "b"},
			want:     []string{"c", "a", "b", "d"},
			changed:  true,
		},
		{
			name:     "block already at top is frozen",
			ids:      []string{"a", "b", "c"},
			selected: []string{"b", "c"},
			want:     []string{"a", "b", "c"},
			changed:  false,
		},
		{
			name:     "disjoint members each advance one slot",
			ids:      []string{"a", "b", "c", "d"},
			selected: []string{"a", "c"},
			want:     []string{"b", "a", "d", "c"},
			changed:  true,
		},
		{
			name:     "everything selected is a no-op",
			ids:      []string{"a", "b"},
			selected: []string{"a", "b"},
			want:     []string{"a", "b"},
			changed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := make(map[string]bool)
			for _, id := range tt.selected {
				sel[id] = true
			}
			ids := append([]string(nil), tt.ids...)

			changed := bringForwardIDs(ids, sel)
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("order = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestSendBackwardIDs(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		selected []string
		want     []string
		changed  bool
	}{
		{
			name:     "top element moves down one slot",
			ids:      []string{"a", "b", "c"},
			selected: []string{"c"},
			want:     []string{"a", "c", "b"},
			changed:  true,
		},
		{
			name:     "bottom element is a fixed point",
			ids:      []string{"a", "b", "c"},
			selected: []string{"a"},
			want:     []string{"a", "b", "c"},
			changed:  false,
		},
		{
			name:     "contiguous block keeps internal order",
			ids:      []string{"a", "b", "c", "d"},
			selected: []string{"c", "d"},
			want:     []string{"a", "c", "d", "b"},
			changed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := make(map[string]bool)
			for _, id := range tt.selected {
				sel[id] = true
			}
			ids := append([]string(nil), tt.ids...)

			changed := sendBackwardIDs(ids, sel)
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("order = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestForwardThenBackwardRoundTrips(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	sel := map[string]bool{"b": true}

	bringForwardIDs(ids, sel)
	sendBackwardIDs(ids, sel)

	if !reflect.DeepEqual(ids, []string{"a", "b", "c", "d"}) {
		t.Errorf("order after round trip = %v", ids)
	}
}
