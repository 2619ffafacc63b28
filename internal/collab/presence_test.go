package collab

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPresenceUpdateNormalizes(t *testing.T) {
	tests := []struct {
		name string
		in   PresencePayload
		want PresencePayload
	}{
		{
			name: "valid payload passes through",
			in: PresencePayload{
				Cursor:    &CursorPos{X: 10, Y: 20},
				Tool:      "pen",
				Selection: &SelectionPayload{Shapes: []string{"shape_a"}},
			},
			want: PresencePayload{
				Cursor:    &CursorPos{X: 10, Y: 20},
				Tool:      "pen",
				Selection: &SelectionPayload{Shapes: []string{"shape_a"}},
			},
		},
		{
			name: "non-finite cursor dropped",
			in:   PresencePayload{Cursor: &CursorPos{X: math.NaN(), Y: 5}, Tool: "select"},
			want: PresencePayload{Tool: "select"},
		},
		{
			name: "infinite cursor dropped",
			in:   PresencePayload{Cursor: &CursorPos{X: 0, Y: math.Inf(1)}},
			want: PresencePayload{},
		},
		{
			name: "unknown tool dropped",
			in:   PresencePayload{Tool: "chainsaw"},
			want: PresencePayload{},
		},
		{
			name: "memberless selection dropped",
			in:   PresencePayload{Tool: "eraser", Selection: &SelectionPayload{}},
			want: PresencePayload{Tool: "eraser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPresenceManager()
			got := pm.Update("user_a", &tt.in)

			if (got.Cursor == nil) != (tt.want.Cursor == nil) {
				t.Errorf("cursor = %+v, want %+v", got.Cursor, tt.want.Cursor)
			}
			if got.Cursor != nil && *got.Cursor != *tt.want.Cursor {
				t.Errorf("cursor = %+v, want %+v", got.Cursor, tt.want.Cursor)
			}
			if got.Tool != tt.want.Tool {
				t.Errorf("tool = %q, want %q", got.Tool, tt.want.Tool)
			}
			if (got.Selection == nil) != (tt.want.Selection == nil) {
				t.Errorf("selection = %+v, want %+v", got.Selection, tt.want.Selection)
			}
		})
	}
}

func TestPresenceStateMessage(t *testing.T) {
	pm := NewPresenceManager()
	pm.Update("user_a", &PresencePayload{Tool: "pen", DisplayName: "Ada"})
	pm.Update("user_b", &PresencePayload{Cursor: &CursorPos{X: 1, Y: 2}})

	msg := pm.StateMessage()
	if msg == nil || msg.Type != TypePresenceState {
		t.Fatalf("state message = %+v", msg)
	}

	var state PresenceStatePayload
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if len(state.Presences) != 2 {
		t.Fatalf("presences = %d, want 2", len(state.Presences))
	}
	if state.Presences["user_a"].Tool != "pen" {
		t.Errorf("user_a tool = %q, want pen", state.Presences["user_a"].Tool)
	}

	pm.Remove("user_a")
	if got := len(pm.GetAll()); got != 1 {
		t.Errorf("presences after remove = %d, want 1", got)
	}
}
