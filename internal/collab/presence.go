package collab

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/drawdeck/drawdeck/backend-go/internal/engine"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

// knownTools are the tool names a peer may report in its presence.
// Anything else is dropped rather than relayed to the room.
var knownTools = map[string]bool{
	string(engine.ToolSelect):    true,
	string(engine.ToolRectangle): true,
	string(engine.ToolCircle):    true,
	string(engine.ToolEllipse):   true,
	string(engine.ToolLine):      true,
	string(engine.ToolArrow):     true,
	string(engine.ToolTriangle):  true,
	string(engine.ToolPen):       true,
	string(engine.ToolEraser):    true,
	string(engine.ToolText):      true,
}

// PresenceManager tracks the live cursor, selection and tool of every
// user in one board room. Payloads are normalized on entry so all
// clients see the same cleaned view.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

// Update normalizes p in place, stores it, and returns it for
// rebroadcast.
func (pm *PresenceManager) Update(userID string, p *PresencePayload) *PresencePayload {
	normalizePresence(p)

	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = p
	return p
}

// normalizePresence drops unusable fields: a non-finite cursor, a tool
// name the editor does not know, and a selection with no members.
func normalizePresence(p *PresencePayload) {
	if p.Cursor != nil {
		if c := (geometry.Point{X: p.Cursor.X, Y: p.Cursor.Y}); !c.IsFinite() {
			p.Cursor = nil
		}
	}
	if p.Tool != "" && !knownTools[p.Tool] {
		p.Tool = ""
	}
	if p.Selection != nil &&
		len(p.Selection.Shapes)+len(p.Selection.Strokes)+len(p.Selection.Texts) == 0 {
		p.Selection = nil
	}
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		result[k] = v
	}
	return result
}

// StateMessage packs the room's current presences into one message for
// newly joined clients.
func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	payload, err := json.Marshal(PresenceStatePayload{Presences: all})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
