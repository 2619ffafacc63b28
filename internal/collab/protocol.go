package collab

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Board sync
	TypeBoardSync = "board.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SelectionPayload mirrors the editor's three selection sets.
type SelectionPayload struct {
	Shapes  []string `json:"shapes,omitempty"`
	Strokes []string `json:"strokes,omitempty"`
	Texts   []string `json:"texts,omitempty"`
}

type PresencePayload struct {
	Cursor      *CursorPos        `json:"cursor,omitempty"`
	Selection   *SelectionPayload `json:"selection,omitempty"`
	Tool        string            `json:"tool,omitempty"`
	DisplayName string            `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
	BoardID  string `json:"boardId"`
}

// --- Operation Types ---

const (
	OpShapeUpsert  = "shape.upsert"
	OpShapeDelete  = "shape.delete"
	OpStrokeUpsert = "stroke.upsert"
	OpStrokeDelete = "stroke.delete"
	OpStrokeSplit  = "stroke.split"
	OpTextUpsert   = "text.upsert"
	OpTextDelete   = "text.delete"
	OpReorder      = "board.reorder"
	OpClear        = "board.clear"
)

// Operation is one board mutation on the wire. Object carries the full
// post-mutation state for upserts; Fragments carries the surviving
// sub-strokes of a split.
type Operation struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	ClientSeq int64           `json:"clientSeq"`
	ObjectID  string          `json:"objectId,omitempty"`
	Object    json.RawMessage `json:"object,omitempty"`

	// For stroke.split
	Fragments json.RawMessage `json:"fragments,omitempty"`

	// For board.reorder
	Category string   `json:"category,omitempty"`
	Order    []string `json:"order,omitempty"`
}

type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// BoardSyncPayload carries the full board document on join.
type BoardSyncPayload struct {
	Document  json.RawMessage `json:"document"`
	ServerSeq int64           `json:"serverSeq"`
}
