// Package snapshot persists board documents to Postgres as versioned
// snapshots. The collaboration hub saves through it on its snapshot tick
// and when the last client leaves a room.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

var ErrNotFound = errors.New("board not found")

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS boards (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	join_code_hash TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS board_snapshots (
	id         TEXT PRIMARY KEY,
	board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	version    INTEGER NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (board_id, version)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_board_version
	ON board_snapshots (board_id, version DESC);
`

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Board is one stored board's metadata.
type Board struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	JoinCodeHash string `json:"-"`
}

// CreateBoard inserts a board row.
func (s *Store) CreateBoard(ctx context.Context, id, name, joinCodeHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO boards (id, name, join_code_hash) VALUES ($1, $2, $3)`,
		id, name, joinCodeHash,
	)
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

// GetBoard fetches a board row by id.
func (s *Store) GetBoard(ctx context.Context, id string) (*Board, error) {
	var b Board
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, join_code_hash FROM boards WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.JoinCodeHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &b, nil
}

// ListBoards returns all board rows, most recent first.
func (s *Store) ListBoards(ctx context.Context) ([]Board, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, join_code_hash FROM boards ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var boards []Board
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Name, &b.JoinCodeHash); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// LoadLatest returns the most recent snapshot's document and version.
// A board with no snapshots yet loads as an empty document at version 0.
func (s *Store) LoadLatest(ctx context.Context, boardID string) (board.Document, int32, error) {
	var raw []byte
	var version int32
	err := s.pool.QueryRow(ctx,
		`SELECT document, version FROM board_snapshots
		 WHERE board_id = $1 ORDER BY version DESC LIMIT 1`,
		boardID,
	).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return board.Document{}, 0, nil
		}
		return board.Document{}, 0, fmt.Errorf("load snapshot: %w", err)
	}

	var doc board.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return board.Document{}, 0, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, version, nil
}

// Save writes the document as a new snapshot version.
func (s *Store) Save(ctx context.Context, boardID string, doc board.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO board_snapshots (id, board_id, version, document)
		 VALUES ($1, $2,
			COALESCE((SELECT MAX(version) FROM board_snapshots WHERE board_id = $2), 0) + 1,
			$3)`,
		typeid.NewSnapshotID(), boardID, raw,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
