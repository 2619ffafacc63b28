// Package session manages board access: join codes hashed with bcrypt
// and short-lived board-scoped JWTs handed to the websocket endpoint.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/drawdeck/drawdeck/backend-go/internal/snapshot"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

var (
	ErrInvalidCode  = errors.New("invalid join code")
	ErrInvalidToken = errors.New("invalid token")
)

type Service struct {
	boards    *snapshot.Store
	jwtSecret []byte
}

func NewService(boards *snapshot.Store, jwtSecret string) *Service {
	return &Service{
		boards:    boards,
		jwtSecret: []byte(jwtSecret),
	}
}

// JoinResult is handed back after a successful join.
type JoinResult struct {
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	BoardID string `json:"boardId"`
}

// CreateBoard registers a board with a bcrypt-hashed join code. An empty
// code creates an open board anyone can join.
func (s *Service) CreateBoard(ctx context.Context, name, joinCode string) (*snapshot.Board, error) {
	hash := ""
	if joinCode != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(joinCode), 12)
		if err != nil {
			return nil, fmt.Errorf("hash join code: %w", err)
		}
		hash = string(h)
	}

	boardID := typeid.NewBoardID()
	if err := s.boards.CreateBoard(ctx, boardID, name, hash); err != nil {
		return nil, err
	}
	return &snapshot.Board{ID: boardID, Name: name}, nil
}

// Join validates the join code against the board's stored hash and issues
// a board-scoped token for a fresh anonymous user id.
func (s *Service) Join(ctx context.Context, boardID, joinCode, displayName string) (*JoinResult, error) {
	b, err := s.boards.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if b.JoinCodeHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(b.JoinCodeHash), []byte(joinCode)); err != nil {
			return nil, ErrInvalidCode
		}
	}

	userID := typeid.NewUserID()
	token, err := s.issueToken(userID, boardID, displayName)
	if err != nil {
		return nil, err
	}

	return &JoinResult{Token: token, UserID: userID, BoardID: boardID}, nil
}

// TokenClaims is the validated identity carried by a board token.
type TokenClaims struct {
	UserID      string
	BoardID     string
	DisplayName string
}

// ValidateToken parses a board token and checks it is scoped to boardID.
func (s *Service) ValidateToken(tokenString, boardID string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	tokenBoard, _ := claims["board"].(string)
	displayName, _ := claims["name"].(string)
	if userID == "" || tokenBoard != boardID {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, BoardID: tokenBoard, DisplayName: displayName}, nil
}

func (s *Service) issueToken(userID, boardID, displayName string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"board": boardID,
		"name":  displayName,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
