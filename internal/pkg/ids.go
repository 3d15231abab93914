package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

const gameIDLength = 8

// GenerateGameID returns a short random id for a game session.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return id.String()[:gameIDLength], nil
}

// GenerateNewSessionID returns a random id for a new player session.
func GenerateNewSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	return id.String(), nil
}
