package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque ids used to correlate the log lines of one run.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// Static always returns the same id. Useful for deterministic runs.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
