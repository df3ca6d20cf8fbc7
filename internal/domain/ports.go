package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time to registrars, validators and summaries
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies fresh voter, voting and vote identifiers
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator generates random UUIDv4 identifiers
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
