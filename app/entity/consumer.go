package entity

import "time"

// Consumer carries only what subscription creation needs: the current address,
// snapshotted onto the subscription at creation time.
type Consumer struct {
	ID        uint64
	Name      string
	Email     string
	AddressID uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}
