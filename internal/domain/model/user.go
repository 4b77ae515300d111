package model

import "time"

// User represents a registered customer of the investment platform.
// BalanceCents is the authoritative available balance in minor units;
// it only changes through storage-level reservation operations.
type User struct {
	ID           int64
	Phone        string
	Login        string
	Country      string
	PasswordHash string
	BalanceCents int64
	CreatedAt    time.Time
}
