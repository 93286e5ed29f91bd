package model

import "time"

// SystemUser stamps rows written without a caller identity, such as seeded fixtures and sweeps.
const SystemUser = "system"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

func NewMetadata(user string, at time.Time) Metadata {
	if user == "" {
		user = SystemUser
	}

	return Metadata{
		CreatedAt:  at,
		ModifiedAt: at,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
