package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type TaskIDs struct{}

func (TaskIDs) New() string {
	return "t_" + uuid.NewString()
}
