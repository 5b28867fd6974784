package ports

import (
	"etbench/domain/forcing"
)

// ForcingSource produces a validated forcing dataset from some external
// source (file, synthetic generator, in-memory table).
type ForcingSource interface {
	Read() (*forcing.Dataset, error)
}
