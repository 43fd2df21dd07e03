package documents

import (
	"context"

	"autorental-backend/internal/domain"
)

// ContractData is the snapshot handed to the document pipeline. The rental
// core only supplies data; rendering lives behind this interface.
type ContractData struct {
	Rental   *domain.Rental
	Vehicle  *domain.Vehicle
	Customer *domain.Customer
}

// Generator renders a contract artifact for a rental and returns a reference
// to it (a path or URL, depending on the implementation).
type Generator interface {
	Generate(ctx context.Context, data ContractData) (string, error)
}
