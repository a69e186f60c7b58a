package ports

import (
	"context"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// RepoManager gives access to the repositories of the registry and lets the
// caller run a unit of work as a single storage transaction.
type RepoManager interface {
	// ActiveAuctionRepository returns the repository of the active registry.
	ActiveAuctionRepository() domain.ActiveAuctionRepository
	// ClosedAuctionRepository returns the repository of the closed ledger.
	ClosedAuctionRepository() domain.ClosedAuctionRepository
	// SymbolRepository returns the repository of the symbol table.
	SymbolRepository() domain.SymbolRepository
	// ViewingKeyRepository returns the repository of the viewing key verifiers.
	ViewingKeyRepository() domain.ViewingKeyRepository
	// FactoryRepository returns the repository of the factory state.
	FactoryRepository() domain.FactoryRepository

	// RunTransaction runs the handler inside a storage transaction: either
	// all of its effects are committed or none are. The transaction travels
	// in the handler's context and is picked up by every repository call.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	// Close should be used to gracefully close the connection with the db.
	Close()
}

// Transaction interface defines the method to commit or discard a database
// transaction.
type Transaction interface {
	Commit() error
	Discard()
}
