package unitofwork

import "context"

// RepositoryFactory hands out fresh units of work bound to a request context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
