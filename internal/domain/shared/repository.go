package shared

import "context"

// Transactor runs a unit of work inside one database transaction.
// Repositories invoked with the context handed to fn join that transaction.
// Calling Transaction again with such a context opens a savepoint, so a
// failing inner unit rolls back alone while the outer one carries on.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
