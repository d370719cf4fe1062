// Package repomanager hands out repositories bound to a connection or a
// transaction, so services can reuse the same repository code inside and
// outside dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkovalev7/scentshop/internal/dbx"
	"github.com/dkovalev7/scentshop/internal/server/repositories/carts"
	"github.com/dkovalev7/scentshop/internal/server/repositories/orders"
	"github.com/dkovalev7/scentshop/internal/server/repositories/perfumes"
	"github.com/dkovalev7/scentshop/internal/server/repositories/refreshtokens"
	"github.com/dkovalev7/scentshop/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Perfumes(db dbx.DBTX) perfumes.Repository
	Carts(db dbx.DBTX) carts.Repository
	Orders(db dbx.DBTX) orders.Repository
}
