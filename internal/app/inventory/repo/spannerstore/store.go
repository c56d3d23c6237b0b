// Package spannerstore implements the persistence gateway on Cloud Spanner.
//
// Reads go through the transaction's ReadRow/Read/Query methods. Writes are
// turned into mutations by the m_* models and buffered through a committer
// CommitPlan, so a ReadWrite scope commits all of its writes at once.
package spannerstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog_product"
	"github.com/light-bringer/inventory-service/internal/models/m_category"
	"github.com/light-bringer/inventory-service/internal/models/m_packaging"
	"github.com/light-bringer/inventory-service/internal/models/m_product"
	"github.com/light-bringer/inventory-service/internal/models/m_product_code"
	"github.com/light-bringer/inventory-service/internal/models/m_sequence"
	"github.com/light-bringer/inventory-service/internal/pkg/committer"
)

type models struct {
	product        *m_product.Model
	productCode    *m_product_code.Model
	category       *m_category.Model
	packaging      *m_packaging.Model
	catalog        *m_catalog.Model
	catalogProduct *m_catalog_product.Model
	sequence       *m_sequence.Model
}

// Store implements contracts.Store for Spanner.
type Store struct {
	client    *spanner.Client
	committer *committer.Committer
	models    *models
}

var _ contracts.Store = (*Store)(nil)

// New creates a Store over an existing client. Close closes the client.
func New(client *spanner.Client) *Store {
	return &Store{
		client:    client,
		committer: committer.NewCommitter(client),
		models: &models{
			product:        m_product.NewModel(),
			productCode:    m_product_code.NewModel(),
			category:       m_category.NewModel(),
			packaging:      m_packaging.NewModel(),
			catalog:        m_catalog.NewModel(),
			catalogProduct: m_catalog_product.NewModel(),
			sequence:       m_sequence.NewModel(),
		},
	}
}

// Open connects to database, e.g. projects/p/instances/i/databases/d.
// SPANNER_EMULATOR_HOST is honored by the client library.
func Open(ctx context.Context, database string) (*Store, error) {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	return New(client), nil
}

// ReadWrite runs fn in a read-write transaction. Spanner retries aborted
// transactions, so fn may run more than once and must not keep state between runs.
func (s *Store) ReadWrite(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	_, err := s.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		tx := newReadWriteTx(s.models, txn, plan)
		if err := fn(ctx, tx); err != nil {
			return err
		}
		tx.flush()
		return nil
	})
	return err
}

// ReadOnly runs fn against a consistent snapshot.
func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context, tx contracts.ReadTx) error) error {
	txn := s.client.ReadOnlyTransaction()
	defer txn.Close()
	return fn(ctx, &reader{txn: txn})
}

func (s *Store) Close() error {
	s.client.Close()
	return nil
}
