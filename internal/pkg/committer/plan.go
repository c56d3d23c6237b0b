// Package committer implements the Golden Mutation Pattern for Spanner transactions.
//
// Stores never write directly. Each write operation returns a *spanner.Mutation
// that is collected into a CommitPlan, and the plan is buffered into the
// read-write transaction after the caller's function has finished reading.
// Either every mutation in the plan commits or none does.
//
// Mutations are not visible to reads in the same transaction, so callers do
// all of their reads for a given row before adding a mutation for it.
//
//	ts, err := c.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
//	    row, err := txn.ReadRow(ctx, m_catalog.TableName, spanner.Key{id}, m_catalog.Columns)
//	    ...
//	    plan.Add(catalogModel.UpsertMut(data))
//	    return nil
//	})
package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations for the Golden Mutation Pattern.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// TxFunc reads through txn and adds its writes to plan.
type TxFunc func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *CommitPlan) error

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// ReadWrite runs fn inside a read-write transaction and buffers the plan it
// built once fn returns. Spanner may invoke fn more than once on abort, and
// every attempt starts from an empty plan.
func (c *Committer) ReadWrite(ctx context.Context, fn TxFunc) (time.Time, error) {
	ts, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan := NewPlan()
		if err := fn(ctx, txn, plan); err != nil {
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("transaction failed: %w", err)
	}
	return ts, nil
}
