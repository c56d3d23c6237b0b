package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan_Add(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(spanner.Delete("catalogs", spanner.Key{int64(1)}))
	plan.Add(nil)
	plan.AddMultiple([]*spanner.Mutation{
		spanner.Delete("catalog_products", spanner.Key{int64(1), int64(2)}),
		nil,
	})

	assert.False(t, plan.IsEmpty())
	assert.Len(t, plan.Mutations(), 2)
}
