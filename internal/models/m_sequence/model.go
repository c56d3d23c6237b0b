package m_sequence

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the id_sequences table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// AdvanceMut stores the next id for a sequence.
func (m *Model) AdvanceMut(name string, nextID int64) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, []string{Name, NextID}, []interface{}{name, nextID})
}
