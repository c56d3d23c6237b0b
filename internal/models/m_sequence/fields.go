package m_sequence

// Field name constants for the id_sequences table.
const (
	TableName = "id_sequences"

	Name   = "name"
	NextID = "next_id"
)
