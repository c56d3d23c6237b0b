package m_sequence

// Data holds the next id to hand out for one entity kind.
type Data struct {
	Name   string `spanner:"name"`
	NextID int64  `spanner:"next_id"`
}
