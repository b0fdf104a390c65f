package health

// Index is the consumer view of the vector index state.
type Index interface {
	Ready() bool
	Len() int
}
