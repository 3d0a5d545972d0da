package inmemory

const (
	success = "success"
)
