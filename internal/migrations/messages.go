package migrations

const (
	starting = "starting"
	finished = "finished"
)
