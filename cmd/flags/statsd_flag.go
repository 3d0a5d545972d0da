package flags

// StatsDFlag holds the optional StatsD destination. An empty hostname
// means metrics reporting is disabled.
type StatsDFlag struct {
	Hostname string `long:"hostname" description:"Hostname used to connect to StatsD server"`
	Port     int    `long:"port" description:"Port used to connect to StatsD server"`
}

func (f StatsDFlag) Configured() bool {
	return f.Hostname != ""
}
