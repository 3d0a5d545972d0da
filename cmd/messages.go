package cmd

const (
	starting     = "starting"
	finished     = "finished"
	success      = "success"
	failed       = "failed"
	shuttingDown = "shutting-down"

	migrationStatus = "migration-status"

	failedToListen              = "failed-to-listen"
	failedToParseTLSCredentials = "failed-to-parse-tls-credentials"
	failedToOpenAuditFile       = "failed-to-open-audit-file"
	failedToConnectToStatsD     = "failed-to-connect-to-statsd"
	failedToVerifyMigrations    = "failed-to-verify-migrations"
	failedToObserveDuration     = "failed-to-observe-duration"
)
