package main

const (
	starting = "starting"
	finished = "finished"

	failedToConnectToStatsD = "failed-to-connect-to-statsd"

	failedToReadCertificate  = "failed-to-read-certificate"
	failedToAppendCertToPool = "failed-to-append-cert-to-pool"
	failedToCreateClient     = "failed-to-create-cms-client"
)
