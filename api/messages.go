package api

const (
	internal = "internal-error"

	failedToDecodeRequest = "failed-to-decode-request"
)
