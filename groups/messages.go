package groups

const (
	starting = "starting"
	success  = "success"

	validationFailed   = "validation-failed"
	assignmentRejected = "assignment-rejected"

	noDefaultGroupConfigured        = "no-default-group-configured"
	invalidDefaultGroupSetting      = "invalid-default-group-setting"
	staleDefaultGroupSetting        = "stale-default-group-setting"
	failedToReadDefaultGroupSetting = "failed-to-read-default-group-setting"
)
