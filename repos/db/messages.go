package db

const (
	failedToStartTransaction = "failed-to-start-transaction"

	failedToRetrieveID        = "failed-to-retrieve-id"
	failedToCountRowsAffected = "failed-to-count-rows-affected"
	failedToScanRow           = "failed-to-scan-row"
	failedToIterateOverRows   = "failed-to-iterate-over-rows"

	errGroupNotFound    = "group-not-found"
	errGroupHandleTaken = "group-handle-taken"

	failedToCreateGroup = "failed-to-create-group"
	failedToUpdateGroup = "failed-to-update-group"
	failedToFindGroup   = "failed-to-find-group"
	failedToListGroups  = "failed-to-list-groups"
	failedToDeleteGroup = "failed-to-delete-group"

	failedToListUserGroups    = "failed-to-list-user-groups"
	failedToDeleteMemberships = "failed-to-delete-memberships"
	failedToCreateMembership  = "failed-to-create-membership"

	errSettingNotFound  = "setting-not-found"
	failedToFindSetting = "failed-to-find-setting"
	failedToSaveSetting = "failed-to-save-setting"
)
