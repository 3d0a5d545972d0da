package migrations

import (
	"github.com/smzarrabimmp/cms/internal/sqlx"
)

var TableName = "cms_migrations"

var Migrations = []sqlx.Migration{
	{
		Name: "create_user_groups_table",
		Up:   createUserGroupsTableUp,
		Down: createUserGroupsTableDown,
	},
	{
		Name: "create_group_memberships_table",
		Up:   createGroupMembershipsTableUp,
		Down: createGroupMembershipsTableDown,
	},
	{
		Name: "create_system_settings_table",
		Up:   createSystemSettingsTableUp,
		Down: createSystemSettingsTableDown,
	},
}
