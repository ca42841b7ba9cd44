package rbac

import "github.com/teamhub-dev/teamhub/internal/types"

// RolePermissions maps each role to its flat permission set. It is loaded
// once at process start, seeded into the roles table, and never mutated.
var RolePermissions = map[types.RoleName][]types.Permission{
	types.RoleOwner: {
		types.PermCreateWorkspace,
		types.PermDeleteWorkspace,
		types.PermEditWorkspace,
		types.PermManageWorkspaceSettings,
		types.PermAddMember,
		types.PermChangeMemberRole,
		types.PermRemoveMember,
		types.PermCreateProject,
		types.PermEditProject,
		types.PermDeleteProject,
		types.PermCreateTask,
		types.PermEditTask,
		types.PermDeleteTask,
		types.PermViewOnly,
	},
	types.RoleAdmin: {
		types.PermEditWorkspace,
		types.PermManageWorkspaceSettings,
		types.PermAddMember,
		types.PermChangeMemberRole,
		types.PermRemoveMember,
		types.PermCreateProject,
		types.PermEditProject,
		types.PermDeleteProject,
		types.PermCreateTask,
		types.PermEditTask,
		types.PermDeleteTask,
		types.PermViewOnly,
	},
	types.RoleMember: {
		types.PermCreateTask,
		types.PermEditTask,
		types.PermViewOnly,
	},
}
