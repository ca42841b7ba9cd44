package services

import (
	"errors"
	"testing"
	"time"

	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
)

func TestCreateWorkspace(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "Alice", "alice@example.com")

	workspace, err := CreateWorkspace(user.ID, "Engineering", "The eng team")

	if err != nil {
		t.Fatalf("CreateWorkspace failed: %v", err)
	}

	if workspace.OwnerID != user.ID {
		t.Errorf("owner = %d, want %d", workspace.OwnerID, user.ID)
	}

	if workspace.InviteCode == "" {
		t.Error("expected a generated invite code")
	}

	var member models.Member

	err = gdb.Preload("Role").
		Where("user_id = ? AND workspace_id = ?", user.ID, workspace.ID).
		First(&member).Error

	if err != nil {
		t.Fatalf("owner membership missing: %v", err)
	}

	if member.Role.Name != string(types.RoleOwner) {
		t.Errorf("owner role = %q, want %q", member.Role.Name, types.RoleOwner)
	}

	var reloaded models.User

	if err := gdb.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}

	if reloaded.CurrentWorkspaceID == nil || *reloaded.CurrentWorkspaceID != workspace.ID {
		t.Errorf("current workspace = %v, want %d", reloaded.CurrentWorkspaceID, workspace.ID)
	}
}

// Breaking the members table after seeding makes the membership insert fail
// once the workspace row is already written; the whole unit must roll back.
func TestCreateWorkspaceRollsBackOnMembershipFailure(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "Alice", "alice@example.com")

	if err := gdb.Migrator().DropTable(&models.Member{}); err != nil {
		t.Fatalf("drop members table: %v", err)
	}

	_, err := CreateWorkspace(user.ID, "Engineering", "")

	if err == nil {
		t.Fatal("expected CreateWorkspace to fail")
	}

	if n := count(t, gdb, &models.Workspace{}, "owner_id = ?", user.ID); n != 0 {
		t.Errorf("%d workspaces left behind after rollback", n)
	}

	var reloaded models.User

	if err := gdb.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}

	if reloaded.CurrentWorkspaceID != nil {
		t.Errorf("current workspace mutated on failed create: %v", *reloaded.CurrentWorkspaceID)
	}
}

func TestCreateWorkspaceUnknownOwner(t *testing.T) {
	setupTestDB(t)

	_, err := CreateWorkspace(9999, "Ghost", "")

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListWorkspacesForUser(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "Alice", "alice@example.com")
	other := createTestUser(t, gdb, "Bob", "bob@example.com")

	first, err := CreateWorkspace(user.ID, "One", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	second, err := CreateWorkspace(user.ID, "Two", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	if _, err := CreateWorkspace(other.ID, "Theirs", ""); err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	workspaces, err := ListWorkspacesForUser(user.ID)

	if err != nil {
		t.Fatalf("ListWorkspacesForUser failed: %v", err)
	}

	if len(workspaces) != 2 {
		t.Fatalf("got %d workspaces, want 2", len(workspaces))
	}

	found := map[uint]bool{}
	for _, ws := range workspaces {
		found[ws.ID] = true
	}

	if !found[first.ID] || !found[second.ID] {
		t.Errorf("missing expected workspaces in %v", found)
	}
}

func TestGetWorkspaceDetailNotFound(t *testing.T) {
	setupTestDB(t)

	_, _, err := GetWorkspaceDetail(42)

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListMembersIncludesRoleRegistry(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "Alice", "alice@example.com")

	workspace, err := CreateWorkspace(user.ID, "Engineering", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	members, roles, err := ListMembers(workspace.ID)

	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}

	if len(members) != 1 {
		t.Fatalf("got %d members, want 1", len(members))
	}

	if members[0].User.Name != "Alice" {
		t.Errorf("member user = %q, want Alice", members[0].User.Name)
	}

	if len(roles) != 3 {
		t.Errorf("got %d roles, want 3", len(roles))
	}
}

func TestComputeAnalytics(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "Alice", "alice@example.com")

	workspace, err := CreateWorkspace(user.ID, "Engineering", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	project := models.Project{Name: "Backend", WorkspaceID: workspace.ID, CreatedByID: user.ID}
	if err := gdb.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	createTestTask(t, gdb, workspace.ID, project.ID, user.ID, types.TaskStatusTodo, &past) // overdue
	createTestTask(t, gdb, workspace.ID, project.ID, user.ID, types.TaskStatusDone, &past) // done, past due: not overdue
	createTestTask(t, gdb, workspace.ID, project.ID, user.ID, types.TaskStatusInProgress, &future)
	createTestTask(t, gdb, workspace.ID, project.ID, user.ID, types.TaskStatusDone, nil)
	createTestTask(t, gdb, workspace.ID, project.ID, user.ID, types.TaskStatusTodo, nil)

	analytics, err := ComputeAnalytics(workspace.ID)

	if err != nil {
		t.Fatalf("ComputeAnalytics failed: %v", err)
	}

	if analytics.TotalTasks != 5 {
		t.Errorf("total = %d, want 5", analytics.TotalTasks)
	}

	if analytics.OverdueTasks != 1 {
		t.Errorf("overdue = %d, want 1 (DONE tasks never count as overdue)", analytics.OverdueTasks)
	}

	if analytics.CompletedTasks != 2 {
		t.Errorf("completed = %d, want 2", analytics.CompletedTasks)
	}

	remaining := analytics.TotalTasks - analytics.CompletedTasks - analytics.OverdueTasks

	if remaining < 0 {
		t.Errorf("counters overlap: total=%d overdue=%d completed=%d",
			analytics.TotalTasks, analytics.OverdueTasks, analytics.CompletedTasks)
	}
}

func TestChangeMemberRole(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")
	invitee := createTestUser(t, gdb, "Bob", "bob@example.com")

	workspace, err := CreateWorkspace(owner.ID, "Engineering", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	if _, err := JoinWorkspaceByInviteCode(invitee.ID, workspace.InviteCode); err != nil {
		t.Fatalf("JoinWorkspaceByInviteCode: %v", err)
	}

	adminRoleID := roleID(t, gdb, types.RoleAdmin)

	member, err := ChangeMemberRole(workspace.ID, invitee.ID, adminRoleID)

	if err != nil {
		t.Fatalf("ChangeMemberRole failed: %v", err)
	}

	if member.Role.Name != string(types.RoleAdmin) {
		t.Errorf("role = %q, want %q", member.Role.Name, types.RoleAdmin)
	}

	var reloaded models.Member

	if err := gdb.Where("user_id = ? AND workspace_id = ?", invitee.ID, workspace.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload member: %v", err)
	}

	if reloaded.RoleID != adminRoleID {
		t.Errorf("persisted role id = %d, want %d", reloaded.RoleID, adminRoleID)
	}
}

func TestChangeMemberRoleNotInWorkspace(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")
	outsider := createTestUser(t, gdb, "Eve", "eve@example.com")

	workspace, err := CreateWorkspace(owner.ID, "Engineering", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	_, err = ChangeMemberRole(workspace.ID, outsider.ID, roleID(t, gdb, types.RoleAdmin))

	if !errors.Is(err, ErrMemberNotInWorkspace) {
		t.Fatalf("err = %v, want ErrMemberNotInWorkspace", err)
	}
}

func TestChangeMemberRoleUnknownRole(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")

	workspace, err := CreateWorkspace(owner.ID, "Engineering", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	_, err = ChangeMemberRole(workspace.ID, owner.ID, 9999)

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateWorkspacePartial(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")

	workspace, err := CreateWorkspace(owner.ID, "Engineering", "Original description")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	updated, err := UpdateWorkspace(workspace.ID, "Platform", "")

	if err != nil {
		t.Fatalf("UpdateWorkspace failed: %v", err)
	}

	if updated.Name != "Platform" {
		t.Errorf("name = %q, want Platform", updated.Name)
	}

	// Empty description means keep, not clear.
	if updated.Description != "Original description" {
		t.Errorf("description = %q, want it unchanged", updated.Description)
	}
}

func TestUpdateWorkspaceNoFieldsIsNoop(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")

	workspace, err := CreateWorkspace(owner.ID, "Engineering", "Original description")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	updated, err := UpdateWorkspace(workspace.ID, "", "")

	if err != nil {
		t.Fatalf("UpdateWorkspace failed: %v", err)
	}

	if updated.Name != workspace.Name || updated.Description != workspace.Description {
		t.Errorf("workspace changed on empty update: %+v", updated)
	}
}

func TestDeleteWorkspaceCascades(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")
	invitee := createTestUser(t, gdb, "Bob", "bob@example.com")

	keep, err := CreateWorkspace(owner.ID, "Keep", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	doomed, err := CreateWorkspace(owner.ID, "Doomed", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	if _, err := JoinWorkspaceByInviteCode(invitee.ID, doomed.InviteCode); err != nil {
		t.Fatalf("JoinWorkspaceByInviteCode: %v", err)
	}

	project := models.Project{Name: "Backend", WorkspaceID: doomed.ID, CreatedByID: owner.ID}
	if err := gdb.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	createTestTask(t, gdb, doomed.ID, project.ID, owner.ID, types.TaskStatusTodo, nil)

	currentWorkspaceID, err := DeleteWorkspace(doomed.ID, owner.ID)

	if err != nil {
		t.Fatalf("DeleteWorkspace failed: %v", err)
	}

	if n := count(t, gdb, &models.Project{}, "workspace_id = ?", doomed.ID); n != 0 {
		t.Errorf("%d projects still reference the workspace", n)
	}

	if n := count(t, gdb, &models.Task{}, "workspace_id = ?", doomed.ID); n != 0 {
		t.Errorf("%d tasks still reference the workspace", n)
	}

	if n := count(t, gdb, &models.Member{}, "workspace_id = ?", doomed.ID); n != 0 {
		t.Errorf("%d memberships still reference the workspace", n)
	}

	if _, _, err := GetWorkspaceDetail(doomed.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted workspace still resolvable: %v", err)
	}

	// The owner's current workspace pointed at the deleted one and must be
	// repointed to a surviving membership.
	if currentWorkspaceID == nil || *currentWorkspaceID != keep.ID {
		t.Errorf("current workspace = %v, want %d", currentWorkspaceID, keep.ID)
	}

	// Bob's membership to the doomed workspace is gone too.
	workspaces, err := ListWorkspacesForUser(invitee.ID)
	if err != nil {
		t.Fatalf("ListWorkspacesForUser: %v", err)
	}

	if len(workspaces) != 0 {
		t.Errorf("invitee still lists %d workspaces", len(workspaces))
	}
}

func TestDeleteWorkspaceRepairsToNil(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")

	only, err := CreateWorkspace(owner.ID, "Only", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	currentWorkspaceID, err := DeleteWorkspace(only.ID, owner.ID)

	if err != nil {
		t.Fatalf("DeleteWorkspace failed: %v", err)
	}

	if currentWorkspaceID != nil {
		t.Errorf("current workspace = %v, want nil", *currentWorkspaceID)
	}

	var reloaded models.User

	if err := gdb.First(&reloaded, owner.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}

	if reloaded.CurrentWorkspaceID != nil {
		t.Errorf("persisted current workspace = %v, want nil", *reloaded.CurrentWorkspaceID)
	}
}

func TestDeleteWorkspaceNonOwner(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "Alice", "alice@example.com")
	invitee := createTestUser(t, gdb, "Bob", "bob@example.com")

	workspace, err := CreateWorkspace(owner.ID, "Engineering", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	if _, err := JoinWorkspaceByInviteCode(invitee.ID, workspace.InviteCode); err != nil {
		t.Fatalf("JoinWorkspaceByInviteCode: %v", err)
	}

	project := models.Project{Name: "Backend", WorkspaceID: workspace.ID, CreatedByID: owner.ID}
	if err := gdb.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	// Even a member with a role cannot delete; ownership is exact-match.
	_, err = DeleteWorkspace(workspace.ID, invitee.ID)

	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}

	if n := count(t, gdb, &models.Member{}, "workspace_id = ?", workspace.ID); n != 2 {
		t.Errorf("memberships mutated on failed delete: %d", n)
	}

	if n := count(t, gdb, &models.Project{}, "workspace_id = ?", workspace.ID); n != 1 {
		t.Errorf("projects mutated on failed delete: %d", n)
	}

	if _, _, err := GetWorkspaceDetail(workspace.ID); err != nil {
		t.Errorf("workspace should survive a non-owner delete: %v", err)
	}
}

// Full walkthrough: create, invite, promote, delete.
func TestWorkspaceMembershipScenario(t *testing.T) {
	gdb := setupTestDB(t)
	alice := createTestUser(t, gdb, "Alice", "alice@example.com")
	bob := createTestUser(t, gdb, "Bob", "bob@example.com")

	workspace, err := CreateWorkspace(alice.ID, "Shared", "")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}

	members, _, err := ListMembers(workspace.ID)
	if err != nil || len(members) != 1 {
		t.Fatalf("members = %d (%v), want 1", len(members), err)
	}

	if _, err := JoinWorkspaceByInviteCode(bob.ID, workspace.InviteCode); err != nil {
		t.Fatalf("JoinWorkspaceByInviteCode: %v", err)
	}

	members, _, err = ListMembers(workspace.ID)
	if err != nil || len(members) != 2 {
		t.Fatalf("members = %d (%v), want 2", len(members), err)
	}

	member, err := ChangeMemberRole(workspace.ID, bob.ID, roleID(t, gdb, types.RoleAdmin))
	if err != nil {
		t.Fatalf("ChangeMemberRole: %v", err)
	}

	if member.Role.Name != string(types.RoleAdmin) {
		t.Fatalf("bob's role = %q, want ADMIN", member.Role.Name)
	}

	if _, err := DeleteWorkspace(workspace.ID, alice.ID); err != nil {
		t.Fatalf("DeleteWorkspace: %v", err)
	}

	workspaces, err := ListWorkspacesForUser(alice.ID)
	if err != nil {
		t.Fatalf("ListWorkspacesForUser: %v", err)
	}

	for _, ws := range workspaces {
		if ws.ID == workspace.ID {
			t.Errorf("deleted workspace still listed for alice")
		}
	}

	if n := count(t, gdb, &models.Member{}, "user_id = ? AND workspace_id = ?", bob.ID, workspace.ID); n != 0 {
		t.Errorf("bob's membership survived the delete")
	}
}
