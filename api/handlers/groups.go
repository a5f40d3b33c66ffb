package handlers

import (
	"net/http"

	"github.com/vox-platform/vox-auth-services/api/services"
)

// @Summary Create a group
// @Description Create a new group. Group names are unique.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body models.GroupRequest true "Group"
// @Success 201 {object} models.Group
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /groups [post]
func CreateGroup(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateGroupService(w, r)
	}
}

// @Summary List groups
// @Description List groups with pagination and search.
// @Tags groups
// @Produce json
// @Param order query string false "Order column" example(name)
// @Param direction query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "Name filter"
// @Success 200 {object} models.GroupList
// @Failure 400 {object} models.APIError
// @Router /groups [get]
func GetGroups(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetGroupsService(w, r)
	}
}

// @Summary Get a group
// @Tags groups
// @Produce json
// @Param group_uuid path string true "Group UUID"
// @Success 200 {object} models.Group
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid} [get]
func GetGroup(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetGroupService(w, r)
	}
}

// @Summary Rename a group
// @Tags groups
// @Accept json
// @Produce json
// @Param group_uuid path string true "Group UUID"
// @Param group body models.GroupRequest true "Group"
// @Success 200 {object} models.Group
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /groups/{group_uuid} [put]
func UpdateGroup(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateGroupService(w, r)
	}
}

// @Summary Delete a group
// @Tags groups
// @Param group_uuid path string true "Group UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid} [delete]
func DeleteGroup(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteGroupService(w, r)
	}
}

// @Summary List the members of a group
// @Description List the users belonging to a group with pagination and search.
// @Tags groups
// @Produce json
// @Param group_uuid path string true "Group UUID"
// @Param order query string false "Order column" example(username)
// @Param direction query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "User filter"
// @Success 200 {object} models.UserList
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid}/users [get]
func GetGroupUsers(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetGroupUsersService(w, r)
	}
}

// @Summary Add a user to a group
// @Description Add a user to a group. Re-adding an existing member succeeds.
// @Tags groups
// @Param group_uuid path string true "Group UUID"
// @Param user_uuid path string true "User UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid}/users/{user_uuid} [put]
func AddGroupUser(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.AddGroupUserService(w, r)
	}
}

// @Summary Remove a user from a group
// @Description Remove a user from a group. Removing an absent membership succeeds when both entities exist.
// @Tags groups
// @Param group_uuid path string true "Group UUID"
// @Param user_uuid path string true "User UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid}/users/{user_uuid} [delete]
func RemoveGroupUser(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.RemoveGroupUserService(w, r)
	}
}

// @Summary List the policies of a group
// @Tags groups
// @Produce json
// @Param group_uuid path string true "Group UUID"
// @Success 200 {object} models.PolicyList
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid}/policies [get]
func GetGroupPolicies(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetGroupPoliciesService(w, r)
	}
}

// @Summary Attach a policy to a group
// @Tags groups
// @Param group_uuid path string true "Group UUID"
// @Param policy_uuid path string true "Policy UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid}/policies/{policy_uuid} [put]
func AddGroupPolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.AddGroupPolicyService(w, r)
	}
}

// @Summary Detach a policy from a group
// @Tags groups
// @Param group_uuid path string true "Group UUID"
// @Param policy_uuid path string true "Policy UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /groups/{group_uuid}/policies/{policy_uuid} [delete]
func RemoveGroupPolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.RemoveGroupPolicyService(w, r)
	}
}
