package handlers

import (
	"net/http"

	"github.com/vox-platform/vox-auth-services/api/services"
)

// @Summary Create a user
// @Description Create a new user. Usernames are unique; the password is stored as salted pbkdf2 material.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserCreateRequest true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /users [post]
func CreateUser(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateUserService(w, r)
	}
}

// @Summary List users
// @Tags users
// @Produce json
// @Param order query string false "Order column" example(username)
// @Param direction query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "User filter"
// @Success 200 {object} models.UserList
// @Failure 400 {object} models.APIError
// @Router /users [get]
func GetUsers(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetUsersService(w, r)
	}
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param user_uuid path string true "User UUID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.APIError
// @Router /users/{user_uuid} [get]
func GetUser(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetUserService(w, r)
	}
}

// @Summary Delete a user
// @Tags users
// @Param user_uuid path string true "User UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /users/{user_uuid} [delete]
func DeleteUser(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteUserService(w, r)
	}
}

// @Summary List the groups of a user
// @Description List the groups a user belongs to with pagination and search.
// @Tags users
// @Produce json
// @Param user_uuid path string true "User UUID"
// @Param order query string false "Order column" example(name)
// @Param direction query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "Group name filter"
// @Success 200 {object} models.GroupList
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /users/{user_uuid}/groups [get]
func GetUserGroups(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetUserGroupsService(w, r)
	}
}

// @Summary List the policies of a user
// @Tags users
// @Produce json
// @Param user_uuid path string true "User UUID"
// @Success 200 {object} models.PolicyList
// @Failure 404 {object} models.APIError
// @Router /users/{user_uuid}/policies [get]
func GetUserPolicies(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetUserPoliciesService(w, r)
	}
}

// @Summary Attach a policy to a user
// @Tags users
// @Param user_uuid path string true "User UUID"
// @Param policy_uuid path string true "Policy UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /users/{user_uuid}/policies/{policy_uuid} [put]
func AddUserPolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.AddUserPolicyService(w, r)
	}
}

// @Summary Detach a policy from a user
// @Tags users
// @Param user_uuid path string true "User UUID"
// @Param policy_uuid path string true "Policy UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /users/{user_uuid}/policies/{policy_uuid} [delete]
func RemoveUserPolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.RemoveUserPolicyService(w, r)
	}
}
