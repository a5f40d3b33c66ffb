package handlers

import (
	"net/http"

	"github.com/vox-platform/vox-auth-services/api/services"
)

// @Summary Create a policy
// @Description Create a new policy from its ACL templates. Policy names are unique.
// @Tags policies
// @Accept json
// @Produce json
// @Param policy body models.PolicyRequest true "Policy"
// @Success 201 {object} models.Policy
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /policies [post]
func CreatePolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreatePolicyService(w, r)
	}
}

// @Summary List policies
// @Tags policies
// @Produce json
// @Param order query string false "Order column" example(name)
// @Param direction query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "Name or description filter"
// @Success 200 {object} models.PolicyList
// @Failure 400 {object} models.APIError
// @Router /policies [get]
func GetPolicies(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetPoliciesService(w, r)
	}
}

// @Summary Get a policy
// @Tags policies
// @Produce json
// @Param policy_uuid path string true "Policy UUID"
// @Success 200 {object} models.Policy
// @Failure 404 {object} models.APIError
// @Router /policies/{policy_uuid} [get]
func GetPolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetPolicyService(w, r)
	}
}

// @Summary Delete a policy
// @Tags policies
// @Param policy_uuid path string true "Policy UUID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /policies/{policy_uuid} [delete]
func DeletePolicy(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeletePolicyService(w, r)
	}
}
