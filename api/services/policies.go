package services

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/rs/zerolog"

	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

var policyOrderColumns = []string{"uuid", "name"}

// CreatePolicyService creates a new policy from its ACL templates.
func (s *AuthService) CreatePolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req models.PolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "invalid request payload")
		return
	}
	if req.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "name is required")
		return
	}

	policy, err := s.DB.CreatePolicy(req)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.PolicyCreated, map[string]string{
		"policy_uuid": policy.UUID.String(),
		"name":        policy.Name,
	})

	location := path.Join(r.URL.Path, policy.UUID.String())
	WriteResponse(w, http.StatusCreated, policy, location)
}

// GetPolicyService retrieves a single policy.
func (s *AuthService) GetPolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	policyUUID, ok := pathUUID(w, r, "policy_uuid")
	if !ok {
		return
	}

	policy, err := s.DB.GetPolicy(policyUUID)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, policy)
}

// DeletePolicyService removes a policy and its associations.
func (s *AuthService) DeletePolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	policyUUID, ok := pathUUID(w, r, "policy_uuid")
	if !ok {
		return
	}

	if err := s.DB.DeletePolicy(policyUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.PolicyDeleted, map[string]string{
		"policy_uuid": policyUUID.String(),
	})
	WriteResponse(w, http.StatusNoContent, nil)
}

// GetPoliciesService lists policies with pagination.
func (s *AuthService) GetPoliciesService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	params, err := ParseListParams(r, policyOrderColumns, "name")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	policies, err := s.DB.ListPolicies(params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, policies)
}

// GetGroupPoliciesService lists the policies attached to a group.
func (s *AuthService) GetGroupPoliciesService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}

	params, err := ParseListParams(r, policyOrderColumns, "name")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	policies, err := s.DB.ListGroupPolicies(groupUUID, params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, policies)
}

// AddGroupPolicyService attaches a policy to a group, idempotently.
func (s *AuthService) AddGroupPolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}
	policyUUID, ok := pathUUID(w, r, "policy_uuid")
	if !ok {
		return
	}

	if err := s.DB.AddGroupPolicy(groupUUID, policyUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusNoContent, nil)
}

// RemoveGroupPolicyService detaches a policy from a group.
func (s *AuthService) RemoveGroupPolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}
	policyUUID, ok := pathUUID(w, r, "policy_uuid")
	if !ok {
		return
	}

	if err := s.DB.RemoveGroupPolicy(groupUUID, policyUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusNoContent, nil)
}

// GetUserPoliciesService lists the policies attached to a user.
func (s *AuthService) GetUserPoliciesService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}

	params, err := ParseListParams(r, policyOrderColumns, "name")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	policies, err := s.DB.ListUserPolicies(userUUID, params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, policies)
}

// AddUserPolicyService attaches a policy to a user, idempotently.
func (s *AuthService) AddUserPolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}
	policyUUID, ok := pathUUID(w, r, "policy_uuid")
	if !ok {
		return
	}

	if err := s.DB.AddUserPolicy(userUUID, policyUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusNoContent, nil)
}

// RemoveUserPolicyService detaches a policy from a user.
func (s *AuthService) RemoveUserPolicyService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}
	policyUUID, ok := pathUUID(w, r, "policy_uuid")
	if !ok {
		return
	}

	if err := s.DB.RemoveUserPolicy(userUUID, policyUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusNoContent, nil)
}
