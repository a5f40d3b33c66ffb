package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vox-platform/vox-auth-services/models"
)

var policyColumns = map[string]string{
	"uuid": "p.uuid",
	"name": "p.name",
}

// CreatePolicy inserts a new policy with its ACL templates.
func (d *AuthDB) CreatePolicy(req models.PolicyRequest) (*models.Policy, error) {
	policy := models.Policy{
		UUID:         uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		ACLTemplates: req.ACLTemplates,
	}
	if policy.ACLTemplates == nil {
		policy.ACLTemplates = []string{}
	}

	_, err := d.DB.Exec(`
		INSERT INTO auth_policy (uuid, name, description, acl_templates) VALUES ($1, $2, $3, $4)`,
		policy.UUID, policy.Name, policy.Description, pq.Array(policy.ACLTemplates))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("error inserting policy: %w", err)
	}

	return &policy, nil
}

// GetPolicy retrieves a single policy by uuid.
func (d *AuthDB) GetPolicy(policyUUID uuid.UUID) (*models.Policy, error) {
	row := d.DB.QueryRow(`
		SELECT p.uuid, p.name, COALESCE(p.description, ''), p.acl_templates
		FROM auth_policy p WHERE p.uuid = $1`, policyUUID)

	var p models.Policy
	if err := row.Scan(&p.UUID, &p.Name, &p.Description, pq.Array(&p.ACLTemplates)); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("error scanning policy: %w", err)
	}
	if p.ACLTemplates == nil {
		p.ACLTemplates = []string{}
	}
	return &p, nil
}

// DeletePolicy removes a policy; associations cascade.
func (d *AuthDB) DeletePolicy(policyUUID uuid.UUID) error {
	res, err := d.DB.Exec(`DELETE FROM auth_policy WHERE uuid = $1`, policyUUID)
	if err != nil {
		return fmt.Errorf("error deleting policy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

// ListPolicies returns a page of policies plus total and filtered counts.
func (d *AuthDB) ListPolicies(p models.ListParams) (*models.PolicyList, error) {
	return d.listPolicies(``, nil, p)
}

// AddGroupPolicy associates a policy with a group, idempotently.
func (d *AuthDB) AddGroupPolicy(groupUUID, policyUUID uuid.UUID) error {
	_, err := d.DB.Exec(`
		INSERT INTO auth_group_policy (group_uuid, policy_uuid) VALUES ($1, $2)`,
		groupUUID, policyUUID)
	if err != nil {
		if mapped := associationError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error inserting group policy association: %w", err)
	}
	return nil
}

// RemoveGroupPolicy removes a group-policy association. Both entities must
// exist; removing an absent association is not an error.
func (d *AuthDB) RemoveGroupPolicy(groupUUID, policyUUID uuid.UUID) error {
	if err := d.groupExists(groupUUID); err != nil {
		return err
	}
	if err := d.policyExists(policyUUID); err != nil {
		return err
	}

	_, err := d.DB.Exec(`
		DELETE FROM auth_group_policy WHERE group_uuid = $1 AND policy_uuid = $2`,
		groupUUID, policyUUID)
	if err != nil {
		return fmt.Errorf("error deleting group policy association: %w", err)
	}
	return nil
}

// ListGroupPolicies returns a page of the policies attached to a group.
func (d *AuthDB) ListGroupPolicies(groupUUID uuid.UUID, p models.ListParams) (*models.PolicyList, error) {
	if err := d.groupExists(groupUUID); err != nil {
		return nil, err
	}
	return d.listPolicies(
		` JOIN auth_group_policy gp ON gp.policy_uuid = p.uuid AND gp.group_uuid = $1`,
		[]interface{}{groupUUID}, p)
}

// AddUserPolicy associates a policy with a user, idempotently.
func (d *AuthDB) AddUserPolicy(userUUID, policyUUID uuid.UUID) error {
	_, err := d.DB.Exec(`
		INSERT INTO auth_user_policy (user_uuid, policy_uuid) VALUES ($1, $2)`,
		userUUID, policyUUID)
	if err != nil {
		if mapped := associationError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error inserting user policy association: %w", err)
	}
	return nil
}

// RemoveUserPolicy removes a user-policy association. Both entities must
// exist; removing an absent association is not an error.
func (d *AuthDB) RemoveUserPolicy(userUUID, policyUUID uuid.UUID) error {
	if err := d.userExists(userUUID); err != nil {
		return err
	}
	if err := d.policyExists(policyUUID); err != nil {
		return err
	}

	_, err := d.DB.Exec(`
		DELETE FROM auth_user_policy WHERE user_uuid = $1 AND policy_uuid = $2`,
		userUUID, policyUUID)
	if err != nil {
		return fmt.Errorf("error deleting user policy association: %w", err)
	}
	return nil
}

// ListUserPolicies returns a page of the policies attached to a user.
func (d *AuthDB) ListUserPolicies(userUUID uuid.UUID, p models.ListParams) (*models.PolicyList, error) {
	if err := d.userExists(userUUID); err != nil {
		return nil, err
	}
	return d.listPolicies(
		` JOIN auth_user_policy up ON up.policy_uuid = p.uuid AND up.user_uuid = $1`,
		[]interface{}{userUUID}, p)
}

// GetUserACL computes the ACL granted to a user: the union of the templates
// from the user's own policies and the policies of the user's groups.
func (d *AuthDB) GetUserACL(userUUID uuid.UUID) ([]string, error) {
	rows, err := d.DB.Query(`
		SELECT p.acl_templates FROM auth_policy p
		JOIN auth_user_policy up ON up.policy_uuid = p.uuid
		WHERE up.user_uuid = $1
		UNION
		SELECT p.acl_templates FROM auth_policy p
		JOIN auth_group_policy gp ON gp.policy_uuid = p.uuid
		JOIN auth_user_group ug ON ug.group_uuid = gp.group_uuid
		WHERE ug.user_uuid = $1`, userUUID)
	if err != nil {
		return nil, fmt.Errorf("error querying user acl: %w", err)
	}
	defer rows.Close()

	seen := map[string]struct{}{}
	acl := []string{}
	for rows.Next() {
		var templates []string
		if err := rows.Scan(pq.Array(&templates)); err != nil {
			return nil, fmt.Errorf("error scanning acl templates: %w", err)
		}
		for _, tmpl := range templates {
			if _, ok := seen[tmpl]; ok {
				continue
			}
			seen[tmpl] = struct{}{}
			acl = append(acl, tmpl)
		}
	}
	return acl, rows.Err()
}

func (d *AuthDB) listPolicies(join string, args []interface{}, p models.ListParams) (*models.PolicyList, error) {
	result := models.PolicyList{Items: []models.Policy{}}

	err := d.DB.QueryRow(`SELECT COUNT(*) FROM auth_policy p`+join, args...).Scan(&result.Total)
	if err != nil {
		return nil, fmt.Errorf("error counting policies: %w", err)
	}

	where := ""
	if p.Search != "" {
		placeholder := fmt.Sprintf("$%d", len(args)+1)
		where = fmt.Sprintf(` WHERE (p.name ILIKE %[1]s OR p.description ILIKE %[1]s)`, placeholder)
		args = append(args, searchPattern(p.Search))
	}

	err = d.DB.QueryRow(`SELECT COUNT(*) FROM auth_policy p`+join+where, args...).Scan(&result.Filtered)
	if err != nil {
		return nil, fmt.Errorf("error counting filtered policies: %w", err)
	}

	query := `SELECT p.uuid, p.name, COALESCE(p.description, ''), p.acl_templates FROM auth_policy p` +
		join + where + orderClause(p, policyColumns, "name", "p.uuid") + limitClause(p)
	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing policies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var policy models.Policy
		if err := rows.Scan(&policy.UUID, &policy.Name, &policy.Description, pq.Array(&policy.ACLTemplates)); err != nil {
			return nil, fmt.Errorf("error scanning policy: %w", err)
		}
		if policy.ACLTemplates == nil {
			policy.ACLTemplates = []string{}
		}
		result.Items = append(result.Items, policy)
	}
	return &result, rows.Err()
}

func (d *AuthDB) policyExists(policyUUID uuid.UUID) error {
	var exists bool
	err := d.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM auth_policy WHERE uuid = $1)`, policyUUID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking policy existence: %w", err)
	}
	if !exists {
		return ErrPolicyNotFound
	}
	return nil
}
