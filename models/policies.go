package models

import "github.com/google/uuid"

// Policy bundles ACL templates under a name. Tokens issued to a user carry
// the union of the templates from the user's policies and the policies of
// the user's groups.
type Policy struct {
	UUID         uuid.UUID `json:"uuid"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ACLTemplates []string  `json:"acl_templates"`
}

// PolicyRequest is the payload accepted by POST /policies.
type PolicyRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ACLTemplates []string `json:"acl_templates"`
}

// PolicyList is the paginated result of a policy listing.
type PolicyList struct {
	Total    int      `json:"total"`
	Filtered int      `json:"filtered"`
	Items    []Policy `json:"items"`
}
