package authn

import (
	"regexp"
	"strings"
)

// ACL syntax: permissions are dot-separated strings such as
// auth.groups.<uuid>.users.read. In a granted ACL, `*` matches exactly one
// segment and `#` matches any remaining tail. A granted ACL starting with
// `!` denies what it matches, and denials win over grants. The segment `me`
// in a granted ACL stands for the caller's own uuid.

// MatchACL reports whether the granted ACLs authorize the required
// permission for the caller identified by authID.
func MatchACL(granted []string, required string, authID string) bool {
	if required == "" {
		return true
	}

	var positive, negative []string
	for _, acl := range granted {
		if strings.HasPrefix(acl, "!") {
			negative = append(negative, acl[1:])
		} else {
			positive = append(positive, acl)
		}
	}

	for _, acl := range negative {
		if aclRegex(acl, authID).MatchString(required) {
			return false
		}
	}
	for _, acl := range positive {
		if aclRegex(acl, authID).MatchString(required) {
			return true
		}
	}
	return false
}

func aclRegex(acl, authID string) *regexp.Regexp {
	expr := regexp.QuoteMeta(acl)
	expr = strings.ReplaceAll(expr, `\*`, `[^.]*?`)
	expr = strings.ReplaceAll(expr, `#`, `.*?`)
	expr = expandMe(expr, authID)
	return regexp.MustCompile("^" + expr + "$")
}

func expandMe(expr, authID string) string {
	if authID == "" {
		return expr
	}
	id := regexp.QuoteMeta(authID)
	expr = strings.ReplaceAll(expr, `\.me\.`, `\.(me|`+id+`)\.`)
	if strings.HasSuffix(expr, `\.me`) {
		expr = expr[:len(expr)-len(`\.me`)] + `\.(me|` + id + `)`
	}
	return expr
}
