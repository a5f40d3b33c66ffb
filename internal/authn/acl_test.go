package authn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchACL_Exact(t *testing.T) {
	granted := []string{"auth.groups.abc.users.read"}

	assert.True(t, MatchACL(granted, "auth.groups.abc.users.read", ""))
	assert.False(t, MatchACL(granted, "auth.groups.abc.users.create", ""))
	assert.False(t, MatchACL(granted, "auth.groups.xyz.users.read", ""))
}

func TestMatchACL_SingleSegmentWildcard(t *testing.T) {
	granted := []string{"auth.groups.*.users.read"}

	assert.True(t, MatchACL(granted, "auth.groups.abc.users.read", ""))
	assert.True(t, MatchACL(granted, "auth.groups.xyz.users.read", ""))
	// * must not cross a dot boundary
	assert.False(t, MatchACL(granted, "auth.groups.abc.def.users.read", ""))
}

func TestMatchACL_TailWildcard(t *testing.T) {
	granted := []string{"auth.groups.#"}

	assert.True(t, MatchACL(granted, "auth.groups.abc.users.read", ""))
	assert.True(t, MatchACL(granted, "auth.groups.abc.users.def.create", ""))
	assert.False(t, MatchACL(granted, "auth.users.abc.groups.read", ""))
}

func TestMatchACL_Negative(t *testing.T) {
	granted := []string{"auth.#", "!auth.groups.abc.users.delete"}

	assert.True(t, MatchACL(granted, "auth.groups.abc.users.read", ""))
	assert.False(t, MatchACL(granted, "auth.groups.abc.users.delete", ""))
}

func TestMatchACL_MeAlias(t *testing.T) {
	granted := []string{"auth.users.me.groups.read", "auth.users.me"}

	assert.True(t, MatchACL(granted, "auth.users.my-uuid.groups.read", "my-uuid"))
	assert.True(t, MatchACL(granted, "auth.users.me.groups.read", "my-uuid"))
	assert.True(t, MatchACL(granted, "auth.users.my-uuid", "my-uuid"))
	assert.False(t, MatchACL(granted, "auth.users.other-uuid.groups.read", "my-uuid"))
}

func TestMatchACL_EmptyRequired(t *testing.T) {
	assert.True(t, MatchACL(nil, "", ""))
	assert.False(t, MatchACL(nil, "auth.groups.abc.users.read", ""))
}
