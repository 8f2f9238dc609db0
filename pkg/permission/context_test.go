package permission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
)

func TestRoleContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, ok := permission.RoleFromContext(ctx)
	assert.False(t, ok)

	ctx = permission.WithRole(ctx, permission.RolePlatformAdmin)
	role, ok := permission.RoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, permission.RolePlatformAdmin, role)
}
