package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveStaffQuery_AllStaff(t *testing.T) {
	query, args, err := activeStaffQuery(nil).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM users")
	assert.Contains(t, query, "active = $1")
	assert.Contains(t, query, "role <> $2")
	assert.NotContains(t, query, "id IN")
	assert.Contains(t, query, "ORDER BY id ASC")
	assert.Equal(t, []interface{}{true, roleClient}, args)
}

func TestActiveStaffQuery_RestrictedToIDs(t *testing.T) {
	query, args, err := activeStaffQuery([]int64{3, 5}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "active = $1")
	assert.Contains(t, query, "role <> $2")
	assert.Contains(t, query, "id IN ($3,$4)")
	assert.Equal(t, []interface{}{true, roleClient, int64(3), int64(5)}, args)
}

func TestEmployeeSelect_DerivesStaffFlag(t *testing.T) {
	query, args, err := employeeSelect().ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "role <> 'client' AS is_staff")
	assert.Empty(t, args)
}
