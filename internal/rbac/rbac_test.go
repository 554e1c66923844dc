package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforce_RoleHierarchy(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{RoleEmployee, "attendance", "create", true},
		{RoleEmployee, "payroll", "process", false},
		{RoleEmployee, "leave", "review", false},
		{RoleHR, "leave", "review", true},
		{RoleHR, "attendance", "create", true}, // inherited from EMPLOYEE
		{RoleHR, "payroll", "process", true},
		{RoleAdmin, "payroll", "process", true}, // inherited from HR
		{RoleAdmin, "leave", "create", true},
		{"INTERN", "attendance", "create", false},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
