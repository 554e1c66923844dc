// Package rbac gates operations by caller role. Role assignment itself
// comes from the authentication collaborator; this package only answers
// "may this role perform this action on this resource".
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies is the static single-company policy set. Row order mirrors
// the resource list: employee, attendance, leave, regularization,
// payroll, holiday, settings, announcement, document.
var policies = [][]string{
	{RoleEmployee, "attendance", "create"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "regularization", "create"},
	{RoleEmployee, "regularization", "read"},
	{RoleEmployee, "payroll", "read"},
	{RoleEmployee, "holiday", "read"},
	{RoleEmployee, "announcement", "read"},
	{RoleEmployee, "document", "read"},
	{RoleEmployee, "document", "create"},
	{RoleEmployee, "employee", "read"},

	{RoleHR, "employee", "create"},
	{RoleHR, "employee", "update"},
	{RoleHR, "employee", "delete"},
	{RoleHR, "attendance", "manage"},
	{RoleHR, "leave", "review"},
	{RoleHR, "regularization", "review"},
	{RoleHR, "payroll", "process"},
	{RoleHR, "holiday", "manage"},
	{RoleHR, "settings", "read"},
	{RoleHR, "settings", "manage"},
	{RoleHR, "announcement", "manage"},
	{RoleHR, "document", "manage"},
}

// groupings: ADMIN inherits everything HR can do, HR inherits EMPLOYEE.
var groupings = [][]string{
	{RoleAdmin, RoleHR},
	{RoleHR, RoleEmployee},
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
