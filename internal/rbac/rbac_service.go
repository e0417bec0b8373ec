package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"

	"go-hrms/internal/user"
)

// The role model is small and fixed, so the policy ships in code instead of
// a database adapter. HR_ADMIN inherits the manager grants, managers inherit
// the employee grants.
const modelText = `
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

type policyRule struct {
	role     string
	resource string
	action   string
}

var policyRules = []policyRule{
	{user.RoleEmployee, "leave_type", "read"},
	{user.RoleEmployee, "leave_balance", "read"},

	{user.RoleHRAdmin, "leave_type", "manage"},
	{user.RoleHRAdmin, "leave_balance", "assign"},
	{user.RoleHRAdmin, "leave_accrual", "run"},
	{user.RoleHRAdmin, "user", "manage"},
}

var roleInheritance = [][2]string{
	{user.RoleReportingManager, user.RoleEmployee},
	{user.RoleHRAdmin, user.RoleReportingManager},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Authorize(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, rule := range policyRules {
		if _, err := enforcer.AddPolicy(rule.role, rule.resource, rule.action); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Authorize(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
