package usecase_test

import (
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHasAccess(t *testing.T) {
	policy := usecase.NewAccessPolicy(usecase.DefaultPlanPolicies(5, 10, 50))

	tests := []struct {
		name string
		plan domain.PlanName
		rank int
		want bool
	}{
		{"starter first", domain.PlanStarter, 0, true},
		{"starter last within limit", domain.PlanStarter, 9, true},
		{"starter first beyond limit", domain.PlanStarter, 10, false},
		{"professional last within limit", domain.PlanProfessional, 49, true},
		{"professional beyond limit", domain.PlanProfessional, 50, false},
		{"enterprise is unlimited", domain.PlanEnterprise, 10000, true},
		{"free within limit", domain.PlanFree, 4, true},
		{"free beyond limit", domain.PlanFree, 5, false},
		{"unknown plan falls back to free", domain.PlanName("Gold"), 5, false},
		{"unknown plan within free limit", domain.PlanName("Gold"), 0, true},
		{"negative rank", domain.PlanEnterprise, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.HasAccess(tt.plan, tt.rank))
		})
	}
}

func TestAccessPolicyModes(t *testing.T) {
	policy := usecase.NewAccessPolicy(usecase.DefaultPlanPolicies(5, 10, 50))

	assert.Equal(t, domain.AccessModeHide, policy.Policy(domain.PlanFree).Mode)
	assert.Equal(t, domain.AccessModeBlur, policy.Policy(domain.PlanStarter).Mode)
	assert.True(t, policy.Policy(domain.PlanEnterprise).IsUnlimited())
	assert.Equal(t, policy.Policy(domain.PlanFree), policy.Policy(""))
}

func TestAccessPolicyWithoutFreeEntry(t *testing.T) {
	policies := domain.PlanPolicies{domain.PlanStarter: {Limit: 10, Mode: domain.AccessModeBlur}}
	policy := usecase.NewAccessPolicy(policies)

	assert.False(t, policy.HasAccess(domain.PlanFree, 0))
	assert.True(t, policy.HasAccess(domain.PlanStarter, 0))

	// the caller's map is copied
	policies[domain.PlanStarter] = domain.PlanPolicy{Limit: 0}
	assert.True(t, policy.HasAccess(domain.PlanStarter, 0))
}
