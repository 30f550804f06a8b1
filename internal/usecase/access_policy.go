package usecase

import "jobboard-backend/internal/domain"

// DefaultPlanPolicies builds the tier table. Free hides items past its
// limit, paid tiers blur them.
func DefaultPlanPolicies(freeLimit, starterLimit, professionalLimit int) domain.PlanPolicies {
	return domain.PlanPolicies{
		domain.PlanFree:         {Limit: freeLimit, Mode: domain.AccessModeHide},
		domain.PlanStarter:      {Limit: starterLimit, Mode: domain.AccessModeBlur},
		domain.PlanProfessional: {Limit: professionalLimit, Mode: domain.AccessModeBlur},
		domain.PlanEnterprise:   {Limit: domain.Unlimited, Mode: domain.AccessModeBlur},
	}
}

// AccessPolicy evaluates plan limits over a creation-time-descending list.
type AccessPolicy struct {
	policies domain.PlanPolicies
}

func NewAccessPolicy(policies domain.PlanPolicies) *AccessPolicy {
	copied := make(domain.PlanPolicies, len(policies)+1)
	for name, p := range policies {
		copied[name] = p
	}
	if _, ok := copied[domain.PlanFree]; !ok {
		copied[domain.PlanFree] = domain.PlanPolicy{Limit: 0, Mode: domain.AccessModeHide}
	}
	return &AccessPolicy{policies: copied}
}

// Policy returns the plan's policy; unknown plans get the Free policy.
func (p *AccessPolicy) Policy(plan domain.PlanName) domain.PlanPolicy {
	if policy, ok := p.policies[plan]; ok {
		return policy
	}
	return p.policies[domain.PlanFree]
}

// HasAccess reports whether rank (zero-based) is within the plan's limit.
func (p *AccessPolicy) HasAccess(plan domain.PlanName, rank int) bool {
	if rank < 0 {
		return false
	}
	policy := p.Policy(plan)
	return policy.IsUnlimited() || rank < policy.Limit
}
