package domain_test

import (
	"testing"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPlanActiveAt(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	var missing *domain.Plan
	assert.False(t, missing.ActiveAt(now))
	assert.True(t, (&domain.Plan{IsActive: true}).ActiveAt(now))
	assert.True(t, (&domain.Plan{IsActive: true, EndDate: &later}).ActiveAt(now))
	assert.False(t, (&domain.Plan{IsActive: true, EndDate: &earlier}).ActiveAt(now))
	assert.False(t, (&domain.Plan{IsActive: true, EndDate: &now}).ActiveAt(now))
	assert.False(t, (&domain.Plan{IsActive: false, EndDate: &later}).ActiveAt(now))
}

func TestNextPeriod(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	month := 30 * 24 * time.Hour
	start := now.Add(-10 * 24 * time.Hour)
	end := now.Add(20 * 24 * time.Hour)
	current := &domain.Plan{Name: domain.PlanStarter, StartDate: start, EndDate: &end, IsActive: true}

	s, e, extend := domain.NextPeriod(current, domain.PlanStarter, now, month)
	assert.True(t, extend)
	assert.Equal(t, start, s)
	assert.Equal(t, end.Add(month), e)

	s, e, extend = domain.NextPeriod(current, domain.PlanProfessional, now, month)
	assert.False(t, extend)
	assert.Equal(t, now, s)
	assert.Equal(t, now.Add(month), e)

	lapsed := now.Add(-time.Hour)
	s, _, extend = domain.NextPeriod(&domain.Plan{Name: domain.PlanStarter, EndDate: &lapsed, IsActive: true}, domain.PlanStarter, now, month)
	assert.False(t, extend)
	assert.Equal(t, now, s)

	_, _, extend = domain.NextPeriod(nil, domain.PlanEnterprise, now, month)
	assert.False(t, extend)
}

func TestViewRecordDedupKey(t *testing.T) {
	viewer := "u1"
	withViewer := domain.ViewRecord{ContentType: domain.ContentJob, ContentID: 7, ViewerID: &viewer, NetworkAddress: "10.0.0.1"}
	sameViewerOtherIP := domain.ViewRecord{ContentType: domain.ContentJob, ContentID: 7, ViewerID: &viewer, NetworkAddress: "10.0.0.2"}
	anon := domain.ViewRecord{ContentType: domain.ContentJob, ContentID: 7, NetworkAddress: "10.0.0.1"}

	assert.Equal(t, withViewer.DedupKey(), sameViewerOtherIP.DedupKey())
	assert.NotEqual(t, withViewer.DedupKey(), anon.DedupKey())
	assert.NotEqual(t, anon.DedupKey(), domain.ViewRecord{ContentType: domain.ContentBlogPost, ContentID: 7, NetworkAddress: "10.0.0.1"}.DedupKey())
}
