//go:build integration

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/postgres/
// The target database is wiped and migrated from scratch.
package postgres

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, file := range []string{"001_init.down.sql", "001_init.up.sql"} {
		sql, err := os.ReadFile("../../../migrations/" + file)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, file)
	}
	return pool
}

func seed(t *testing.T, pool *pgxpool.Pool, sql string, args ...interface{}) {
	t.Helper()
	_, err := pool.Exec(context.Background(), sql, args...)
	require.NoError(t, err)
}

func seedJob(t *testing.T, pool *pgxpool.Pool, recruiterID, category string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO jobs (recruiter_id, title, description, category, status)
		VALUES ($1, 'Engineer', 'Build things', $2, 'active') RETURNING id`, recruiterID, category).Scan(&id)
	require.NoError(t, err)
	return id
}

func viewCount(t *testing.T, pool *pgxpool.Pool, jobID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT view_count FROM jobs WHERE id = $1`, jobID).Scan(&n))
	return n
}

func TestViewRepositoryConcurrentDedup(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewViewRepository(pool)

	seed(t, pool, `INSERT INTO users (id, email, role) VALUES ('rec', 'rec@example.com', 'recruiter'), ('u1', 'u1@example.com', 'candidate')`)
	jobID := seedJob(t, pool, "rec", "tech")

	now := time.Now().UTC()
	windowStart := now.Add(-time.Hour)
	viewer := "u1"

	recordConcurrently := func(rec domain.ViewRecord) int {
		var wg sync.WaitGroup
		var mu sync.Mutex
		recorded := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := repo.InsertIfNew(ctx, rec, windowStart)
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					recorded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		return recorded
	}

	t.Run("known viewer counted once", func(t *testing.T) {
		n := recordConcurrently(domain.ViewRecord{ContentType: domain.ContentJob, ContentID: jobID, ViewerID: &viewer, NetworkAddress: "10.0.0.1", ViewedAt: now})
		assert.Equal(t, 1, n)
		assert.Equal(t, int64(1), viewCount(t, pool, jobID))
	})

	t.Run("anonymous address counted once and apart from the user", func(t *testing.T) {
		n := recordConcurrently(domain.ViewRecord{ContentType: domain.ContentJob, ContentID: jobID, NetworkAddress: "10.0.0.1", ViewedAt: now})
		assert.Equal(t, 1, n)
		assert.Equal(t, int64(2), viewCount(t, pool, jobID))
	})

	t.Run("view older than the window does not block a new one", func(t *testing.T) {
		seed(t, pool, `INSERT INTO view_records (content_type, content_id, network_address, viewed_at) VALUES ('job', $1, '10.0.0.2', $2)`,
			jobID, now.Add(-2*time.Hour))

		ok, err := repo.InsertIfNew(ctx, domain.ViewRecord{ContentType: domain.ContentJob, ContentID: jobID, NetworkAddress: "10.0.0.2", ViewedAt: now}, windowStart)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(3), viewCount(t, pool, jobID))
	})
}

func TestInterestedCandidatesAndJobMatchUniqueness(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	apps := NewApplicationRepository(pool)
	notifications := NewNotificationRepository(pool)

	seed(t, pool, `INSERT INTO users (id, email, role, is_disabled) VALUES
		('rec', 'rec@example.com', 'recruiter', false),
		('fan', 'fan@example.com', 'candidate', false),
		('both', 'both@example.com', 'candidate', false),
		('other', 'other@example.com', 'candidate', false),
		('gone', 'gone@example.com', 'candidate', true),
		('told', 'told@example.com', 'candidate', false)`)

	older := seedJob(t, pool, "rec", "tech")
	design := seedJob(t, pool, "rec", "design")
	target := seedJob(t, pool, "rec", "tech")

	seed(t, pool, `INSERT INTO applications (job_id, candidate_id) VALUES
		($1, 'fan'), ($1, 'both'), ($2, 'both'), ($3, 'other'), ($1, 'gone'), ($1, 'told')`, older, target, design)
	seed(t, pool, `INSERT INTO notifications (recipient_id, related_item_id, kind, message) VALUES ('told', $1, 'job_match', 'seen')`, target)

	recipients, err := apps.InterestedCandidates(ctx, target, "tech")
	require.NoError(t, err)
	ids := make([]string, 0, len(recipients))
	for _, r := range recipients {
		ids = append(ids, r.UserID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"fan"}, ids)

	related := target
	batch := func() []domain.Notification {
		return []domain.Notification{{RecipientID: "fan", RelatedItemID: &related, Kind: domain.NotificationJobMatch, Message: "New tech job"}}
	}

	items := batch()
	created, err := notifications.CreateBatch(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.NotZero(t, items[0].ID)

	again := batch()
	created, err = notifications.CreateBatch(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Zero(t, again[0].ID)

	recipients, err = apps.InterestedCandidates(ctx, target, "tech")
	require.NoError(t, err)
	assert.Empty(t, recipients)
}
