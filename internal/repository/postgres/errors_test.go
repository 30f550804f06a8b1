package postgres

import (
	"errors"
	"fmt"
	"testing"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapErr(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, domain.ErrConflict},
		{"other pg error", &pgconn.PgError{Code: "23503"}, nil},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr(tt.in)
			if tt.name == "other pg error" {
				var pgErr *pgconn.PgError
				assert.True(t, errors.As(got, &pgErr))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAffected(t *testing.T) {
	assert.NoError(t, affected(pgconn.NewCommandTag("UPDATE 1"), nil))
	assert.ErrorIs(t, affected(pgconn.NewCommandTag("UPDATE 0"), nil), domain.ErrNotFound)
	assert.ErrorIs(t, affected(pgconn.CommandTag{}, pgx.ErrNoRows), domain.ErrNotFound)
}
