package usecase_test

import (
	"context"
	"errors"
	"testing"

	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	report := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok, "redis": ok}).Check(context.Background())
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "up", report.Components["redis"])

	report = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok, "redis": down}).Check(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "up", report.Components["database"])
	assert.Equal(t, "down", report.Components["redis"])
}
