package resultport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

const submissionKeyPrefix = "submission:"

var _ secondary.ResultRepository = (*ResultRepository)(nil)

// ResultRepository keeps judged submissions in Redis for a limited time
type ResultRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      primary.Logger
}

// NewResultRepository creates a new Redis result repository
func NewResultRepository(redisClient *redis.Client, ttl time.Duration, logger primary.Logger) *ResultRepository {
	return &ResultRepository{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func submissionKey(id uuid.UUID) string {
	return submissionKeyPrefix + id.String()
}

// SaveResult stores the result as JSON under submission:<id>
func (r *ResultRepository) SaveResult(ctx context.Context, result *domain.SubmissionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal submission result: %w", err)
	}

	if err := r.redisClient.Set(ctx, submissionKey(result.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to store submission result", "submissionId", result.ID, "error", err)
		return fmt.Errorf("failed to store submission result: %w", err)
	}
	return nil
}

// GetResult loads a stored result. Unknown and expired ids return nil, nil.
func (r *ResultRepository) GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error) {
	data, err := r.redisClient.Get(ctx, submissionKey(submissionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission result: %w", err)
	}

	var result domain.SubmissionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission result: %w", err)
	}
	return &result, nil
}
