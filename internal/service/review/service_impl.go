package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/domain/schedule"
	"github.com/drillhq/drill-api/internal/store"

	"github.com/google/uuid"
)

// reviewServiceImpl implements ReviewService on top of the Postgres
// stores, running each mutating operation inside a single transaction.
type reviewServiceImpl struct {
	problemStore  store.ProblemStore
	scheduleStore store.ScheduleStore
	userStore     store.UserStore
	engine        schedule.Service
	logger        *slog.Logger
	nowFunc       func() time.Time // Injectable for testing

	// runTx executes fn inside a transaction; injectable so tests can
	// run against in-memory stores without a live database.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// Ensure reviewServiceImpl implements ReviewService interface
var _ ReviewService = (*reviewServiceImpl)(nil)

// NewReviewService creates a new ReviewService backed by the given
// database handle and stores. Panics on nil dependencies, since these
// indicate a wiring bug at startup rather than a runtime condition.
func NewReviewService(
	db *sql.DB,
	problemStore store.ProblemStore,
	scheduleStore store.ScheduleStore,
	userStore store.UserStore,
	engine schedule.Service,
	logger *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if problemStore == nil {
		panic("problemStore cannot be nil")
	}
	if scheduleStore == nil {
		panic("scheduleStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &reviewServiceImpl{
		problemStore:  problemStore,
		scheduleStore: scheduleStore,
		userStore:     userStore,
		engine:        engine,
		logger:        logger.With("component", "review_service"),
		nowFunc:       time.Now,
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// SubmitOutcome implements ReviewService.SubmitOutcome.
func (s *reviewServiceImpl) SubmitOutcome(
	ctx context.Context,
	userID uuid.UUID,
	problemID uuid.UUID,
	passed bool,
	multiplier float64,
) (*domain.ScheduleState, error) {
	log := s.logger.With(
		"user_id", userID,
		"problem_id", problemID,
		"passed", passed,
	)

	var updated *domain.ScheduleState

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		problems := s.problemStore.WithTx(tx)
		schedules := s.scheduleStore.WithTx(tx)
		users := s.userStore.WithTx(tx)

		if _, err := problems.GetByID(ctx, problemID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrProblemNotFound
			}
			return fmt.Errorf("failed to get problem: %w", err)
		}

		effective, err := s.resolveMultiplier(ctx, users, userID, multiplier)
		if err != nil {
			return err
		}

		now := s.nowFunc().UTC()

		// FOR UPDATE serializes concurrent submissions on the same
		// (user, problem) key for the remainder of the transaction.
		state, err := schedules.GetForUpdate(ctx, userID, problemID)
		created := false
		if err != nil {
			if !store.IsNotFoundError(err) {
				return fmt.Errorf("failed to get schedule state: %w", err)
			}
			state, err = domain.NewScheduleState(userID, problemID, now)
			if err != nil {
				return fmt.Errorf("failed to initialize schedule state: %w", err)
			}
			created = true
		}

		next, err := s.engine.ApplyOutcome(state, passed, effective, now)
		if err != nil {
			if errors.Is(err, schedule.ErrInvalidMultiplier) {
				return ErrInvalidMultiplier
			}
			return fmt.Errorf("failed to apply outcome: %w", err)
		}

		if created {
			if err := schedules.Create(ctx, next); err != nil {
				return fmt.Errorf("failed to create schedule state: %w", err)
			}
		} else {
			if err := schedules.Update(ctx, next); err != nil {
				return fmt.Errorf("failed to update schedule state: %w", err)
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProblemNotFound) || errors.Is(err, ErrInvalidMultiplier) {
			return nil, err
		}
		log.Error("failed to submit outcome", "error", err)
		return nil, &ServiceError{Operation: "submit_outcome", Message: "transaction failed", Err: err}
	}

	log.Debug("outcome recorded",
		"interval_days", updated.Interval,
		"next_review_at", updated.NextReviewAt)
	return updated, nil
}

// ResetSchedule implements ReviewService.ResetSchedule.
func (s *reviewServiceImpl) ResetSchedule(
	ctx context.Context,
	userID uuid.UUID,
	problemID uuid.UUID,
) (*domain.ScheduleState, error) {
	log := s.logger.With("user_id", userID, "problem_id", problemID)

	var reset *domain.ScheduleState

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		problems := s.problemStore.WithTx(tx)
		schedules := s.scheduleStore.WithTx(tx)

		if _, err := problems.GetByID(ctx, problemID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrProblemNotFound
			}
			return fmt.Errorf("failed to get problem: %w", err)
		}

		now := s.nowFunc().UTC()

		state, err := schedules.GetForUpdate(ctx, userID, problemID)
		if err != nil {
			if !store.IsNotFoundError(err) {
				return fmt.Errorf("failed to get schedule state: %w", err)
			}
			// Resetting a never-attempted problem just materializes the
			// initial state.
			fresh, err := domain.NewScheduleState(userID, problemID, now)
			if err != nil {
				return fmt.Errorf("failed to initialize schedule state: %w", err)
			}
			if err := schedules.Create(ctx, fresh); err != nil {
				return fmt.Errorf("failed to create schedule state: %w", err)
			}
			reset = fresh
			return nil
		}

		next, err := s.engine.Reset(state, now)
		if err != nil {
			return fmt.Errorf("failed to reset schedule state: %w", err)
		}
		if err := schedules.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update schedule state: %w", err)
		}

		reset = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProblemNotFound) {
			return nil, err
		}
		log.Error("failed to reset schedule", "error", err)
		return nil, &ServiceError{Operation: "reset_schedule", Message: "transaction failed", Err: err}
	}

	log.Debug("schedule reset")
	return reset, nil
}

// GetDueMap implements ReviewService.GetDueMap.
func (s *reviewServiceImpl) GetDueMap(
	ctx context.Context,
	userID uuid.UUID,
	problemIDs []uuid.UUID,
) (map[uuid.UUID]time.Time, error) {
	states, err := s.scheduleStore.GetAllForUser(ctx, userID, problemIDs)
	if err != nil {
		s.logger.Error("failed to load schedule states",
			"error", err,
			"user_id", userID,
			"problem_count", len(problemIDs))
		return nil, &ServiceError{Operation: "get_due_map", Message: "failed to load schedule states", Err: err}
	}

	return s.engine.DueTimes(states, problemIDs, s.nowFunc().UTC()), nil
}

// resolveMultiplier turns the request-level multiplier into the value
// the engine should use. Zero means "fall back to the user's configured
// multiplier"; negative values are rejected before touching the store.
func (s *reviewServiceImpl) resolveMultiplier(
	ctx context.Context,
	users store.UserStore,
	userID uuid.UUID,
	multiplier float64,
) (float64, error) {
	if multiplier < 0 {
		return 0, ErrInvalidMultiplier
	}
	if multiplier > 0 {
		return multiplier, nil
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	return user.IntervalMultiplier, nil
}
