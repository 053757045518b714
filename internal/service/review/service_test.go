package review

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/domain/schedule"
	"github.com/drillhq/drill-api/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stateKey identifies a schedule state in the in-memory fake.
type stateKey struct {
	userID    uuid.UUID
	problemID uuid.UUID
}

// fakeScheduleStore is an in-memory ScheduleStore for service tests.
type fakeScheduleStore struct {
	states map[stateKey]*domain.ScheduleState

	createCalls int
	updateCalls int
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{states: make(map[stateKey]*domain.ScheduleState)}
}

func (f *fakeScheduleStore) Create(_ context.Context, state *domain.ScheduleState) error {
	key := stateKey{state.UserID, state.ProblemID}
	if _, ok := f.states[key]; ok {
		return store.ErrDuplicate
	}
	copied := *state
	f.states[key] = &copied
	f.createCalls++
	return nil
}

func (f *fakeScheduleStore) Get(_ context.Context, userID, problemID uuid.UUID) (*domain.ScheduleState, error) {
	state, ok := f.states[stateKey{userID, problemID}]
	if !ok {
		return nil, store.ErrScheduleStateNotFound
	}
	copied := *state
	return &copied, nil
}

func (f *fakeScheduleStore) GetForUpdate(ctx context.Context, userID, problemID uuid.UUID) (*domain.ScheduleState, error) {
	return f.Get(ctx, userID, problemID)
}

func (f *fakeScheduleStore) GetAllForUser(
	_ context.Context,
	userID uuid.UUID,
	problemIDs []uuid.UUID,
) (map[uuid.UUID]*domain.ScheduleState, error) {
	result := make(map[uuid.UUID]*domain.ScheduleState)
	for _, id := range problemIDs {
		if state, ok := f.states[stateKey{userID, id}]; ok {
			copied := *state
			result[id] = &copied
		}
	}
	return result, nil
}

func (f *fakeScheduleStore) Update(_ context.Context, state *domain.ScheduleState) error {
	key := stateKey{state.UserID, state.ProblemID}
	if _, ok := f.states[key]; !ok {
		return store.ErrScheduleStateNotFound
	}
	copied := *state
	f.states[key] = &copied
	f.updateCalls++
	return nil
}

func (f *fakeScheduleStore) WithTx(_ *sql.Tx) store.ScheduleStore { return f }

// fakeProblemStore is an in-memory ProblemStore for service tests.
type fakeProblemStore struct {
	problems map[uuid.UUID]*domain.Problem
}

func newFakeProblemStore(problems ...*domain.Problem) *fakeProblemStore {
	f := &fakeProblemStore{problems: make(map[uuid.UUID]*domain.Problem)}
	for _, p := range problems {
		f.problems[p.ID] = p
	}
	return f
}

func (f *fakeProblemStore) Create(_ context.Context, problem *domain.Problem) error {
	f.problems[problem.ID] = problem
	return nil
}

func (f *fakeProblemStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Problem, error) {
	problem, ok := f.problems[id]
	if !ok {
		return nil, store.ErrProblemNotFound
	}
	return problem, nil
}

func (f *fakeProblemStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Problem, error) {
	var result []*domain.Problem
	for _, id := range ids {
		if p, ok := f.problems[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProblemStore) ExistingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		result[id] = f.problems[id] != nil
	}
	return result, nil
}

func (f *fakeProblemStore) WithTx(_ *sql.Tx) store.ProblemStore { return f }

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) UpdateMultiplier(_ context.Context, id uuid.UUID, multiplier float64) error {
	user, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.IntervalMultiplier = multiplier
	return nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore { return f }

// newTestService wires the impl against the fakes with a fixed clock
// and a pass-through transaction runner.
func newTestService(
	problems *fakeProblemStore,
	schedules *fakeScheduleStore,
	users *fakeUserStore,
	now time.Time,
) *reviewServiceImpl {
	return &reviewServiceImpl{
		problemStore:  problems,
		scheduleStore: schedules,
		userStore:     users,
		engine:        schedule.NewService(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFunc:       func() time.Time { return now },
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return fn(ctx, nil)
		},
	}
}

func mustProblem(t *testing.T) *domain.Problem {
	t.Helper()
	problem, err := domain.NewProblem("Two Sum", 2, "https://example.com/two-sum")
	require.NoError(t, err)
	return problem
}

func mustUser(t *testing.T, multiplier float64) *domain.User {
	t.Helper()
	user, err := domain.NewUser("reviewer@example.com", "hashed-password")
	require.NoError(t, err)
	user.IntervalMultiplier = multiplier
	return user
}

func TestSubmitOutcomeFirstSubmission(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)
	schedules := newFakeScheduleStore()
	svc := newTestService(newFakeProblemStore(problem), schedules, newFakeUserStore(user), now)

	state, err := svc.SubmitOutcome(context.Background(), user.ID, problem.ID, true, 0)
	require.NoError(t, err)

	// First submission starts from the initial one-day interval, so a
	// pass doubles it to two days.
	assert.Equal(t, 2, state.Interval)
	assert.Equal(t, now.AddDate(0, 0, 2), state.NextReviewAt)
	assert.Equal(t, 1, state.SuccessCount)
	assert.Equal(t, 0, state.FailureCount)
	assert.Equal(t, 1, schedules.createCalls, "first submission should create the state")
	assert.Equal(t, 0, schedules.updateCalls)
}

func TestSubmitOutcomeSequence(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)
	schedules := newFakeScheduleStore()
	svc := newTestService(newFakeProblemStore(problem), schedules, newFakeUserStore(user), now)

	ctx := context.Background()

	_, err := svc.SubmitOutcome(ctx, user.ID, problem.ID, true, 0)
	require.NoError(t, err)

	state, err := svc.SubmitOutcome(ctx, user.ID, problem.ID, true, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, state.Interval)
	assert.Equal(t, 2, state.SuccessCount)

	state, err = svc.SubmitOutcome(ctx, user.ID, problem.ID, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Interval, "a failure collapses the interval")
	assert.Equal(t, now, state.NextReviewAt, "a failed problem is due immediately")
	assert.Equal(t, 2, state.SuccessCount)
	assert.Equal(t, 1, state.FailureCount)

	assert.Equal(t, 1, schedules.createCalls)
	assert.Equal(t, 2, schedules.updateCalls)
}

func TestSubmitOutcomeExplicitMultiplier(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)
	svc := newTestService(newFakeProblemStore(problem), newFakeScheduleStore(), newFakeUserStore(user), now)

	// An explicit multiplier overrides the user's configured one.
	state, err := svc.SubmitOutcome(context.Background(), user.ID, problem.ID, true, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Interval)
}

func TestSubmitOutcomeUsesConfiguredMultiplier(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 1.5)
	svc := newTestService(newFakeProblemStore(problem), newFakeScheduleStore(), newFakeUserStore(user), now)

	ctx := context.Background()
	_, err := svc.SubmitOutcome(ctx, user.ID, problem.ID, true, 0)
	require.NoError(t, err)

	// 2 * 1.5 = 3
	state, err := svc.SubmitOutcome(ctx, user.ID, problem.ID, true, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Interval)
}

func TestSubmitOutcomeErrors(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)

	t.Run("unknown problem", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeProblemStore(), newFakeScheduleStore(), newFakeUserStore(user), now)

		_, err := svc.SubmitOutcome(context.Background(), user.ID, uuid.New(), true, 0)
		assert.ErrorIs(t, err, ErrProblemNotFound)
	})

	t.Run("negative multiplier", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeProblemStore(problem), newFakeScheduleStore(), newFakeUserStore(user), now)

		_, err := svc.SubmitOutcome(context.Background(), user.ID, problem.ID, true, -1.0)
		assert.ErrorIs(t, err, ErrInvalidMultiplier)
	})
}

func TestResetSchedule(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)
	schedules := newFakeScheduleStore()
	svc := newTestService(newFakeProblemStore(problem), schedules, newFakeUserStore(user), now)

	ctx := context.Background()

	_, err := svc.SubmitOutcome(ctx, user.ID, problem.ID, true, 0)
	require.NoError(t, err)
	_, err = svc.SubmitOutcome(ctx, user.ID, problem.ID, true, 0)
	require.NoError(t, err)

	state, err := svc.ResetSchedule(ctx, user.ID, problem.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Interval)
	assert.Equal(t, now, state.NextReviewAt)
	assert.Equal(t, 0, state.SuccessCount)
	assert.Equal(t, 0, state.FailureCount)

	// Resetting again is a no-op transition.
	again, err := svc.ResetSchedule(ctx, user.ID, problem.ID)
	require.NoError(t, err)
	assert.Equal(t, state.Interval, again.Interval)
	assert.Equal(t, state.NextReviewAt, again.NextReviewAt)
}

func TestResetScheduleNeverAttempted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)
	schedules := newFakeScheduleStore()
	svc := newTestService(newFakeProblemStore(problem), schedules, newFakeUserStore(user), now)

	state, err := svc.ResetSchedule(context.Background(), user.ID, problem.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Interval)
	assert.Equal(t, now, state.NextReviewAt)
	assert.Equal(t, 1, schedules.createCalls, "reset of a missing state materializes the initial one")
}

func TestResetScheduleUnknownProblem(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	user := mustUser(t, 2.0)
	svc := newTestService(newFakeProblemStore(), newFakeScheduleStore(), newFakeUserStore(user), now)

	_, err := svc.ResetSchedule(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrProblemNotFound)
}

func TestGetDueMap(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempted := mustProblem(t)
	fresh, err := domain.NewProblem("Valid Parentheses", 1, "")
	require.NoError(t, err)
	user := mustUser(t, 2.0)

	schedules := newFakeScheduleStore()
	svc := newTestService(newFakeProblemStore(attempted, fresh), schedules, newFakeUserStore(user), now)

	ctx := context.Background()
	state, err := svc.SubmitOutcome(ctx, user.ID, attempted.ID, true, 0)
	require.NoError(t, err)

	due, err := svc.GetDueMap(ctx, user.ID, []uuid.UUID{attempted.ID, fresh.ID})
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, state.NextReviewAt, due[attempted.ID])
	assert.Equal(t, now, due[fresh.ID], "never-attempted problems are due immediately")
}

func TestSubmitOutcomeTransactionFailure(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	problem := mustProblem(t)
	user := mustUser(t, 2.0)
	svc := newTestService(newFakeProblemStore(problem), newFakeScheduleStore(), newFakeUserStore(user), now)

	txErr := errors.New("serialization failure")
	svc.runTx = func(ctx context.Context, fn store.TxFn) error {
		return txErr
	}

	_, err := svc.SubmitOutcome(context.Background(), user.ID, problem.ID, true, 0)
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "submit_outcome", svcErr.Operation)
	assert.ErrorIs(t, err, txErr)
}
