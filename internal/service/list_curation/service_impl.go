package list_curation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/domain/listops"
	"github.com/drillhq/drill-api/internal/domain/schedule"
	"github.com/drillhq/drill-api/internal/store"

	"github.com/google/uuid"
)

// listCurationServiceImpl implements ListCurationService on top of the
// Postgres stores.
type listCurationServiceImpl struct {
	listStore     store.ListStore
	problemStore  store.ProblemStore
	scheduleStore store.ScheduleStore
	engine        schedule.Service
	logger        *slog.Logger
	nowFunc       func() time.Time // Injectable for testing

	// runTx executes fn inside a transaction; injectable so tests can
	// run against in-memory stores without a live database.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// Ensure listCurationServiceImpl implements ListCurationService interface
var _ ListCurationService = (*listCurationServiceImpl)(nil)

// NewListCurationService creates a new ListCurationService. Panics on
// nil dependencies, since these indicate a wiring bug at startup.
func NewListCurationService(
	db *sql.DB,
	listStore store.ListStore,
	problemStore store.ProblemStore,
	scheduleStore store.ScheduleStore,
	engine schedule.Service,
	logger *slog.Logger,
) ListCurationService {
	if db == nil {
		panic("db cannot be nil")
	}
	if listStore == nil {
		panic("listStore cannot be nil")
	}
	if problemStore == nil {
		panic("problemStore cannot be nil")
	}
	if scheduleStore == nil {
		panic("scheduleStore cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &listCurationServiceImpl{
		listStore:     listStore,
		problemStore:  problemStore,
		scheduleStore: scheduleStore,
		engine:        engine,
		logger:        logger.With("component", "list_curation_service"),
		nowFunc:       time.Now,
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// CreateList implements ListCurationService.CreateList.
func (s *listCurationServiceImpl) CreateList(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*domain.ProblemList, error) {
	list, err := domain.NewProblemList(ownerID, name)
	if err != nil {
		return nil, err
	}

	if err := s.listStore.Create(ctx, list); err != nil {
		s.logger.Error("failed to create list", "error", err, "owner_id", ownerID)
		return nil, &ServiceError{Operation: "create_list", Message: "failed to persist list", Err: err}
	}

	s.logger.Debug("list created", "list_id", list.ID, "owner_id", ownerID)
	return list, nil
}

// RenameList implements ListCurationService.RenameList.
func (s *listCurationServiceImpl) RenameList(
	ctx context.Context,
	userID, listID uuid.UUID,
	name string,
) (*domain.ProblemList, error) {
	var renamed *domain.ProblemList

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		lists := s.listStore.WithTx(tx)

		list, err := s.getOwnedForUpdate(ctx, lists, userID, listID)
		if err != nil {
			return err
		}
		if list.IsPublic() {
			return ErrListPublic
		}

		updated := *list
		updated.Name = name
		updated.UpdatedAt = s.nowFunc().UTC()
		if err := updated.Validate(); err != nil {
			return err
		}
		if err := lists.Update(ctx, &updated); err != nil {
			return fmt.Errorf("failed to update list: %w", err)
		}

		renamed = &updated
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError("rename_list", listID, err)
	}

	return renamed, nil
}

// PublishList implements ListCurationService.PublishList.
func (s *listCurationServiceImpl) PublishList(
	ctx context.Context,
	userID, listID uuid.UUID,
) (*domain.ProblemList, error) {
	var published *domain.ProblemList

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		lists := s.listStore.WithTx(tx)

		list, err := s.getOwnedForUpdate(ctx, lists, userID, listID)
		if err != nil {
			return err
		}
		if list.IsPublic() {
			published = list
			return nil
		}

		updated := *list
		updated.Visibility = domain.VisibilityPublic
		updated.UpdatedAt = s.nowFunc().UTC()
		if err := lists.Update(ctx, &updated); err != nil {
			return fmt.Errorf("failed to update list: %w", err)
		}

		published = &updated
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError("publish_list", listID, err)
	}

	s.logger.Debug("list published", "list_id", listID)
	return published, nil
}

// DeleteList implements ListCurationService.DeleteList.
func (s *listCurationServiceImpl) DeleteList(
	ctx context.Context,
	userID, listID uuid.UUID,
) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		lists := s.listStore.WithTx(tx)

		list, err := s.getOwnedForUpdate(ctx, lists, userID, listID)
		if err != nil {
			return err
		}
		if list.IsPublic() {
			return ErrListPublic
		}

		if err := lists.Delete(ctx, listID); err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		return nil
	})
	if err != nil {
		return s.wrapTxError("delete_list", listID, err)
	}

	s.logger.Debug("list deleted", "list_id", listID)
	return nil
}

// CopyList implements ListCurationService.CopyList.
func (s *listCurationServiceImpl) CopyList(
	ctx context.Context,
	userID, sourceID uuid.UUID,
	name string,
) (*domain.ProblemList, error) {
	var copied *domain.ProblemList

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		lists := s.listStore.WithTx(tx)

		source, err := lists.Get(ctx, sourceID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrListNotFound
			}
			return fmt.Errorf("failed to get source list: %w", err)
		}
		if source.OwnerID != userID && !source.IsPublic() {
			return ErrNotOwner
		}

		if strings.TrimSpace(name) == "" {
			name = "Copy of " + source.Name
		}

		list, err := domain.NewProblemList(userID, name)
		if err != nil {
			return err
		}
		if err := lists.Create(ctx, list); err != nil {
			return fmt.Errorf("failed to create list: %w", err)
		}

		members, err := lists.GetMembers(ctx, sourceID)
		if err != nil {
			return fmt.Errorf("failed to get source members: %w", err)
		}
		if len(members) > 0 {
			if err := lists.ReplaceMembers(ctx, list.ID, members); err != nil {
				return fmt.Errorf("failed to seed members: %w", err)
			}
		}

		copied = list
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError("copy_list", sourceID, err)
	}

	s.logger.Debug("list copied", "source_id", sourceID, "list_id", copied.ID)
	return copied, nil
}

// ReconcileList implements ListCurationService.ReconcileList.
func (s *listCurationServiceImpl) ReconcileList(
	ctx context.Context,
	userID, listID uuid.UUID,
	instructions []listops.Instruction,
) (listops.Report, error) {
	var report listops.Report

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		lists := s.listStore.WithTx(tx)
		problems := s.problemStore.WithTx(tx)

		// The row lock serializes concurrent batches for the same list;
		// each batch sees the previous one's final member set.
		if _, err := s.getOwnedForUpdate(ctx, lists, userID, listID); err != nil {
			return err
		}

		memberIDs, err := lists.GetMembers(ctx, listID)
		if err != nil {
			return fmt.Errorf("failed to get members: %w", err)
		}
		members := make(map[uuid.UUID]struct{}, len(memberIDs))
		for _, id := range memberIDs {
			members[id] = struct{}{}
		}

		// One catalog probe for the whole batch.
		referenced := make([]uuid.UUID, 0, len(instructions))
		seen := make(map[uuid.UUID]bool, len(instructions))
		for _, instr := range instructions {
			if !seen[instr.ProblemID] {
				seen[instr.ProblemID] = true
				referenced = append(referenced, instr.ProblemID)
			}
		}
		existing := make(map[uuid.UUID]bool)
		if len(referenced) > 0 {
			existing, err = problems.ExistingIDs(ctx, referenced)
			if err != nil {
				return fmt.Errorf("failed to check problem references: %w", err)
			}
		}

		next, rep := listops.Reconcile(members, instructions, func(id uuid.UUID) bool {
			return existing[id]
		})

		if len(rep.Applied) > 0 {
			final := make([]uuid.UUID, 0, len(next))
			for id := range next {
				final = append(final, id)
			}
			if err := lists.ReplaceMembers(ctx, listID, final); err != nil {
				return fmt.Errorf("failed to replace members: %w", err)
			}
		}

		report = rep
		return nil
	})
	if err != nil {
		return listops.Report{}, s.wrapTxError("reconcile_list", listID, err)
	}

	s.logger.Debug("list reconciled",
		"list_id", listID,
		"applied", len(report.Applied),
		"rejected", len(report.Rejected))
	return report, nil
}

// GetListView implements ListCurationService.GetListView.
func (s *listCurationServiceImpl) GetListView(
	ctx context.Context,
	userID, listID uuid.UUID,
	sortKey SortKey,
) (*ListView, error) {
	if sortKey != SortByDifficulty && sortKey != SortByNextReview {
		return nil, ErrInvalidSortKey
	}

	list, err := s.listStore.Get(ctx, listID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrListNotFound
		}
		return nil, &ServiceError{Operation: "get_list_view", Message: "failed to get list", Err: err}
	}
	if list.OwnerID != userID && !list.IsPublic() {
		return nil, ErrNotOwner
	}

	memberIDs, err := s.listStore.GetMembers(ctx, listID)
	if err != nil {
		return nil, &ServiceError{Operation: "get_list_view", Message: "failed to get members", Err: err}
	}

	problems, err := s.problemStore.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, &ServiceError{Operation: "get_list_view", Message: "failed to get problems", Err: err}
	}

	states, err := s.scheduleStore.GetAllForUser(ctx, userID, memberIDs)
	if err != nil {
		return nil, &ServiceError{Operation: "get_list_view", Message: "failed to get schedule states", Err: err}
	}
	due := s.engine.DueTimes(states, memberIDs, s.nowFunc().UTC())

	entries := make([]ListEntry, 0, len(problems))
	for _, p := range problems {
		entries = append(entries, ListEntry{Problem: p, NextReviewAt: due[p.ID]})
	}
	sortEntries(entries, sortKey)

	return &ListView{List: list, Entries: entries}, nil
}

// sortEntries orders entries in place by the sort key, with the problem
// ID as a deterministic tiebreaker.
func sortEntries(entries []ListEntry, key SortKey) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch key {
		case SortByNextReview:
			if !a.NextReviewAt.Equal(b.NextReviewAt) {
				return a.NextReviewAt.Before(b.NextReviewAt)
			}
		default:
			if a.Problem.Difficulty != b.Problem.Difficulty {
				return a.Problem.Difficulty < b.Problem.Difficulty
			}
		}
		return a.Problem.ID.String() < b.Problem.ID.String()
	})
}

// getOwnedForUpdate locks the list row and verifies ownership, mapping
// store errors to service-level ones.
func (s *listCurationServiceImpl) getOwnedForUpdate(
	ctx context.Context,
	lists store.ListStore,
	userID, listID uuid.UUID,
) (*domain.ProblemList, error) {
	list, err := lists.GetForUpdate(ctx, listID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return list, nil
}

// wrapTxError passes expected domain outcomes through untouched and
// wraps everything else in a ServiceError.
func (s *listCurationServiceImpl) wrapTxError(operation string, listID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, ErrListNotFound),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrListPublic),
		errors.Is(err, domain.ErrListNameEmpty):
		return err
	}

	s.logger.Error("list operation failed", "operation", operation, "list_id", listID, "error", err)
	return &ServiceError{Operation: operation, Message: "transaction failed", Err: err}
}
