package store

import (
	"context"
	"fmt"

	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Objectives returns the stored objective sequence, empty when the
// snapshot is absent or corrupt. Legacy key results are migrated on
// the way out.
func (s *Store) Objectives(ctx context.Context) ([]domain.Objective, error) {
	var objectives []domain.Objective
	ok, err := s.loadJSON(ctx, constants.KeyObjectives, &objectives)
	if err != nil {
		return nil, err
	}
	if !ok || objectives == nil {
		return []domain.Objective{}, nil
	}
	return domain.MigrateObjectives(objectives), nil
}

func (s *Store) saveObjectives(ctx context.Context, objectives []domain.Objective) error {
	return s.saveJSON(ctx, constants.KeyObjectives, objectives)
}

// CreateObjective validates the draft, assigns a fresh id, drops blank
// key results, and appends it. New key results always start not done.
func (s *Store) CreateObjective(ctx context.Context, draft domain.Objective) (domain.Objective, error) {
	if err := draft.Validate(); err != nil {
		return domain.Objective{}, err
	}

	objectives, err := s.Objectives(ctx)
	if err != nil {
		return domain.Objective{}, err
	}

	draft.ID = domain.NewID()
	draft.Normalize()
	draft.KeyResults = domain.TrimKeyResults(draft.KeyResults)
	for i := range draft.KeyResults {
		draft.KeyResults[i].Done = false
	}
	objectives = append(objectives, draft)

	if err := s.saveObjectives(ctx, objectives); err != nil {
		return domain.Objective{}, err
	}
	if err := s.logActivity(ctx, "Created new objective: "+draft.Title); err != nil {
		return domain.Objective{}, err
	}
	return draft, nil
}

// UpdateObjective replaces every field of the objective except the id.
// An empty due date in the draft keeps the previous one.
func (s *Store) UpdateObjective(ctx context.Context, id domain.ID, draft domain.Objective) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	objectives, err := s.Objectives(ctx)
	if err != nil {
		return err
	}

	idx := objectiveIndex(objectives, id)
	if idx < 0 {
		return fmt.Errorf("objective %s: %w", id, pmerrors.ErrNotFound)
	}

	if draft.Due == "" {
		draft.Due = objectives[idx].Due
	}
	draft.ID = id
	draft.Normalize()
	draft.KeyResults = domain.TrimKeyResults(draft.KeyResults)
	objectives[idx] = draft

	if err := s.saveObjectives(ctx, objectives); err != nil {
		return err
	}
	return s.logActivity(ctx, "Edited objective: "+draft.Title)
}

// DeleteObjective removes an objective behind the confirmation gate.
// Tasks referencing it are left alone; their okrId simply dangles and
// resolves as unlinked.
func (s *Store) DeleteObjective(ctx context.Context, id domain.ID, confirmed bool) error {
	if !confirmed {
		return pmerrors.ErrNotConfirmed
	}

	objectives, err := s.Objectives(ctx)
	if err != nil {
		return err
	}

	idx := objectiveIndex(objectives, id)
	if idx < 0 {
		return fmt.Errorf("objective %s: %w", id, pmerrors.ErrNotFound)
	}

	title := objectives[idx].Title
	objectives = append(objectives[:idx], objectives[idx+1:]...)

	if err := s.saveObjectives(ctx, objectives); err != nil {
		return err
	}
	return s.logActivity(ctx, "Deleted objective: "+title)
}

// ToggleKeyResult flips the done flag on exactly one key result. The
// toggle is deliberately absent from the activity log. An out-of-range
// index leaves the objective untouched.
func (s *Store) ToggleKeyResult(ctx context.Context, id domain.ID, index int) error {
	objectives, err := s.Objectives(ctx)
	if err != nil {
		return err
	}

	idx := objectiveIndex(objectives, id)
	if idx < 0 {
		return fmt.Errorf("objective %s: %w", id, pmerrors.ErrNotFound)
	}
	if index < 0 || index >= len(objectives[idx].KeyResults) {
		return fmt.Errorf("key result index %d: %w", index, pmerrors.ErrInvalidArgument)
	}

	objectives[idx].KeyResults[index].Done = !objectives[idx].KeyResults[index].Done
	return s.saveObjectives(ctx, objectives)
}

// Objective returns a single objective by id.
func (s *Store) Objective(ctx context.Context, id domain.ID) (domain.Objective, error) {
	objectives, err := s.Objectives(ctx)
	if err != nil {
		return domain.Objective{}, err
	}
	idx := objectiveIndex(objectives, id)
	if idx < 0 {
		return domain.Objective{}, fmt.Errorf("objective %s: %w", id, pmerrors.ErrNotFound)
	}
	return objectives[idx], nil
}

func objectiveIndex(objectives []domain.Objective, id domain.ID) int {
	for i, o := range objectives {
		if o.ID == id {
			return i
		}
	}
	return -1
}
