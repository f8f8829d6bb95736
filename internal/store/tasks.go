package store

import (
	"context"
	"fmt"

	"github.com/pmlite/pmlite/internal/board"
	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Tasks returns the stored task sequence. An absent or corrupt
// snapshot falls back to the seed tasks; legacy records are migrated
// on the way out.
func (s *Store) Tasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	ok, err := s.loadJSON(ctx, constants.KeyTasks, &tasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		if s.seed {
			return domain.SeedTasks(), nil
		}
		return []domain.Task{}, nil
	}
	return domain.MigrateTasks(tasks), nil
}

func (s *Store) saveTasks(ctx context.Context, tasks []domain.Task) error {
	return s.saveJSON(ctx, constants.KeyTasks, tasks)
}

// CreateTask validates the draft, assigns it a fresh id, and appends
// it to the stored sequence.
func (s *Store) CreateTask(ctx context.Context, draft domain.Task) (domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return domain.Task{}, err
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	draft.ID = domain.NewID()
	draft.Normalize()
	tasks = append(tasks, draft)

	if err := s.saveTasks(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	if err := s.logActivity(ctx, "Created task: "+draft.Title); err != nil {
		return domain.Task{}, err
	}
	return draft, nil
}

// UpdateTask replaces every field of the task with the given id except
// the id itself.
func (s *Store) UpdateTask(ctx context.Context, id domain.ID, draft domain.Task) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		return err
	}

	idx := taskIndex(tasks, id)
	if idx < 0 {
		return fmt.Errorf("task %s: %w", id, pmerrors.ErrNotFound)
	}

	draft.ID = id
	draft.Normalize()
	tasks[idx] = draft

	if err := s.saveTasks(ctx, tasks); err != nil {
		return err
	}
	return s.logActivity(ctx, "Edited task: "+draft.Title)
}

// DeleteTask removes a task. The caller must pass confirmed=true; the
// gate keeps destructive paths from running without an explicit
// confirmation step. Linked records are untouched.
func (s *Store) DeleteTask(ctx context.Context, id domain.ID, confirmed bool) error {
	if !confirmed {
		return pmerrors.ErrNotConfirmed
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		return err
	}

	idx := taskIndex(tasks, id)
	if idx < 0 {
		return fmt.Errorf("task %s: %w", id, pmerrors.ErrNotFound)
	}

	title := tasks[idx].Title
	tasks = append(tasks[:idx], tasks[idx+1:]...)

	if err := s.saveTasks(ctx, tasks); err != nil {
		return err
	}
	return s.logActivity(ctx, "Deleted task: "+title)
}

// MoveTask applies a board move to the stored task sequence.
// Cross-column moves are recorded in the activity log; same-column
// reorders are not.
func (s *Store) MoveTask(ctx context.Context, m board.Move) error {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return err
	}

	moved, message, changed := board.Reorder(tasks, m)
	if !changed {
		return fmt.Errorf("no task at %s[%d]: %w", m.SrcCol, m.SrcIdx, pmerrors.ErrNotFound)
	}

	if err := s.saveTasks(ctx, moved); err != nil {
		return err
	}
	if message != "" {
		return s.logActivity(ctx, message)
	}
	return nil
}

// Task returns a single task by id.
func (s *Store) Task(ctx context.Context, id domain.ID) (domain.Task, error) {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	idx := taskIndex(tasks, id)
	if idx < 0 {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, pmerrors.ErrNotFound)
	}
	return tasks[idx], nil
}

func taskIndex(tasks []domain.Task, id domain.ID) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
