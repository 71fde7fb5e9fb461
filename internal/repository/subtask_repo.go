package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/store"
)

// DocSubtaskRepo implements SubtaskRepo over the document store.
type DocSubtaskRepo struct {
	st  store.Store
	log *slog.Logger
}

// NewDocSubtaskRepo creates a new DocSubtaskRepo.
func NewDocSubtaskRepo(st store.Store, log *slog.Logger) *DocSubtaskRepo {
	if log == nil {
		log = slog.Default()
	}
	return &DocSubtaskRepo{st: st, log: log}
}

func (r *DocSubtaskRepo) Find(ctx context.Context, id string) (*domain.Subtask, error) {
	raw, err := r.st.Get(ctx, ColSubtasks, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("reading subtask", "uid", id, "error", err)
		return nil, nil
	}
	return r.decode(id, raw)
}

func (r *DocSubtaskRepo) ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Subtask, error) {
	return r.list(ctx, store.Where("milestoneId", store.OpEqual, milestoneID))
}

func (r *DocSubtaskRepo) ListByAssignee(ctx context.Context, uid string) ([]*domain.Subtask, error) {
	return r.list(ctx, store.Where("assignee.uid", store.OpEqual, uid))
}

func (r *DocSubtaskRepo) ListByReporter(ctx context.Context, uid string) ([]*domain.Subtask, error) {
	return r.list(ctx, store.Where("reporter.uid", store.OpEqual, uid))
}

func (r *DocSubtaskRepo) Create(ctx context.Context, s *domain.Subtask) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding subtask: %w", err)
	}
	return r.st.Set(ctx, ColSubtasks, s.UID, raw)
}

func (r *DocSubtaskRepo) Update(ctx context.Context, id string, p domain.SubtaskPatch) error {
	if p.IsZero() {
		return ErrEmptyPatch
	}
	raw, err := r.st.Get(ctx, ColSubtasks, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("subtask %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("loading subtask %s: %w", id, err)
	}
	var s domain.Subtask
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("decoding subtask %s: %w", id, err)
	}
	p.Apply(&s)
	out, err := json.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encoding subtask %s: %w", id, err)
	}
	return r.st.Set(ctx, ColSubtasks, id, out)
}

func (r *DocSubtaskRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, ColSubtasks, id)
}

func (r *DocSubtaskRepo) DeleteBatch(ctx context.Context, ids []string) error {
	return r.st.DeleteBatch(ctx, ColSubtasks, ids)
}

func (r *DocSubtaskRepo) list(ctx context.Context, q store.Query) ([]*domain.Subtask, error) {
	docs, err := r.st.Find(ctx, ColSubtasks, q)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	subtasks := make([]*domain.Subtask, 0, len(docs))
	for _, d := range docs {
		s, err := r.decode(d.ID, d.Data)
		if err != nil {
			return nil, err
		}
		if s != nil {
			subtasks = append(subtasks, s)
		}
	}
	return subtasks, nil
}

func (r *DocSubtaskRepo) decode(id string, raw []byte) (*domain.Subtask, error) {
	var s domain.Subtask
	if err := json.Unmarshal(raw, &s); err != nil {
		r.log.Error("decoding subtask", "uid", id, "error", err)
		return nil, nil
	}
	s.UID = id
	return &s, nil
}
