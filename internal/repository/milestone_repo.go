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

// DocMilestoneRepo implements MilestoneRepo over the document store.
type DocMilestoneRepo struct {
	st  store.Store
	log *slog.Logger
}

// NewDocMilestoneRepo creates a new DocMilestoneRepo.
func NewDocMilestoneRepo(st store.Store, log *slog.Logger) *DocMilestoneRepo {
	if log == nil {
		log = slog.Default()
	}
	return &DocMilestoneRepo{st: st, log: log}
}

func (r *DocMilestoneRepo) Find(ctx context.Context, id string) (*domain.Milestone, error) {
	raw, err := r.st.Get(ctx, ColMilestones, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("reading milestone", "uid", id, "error", err)
		return nil, nil
	}
	return r.decode(id, raw)
}

func (r *DocMilestoneRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	docs, err := r.st.Find(ctx, ColMilestones, store.Where("projectId", store.OpEqual, projectID))
	if err != nil {
		return nil, fmt.Errorf("listing milestones for project %s: %w", projectID, err)
	}
	milestones := make([]*domain.Milestone, 0, len(docs))
	for _, d := range docs {
		m, err := r.decode(d.ID, d.Data)
		if err != nil {
			return nil, err
		}
		if m != nil {
			milestones = append(milestones, m)
		}
	}
	return milestones, nil
}

func (r *DocMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding milestone: %w", err)
	}
	return r.st.Set(ctx, ColMilestones, m.UID, raw)
}

func (r *DocMilestoneRepo) Update(ctx context.Context, id string, p domain.MilestonePatch) error {
	if p.IsZero() {
		return ErrEmptyPatch
	}
	raw, err := r.st.Get(ctx, ColMilestones, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("milestone %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("loading milestone %s: %w", id, err)
	}
	var m domain.Milestone
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("decoding milestone %s: %w", id, err)
	}
	p.Apply(&m)
	out, err := json.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encoding milestone %s: %w", id, err)
	}
	return r.st.Set(ctx, ColMilestones, id, out)
}

func (r *DocMilestoneRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, ColMilestones, id)
}

func (r *DocMilestoneRepo) DeleteBatch(ctx context.Context, ids []string) error {
	return r.st.DeleteBatch(ctx, ColMilestones, ids)
}

func (r *DocMilestoneRepo) decode(id string, raw []byte) (*domain.Milestone, error) {
	var m domain.Milestone
	if err := json.Unmarshal(raw, &m); err != nil {
		r.log.Error("decoding milestone", "uid", id, "error", err)
		return nil, nil
	}
	m.UID = id
	return &m, nil
}
