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

// DocProjectRepo implements ProjectRepo over the document store.
type DocProjectRepo struct {
	st  store.Store
	log *slog.Logger
}

// NewDocProjectRepo creates a new DocProjectRepo.
func NewDocProjectRepo(st store.Store, log *slog.Logger) *DocProjectRepo {
	if log == nil {
		log = slog.Default()
	}
	return &DocProjectRepo{st: st, log: log}
}

func (r *DocProjectRepo) Find(ctx context.Context, id string) (*domain.Project, error) {
	raw, err := r.st.Get(ctx, ColProjects, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("reading project", "uid", id, "error", err)
		return nil, nil
	}
	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		r.log.Error("decoding project", "uid", id, "error", err)
		return nil, nil
	}
	p.UID = id
	return &p, nil
}

// FindMany loads the projects for the given ids, skipping any that no longer
// exist. Used to render a user's denormalized project list.
func (r *DocProjectRepo) FindMany(ctx context.Context, ids []string) ([]*domain.Project, error) {
	projects := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (r *DocProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	return r.st.Set(ctx, ColProjects, p.UID, raw)
}

func (r *DocProjectRepo) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	if patch.IsZero() {
		return ErrEmptyPatch
	}
	raw, err := r.st.Get(ctx, ColProjects, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("project %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("loading project %s: %w", id, err)
	}
	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decoding project %s: %w", id, err)
	}
	patch.Apply(&p)
	out, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encoding project %s: %w", id, err)
	}
	return r.st.Set(ctx, ColProjects, id, out)
}

func (r *DocProjectRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, ColProjects, id)
}
