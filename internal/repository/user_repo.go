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

// DocUserRepo implements UserRepo over the document store.
type DocUserRepo struct {
	st  store.Store
	log *slog.Logger
}

// NewDocUserRepo creates a new DocUserRepo.
func NewDocUserRepo(st store.Store, log *slog.Logger) *DocUserRepo {
	if log == nil {
		log = slog.Default()
	}
	return &DocUserRepo{st: st, log: log}
}

func (r *DocUserRepo) Find(ctx context.Context, id string) (*domain.User, error) {
	raw, err := r.st.Get(ctx, ColUsers, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("reading user", "uid", id, "error", err)
		return nil, nil
	}
	return r.decode(id, raw)
}

func (r *DocUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.st.Find(ctx, ColUsers, store.Where("email", store.OpEqual, email))
	if err != nil {
		r.log.Error("querying users by email", "email", email, "error", err)
		return nil, nil
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return r.decode(docs[0].ID, docs[0].Data)
}

func (r *DocUserRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.User, error) {
	docs, err := r.st.Find(ctx, ColUsers, store.Where("projects", store.OpContains, projectID))
	if err != nil {
		r.log.Error("querying users by project", "project", projectID, "error", err)
		return nil, nil
	}
	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		u, err := r.decode(d.ID, d.Data)
		if err != nil || u == nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *DocUserRepo) Create(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	return r.st.Set(ctx, ColUsers, u.UID, raw)
}

func (r *DocUserRepo) Update(ctx context.Context, id string, p domain.UserPatch) error {
	if p.IsZero() {
		return ErrEmptyPatch
	}
	raw, err := r.st.Get(ctx, ColUsers, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("user %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("loading user %s: %w", id, err)
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return fmt.Errorf("decoding user %s: %w", id, err)
	}
	p.Apply(&u)
	out, err := json.Marshal(&u)
	if err != nil {
		return fmt.Errorf("encoding user %s: %w", id, err)
	}
	return r.st.Set(ctx, ColUsers, id, out)
}

// SetProjects replaces the user's denormalized project-membership list.
// Cascade steps use it; it is not part of the profile patch surface.
func (r *DocUserRepo) SetProjects(ctx context.Context, id string, projects []string) error {
	raw, err := r.st.Get(ctx, ColUsers, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("user %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("loading user %s: %w", id, err)
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return fmt.Errorf("decoding user %s: %w", id, err)
	}
	u.Projects = projects
	out, err := json.Marshal(&u)
	if err != nil {
		return fmt.Errorf("encoding user %s: %w", id, err)
	}
	return r.st.Set(ctx, ColUsers, id, out)
}

func (r *DocUserRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, ColUsers, id)
}

func (r *DocUserRepo) decode(id string, raw []byte) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		r.log.Error("decoding user", "uid", id, "error", err)
		return nil, nil
	}
	u.UID = id
	return &u, nil
}
