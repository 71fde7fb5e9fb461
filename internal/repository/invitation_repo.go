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

// DocInvitationRepo implements InvitationRepo over the document store.
type DocInvitationRepo struct {
	st  store.Store
	log *slog.Logger
}

// NewDocInvitationRepo creates a new DocInvitationRepo.
func NewDocInvitationRepo(st store.Store, log *slog.Logger) *DocInvitationRepo {
	if log == nil {
		log = slog.Default()
	}
	return &DocInvitationRepo{st: st, log: log}
}

func (r *DocInvitationRepo) Find(ctx context.Context, id string) (*domain.Invitation, error) {
	raw, err := r.st.Get(ctx, ColInvitations, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("reading invitation", "uid", id, "error", err)
		return nil, nil
	}
	return r.decode(id, raw)
}

func (r *DocInvitationRepo) ListByEmail(ctx context.Context, email string) ([]*domain.Invitation, error) {
	return r.list(ctx, store.Where("email", store.OpEqual, email))
}

func (r *DocInvitationRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Invitation, error) {
	return r.list(ctx, store.Where("projectId", store.OpEqual, projectID))
}

func (r *DocInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	raw, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encoding invitation: %w", err)
	}
	return r.st.Set(ctx, ColInvitations, inv.UID, raw)
}

func (r *DocInvitationRepo) Update(ctx context.Context, id string, p domain.InvitationPatch) error {
	if p.IsZero() {
		return ErrEmptyPatch
	}
	raw, err := r.st.Get(ctx, ColInvitations, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("invitation %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("loading invitation %s: %w", id, err)
	}
	var inv domain.Invitation
	if err := json.Unmarshal(raw, &inv); err != nil {
		return fmt.Errorf("decoding invitation %s: %w", id, err)
	}
	p.Apply(&inv)
	out, err := json.Marshal(&inv)
	if err != nil {
		return fmt.Errorf("encoding invitation %s: %w", id, err)
	}
	return r.st.Set(ctx, ColInvitations, id, out)
}

func (r *DocInvitationRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, ColInvitations, id)
}

func (r *DocInvitationRepo) list(ctx context.Context, q store.Query) ([]*domain.Invitation, error) {
	docs, err := r.st.Find(ctx, ColInvitations, q)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	invitations := make([]*domain.Invitation, 0, len(docs))
	for _, d := range docs {
		inv, err := r.decode(d.ID, d.Data)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			invitations = append(invitations, inv)
		}
	}
	return invitations, nil
}

func (r *DocInvitationRepo) decode(id string, raw []byte) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := json.Unmarshal(raw, &inv); err != nil {
		r.log.Error("decoding invitation", "uid", id, "error", err)
		return nil, nil
	}
	inv.UID = id
	return &inv, nil
}
