package rest

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	domainProfile "github.com/vivahlink/console/internal/domain/profile"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

const (
	pathProfiles        = "/api/admin/profiles"
	pathDeletedProfiles = "/api/admin/profiles/deleted"
)

type profileRepository struct {
	client upstream.Client
	log    *logger.Logger
}

func NewProfileRepository(client upstream.Client, log *logger.Logger) domainProfile.Repository {
	return &profileRepository{client: client, log: log}
}

func (r *profileRepository) List(ctx context.Context, filter *types.ProfileFilter) (*domainProfile.ListResult, error) {
	if filter == nil {
		filter = types.NewProfileFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var resp upstream.ListResponse[*domainProfile.Profile]
	if err := r.client.Get(ctx, pathProfiles, filter.ToQuery(), &resp); err != nil {
		return nil, err
	}
	return &domainProfile.ListResult{
		Items:      r.withPhotoURLs(resp.Items),
		Pagination: resp.Pagination,
	}, nil
}

func (r *profileRepository) ListDeleted(ctx context.Context, filter *types.DeletedProfileFilter) (*domainProfile.ListResult, error) {
	if filter == nil {
		filter = types.NewDeletedProfileFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var resp upstream.ListResponse[*domainProfile.Profile]
	if err := r.client.Get(ctx, pathDeletedProfiles, filter.ToQuery(), &resp); err != nil {
		return nil, err
	}
	return &domainProfile.ListResult{
		Items:      r.withPhotoURLs(resp.Items),
		Pagination: resp.Pagination,
	}, nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*domainProfile.Profile, error) {
	if id == "" {
		return nil, ierr.NewError("profile ID is required").
			WithHint("Please provide a valid profile ID").
			Mark(ierr.ErrValidation)
	}

	var p domainProfile.Profile
	if err := r.client.Get(ctx, fmt.Sprintf("%s/%s", pathProfiles, id), nil, &p); err != nil {
		return nil, err
	}
	p.PhotoURL = r.client.ImageURL(p.PhotoPath)
	return &p, nil
}

func (r *profileRepository) Approve(ctx context.Context, id string) (*domainProfile.Profile, error) {
	var p domainProfile.Profile
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/approve", pathProfiles, id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Reject(ctx context.Context, id, reason string) (*domainProfile.Profile, error) {
	body := map[string]string{"reason": reason}
	var p domainProfile.Profile
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/reject", pathProfiles, id), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Reapply(ctx context.Context, id string) (*domainProfile.Profile, error) {
	var p domainProfile.Profile
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/reapply", pathProfiles, id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Activate(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/activate", pathProfiles, id), nil, nil)
}

func (r *profileRepository) Deactivate(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/deactivate", pathProfiles, id), nil, nil)
}

func (r *profileRepository) Block(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/block", pathProfiles, id), body, nil)
}

func (r *profileRepository) Unblock(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/unblock", pathProfiles, id), nil, nil)
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, fmt.Sprintf("%s/%s", pathProfiles, id), nil)
}

func (r *profileRepository) Restore(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/restore", pathProfiles, id), nil, nil)
}

func (r *profileRepository) BulkDelete(ctx context.Context, ids []string) error {
	body := map[string][]string{"ids": ids}
	return r.client.Post(ctx, pathProfiles+"/bulk-delete", body, nil)
}

func (r *profileRepository) BulkRestore(ctx context.Context, ids []string) error {
	body := map[string][]string{"ids": ids}
	return r.client.Post(ctx, pathProfiles+"/bulk-restore", body, nil)
}

func (r *profileRepository) withPhotoURLs(items []*domainProfile.Profile) []*domainProfile.Profile {
	return lo.Map(items, func(p *domainProfile.Profile, _ int) *domainProfile.Profile {
		if p != nil && p.PhotoPath != "" {
			p.PhotoURL = r.client.ImageURL(p.PhotoPath)
		}
		return p
	})
}
