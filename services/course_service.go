package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"

	"exam-store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetStore is the remote media host (Cloudinary in production). Tests
// substitute a fake.
type AssetStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (models.AssetRef, error)
	UploadVideo(ctx context.Context, file *multipart.FileHeader, folder string) (models.AssetRef, error)
	DeleteImage(ctx context.Context, publicID string) error
	DeleteVideo(ctx context.Context, publicID string) error
}

// VideoStore is the persistence surface the reconciler needs, satisfied
// by repositories.VideoRepository.
type VideoStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Video, error)
	Insert(ctx context.Context, v *models.Video) error
	Update(ctx context.Context, v *models.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PartRole distinguishes which of a video's two possible assets a
// multipart binary corresponds to.
type PartRole string

const (
	RolePrimary PartRole = "videoFile"
	RoleCover   PartRole = "coverFile"
)

// PartKey addresses one uploaded binary: the owning descriptor's id (or
// its new_<index> placeholder) plus the asset role.
type PartKey struct {
	Owner string
	Role  PartRole
}

// PartMap holds every video-related binary of a request, resolved once
// from the multipart field names instead of re-scanning the form per
// descriptor.
type PartMap map[PartKey]*multipart.FileHeader

// ResolveVideoParts builds the PartMap from field names of the shape
// videoFile_<owner> and coverFile_<owner>. Unrelated fields (image,
// shortVideo, ...) are ignored.
func ResolveVideoParts(form *multipart.Form) PartMap {
	parts := PartMap{}
	if form == nil {
		return parts
	}
	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		for _, role := range []PartRole{RolePrimary, RoleCover} {
			prefix := string(role) + "_"
			if strings.HasPrefix(field, prefix) {
				parts[PartKey{Owner: strings.TrimPrefix(field, prefix), Role: role}] = headers[0]
			}
		}
	}
	return parts
}

type CourseService struct {
	videos VideoStore
	assets AssetStore
}

func NewCourseService(videos VideoStore, assets AssetStore) *CourseService {
	return &CourseService{videos: videos, assets: assets}
}

// ReconcileVideos diffs the client's descriptor list against the course's
// currently owned videos:
//
//   - descriptors carrying a currently-owned id update that video in
//     place (scalars only for fields the client sent);
//   - descriptors without a recognized id create a new video;
//   - a matched binary part replaces that role's asset, destroying the
//     previous remote asset first;
//   - owned videos absent from the descriptor list lose both remote
//     assets and their row.
//
// The returned list is stable-sorted ascending by priority and becomes
// the course's new videos list. Any asset-store failure aborts; already
// applied writes are not rolled back.
func (s *CourseService) ReconcileVideos(ctx context.Context, courseID primitive.ObjectID, ownedIDs []primitive.ObjectID, descriptors []models.VideoDescriptor, parts PartMap) ([]models.Video, error) {
	owned, err := s.videos.FindByIDs(ctx, ownedIDs)
	if err != nil {
		return nil, err
	}

	ownedByID := make(map[string]*models.Video, len(owned))
	for i := range owned {
		ownedByID[owned[i].ID.Hex()] = &owned[i]
	}

	kept := map[string]bool{}
	final := []models.Video{}

	for i, d := range descriptors {
		owner := d.ID
		if owner == "" {
			owner = fmt.Sprintf("new_%d", i)
		}

		if existing, ok := ownedByID[d.ID]; ok {
			if err := s.updateVideo(ctx, existing, d, owner, parts); err != nil {
				return nil, err
			}
			kept[existing.ID.Hex()] = true
			final = append(final, *existing)
			continue
		}

		created, err := s.createVideo(ctx, courseID, d, owner, parts)
		if err != nil {
			return nil, err
		}
		final = append(final, *created)
	}

	for i := range owned {
		old := &owned[i]
		if kept[old.ID.Hex()] {
			continue
		}
		if err := s.destroyVideoAssets(ctx, old); err != nil {
			return nil, err
		}
		if err := s.videos.Delete(ctx, old.ID); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(final, func(i, j int) bool {
		return final[i].Priority < final[j].Priority
	})

	return final, nil
}

func (s *CourseService) updateVideo(ctx context.Context, v *models.Video, d models.VideoDescriptor, owner string, parts PartMap) error {
	if d.Title != nil {
		v.Title = *d.Title
	}
	if d.Description != nil {
		v.Description = *d.Description
	}
	if d.Duration != nil {
		v.Duration = *d.Duration
	}
	if d.Priority != nil {
		v.Priority = *d.Priority
	}

	if file, ok := parts[PartKey{Owner: owner, Role: RolePrimary}]; ok {
		if !v.VideoFile.IsZero() {
			if err := s.assets.DeleteVideo(ctx, v.VideoFile.PublicID); err != nil {
				return err
			}
		}
		ref, err := s.assets.UploadVideo(ctx, file, models.FolderCourseVideos)
		if err != nil {
			return err
		}
		v.VideoFile = ref
	}

	if file, ok := parts[PartKey{Owner: owner, Role: RoleCover}]; ok {
		if !v.CoverImage.IsZero() {
			if err := s.assets.DeleteImage(ctx, v.CoverImage.PublicID); err != nil {
				return err
			}
		}
		ref, err := s.assets.UploadImage(ctx, file, models.FolderCourseVideoCovers)
		if err != nil {
			return err
		}
		v.CoverImage = ref
	}

	return s.videos.Update(ctx, v)
}

func (s *CourseService) createVideo(ctx context.Context, courseID primitive.ObjectID, d models.VideoDescriptor, owner string, parts PartMap) (*models.Video, error) {
	v := &models.Video{
		Title:  "Untitled Video",
		Course: courseID,
	}
	if d.Title != nil && *d.Title != "" {
		v.Title = *d.Title
	}
	if d.Description != nil {
		v.Description = *d.Description
	}
	if d.Duration != nil {
		v.Duration = *d.Duration
	}
	if d.Priority != nil {
		v.Priority = *d.Priority
	}

	if file, ok := parts[PartKey{Owner: owner, Role: RolePrimary}]; ok {
		ref, err := s.assets.UploadVideo(ctx, file, models.FolderCourseVideos)
		if err != nil {
			return nil, err
		}
		v.VideoFile = ref
	}

	if file, ok := parts[PartKey{Owner: owner, Role: RoleCover}]; ok {
		ref, err := s.assets.UploadImage(ctx, file, models.FolderCourseVideoCovers)
		if err != nil {
			return nil, err
		}
		v.CoverImage = ref
	}

	if err := s.videos.Insert(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// AttachShortVideo uploads a course's short promo video, replacing any
// previous one. Short videos only exist for featured courses; for a
// non-featured course the part is ignored.
func (s *CourseService) AttachShortVideo(ctx context.Context, course *models.Course, file *multipart.FileHeader) error {
	if !course.IsFeatured {
		return nil
	}
	if !course.ShortVideoLink.IsZero() {
		if err := s.assets.DeleteVideo(ctx, course.ShortVideoLink.PublicID); err != nil {
			return err
		}
	}
	ref, err := s.assets.UploadVideo(ctx, file, models.FolderCourseShortVideos)
	if err != nil {
		return err
	}
	course.ShortVideoLink = ref
	return nil
}

// DeleteCourseVideos removes every owned video and its assets; used by
// course deletion.
func (s *CourseService) DeleteCourseVideos(ctx context.Context, ownedIDs []primitive.ObjectID) error {
	owned, err := s.videos.FindByIDs(ctx, ownedIDs)
	if err != nil {
		return err
	}
	for i := range owned {
		if err := s.destroyVideoAssets(ctx, &owned[i]); err != nil {
			return err
		}
		if err := s.videos.Delete(ctx, owned[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CourseService) destroyVideoAssets(ctx context.Context, v *models.Video) error {
	if !v.VideoFile.IsZero() {
		if err := s.assets.DeleteVideo(ctx, v.VideoFile.PublicID); err != nil {
			return err
		}
	}
	if !v.CoverImage.IsZero() {
		if err := s.assets.DeleteImage(ctx, v.CoverImage.PublicID); err != nil {
			return err
		}
	}
	return nil
}
