package services

import (
	"context"
	"mime/multipart"
	"testing"

	"exam-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAssets struct {
	ops     []string
	uploads int
}

func (f *fakeAssets) UploadImage(_ context.Context, file *multipart.FileHeader, folder string) (models.AssetRef, error) {
	f.uploads++
	f.ops = append(f.ops, "upload-image:"+file.Filename)
	return models.AssetRef{PublicID: folder + "/" + file.Filename, URL: "https://cdn.test/" + file.Filename}, nil
}

func (f *fakeAssets) UploadVideo(_ context.Context, file *multipart.FileHeader, folder string) (models.AssetRef, error) {
	f.uploads++
	f.ops = append(f.ops, "upload-video:"+file.Filename)
	return models.AssetRef{PublicID: folder + "/" + file.Filename, URL: "https://cdn.test/" + file.Filename}, nil
}

func (f *fakeAssets) DeleteImage(_ context.Context, publicID string) error {
	f.ops = append(f.ops, "delete-image:"+publicID)
	return nil
}

func (f *fakeAssets) DeleteVideo(_ context.Context, publicID string) error {
	f.ops = append(f.ops, "delete-video:"+publicID)
	return nil
}

type fakeVideos struct {
	byID    map[primitive.ObjectID]models.Video
	inserts int
	updates int
	deletes int
}

func newFakeVideos(videos ...models.Video) *fakeVideos {
	f := &fakeVideos{byID: map[primitive.ObjectID]models.Video{}}
	for _, v := range videos {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVideos) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Video, error) {
	out := []models.Video{}
	for _, id := range ids {
		if v, ok := f.byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideos) Insert(_ context.Context, v *models.Video) error {
	f.inserts++
	v.ID = primitive.NewObjectID()
	f.byID[v.ID] = *v
	return nil
}

func (f *fakeVideos) Update(_ context.Context, v *models.Video) error {
	f.updates++
	f.byID[v.ID] = *v
	return nil
}

func (f *fakeVideos) Delete(_ context.Context, id primitive.ObjectID) error {
	f.deletes++
	delete(f.byID, id)
	return nil
}

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }

func header(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestResolveVideoParts(t *testing.T) {
	ownerID := primitive.NewObjectID().Hex()
	form := &multipart.Form{
		File: map[string][]*multipart.FileHeader{
			"videoFile_new_0":      {header("lecture.mp4")},
			"coverFile_" + ownerID: {header("cover.jpg")},
			"image":                {header("course.png")},
			"shortVideo":           {header("promo.mp4")},
		},
	}

	parts := ResolveVideoParts(form)

	require.Len(t, parts, 2)
	assert.Equal(t, "lecture.mp4", parts[PartKey{Owner: "new_0", Role: RolePrimary}].Filename)
	assert.Equal(t, "cover.jpg", parts[PartKey{Owner: ownerID, Role: RoleCover}].Filename)
}

func TestResolveVideoPartsNilForm(t *testing.T) {
	assert.Empty(t, ResolveVideoParts(nil))
}

func TestReconcileVideosCreatesFromPlaceholders(t *testing.T) {
	videos := newFakeVideos()
	assets := &fakeAssets{}
	svc := NewCourseService(videos, assets)
	courseID := primitive.NewObjectID()

	descriptors := []models.VideoDescriptor{
		{Title: strPtr("Intro"), Priority: intPtr(1), Duration: f64Ptr(120)},
		{Priority: intPtr(2)},
	}
	parts := PartMap{
		{Owner: "new_0", Role: RolePrimary}: header("intro.mp4"),
		{Owner: "new_0", Role: RoleCover}:   header("intro.jpg"),
	}

	final, err := svc.ReconcileVideos(context.Background(), courseID, nil, descriptors, parts)
	require.NoError(t, err)
	require.Len(t, final, 2)

	assert.Equal(t, 2, videos.inserts)
	assert.Equal(t, "Intro", final[0].Title)
	assert.Equal(t, float64(120), final[0].Duration)
	assert.Equal(t, courseID, final[0].Course)
	assert.Equal(t, "https://cdn.test/intro.mp4", final[0].VideoFile.URL)
	assert.Equal(t, "https://cdn.test/intro.jpg", final[0].CoverImage.URL)

	// Descriptor without a title falls back to the default.
	assert.Equal(t, "Untitled Video", final[1].Title)
	assert.True(t, final[1].VideoFile.IsZero())
}

func TestReconcileVideosSortsStableByPriority(t *testing.T) {
	videos := newFakeVideos()
	svc := NewCourseService(videos, &fakeAssets{})

	descriptors := []models.VideoDescriptor{
		{Title: strPtr("C"), Priority: intPtr(3)},
		{Title: strPtr("A1"), Priority: intPtr(1)},
		{Title: strPtr("A2"), Priority: intPtr(1)},
		{Title: strPtr("B"), Priority: intPtr(2)},
	}

	final, err := svc.ReconcileVideos(context.Background(), primitive.NewObjectID(), nil, descriptors, PartMap{})
	require.NoError(t, err)
	require.Len(t, final, 4)

	assert.Equal(t, "A1", final[0].Title)
	assert.Equal(t, "A2", final[1].Title)
	assert.Equal(t, "B", final[2].Title)
	assert.Equal(t, "C", final[3].Title)
}

func TestReconcileVideosUpdatesOnlySentFields(t *testing.T) {
	existing := models.Video{
		ID:          primitive.NewObjectID(),
		Title:       "Old title",
		Description: "Old description",
		Duration:    300,
		Priority:    5,
	}
	videos := newFakeVideos(existing)
	svc := NewCourseService(videos, &fakeAssets{})

	descriptors := []models.VideoDescriptor{
		{ID: existing.ID.Hex(), Title: strPtr("New title"), Priority: intPtr(1)},
	}

	final, err := svc.ReconcileVideos(context.Background(), primitive.NewObjectID(), []primitive.ObjectID{existing.ID}, descriptors, PartMap{})
	require.NoError(t, err)
	require.Len(t, final, 1)

	assert.Equal(t, "New title", final[0].Title)
	assert.Equal(t, "Old description", final[0].Description)
	assert.Equal(t, float64(300), final[0].Duration)
	assert.Equal(t, 1, final[0].Priority)
	assert.Equal(t, 0, videos.inserts)
	assert.Equal(t, 1, videos.updates)
	assert.Equal(t, 0, videos.deletes)
}

func TestReconcileVideosReplacesAssetDestroyingOldFirst(t *testing.T) {
	existing := models.Video{
		ID:        primitive.NewObjectID(),
		Title:     "Lecture",
		VideoFile: models.AssetRef{PublicID: "course_videos/old", URL: "https://cdn.test/old.mp4"},
	}
	videos := newFakeVideos(existing)
	assets := &fakeAssets{}
	svc := NewCourseService(videos, assets)

	descriptors := []models.VideoDescriptor{{ID: existing.ID.Hex()}}
	parts := PartMap{
		{Owner: existing.ID.Hex(), Role: RolePrimary}: header("new.mp4"),
	}

	final, err := svc.ReconcileVideos(context.Background(), primitive.NewObjectID(), []primitive.ObjectID{existing.ID}, descriptors, parts)
	require.NoError(t, err)
	require.Len(t, final, 1)

	assert.Equal(t, "https://cdn.test/new.mp4", final[0].VideoFile.URL)
	require.Len(t, assets.ops, 2)
	assert.Equal(t, "delete-video:course_videos/old", assets.ops[0])
	assert.Equal(t, "upload-video:new.mp4", assets.ops[1])
}

func TestReconcileVideosRemovesOrphans(t *testing.T) {
	kept := models.Video{ID: primitive.NewObjectID(), Title: "Kept"}
	orphan := models.Video{
		ID:         primitive.NewObjectID(),
		Title:      "Orphan",
		VideoFile:  models.AssetRef{PublicID: "course_videos/orphan"},
		CoverImage: models.AssetRef{PublicID: "course_video_covers/orphan"},
	}
	videos := newFakeVideos(kept, orphan)
	assets := &fakeAssets{}
	svc := NewCourseService(videos, assets)

	descriptors := []models.VideoDescriptor{{ID: kept.ID.Hex()}}
	owned := []primitive.ObjectID{kept.ID, orphan.ID}

	final, err := svc.ReconcileVideos(context.Background(), primitive.NewObjectID(), owned, descriptors, PartMap{})
	require.NoError(t, err)
	require.Len(t, final, 1)

	assert.Equal(t, "Kept", final[0].Title)
	assert.Equal(t, 1, videos.deletes)
	assert.Contains(t, assets.ops, "delete-video:course_videos/orphan")
	assert.Contains(t, assets.ops, "delete-image:course_video_covers/orphan")
	_, stillThere := videos.byID[orphan.ID]
	assert.False(t, stillThere)
}

func TestReconcileVideosEmptyListRemovesEverything(t *testing.T) {
	a := models.Video{ID: primitive.NewObjectID(), VideoFile: models.AssetRef{PublicID: "course_videos/a"}}
	b := models.Video{ID: primitive.NewObjectID(), CoverImage: models.AssetRef{PublicID: "course_video_covers/b"}}
	videos := newFakeVideos(a, b)
	svc := NewCourseService(videos, &fakeAssets{})

	// Malformed videosData parses to an empty list, which means the
	// client kept nothing.
	descriptors := models.ParseVideoDescriptors("{not json")
	require.Empty(t, descriptors)

	final, err := svc.ReconcileVideos(context.Background(), primitive.NewObjectID(), []primitive.ObjectID{a.ID, b.ID}, descriptors, PartMap{})
	require.NoError(t, err)

	assert.Empty(t, final)
	assert.Equal(t, 2, videos.deletes)
	assert.Empty(t, videos.byID)
}

func TestReconcileVideosResubmitIsIdempotent(t *testing.T) {
	existing := models.Video{ID: primitive.NewObjectID(), Title: "Lecture", Priority: 1}
	videos := newFakeVideos(existing)
	svc := NewCourseService(videos, &fakeAssets{})

	descriptors := []models.VideoDescriptor{
		{ID: existing.ID.Hex(), Title: strPtr("Lecture"), Priority: intPtr(1)},
	}

	for i := 0; i < 2; i++ {
		final, err := svc.ReconcileVideos(context.Background(), primitive.NewObjectID(), []primitive.ObjectID{existing.ID}, descriptors, PartMap{})
		require.NoError(t, err)
		require.Len(t, final, 1)
		assert.Equal(t, existing.ID, final[0].ID)
	}

	assert.Equal(t, 0, videos.inserts)
	assert.Equal(t, 0, videos.deletes)
}

func TestAttachShortVideoIgnoredForNonFeatured(t *testing.T) {
	assets := &fakeAssets{}
	svc := NewCourseService(newFakeVideos(), assets)
	course := &models.Course{Title: "Plain course", IsFeatured: false}

	err := svc.AttachShortVideo(context.Background(), course, header("promo.mp4"))
	require.NoError(t, err)

	assert.True(t, course.ShortVideoLink.IsZero())
	assert.Empty(t, assets.ops)
}

func TestAttachShortVideoUploadsForFeatured(t *testing.T) {
	assets := &fakeAssets{}
	svc := NewCourseService(newFakeVideos(), assets)
	course := &models.Course{Title: "Featured course", IsFeatured: true}

	err := svc.AttachShortVideo(context.Background(), course, header("promo.mp4"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/promo.mp4", course.ShortVideoLink.URL)
	require.Len(t, assets.ops, 1)
	assert.Equal(t, "upload-video:promo.mp4", assets.ops[0])
}

func TestAttachShortVideoReplacesDestroyingOldFirst(t *testing.T) {
	assets := &fakeAssets{}
	svc := NewCourseService(newFakeVideos(), assets)
	course := &models.Course{
		Title:          "Featured course",
		IsFeatured:     true,
		ShortVideoLink: models.AssetRef{PublicID: "course_short_videos/old"},
	}

	err := svc.AttachShortVideo(context.Background(), course, header("new-promo.mp4"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/new-promo.mp4", course.ShortVideoLink.URL)
	require.Len(t, assets.ops, 2)
	assert.Equal(t, "delete-video:course_short_videos/old", assets.ops[0])
	assert.Equal(t, "upload-video:new-promo.mp4", assets.ops[1])
}

func TestDeleteCourseVideos(t *testing.T) {
	a := models.Video{
		ID:         primitive.NewObjectID(),
		VideoFile:  models.AssetRef{PublicID: "course_videos/a"},
		CoverImage: models.AssetRef{PublicID: "course_video_covers/a"},
	}
	b := models.Video{ID: primitive.NewObjectID()}
	videos := newFakeVideos(a, b)
	assets := &fakeAssets{}
	svc := NewCourseService(videos, assets)

	err := svc.DeleteCourseVideos(context.Background(), []primitive.ObjectID{a.ID, b.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, videos.deletes)
	assert.Contains(t, assets.ops, "delete-video:course_videos/a")
	assert.Contains(t, assets.ops, "delete-image:course_video_covers/a")
	assert.Empty(t, videos.byID)
}
