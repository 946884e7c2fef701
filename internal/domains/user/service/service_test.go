package service_test

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clinicbook/config"
	"clinicbook/infras/otel/mocks"
	s3Mocks "clinicbook/infras/s3/mocks"
	userMocks "clinicbook/internal/domains/user/mocks"
	"clinicbook/internal/domains/user/model"
	"clinicbook/internal/domains/user/service"
	cacheMocks "clinicbook/shared/cache/mocks"
)

const (
	userID = "user-id-1"
	bucket = "clinicbook-media"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache-aside reads miss and async invalidation may run after the test body.
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.External.S3.BucketName = bucket

	return service.New(repo, cfg, mockCache, mocks.NewOtel(), storage), repo, storage
}

type memFile struct{ *strings.Reader }

func (memFile) Close() error { return nil }

func uploadParts() (multipart.File, *multipart.FileHeader) {
	return memFile{strings.NewReader("png bytes")}, &multipart.FileHeader{Filename: "avatar.png", Size: 9}
}

func TestUserService_UploadProfileImage(t *testing.T) {
	t.Run("first upload stores the image url", func(t *testing.T) {
		svc, repo, storage := newService(t)
		file, header := uploadParts()

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID}, nil)
		storage.EXPECT().UploadFile(gomock.Any(), bucket, "profile-images", file, header, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://" + bucket + "/profile-images/" + fileName, nil
			})
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		url, err := svc.UploadProfileImage(context.Background(), file, header, userID)
		assert.NoError(t, err)
		assert.Contains(t, url, "profile-images/")
	})

	t.Run("replacing deletes the previous object", func(t *testing.T) {
		svc, repo, storage := newService(t)
		file, header := uploadParts()

		old := "https://" + bucket + "/profile-images/old.png"

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID, ProfileImage: &old}, nil)
		storage.EXPECT().UploadFile(gomock.Any(), bucket, "profile-images", file, header, gomock.Any()).
			Return("https://"+bucket+"/profile-images/new.png", nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		// The old object is removed in a fire-and-forget goroutine.
		storage.EXPECT().GetObjectNameFromURL(bucket, old).Return("profile-images/old.png").AnyTimes()
		storage.EXPECT().DeleteFile(gomock.Any(), bucket, gomock.Any(), "profile-images/old.png").Return(nil).AnyTimes()

		url, err := svc.UploadProfileImage(context.Background(), file, header, userID)
		assert.NoError(t, err)
		assert.Equal(t, "https://"+bucket+"/profile-images/new.png", url)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newService(t)
		file, header := uploadParts()

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.UploadProfileImage(context.Background(), file, header, "missing")
		assert.Error(t, err)
	})

	t.Run("upload failure leaves the user untouched", func(t *testing.T) {
		svc, repo, storage := newService(t)
		file, header := uploadParts()

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: userID}, nil)
		storage.EXPECT().UploadFile(gomock.Any(), bucket, "profile-images", file, header, gomock.Any()).
			Return("", assert.AnError)

		_, err := svc.UploadProfileImage(context.Background(), file, header, userID)
		assert.Error(t, err)
	})
}
