package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vendordesk/internal/logging"
	"vendordesk/internal/model"
	"vendordesk/internal/repository"
	repoMocks "vendordesk/internal/repository/mocks"
	"vendordesk/internal/storage"
	storeMocks "vendordesk/internal/storage/mocks"
)

// echoKey makes a Put mock report back the key it was called with.
func echoKey(size int64) func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo {
	return func(_ context.Context, key string, _ io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
		return storage.ObjectInfo{Key: key, Size: size, ContentType: opt.ContentType}
	}
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         UploadInput
		setupMocks func(store *repoMocks.MockStore, objects *storeMocks.MockStorage)
		wantKind   error
		wantErrMsg string
		wantDelete bool
	}{
		{
			name: "happy path",
			in: UploadInput{
				VendorID: 2, Title: "Runbook", FileName: "runbook.txt", ContentType: "text/plain",
				Size: 11, Body: strings.NewReader("hello world"), UploaderID: 1,
			},
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				objects.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, ".txt")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "text/plain" && opt.Size == 11 &&
						opt.Metadata["original-filename"] == "runbook.txt"
				})).Return(echoKey(11), nil)
				store.VendorRepo.On("FindByID", ctx, int64(2)).Return(&model.Vendor{ID: 2}, nil)
				store.DocumentRepo.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.VendorID == 2 && d.Title == "Runbook" && d.FileName == "runbook.txt" &&
						strings.HasSuffix(d.FilePath, ".txt") && d.FileType == "text/plain" &&
						d.FileSize == 11 && d.UploadedByID != nil && *d.UploadedByID == 1
				})).Return(&model.Document{ID: 5, VendorID: 2}, nil)
			},
		},
		{
			name:       "validation error - missing title",
			in:         UploadInput{VendorID: 2, FileName: "a.txt", Size: 1, Body: strings.NewReader("a")},
			setupMocks: func(*repoMocks.MockStore, *storeMocks.MockStorage) {},
			wantKind:   ErrValidation,
			wantErrMsg: MsgUploadRequired,
		},
		{
			name:       "validation error - empty file",
			in:         UploadInput{VendorID: 2, Title: "t", FileName: "a.txt", Size: 0, Body: strings.NewReader("")},
			setupMocks: func(*repoMocks.MockStore, *storeMocks.MockStorage) {},
			wantKind:   ErrValidation,
			wantErrMsg: MsgUploadRequired,
		},
		{
			name: "storage error",
			in:   UploadInput{VendorID: 2, Title: "t", FileName: "a.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello")},
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				objects.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "vendor missing removes stored file",
			in:   UploadInput{VendorID: 9, Title: "t", FileName: "a.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello")},
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				objects.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(echoKey(5), nil)
				store.VendorRepo.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)
				objects.On("Delete", mock.Anything, mock.Anything).Return(nil)
			},
			wantKind:   ErrNotFound,
			wantErrMsg: MsgVendorNotFound,
			wantDelete: true,
		},
		{
			name: "record failure removes stored file",
			in:   UploadInput{VendorID: 2, Title: "t", FileName: "a.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello")},
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				objects.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(echoKey(5), nil)
				store.VendorRepo.On("FindByID", ctx, int64(2)).Return(&model.Vendor{ID: 2}, nil)
				store.DocumentRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("disk full"))
				objects.On("Delete", mock.Anything, mock.Anything).Return(nil)
			},
			wantErrMsg: "create document: disk full",
			wantDelete: true,
		},
		{
			name: "rollback delete failure keeps original error",
			in:   UploadInput{VendorID: 2, Title: "t", FileName: "a.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello")},
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				objects.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(echoKey(5), nil)
				store.VendorRepo.On("FindByID", ctx, int64(2)).Return(&model.Vendor{ID: 2}, nil)
				store.DocumentRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("disk full"))
				objects.On("Delete", mock.Anything, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "create document: disk full",
			wantDelete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repoMocks.NewMockStore()
			objects := new(storeMocks.MockStorage)
			tt.setupMocks(store, objects)

			svc := NewDocumentService(store, objects, logging.Nop())
			doc, err := svc.Upload(ctx, tt.in)

			switch {
			case tt.wantKind != nil:
				assertKind(t, err, tt.wantKind, tt.wantErrMsg)
				assert.Nil(t, doc)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, doc)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			if tt.wantDelete {
				// the key removed on rollback is the key that was stored
				put := objects.Calls[0].Arguments.String(1)
				objects.AssertCalled(t, "Delete", mock.Anything, put)
			}
			store.AssertExpectations(t)
			objects.AssertExpectations(t)
		})
	}
}

func TestDocumentService_UploadSniffsContentType(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	objects := new(storeMocks.MockStorage)
	content := "%PDF-1.7\n%binary contract body"

	objects.On("Put", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
		return opt.ContentType == "application/pdf"
	})).Run(func(args mock.Arguments) {
		// the sniffed header must still reach storage
		b, err := io.ReadAll(args.Get(2).(io.Reader))
		require.NoError(t, err)
		assert.Equal(t, content, string(b))
	}).Return(echoKey(int64(len(content))), nil)
	store.VendorRepo.On("FindByID", ctx, int64(1)).Return(&model.Vendor{ID: 1}, nil)
	store.DocumentRepo.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
		return d.FileType == "application/pdf" && d.UploadedByID == nil
	})).Return(&model.Document{ID: 1}, nil)

	svc := NewDocumentService(store, objects, logging.Nop())
	_, err := svc.Upload(ctx, UploadInput{
		VendorID: 1, Title: "Contract", FileName: "contract.bin", ContentType: "application/octet-stream",
		Size: int64(len(content)), Body: strings.NewReader(content),
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
	objects.AssertExpectations(t)
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: 3, FilePath: "abc.txt", FileName: "notes.txt", FileSize: 2}

	t.Run("ok", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		objects := new(storeMocks.MockStorage)
		store.DocumentRepo.On("FindByID", ctx, int64(3)).Return(doc, nil)
		objects.On("Get", ctx, "abc.txt").Return(io.NopCloser(strings.NewReader("hi")), storage.ObjectInfo{Size: 2}, nil)

		dl, err := NewDocumentService(store, objects, logging.Nop()).Download(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "notes.txt", dl.Document.FileName)
		assert.Equal(t, int64(2), dl.Size)
	})

	t.Run("record missing", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		objects := new(storeMocks.MockStorage)
		store.DocumentRepo.On("FindByID", ctx, int64(3)).Return(nil, repository.ErrNotFound)

		_, err := NewDocumentService(store, objects, logging.Nop()).Download(ctx, 3)

		assertKind(t, err, ErrNotFound, MsgDocumentNotFound)
		objects.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("file missing", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		objects := new(storeMocks.MockStorage)
		store.DocumentRepo.On("FindByID", ctx, int64(3)).Return(doc, nil)
		objects.On("Get", ctx, "abc.txt").Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, err := NewDocumentService(store, objects, logging.Nop()).Download(ctx, 3)

		assertKind(t, err, ErrNotFound, MsgFileNotFound)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		objects := new(storeMocks.MockStorage)
		store.DocumentRepo.On("FindByID", ctx, int64(3)).Return(doc, nil)
		objects.On("Get", ctx, "abc.txt").Return(nil, storage.ObjectInfo{}, errors.New("io error"))

		_, err := NewDocumentService(store, objects, logging.Nop()).Download(ctx, 3)

		require.Error(t, err)
		var svcErr *Error
		assert.False(t, errors.As(err, &svcErr))
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: 4, FilePath: "k.pdf", CreatedAt: time.Now()}

	tests := []struct {
		name       string
		setupMocks func(store *repoMocks.MockStore, objects *storeMocks.MockStorage)
		wantKind   error
		wantErrMsg string
	}{
		{
			name: "happy path",
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				store.DocumentRepo.On("FindByID", ctx, int64(4)).Return(doc, nil)
				store.DocumentRepo.On("Delete", ctx, int64(4)).Return(nil)
				objects.On("Delete", ctx, "k.pdf").Return(nil)
			},
		},
		{
			name: "file already gone",
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				store.DocumentRepo.On("FindByID", ctx, int64(4)).Return(doc, nil)
				store.DocumentRepo.On("Delete", ctx, int64(4)).Return(nil)
				objects.On("Delete", ctx, "k.pdf").Return(storage.ErrObjectNotFound)
			},
		},
		{
			name: "not found",
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				store.DocumentRepo.On("FindByID", ctx, int64(4)).Return(nil, repository.ErrNotFound)
			},
			wantKind:   ErrNotFound,
			wantErrMsg: MsgDocumentNotFound,
		},
		{
			name: "storage failure aborts",
			setupMocks: func(store *repoMocks.MockStore, objects *storeMocks.MockStorage) {
				store.DocumentRepo.On("FindByID", ctx, int64(4)).Return(doc, nil)
				store.DocumentRepo.On("Delete", ctx, int64(4)).Return(nil)
				objects.On("Delete", ctx, "k.pdf").Return(errors.New("permission denied"))
			},
			wantErrMsg: "delete stored file: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repoMocks.NewMockStore()
			objects := new(storeMocks.MockStorage)
			tt.setupMocks(store, objects)

			err := NewDocumentService(store, objects, logging.Nop()).Delete(ctx, 4)

			switch {
			case tt.wantKind != nil:
				assertKind(t, err, tt.wantKind, tt.wantErrMsg)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, store.TxCount)
			store.AssertExpectations(t)
			objects.AssertExpectations(t)
		})
	}
}

func TestDocumentService_ListByVendorSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	uploader := int64(1)
	ghost := int64(99)

	store.DocumentRepo.On("ListByVendor", ctx, int64(2)).Return([]model.Document{
		{ID: 1, VendorID: 2, CreatedAt: older, UploadedByID: &uploader},
		{ID: 2, VendorID: 2, CreatedAt: newer, UploadedByID: &ghost},
	}, nil)
	store.UserRepo.On("List", ctx).Return([]model.User{{ID: 1, Name: "Alice"}}, nil)
	store.TeamRepo.On("List", ctx).Return([]model.TeamMember{}, nil)

	docs, err := NewDocumentService(store, new(storeMocks.MockStorage), logging.Nop()).ListByVendor(ctx, 2)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(2), docs[0].ID)
	assert.Equal(t, "Unknown", docs[0].UploadedBy)
	assert.Equal(t, "Alice", docs[1].UploadedBy)
	store.AssertExpectations(t)
}
