package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
	"vendordesk/internal/storage"
)

const (
	octetStream = "application/octet-stream"
	// sniffLen matches the header size mimetype inspects by default.
	sniffLen = 3072
)

// UploadInput describes one uploaded file and the record to create for it.
type UploadInput struct {
	VendorID    int64
	Title       string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	UploaderID  int64
}

// Download is an open stored file plus its record. The caller closes Body.
type Download struct {
	Document model.Document
	Body     io.ReadCloser
	Size     int64
}

// DocumentService defines the use cases for handling vendor documents.
type DocumentService interface {
	// ListByVendor returns the vendor's documents, newest first.
	ListByVendor(ctx context.Context, vendorID int64) ([]model.DocumentView, error)

	// Upload stores the file, then records it. A failed record step removes the stored file.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Download opens the stored file of a document.
	Download(ctx context.Context, id int64) (*Download, error)

	// Delete removes both the record and the stored file.
	Delete(ctx context.Context, id int64) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   repository.Store
	objects storage.Storage
	log     zerolog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store repository.Store, objects storage.Storage, log zerolog.Logger) DocumentService {
	return &documentService{
		store:   store,
		objects: objects,
		log:     log,
	}
}

func (s *documentService) ListByVendor(ctx context.Context, vendorID int64) ([]model.DocumentView, error) {
	docs, err := s.store.Documents().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	dir, err := loadDirectory(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return documentViews(dir, docs), nil
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.VendorID <= 0 || in.Title == "" || in.Body == nil || in.FileName == "" || in.Size == 0 {
		return nil, validationError(MsgUploadRequired)
	}

	body, contentType, err := sniffContentType(in.Body, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	key := storage.NewKey(in.FileName)
	obj, err := s.objects.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": in.FileName},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	var created *model.Document
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Vendors().FindByID(ctx, in.VendorID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError(MsgVendorNotFound)
			}
			return fmt.Errorf("find vendor: %w", err)
		}

		doc := &model.Document{
			VendorID:  in.VendorID,
			Title:     in.Title,
			FileName:  in.FileName,
			FilePath:  obj.Key,
			FileType:  contentType,
			FileSize:  obj.Size,
			CreatedAt: time.Now().UTC(),
		}
		if in.UploaderID > 0 {
			uploader := in.UploaderID
			doc.UploadedByID = &uploader
		}
		created, err = tx.Documents().Create(ctx, doc)
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return nil
	})
	if err != nil {
		// Rollback: the record never landed, so the stored file must go too.
		if delErr := s.objects.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger(ctx).Error().Err(delErr).Str("key", key).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}

	s.logger(ctx).Info().
		Str("event", "document_uploaded").
		Int64("document_id", created.ID).
		Int64("vendor_id", created.VendorID).
		Int64("size", created.FileSize).
		Msg("document uploaded")
	return created, nil
}

func (s *documentService) Download(ctx context.Context, id int64) (*Download, error) {
	doc, err := s.store.Documents().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger(ctx).Debug().Int64("document_id", id).Msg("download of unknown document")
			return nil, notFoundError(MsgDocumentNotFound)
		}
		return nil, fmt.Errorf("find document: %w", err)
	}

	body, info, err := s.objects.Get(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			// The record survived but its file did not.
			s.logger(ctx).Warn().Int64("document_id", id).Str("key", doc.FilePath).Msg("document file missing from storage")
			return nil, notFoundError(MsgFileNotFound)
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}

	size := info.Size
	if size <= 0 {
		size = doc.FileSize
	}
	return &Download{Document: *doc, Body: body, Size: size}, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		doc, err := tx.Documents().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError(MsgDocumentNotFound)
			}
			return fmt.Errorf("find document: %w", err)
		}
		if err := tx.Documents().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError(MsgDocumentNotFound)
			}
			return fmt.Errorf("delete document: %w", err)
		}
		// The record delete is undone if the file cannot be removed.
		if err := s.objects.Delete(ctx, doc.FilePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("delete stored file: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger(ctx).Info().Str("event", "document_deleted").Int64("document_id", id).Msg("document deleted")
	return nil
}

// sniffContentType keeps a specific client-declared type and otherwise detects
// one from the leading bytes. The returned reader still yields the full content.
func sniffContentType(r io.Reader, declared string) (io.Reader, string, error) {
	if declared != "" && declared != octetStream {
		return r, declared, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]

	return io.MultiReader(bytes.NewReader(head), r), mimetype.Detect(head).String(), nil
}

func (s *documentService) logger(ctx context.Context) *zerolog.Logger {
	return scopedLogger(ctx, s.log, "documents")
}
