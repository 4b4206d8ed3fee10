package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vendordesk/internal/http/middleware"
	"vendordesk/internal/service"
)

// ListVendorDocuments godoc
// @Summary      List vendor documents
// @Description  Documents attached to a vendor, newest first.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        vendorId  path      int  true  "Vendor ID"
// @Success      200       {array}   model.DocumentView
// @Router       /documents/vendor/{vendorId} [get]
func ListVendorDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendorID, _ := pathID(c, "vendorId")
		docs, err := svc.ListByVendor(c.UserContext(), vendorID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(docs)
	}
}

// UploadDocument godoc
// @Summary      Upload document
// @Description  Attaches a file (max 50 MiB) to a vendor.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        vendorId  formData  int     true  "Vendor ID"
// @Param        title     formData  string  true  "Document title"
// @Param        file      formData  file    true  "File content"
// @Success      201       {object}  CreatedResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Failure      413       {object}  ErrorResponse
// @Router       /documents/upload [post]
func UploadDocument(svc service.DocumentService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendorID, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue("vendorId")), 10, 64)
		title := strings.TrimSpace(c.FormValue("title"))

		fh, err := c.FormFile("file")
		if err != nil || vendorID <= 0 || title == "" {
			return writeError(c, fiber.StatusBadRequest, service.MsgUploadRequired)
		}
		// BodyLimit leaves room for multipart framing; the file itself gets the exact cap.
		if maxBytes > 0 && fh.Size > maxBytes {
			return writeError(c, fiber.StatusRequestEntityTooLarge, msgFileTooLarge)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
		}
		defer f.Close()

		var uploaderID int64
		if claims, ok := middleware.ClaimsFromCtx(c); ok {
			uploaderID = claims.UserID
		}

		doc, err := svc.Upload(c.UserContext(), service.UploadInput{
			VendorID:    vendorID,
			Title:       title,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
			UploaderID:  uploaderID,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: doc.ID, Message: "Document uploaded"})
	}
}

// DownloadDocument godoc
// @Summary      Download document
// @Description  Streams the stored file as an attachment under its original name.
// @Tags         documents
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path      int  true  "Document ID"
// @Success      200  {file}    file
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgDocumentNotFound)
		}
		dl, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}

		c.Attachment(dl.Document.FileName)
		if dl.Document.FileType != "" {
			c.Set(fiber.HeaderContentType, dl.Document.FileType)
		}
		// fasthttp closes the body once it has been written.
		return c.SendStream(dl.Body, int(dl.Size))
	}
}

// DeleteDocument godoc
// @Summary      Delete document
// @Description  Removes the record and its stored file.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgDocumentNotFound)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "Document deleted")
	}
}
