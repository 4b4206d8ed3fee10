package handler

import (
	"github.com/gofiber/fiber/v2"

	"vendordesk/internal/service"
)

// ListVendors godoc
// @Summary      List vendors
// @Description  Every vendor with primary and secondary contacts resolved.
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.VendorView
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /vendors [get]
func ListVendors(svc service.VendorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendors, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(vendors)
	}
}

// GetVendor godoc
// @Summary      Get vendor
// @Description  One vendor with resolved contacts and its documents, newest first.
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  model.VendorDetail
// @Failure      404  {object}  ErrorResponse
// @Router       /vendors/{id} [get]
func GetVendor(svc service.VendorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgVendorNotFound)
		}
		v, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(v)
	}
}

// CreateVendor godoc
// @Summary      Create vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      service.VendorInput  true  "Vendor"
// @Success      201   {object}  CreatedResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /vendors [post]
func CreateVendor(svc service.VendorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.VendorInput
		if !parseBody(c, &in) {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		v, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: v.ID, Message: "Vendor created"})
	}
}

// UpdateVendor godoc
// @Summary      Update vendor
// @Description  Empty or missing fields keep their stored value.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Vendor ID"
// @Param        body  body      service.VendorInput  true  "Fields to change"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /vendors/{id} [put]
func UpdateVendor(svc service.VendorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgVendorNotFound)
		}
		var in service.VendorInput
		if !parseBody(c, &in) {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		if err := svc.Update(c.UserContext(), id, in); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "Vendor updated")
	}
}

// DeleteVendor godoc
// @Summary      Delete vendor
// @Description  Documents of the vendor are kept.
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /vendors/{id} [delete]
func DeleteVendor(svc service.VendorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgVendorNotFound)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "Vendor deleted")
	}
}
