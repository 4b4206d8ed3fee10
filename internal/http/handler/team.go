package handler

import (
	"github.com/gofiber/fiber/v2"

	"vendordesk/internal/service"
)

// ListTeamMembers godoc
// @Summary      List team members
// @Tags         team
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.TeamMemberView
// @Router       /team [get]
func ListTeamMembers(svc service.TeamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(members)
	}
}

// GetTeamMember godoc
// @Summary      Get team member
// @Tags         team
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Team member ID"
// @Success      200  {object}  model.TeamMemberView
// @Failure      404  {object}  ErrorResponse
// @Router       /team/{id} [get]
func GetTeamMember(svc service.TeamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgTeamMemberNotFound)
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(m)
	}
}

// UpdateTeamMember godoc
// @Summary      Update team member
// @Description  Title, department and phone are replaced; omitted fields are cleared.
// @Tags         team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Team member ID"
// @Param        body  body      service.TeamMemberInput  true  "Directory fields"
// @Success      200   {object}  MessageResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /team/{id} [put]
func UpdateTeamMember(svc service.TeamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgTeamMemberNotFound)
		}
		var in service.TeamMemberInput
		if !parseBody(c, &in) {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		if err := svc.Update(c.UserContext(), id, in); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "Team member updated")
	}
}

// DeleteTeamMember godoc
// @Summary      Delete team member
// @Description  The linked user account and vendor contact references are left in place.
// @Tags         team
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Team member ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /team/{id} [delete]
func DeleteTeamMember(svc service.TeamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusNotFound, service.MsgTeamMemberNotFound)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "Team member deleted")
	}
}
