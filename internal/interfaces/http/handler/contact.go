package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/shopfeed/backend/internal/application/identity"
	"go.uber.org/zap"
)

// ContactHandler serves the caller's delivery contacts
type ContactHandler struct {
	BaseHandler
	contacts *identityapp.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *identityapp.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{BaseHandler: newBaseHandler(logger), contacts: contacts}
}

// List returns the caller's contacts
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identityapp.ContactResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	list, err := h.contacts.List(c.Request.Context(), caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Create adds a contact
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body ContactRequest true "Request body"
// @Success      201 {object} dto.Response{data=identityapp.ContactResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if !h.Bind(c, &req) {
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), caller(c), req.fields())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// Update replaces the fields of one of the caller's contacts
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        request body ContactRequest true "Request body"
// @Success      200 {object} dto.Response{data=identityapp.ContactResponse}
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req ContactRequest
	if !h.Bind(c, &req) {
		return
	}
	contact, err := h.contacts.Update(c.Request.Context(), caller(c), id, req.fields())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete removes one of the caller's contacts
// @Summary      Delete a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{errors=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{errors=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /user/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.contacts.Delete(c.Request.Context(), caller(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
