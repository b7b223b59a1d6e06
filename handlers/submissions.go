package handlers

import (
	"net/http"

	"coolrentals/models"
	"coolrentals/services/submissions"

	"github.com/gin-gonic/gin"
)

// SubmissionHandler serves the lead, vendor listing and contact forms.
type SubmissionHandler struct {
	Svc submissions.SubmissionService
}

func NewSubmissionHandler(svc submissions.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Svc: svc}
}

func (h *SubmissionHandler) CreateLead(c *gin.Context) {
	var req models.LeadRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	lead, err := h.Svc.CreateLead(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Lead submitted successfully", lead)
}

func (h *SubmissionHandler) CreateVendorListing(c *gin.Context) {
	var req models.VendorListingRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if _, err := h.Svc.CreateVendorListing(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Request submitted successfully. We will contact you soon.", nil)
}

func (h *SubmissionHandler) CreateContact(c *gin.Context) {
	var req models.ContactRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if _, err := h.Svc.CreateContact(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Message sent successfully", nil)
}

func (h *SubmissionHandler) ListLeads(c *gin.Context) {
	list, err := h.Svc.ListLeads(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, list)
}

func (h *SubmissionHandler) ListVendorListings(c *gin.Context) {
	list, err := h.Svc.ListVendorListings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, list)
}

func (h *SubmissionHandler) ListContacts(c *gin.Context) {
	list, err := h.Svc.ListContacts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, list)
}
