package handlers

import (
	"net/http"

	"coolrentals/models"
	"coolrentals/services/inquiry"
	"coolrentals/services/units"
	"coolrentals/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnitHandler serves the public catalogue and the admin unit screens.
type UnitHandler struct {
	Units     units.UnitService
	Inquiries inquiry.InquiryService
}

func NewUnitHandler(unitSvc units.UnitService, inquirySvc inquiry.InquiryService) *UnitHandler {
	return &UnitHandler{Units: unitSvc, Inquiries: inquirySvc}
}

// SearchUnits handles GET /units.
func (h *UnitHandler) SearchUnits(c *gin.Context) {
	result, err := h.Units.Search(c.Request.Context(), units.ParseSearchParams(c.Request.URL.Query()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope{
		Success: true,
		Data:    result.Units,
		Total:   &result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
	})
}

// GetUnit handles GET /units/:id and includes related units.
func (h *UnitHandler) GetUnit(c *gin.Context) {
	detail, err := h.Units.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, detail)
}

// CreateInquiry handles POST /units/:id/inquiry.
func (h *UnitHandler) CreateInquiry(c *gin.Context) {
	var req models.RentalInquiryRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	created, err := h.Inquiries.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	getLogger(c).Info("Rental inquiry created", zap.String("inquiryId", created.ID.Hex()), zap.String("unitId", created.UnitID.Hex()))
	respond(c, http.StatusCreated, "Rental inquiry submitted successfully", created)
}

// ListUnits handles GET /admin/units.
func (h *UnitHandler) ListUnits(c *gin.Context) {
	list, err := h.Units.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, list)
}

func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req models.CreateUnitRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	unit, err := h.Units.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Unit added successfully", unit)
}

func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	var req models.UpdateUnitRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	unit, err := h.Units.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Unit updated successfully", unit)
}

func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	if err := h.Units.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Unit deleted successfully", nil)
}

// ListInquiries handles GET /admin/rental-inquiries.
func (h *UnitHandler) ListInquiries(c *gin.Context) {
	list, total, err := h.Inquiries.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	listed(c, list, total)
}

// UpdateInquiryStatus handles PATCH /admin/rental-inquiries/:id.
func (h *UnitHandler) UpdateInquiryStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	change, err := h.Inquiries.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Inquiry status updated", change)
}
