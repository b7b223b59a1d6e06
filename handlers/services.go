package handlers

import (
	"net/http"

	"coolrentals/models"
	"coolrentals/services/servicing"
	"coolrentals/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServicingHandler covers the service catalogue, bookings and repair requests.
type ServicingHandler struct {
	Catalog  servicing.CatalogService
	Bookings servicing.BookingService
	Requests servicing.RequestService
}

func NewServicingHandler(catalog servicing.CatalogService, bookings servicing.BookingService, requests servicing.RequestService) *ServicingHandler {
	return &ServicingHandler{Catalog: catalog, Bookings: bookings, Requests: requests}
}

func (h *ServicingHandler) ListServices(c *gin.Context) {
	list, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, list)
}

func (h *ServicingHandler) GetService(c *gin.Context) {
	svc, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, svc)
}

func (h *ServicingHandler) CreateService(c *gin.Context) {
	var req models.ServiceInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	svc, err := h.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Service added successfully", svc)
}

func (h *ServicingHandler) UpdateService(c *gin.Context) {
	var req models.ServiceUpdate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	svc, err := h.Catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Service updated successfully", svc)
}

func (h *ServicingHandler) DeleteService(c *gin.Context) {
	if err := h.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Service deleted successfully", nil)
}

// CreateBooking handles POST /service-bookings.
func (h *ServicingHandler) CreateBooking(c *gin.Context) {
	var req models.ServiceBookingRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	booking, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	getLogger(c).Info("Service booking created", zap.String("bookingId", booking.ID.Hex()))
	respond(c, http.StatusCreated, "Service booking submitted successfully", booking)
}

// ListBookings handles GET /admin/service-bookings?status=&page=&limit=.
func (h *ServicingHandler) ListBookings(c *gin.Context) {
	page, err := h.Bookings.List(c.Request.Context(), servicing.ParseBookingListParams(c.Request.URL.Query()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope{
		Success: true,
		Data:    page.Bookings,
		Total:   &page.Total,
		Page:    &page.Page,
		Limit:   &page.Limit,
	})
}

func (h *ServicingHandler) UpdateBookingStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	booking, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Lead status updated", booking)
}

// CreateRequest handles POST /service-requests.
func (h *ServicingHandler) CreateRequest(c *gin.Context) {
	var req models.ServiceRequestBody
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	created, err := h.Requests.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Service request submitted successfully", created)
}

func (h *ServicingHandler) ListRequests(c *gin.Context) {
	list, err := h.Requests.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, list)
}

func (h *ServicingHandler) UpdateRequestStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	change, err := h.Requests.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Lead status updated", change)
}
