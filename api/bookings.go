package api

import (
	"net/http"

	"github.com/Domenick1991/airadmin/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/add_booking", h.form)
	router.POST("/add_booking", h.create)
	router.GET("/edit_bookings", h.editList)
	router.POST("/edit_bookings/process", h.update)
	router.GET("/delete_booking", h.list)
	router.POST("/delete_booking/process", h.delete)
	router.GET("/view_bookings", h.list)
}

func (h *BookingHandler) form(c *gin.Context) {
	opts, err := h.service.Options(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"users": opts.Users, "flights": opts.Flights})
}

func (h *BookingHandler) list(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pageBody("bookings", page))
}

// editList is the listing plus the user and flight choices for the edit form.
func (h *BookingHandler) editList(c *gin.Context) {
	ctx := c.Request.Context()

	page, err := h.service.List(ctx, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	opts, err := h.service.Options(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	body := pageBody("bookings", page)
	body["users"] = opts.Users
	body["flights"] = opts.Flights
	respondOK(c, http.StatusOK, body)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *BookingHandler) update(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) delete(c *gin.Context) {
	var req deleteBookingsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.service.Delete(c.Request.Context(), actorFrom(c), stringsOf(req.BookingIDs))
	if err != nil {
		respondError(c, err)
		return
	}
	respondBatch(c, res)
}

func (r bookingRequest) input() booking.BookingInput {
	return booking.BookingInput{
		ID:            r.ID.String(),
		UserID:        r.UserID.String(),
		FlightID:      r.FlightID.String(),
		PassengerName: r.PassengerName,
	}
}
