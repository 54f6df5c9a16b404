package api

import (
	"net/http"

	"github.com/Domenick1991/airadmin/internal/service/flights"
	"github.com/gin-gonic/gin"
)

var flightFormFields = []string{
	"departure_city", "arrival_city", "departure_date", "arrival_date", "company", "price",
}

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/add_flight", h.form)
	router.POST("/add_flight", h.create)
	router.GET("/edit_flights", h.list)
	router.POST("/edit_flights/process", h.update)
	router.GET("/delete_flight", h.list)
	router.POST("/delete_flight/process", h.delete)
}

func (h *FlightHandler) form(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"fields": flightFormFields})
}

func (h *FlightHandler) list(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pageBody("flights", page))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	flight, err := h.service.Create(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"flight": flight})
}

func (h *FlightHandler) update(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	flight, err := h.service.Update(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"flight": flight})
}

func (h *FlightHandler) delete(c *gin.Context) {
	var req deleteFlightRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFrom(c), req.FlightID.String()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": req.FlightID.String()})
}

func (r flightRequest) input() flights.FlightInput {
	return flights.FlightInput{
		ID:            r.ID.String(),
		DepartureCity: r.DepartureCity,
		ArrivalCity:   r.ArrivalCity,
		DepartureDate: r.DepartureDate,
		ArrivalDate:   r.ArrivalDate,
		Company:       r.Company,
		Price:         r.Price.String(),
	}
}
