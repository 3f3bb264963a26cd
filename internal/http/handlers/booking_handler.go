package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusbook/appointments/internal/domain"
	mw "github.com/campusbook/appointments/internal/http/middleware"
	"github.com/campusbook/appointments/internal/http/response"
	"github.com/campusbook/appointments/pkg/logger"
)

// CreateSlot lets a professor publish an availability window.
func (h *Handlers) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	start, duration, err := req.Parse()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	slot, err := h.bookingService.CreateSlot(r.Context(), mw.User(r), start, duration)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create slot", "error", err)
		response.InternalError(w, "Failed to create slot")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Slot created",
		"slot":    slot,
	})
}

// ListSlots returns every open slot to any authenticated caller.
func (h *Handlers) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.bookingService.ListOpenSlots(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list slots", "error", err)
		response.InternalError(w, "Failed to list slots")
		return
	}

	response.WriteJSON(w, http.StatusOK, slots)
}

// Book reserves an open slot for the calling student.
func (h *Handlers) Book(w http.ResponseWriter, r *http.Request) {
	var req domain.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.SlotID <= 0 {
		response.BadRequest(w, "slotId is required")
		return
	}

	_, err := h.bookingService.Book(r.Context(), mw.User(r).ID, req.SlotID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			response.Conflict(w, "Slot unavailable")
			return
		}
		logger.ErrorContext(r.Context(), "failed to book slot", "error", err, "slot_id", req.SlotID)
		response.InternalError(w, "Failed to book appointment")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Appointment booked"})
}

// Cancel removes the appointment on a slot owned by the calling professor
// and reopens the slot.
func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(chi.URLParam(r, "slotID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	if err := h.bookingService.Cancel(r.Context(), mw.User(r).ID, slotID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, domain.ErrNotOwner):
			response.Forbidden(w, "Access denied")
		default:
			logger.ErrorContext(r.Context(), "failed to cancel appointment", "error", err, "slot_id", slotID)
			response.InternalError(w, "Failed to cancel appointment")
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Appointment canceled"})
}

// ListAppointments returns the calling student's bookings with slot detail.
func (h *Handlers) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.bookingService.ListAppointments(r.Context(), mw.User(r).ID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list appointments", "error", err)
		response.InternalError(w, "Failed to list appointments")
		return
	}

	response.WriteJSON(w, http.StatusOK, appts)
}
