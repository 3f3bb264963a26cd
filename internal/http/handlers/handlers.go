package handlers

import (
	"github.com/campusbook/appointments/internal/service"
)

type Handlers struct {
	authService    service.AuthService
	bookingService service.BookingService
}

func New(authService service.AuthService, bookingService service.BookingService) *Handlers {
	return &Handlers{
		authService:    authService,
		bookingService: bookingService,
	}
}
