package api

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CheckoutSessionRequest struct {
	BookingId int `json:"bookingId" validate:"required,gt=0"`
}

type CheckoutSessionResponse struct {
	RedirectUrl string `json:"redirectUrl"`
}
