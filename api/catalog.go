package api

import "time"

type CinemaRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Address     string `json:"address" validate:"required,max=200"`
	City        string `json:"city" validate:"required,max=100"`
	PostalCode  string `json:"postalCode" validate:"required,max=20"`
	OpeningTime string `json:"openingTime" validate:"required,time_of_day"`
	ClosingTime string `json:"closingTime" validate:"required,time_of_day"`
}

type CinemaResponse struct {
	Id          int            `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	PostalCode  string         `json:"postalCode"`
	OpeningTime string         `json:"openingTime"`
	ClosingTime string         `json:"closingTime"`
	Rooms       []RoomResponse `json:"rooms,omitempty"`
}

type CinemaListResponse struct {
	Cinemas  []CinemaResponse `json:"cinemas"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

type RoomRequest struct {
	CinemaId int    `json:"cinemaId" validate:"required,gt=0"`
	Number   int    `json:"number" validate:"required,gt=0"`
	Capacity int    `json:"capacity" validate:"required,gt=0,lte=500"`
	Quality  string `json:"quality" validate:"required,oneof=standard 3D 4DX IMAX"`
}

type RoomResponse struct {
	Id       int            `json:"id"`
	CinemaId int            `json:"cinemaId"`
	Number   int            `json:"number"`
	Capacity int            `json:"capacity"`
	Quality  string         `json:"quality"`
	Seats    []SeatResponse `json:"seats,omitempty"`
}

type SeatResponse struct {
	Id     int    `json:"id"`
	Number string `json:"number"`
	Pmr    bool   `json:"pmr"`
}

type MovieRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required,max=50"`
	Duration    int    `json:"duration" validate:"required,gt=0,lte=600"`
	PosterUrl   string `json:"posterUrl" validate:"omitempty,url"`
	ReleaseDate Date   `json:"releaseDate" validate:"required"`
}

type MovieResponse struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Duration    int       `json:"duration"`
	PosterUrl   string    `json:"posterUrl,omitempty"`
	ReleaseDate Date      `json:"releaseDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}
