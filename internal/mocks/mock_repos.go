package mocks

import (
	"context"
	"time"

	"github.com/cinealto/cinema-reservation-api/internal/domain"
)

type MockCinemaRepo struct {
	CreateFunc  func(ctx context.Context, cinema *domain.Cinema) error
	GetByIDFunc func(ctx context.Context, id int) (*domain.Cinema, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]domain.Cinema, *domain.Metadata, error)
	UpdateFunc  func(ctx context.Context, cinema *domain.Cinema) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockCinemaRepo) Create(ctx context.Context, cinema *domain.Cinema) error {
	return m.CreateFunc(ctx, cinema)
}

func (m *MockCinemaRepo) GetByID(ctx context.Context, id int) (*domain.Cinema, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockCinemaRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Cinema, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockCinemaRepo) Update(ctx context.Context, cinema *domain.Cinema) error {
	return m.UpdateFunc(ctx, cinema)
}

func (m *MockCinemaRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

type MockRoomRepo struct {
	CreateFunc  func(ctx context.Context, room *domain.Room) error
	GetByIDFunc func(ctx context.Context, id int) (*domain.Room, error)
	UpdateFunc  func(ctx context.Context, room *domain.Room) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	return m.CreateFunc(ctx, room)
}

func (m *MockRoomRepo) GetByID(ctx context.Context, id int) (*domain.Room, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	return m.UpdateFunc(ctx, room)
}

func (m *MockRoomRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

type MockMovieRepo struct {
	CreateFunc  func(ctx context.Context, movie *domain.Movie) error
	GetByIDFunc func(ctx context.Context, id int) (*domain.Movie, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]domain.Movie, *domain.Metadata, error)
	UpdateFunc  func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Movie, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

type MockSessionRepo struct {
	CreateFunc                    func(ctx context.Context, session *domain.Session) error
	GetByIDFunc                   func(ctx context.Context, id int) (*domain.Session, error)
	GetByRoomAndDateFunc          func(ctx context.Context, roomID int, date time.Time) ([]domain.Session, error)
	GetAllFunc                    func(ctx context.Context, cinemaID int, date time.Time, pagination domain.Pagination) ([]domain.Session, *domain.Metadata, error)
	UpdateFunc                    func(ctx context.Context, session *domain.Session) error
	DeleteFunc                    func(ctx context.Context, id int) (domain.SessionDeleteOutcome, error)
	UpsertAvailableTimeRangesFunc func(ctx context.Context, cinemaID, roomID int, date time.Time, candidates []domain.CandidateRange) ([]domain.AvailableTimeRange, error)
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return m.CreateFunc(ctx, session)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockSessionRepo) GetByRoomAndDate(ctx context.Context, roomID int, date time.Time) ([]domain.Session, error) {
	return m.GetByRoomAndDateFunc(ctx, roomID, date)
}

func (m *MockSessionRepo) GetAll(ctx context.Context, cinemaID int, date time.Time, pagination domain.Pagination) ([]domain.Session, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, cinemaID, date, pagination)
}

func (m *MockSessionRepo) Update(ctx context.Context, session *domain.Session) error {
	return m.UpdateFunc(ctx, session)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id int) (domain.SessionDeleteOutcome, error) {
	return m.DeleteFunc(ctx, id)
}

func (m *MockSessionRepo) UpsertAvailableTimeRanges(ctx context.Context, cinemaID, roomID int, date time.Time, candidates []domain.CandidateRange) ([]domain.AvailableTimeRange, error) {
	return m.UpsertAvailableTimeRangesFunc(ctx, cinemaID, roomID, date, candidates)
}

type MockSeatRepo struct {
	GetByIDFunc              func(ctx context.Context, id int) (*domain.Seat, error)
	GetByNumberAndRoomFunc   func(ctx context.Context, number string, roomID int) (*domain.Seat, error)
	GetByRoomFunc            func(ctx context.Context, roomID int) ([]domain.Seat, error)
	GetSeatsBySessionFunc    func(ctx context.Context, sessionID int) ([]domain.SessionSeat, error)
	GetBookedSeatNumbersFunc func(ctx context.Context, timeRangeID int) ([]string, error)
	SetStatusFunc            func(ctx context.Context, seatID, timeRangeID int, status domain.SeatState) error
	UpdatePMRFunc            func(ctx context.Context, seatID int, pmr bool) (*domain.Seat, error)
}

func (m *MockSeatRepo) GetByID(ctx context.Context, id int) (*domain.Seat, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockSeatRepo) GetByNumberAndRoom(ctx context.Context, number string, roomID int) (*domain.Seat, error) {
	return m.GetByNumberAndRoomFunc(ctx, number, roomID)
}

func (m *MockSeatRepo) GetByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	return m.GetByRoomFunc(ctx, roomID)
}

func (m *MockSeatRepo) GetSeatsBySession(ctx context.Context, sessionID int) ([]domain.SessionSeat, error) {
	return m.GetSeatsBySessionFunc(ctx, sessionID)
}

func (m *MockSeatRepo) GetBookedSeatNumbers(ctx context.Context, timeRangeID int) ([]string, error) {
	return m.GetBookedSeatNumbersFunc(ctx, timeRangeID)
}

func (m *MockSeatRepo) SetStatus(ctx context.Context, seatID, timeRangeID int, status domain.SeatState) error {
	return m.SetStatusFunc(ctx, seatID, timeRangeID, status)
}

func (m *MockSeatRepo) UpdatePMR(ctx context.Context, seatID int, pmr bool) (*domain.Seat, error) {
	return m.UpdatePMRFunc(ctx, seatID, pmr)
}

type MockBookingRepo struct {
	CreateWithSeatsFunc      func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error
	UpdateWithSeatsFunc      func(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error
	GetByIDFunc              func(ctx context.Context, id int) (*domain.Booking, error)
	GetSummariesByUserIDFunc func(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error)
	CountBySessionIDFunc     func(ctx context.Context, sessionID int) (int, error)
	CancelFunc               func(ctx context.Context, id int) (*domain.Booking, error)
	UpdateStatusFunc         func(ctx context.Context, id int, status domain.BookingStatus) error
}

func (m *MockBookingRepo) CreateWithSeats(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
	return m.CreateWithSeatsFunc(ctx, booking, seatStatus)
}

func (m *MockBookingRepo) UpdateWithSeats(ctx context.Context, booking *domain.Booking, seatStatus domain.SeatState) error {
	return m.UpdateWithSeatsFunc(ctx, booking, seatStatus)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockBookingRepo) GetSummariesByUserID(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {
	return m.GetSummariesByUserIDFunc(ctx, userID, pagination)
}

func (m *MockBookingRepo) CountBySessionID(ctx context.Context, sessionID int) (int, error) {
	return m.CountBySessionIDFunc(ctx, sessionID)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, id int) (*domain.Booking, error) {
	return m.CancelFunc(ctx, id)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

type MockIncidentRepo struct {
	CreateFunc  func(ctx context.Context, incident *domain.Incident) error
	GetByIDFunc func(ctx context.Context, id int) (*domain.Incident, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]domain.Incident, *domain.Metadata, error)
	UpdateFunc  func(ctx context.Context, incident *domain.Incident) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockIncidentRepo) Create(ctx context.Context, incident *domain.Incident) error {
	return m.CreateFunc(ctx, incident)
}

func (m *MockIncidentRepo) GetByID(ctx context.Context, id int) (*domain.Incident, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockIncidentRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Incident, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockIncidentRepo) Update(ctx context.Context, incident *domain.Incident) error {
	return m.UpdateFunc(ctx, incident)
}

func (m *MockIncidentRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id int) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

type MockPaymentRepo struct {
	CreateFunc        func(ctx context.Context, payment *domain.Payment) error
	MarkCompletedFunc func(ctx context.Context, checkoutSessionID string) (int, error)
	MarkFailedFunc    func(ctx context.Context, checkoutSessionID string, errMsg string) error
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	return m.CreateFunc(ctx, payment)
}

func (m *MockPaymentRepo) MarkCompleted(ctx context.Context, checkoutSessionID string) (int, error) {
	return m.MarkCompletedFunc(ctx, checkoutSessionID)
}

func (m *MockPaymentRepo) MarkFailed(ctx context.Context, checkoutSessionID string, errMsg string) error {
	return m.MarkFailedFunc(ctx, checkoutSessionID, errMsg)
}
