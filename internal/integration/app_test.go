package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinealto/cinema-reservation-api/internal/app"
	"github.com/cinealto/cinema-reservation-api/internal/mailer"
	"github.com/cinealto/cinema-reservation-api/internal/payment"
	"github.com/cinealto/cinema-reservation-api/internal/repository"
	appvalidator "github.com/cinealto/cinema-reservation-api/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	userRepo := repository.NewPostgresUserRepository(db)
	cinemaRepo := repository.NewPostgresCinemaRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	incidentRepo := repository.NewPostgresIncidentRepository(db)
	paymentRepo := repository.NewPostgresPaymentRepository(db)

	paymentProvider := payment.NewMockPaymentProvider()

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mailer,
		sessionManager,
		userRepo,
		cinemaRepo,
		roomRepo,
		movieRepo,
		sessionRepo,
		seatRepo,
		bookingRepo,
		incidentRepo,
		paymentRepo,
		paymentProvider,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mailer,
	}, nil
}
