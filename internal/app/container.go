package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/room-booking-backend/internal/api"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/cache"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/nekogravitycat/room-booking-backend/internal/schedule"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
	AuthRatePerMin  int
	DisplayTimezone *time.Location
	GridCache       cache.GridCache
	Logger          *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	gridCache := cfg.GridCache
	if gridCache == nil {
		gridCache = cache.Noop{}
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger.Named("user"))

	// Location Module
	locRepo := location.NewPgxRepository(cfg.DBPool)
	locService := location.NewService(locRepo, gridCache, cfg.Logger.Named("location"))

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, locService, gridCache, cfg.Logger.Named("room"))

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, locService, gridCache, cfg.DisplayTimezone, cfg.Logger.Named("booking"))

	// Schedule Module
	scheduleService := schedule.NewService(locService, roomService, bookingService, gridCache, cfg.DisplayTimezone, cfg.Logger.Named("schedule"))

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		AuthRatePerMin:  cfg.AuthRatePerMin,
		Logger:          cfg.Logger,
		UserService:     userService,
		LocService:      locService,
		RoomService:     roomService,
		BookingService:  bookingService,
		ScheduleService: scheduleService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
