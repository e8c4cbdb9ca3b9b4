package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusevents_backend/internals/configs"
	deptRepo "campusevents_backend/internals/features/departments/repository"
	deptService "campusevents_backend/internals/features/departments/service"
	analyticsRepo "campusevents_backend/internals/features/events/analytics/repository"
	analyticsService "campusevents_backend/internals/features/events/analytics/service"
	eventRepo "campusevents_backend/internals/features/events/events/repository"
	eventService "campusevents_backend/internals/features/events/events/service"
	authRepo "campusevents_backend/internals/features/users/auth/repository"
	authService "campusevents_backend/internals/features/users/auth/service"
	userRepo "campusevents_backend/internals/features/users/user/repository"
	userService "campusevents_backend/internals/features/users/user/service"
	helpersAuth "campusevents_backend/internals/helpers/auth"
	"campusevents_backend/internals/helpers/media"
	"campusevents_backend/internals/middlewares"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
	routeDetails "campusevents_backend/internals/route/details"
)

// Deps are the process-wide resources the routes are built from.
type Deps struct {
	DB     *gorm.DB
	Tokens *helpersAuth.TokenManager
	// Media and Throttle may be nil.
	Media    media.Storage
	Throttle authService.LoginThrottle
	Now      func() time.Time
}

// Services are handed back so the schedulers can reuse them.
type Services struct {
	Auth        *authService.AuthService
	Users       *userService.UserService
	Departments *deptService.DepartmentService
	Events      *eventService.EventService
	Analytics   *analyticsService.AnalyticsService
}

func buildServices(d Deps) *Services {
	if d.Now == nil {
		d.Now = configs.Now
	}
	departments := deptRepo.NewDepartmentRepository(d.DB)
	users := userRepo.NewUserRepository(d.DB)
	events := eventRepo.NewEventRepository(d.DB)

	return &Services{
		Auth: authService.NewAuthService(authService.AuthServiceConfig{
			Users:       users,
			Departments: departments,
			Blacklist:   authRepo.NewTokenBlacklistRepository(d.DB),
			Tokens:      d.Tokens,
			Secret:      configs.JWTSecret,
			Throttle:    d.Throttle,
			Now:         d.Now,
		}),
		Users:       userService.NewUserService(users, departments),
		Departments: deptService.NewDepartmentService(departments, d.Media),
		Events:      eventService.NewEventService(events, departments, d.Media, d.Now),
		Analytics:   analyticsService.NewAnalyticsService(analyticsRepo.NewAnalyticsRepository(d.DB), d.Now),
	}
}

func SetupRoutes(app *fiber.App, d Deps) *Services {
	svc := buildServices(d)
	requireAuth := authMiddleware.AuthMiddleware(d.Tokens, svc.Auth)

	BaseRoutes(app)

	if local, ok := d.Media.(*media.LocalStorage); ok {
		log.Printf("[INFO] Serving uploads from %s at %s", local.BasePath(), configs.UploadPublicBase)
		app.Static(configs.UploadPublicBase, local.BasePath(), fiber.Static{MaxAge: 3600})
	}

	api := app.Group("/api", middlewares.GlobalRateLimiter())

	log.Println("[INFO] Mounting auth routes...")
	routeDetails.AuthRoutes(api, svc.Auth, requireAuth)

	log.Println("[INFO] Mounting user routes...")
	routeDetails.UserRoutes(api, svc.Users, requireAuth)

	log.Println("[INFO] Mounting department routes...")
	routeDetails.DepartmentRoutes(api, svc.Departments, requireAuth)

	log.Println("[INFO] Mounting event routes...")
	routeDetails.EventRoutes(api, svc.Events, requireAuth)

	log.Println("[INFO] Mounting analytics routes...")
	routeDetails.AnalyticsRoutes(api, svc.Analytics, requireAuth)

	log.Println("[INFO] Routes ready")
	return svc
}
