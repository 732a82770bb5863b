package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/homefinderz-backend/api/controllers"
	"github.com/angelmondragon/homefinderz-backend/api/middleware"
	"github.com/angelmondragon/homefinderz-backend/internal/listings"
	"github.com/angelmondragon/homefinderz-backend/internal/notifications"
	"github.com/angelmondragon/homefinderz-backend/internal/wishlist"
	"github.com/angelmondragon/homefinderz-backend/pkg/config"
	"github.com/angelmondragon/homefinderz-backend/pkg/db"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
	"github.com/angelmondragon/homefinderz-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	listingsService listings.Service,
	wishlistService wishlist.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			// Catalog reads stay public; a bearer token, when present,
			// resolves per-listing wish flags for the viewer.
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuth(cfg.JWT, logg))
				r.Get("/", controllers.ListProperties(listingsService, logg))
				r.Get("/{propertyId}", controllers.GetProperty(listingsService, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Post("/", controllers.CreateProperty(listingsService, logg))
				r.Patch("/{propertyId}", controllers.UpdateProperty(listingsService, logg))
				r.Delete("/{propertyId}", controllers.DeleteProperty(listingsService, logg))
				r.With(middleware.RequireRoles(logg, enums.UserRoleAdmin, enums.UserRoleAgency)).
					Post("/{propertyId}/verify", controllers.VerifyProperty(listingsService, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.ListWishlist(wishlistService, logg))
				r.Post("/{propertyId}", controllers.AddWishlistEntry(wishlistService, logg))
				r.Delete("/{propertyId}", controllers.RemoveWishlistEntry(wishlistService, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(notificationsService, logg))
				r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
			})
		})
	})

	return r
}
