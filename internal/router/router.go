package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"cafe-counter/internal/handler"
	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Menu    *handler.MenuHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Coupon  *handler.CouponHandler
	Table   *handler.TableHandler
	Contact *handler.ContactHandler
	Events  *handler.EventsHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, jwtSecret string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Auth(jwtSecret, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Menu browsing and the contact form are open to guests.
		r.Get("/menu", h.Menu.GetMenu)
		r.Get("/menu/{itemID}", h.Menu.GetItem)
		r.Post("/contact", h.Contact.Submit)

		// Session carts are open to guests; coupon application enforces
		// login at the service layer.
		r.Post("/cart", h.Cart.Create)
		r.Route("/cart/{cartID}", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items/{itemID}", h.Cart.UpdateQuantity)
			r.Delete("/items/{itemID}", h.Cart.RemoveItem)
			r.Post("/coupon", h.Cart.ApplyCoupon)
			r.Delete("/coupon", h.Cart.RemoveCoupon)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Checkout)
			r.Get("/events", h.Events.Stream)
			r.With(middleware.RequireAuth).Get("/mine", h.Order.Mine)
			r.With(middleware.RequireRole(lifecycle.RoleKitchen, lifecycle.RoleStaff, lifecycle.RoleAdmin)).
				Get("/", h.Order.Board)
			r.Get("/{orderID}", h.Order.GetByID)
			r.With(middleware.RequireRole(lifecycle.RoleKitchen, lifecycle.RoleStaff, lifecycle.RoleAdmin)).
				Patch("/{orderID}/status", h.Order.UpdateStatus)
			r.With(middleware.RequireRole(lifecycle.RoleStaff, lifecycle.RoleAdmin)).
				Patch("/{orderID}/payment", h.Order.UpdatePayment)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(lifecycle.RoleAdmin))

			r.Get("/menu", h.Menu.List)
			r.Post("/menu", h.Menu.Create)
			r.Put("/menu/{itemID}", h.Menu.Update)
			r.Delete("/menu/{itemID}", h.Menu.Delete)

			r.Get("/coupons", h.Coupon.GetAll)
			r.Post("/coupons", h.Coupon.Create)
			r.Put("/coupons/{couponID}", h.Coupon.Update)
			r.Delete("/coupons/{couponID}", h.Coupon.Delete)

			r.Get("/tables", h.Table.GetAll)
			r.Post("/tables", h.Table.Create)
			r.Put("/tables/{tableID}", h.Table.Update)
			r.Delete("/tables/{tableID}", h.Table.Delete)

			r.Get("/messages", h.Contact.GetAll)
			r.Patch("/messages/{messageID}/read", h.Contact.UpdateRead)
			r.Delete("/messages/{messageID}", h.Contact.Delete)

			r.Get("/reports/sales", h.Order.SalesReport)
		})
	})

	return r
}
