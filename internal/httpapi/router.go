// Package httpapi is the HTTP surface of the storefront gateway: session
// middleware, the fault-to-status mapping and one handler per storefront
// concern.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KishoreBalajiP/eco-frontend/internal/account"
	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/catalog"
	"github.com/KishoreBalajiP/eco-frontend/internal/events"
	"github.com/KishoreBalajiP/eco-frontend/internal/orders"
	"github.com/KishoreBalajiP/eco-frontend/internal/session"
)

// Deps carries the shared components the router wires into handlers.
type Deps struct {
	Sessions       *session.Manager
	Backend        *backend.Client
	Catalog        *catalog.Service
	Events         *events.Publisher
	RequestTimeout time.Duration
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}
	r.Use(SessionMiddleware(deps.Sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	auth := NewAuthHandler(deps.Sessions)
	cartH := NewCartHandler(deps.Backend)
	checkoutH := NewCheckoutHandler(deps.Backend, deps.Events)
	paymentH := NewPaymentHandler(deps.Backend, deps.Events)
	ordersH := NewOrdersHandler(orders.NewService(deps.Backend))
	accountH := NewAccountHandler(account.NewService(deps.Backend))
	catalogH := NewCatalogHandler(deps.Catalog)
	adminH := NewAdminHandler(deps.Backend)
	chatH := NewChatHandler(deps.Backend)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/register", auth.Register)
			r.Post("/register/verify-otp", auth.VerifyRegistration)
			r.Post("/register/abandon", auth.AbandonRegistration)
			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)
			r.Post("/forgot-password", auth.ForgotPassword)
			r.Post("/forgot-password/verify-otp", auth.VerifyPasswordReset)
			r.Post("/reset-password", auth.ResetPassword)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogH.List)
			r.Get("/{productID}", catalogH.Get)
		})

		r.Post("/chat/messages", chatH.Send)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartH.Get)
				r.Post("/items", cartH.AddItem)
				r.Put("/items/{productID}", cartH.UpdateItem)
				r.Delete("/items/{productID}", cartH.RemoveItem)
			})

			r.Post("/checkout", checkoutH.Submit)
			r.Get("/payment/callback", paymentH.Callback)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersH.List)
				r.Get("/{orderID}", ordersH.Get)
				r.Get("/{orderID}/confirmation", ordersH.Confirmation)
				r.Post("/{orderID}/cancel", ordersH.Cancel)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/shipping", accountH.GetShipping)
				r.Put("/shipping", accountH.UpdateShipping)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Post("/products", adminH.CreateProduct)
			r.Put("/products/{productID}", adminH.UpdateProduct)
			r.Delete("/products/{productID}", adminH.DeleteProduct)

			r.Get("/orders", adminH.ListOrders)
			r.Get("/orders/{orderID}", adminH.GetOrder)
			r.Patch("/orders/{orderID}/status", adminH.UpdateOrderStatus)

			r.Get("/users", adminH.ListUsers)
			r.Patch("/users/{userID}/role", adminH.UpdateUserRole)
		})
	})

	return r
}
