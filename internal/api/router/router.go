package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api"
	m "github.com/RoyceAzure/lab/pos/internal/api/middleware"
	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, resolver m.TerminalResolver, loginLimiter ratelimit.Limiter, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.AuthPayloadMiddleware(resolver))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.SuccessJSON(w, "ok")
	})

	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.With(m.RateLimitMiddleware(loginLimiter)).Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Post("/logout", server.AuthHandler.LogOut)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		// 以下都需要登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", server.CatalogHandler.List)
				r.Post("/", server.CatalogHandler.Create)
				r.Put("/{id}", server.CatalogHandler.Update)
				r.Delete("/{id}", server.CatalogHandler.Delete)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", server.ContactHandler.ListClients)
				r.Post("/", server.ContactHandler.CreateClient)
				r.Put("/{id}", server.ContactHandler.UpdateClient)
				r.Delete("/{id}", server.ContactHandler.DeleteClient)
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", server.ContactHandler.ListSuppliers)
				r.Post("/", server.ContactHandler.CreateSupplier)
				r.Put("/{id}", server.ContactHandler.UpdateSupplier)
				r.Delete("/{id}", server.ContactHandler.DeleteSupplier)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.TerminalHandler.ViewCart)
				r.Delete("/", server.TerminalHandler.ClearCart)
				r.Post("/items", server.TerminalHandler.AddItem)
				r.Post("/barcode", server.TerminalHandler.AddByBarcode)
				r.Patch("/items/{id}", server.TerminalHandler.ChangeQuantity)
				r.Delete("/items/{id}", server.TerminalHandler.RemoveLine)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", server.TerminalHandler.Checkout)
				r.Post("/payment", server.TerminalHandler.SelectPayment)
				r.Get("/state", server.TerminalHandler.CheckoutState)
			})

			r.Get("/dashboard", server.TerminalHandler.Dashboard)
			r.Get("/reports", server.TerminalHandler.Report)
			r.Get("/reports/pdf", server.TerminalHandler.ReportPDF)
		})
	})
	return r
}

// PrintRoutes 列出路由樹
func PrintRoutes(r chi.Routes, logger *zerolog.Logger) error {
	return chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		logger.Debug().Str("method", method).Str("route", route).Msg("route")
		return nil
	})
}
