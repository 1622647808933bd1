package httptransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/admin/internal/metrics"
	"github.com/corray333/backend-labs/admin/internal/service/models/customer"
	"github.com/corray333/backend-labs/admin/internal/service/models/order"
	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
	createcustomer "github.com/corray333/backend-labs/admin/internal/transport/http/create_customer"
	createorder "github.com/corray333/backend-labs/admin/internal/transport/http/create_order"
	deletecustomer "github.com/corray333/backend-labs/admin/internal/transport/http/delete_customer"
	deleteorder "github.com/corray333/backend-labs/admin/internal/transport/http/delete_order"
	getcustomer "github.com/corray333/backend-labs/admin/internal/transport/http/get_customer"
	getorder "github.com/corray333/backend-labs/admin/internal/transport/http/get_order"
	listcustomers "github.com/corray333/backend-labs/admin/internal/transport/http/list_customers"
	listorders "github.com/corray333/backend-labs/admin/internal/transport/http/list_orders"
	"github.com/corray333/backend-labs/admin/internal/transport/http/login"
	updatecustomer "github.com/corray333/backend-labs/admin/internal/transport/http/update_customer"
	updateorder "github.com/corray333/backend-labs/admin/internal/transport/http/update_order"
	uploadimage "github.com/corray333/backend-labs/admin/internal/transport/http/upload_image"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/auth"
	metricsmw "github.com/corray333/backend-labs/admin/pkg/http/middleware/metrics"
	"github.com/corray333/backend-labs/admin/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/admin/pkg/logger"
)

type orderService interface {
	ListOrders(ctx context.Context, q order.ListQuery) ([]order.Order, int64, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	CreateOrder(ctx context.Context, o order.Order, actor string) (order.Order, error)
	UpdateOrder(ctx context.Context, o order.Order, actor string) (*order.Order, error)
	DeleteOrder(ctx context.Context, id string, actor string) error
}

type customerService interface {
	ListCustomers(ctx context.Context, q customer.ListQuery) ([]customer.Customer, int64, error)
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
	CreateCustomer(ctx context.Context, c customer.Customer, actor string) (customer.Customer, error)
	UpdateCustomer(ctx context.Context, c customer.Customer, actor string) (*customer.Customer, error)
	DeleteCustomer(ctx context.Context, id string, actor string) error
}

type uploadService interface {
	SaveImage(ctx context.Context, entity upload.Entity, entityID string, originalName string, r io.Reader) (upload.Image, error)
}

type authService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	metrics   *metrics.Registry
	orders    orderService
	customers customerService
	uploads   uploadService
	auth      authService
	db        pinger
}

func NewHTTPTransport(
	m *metrics.Registry,
	orders orderService,
	customers customerService,
	uploads uploadService,
	auth authService,
	db pinger,
) *HTTPTransport {
	router := newRouter(m)
	server := newServer(router)

	return &HTTPTransport{
		server:    server,
		router:    router,
		metrics:   m,
		orders:    orders,
		customers: customers,
		uploads:   uploads,
		auth:      auth,
		db:        db,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops the server, letting in-flight requests finish.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Everything
// under /api except login requires a valid admin token.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/healthz", h.healthz)
	h.router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(auth.NewAuthMiddleware(os.Getenv("ADMIN_JWT_SECRET")))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.listOrders)
				r.Post("/", h.createOrder)
				r.Get("/{id}", h.getOrder)
				r.Put("/{id}", h.updateOrder)
				r.Delete("/{id}", h.deleteOrder)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.listCustomers)
				r.Post("/", h.createCustomer)
				r.Get("/{id}", h.getCustomer)
				r.Put("/{id}", h.updateCustomer)
				r.Delete("/{id}", h.deleteCustomer)
			})

			r.Post("/uploads/{entity}/{entityID}/image", h.uploadImage)
		})
	})
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.orders)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orders)
}

func (h *HTTPTransport) listCustomers(w http.ResponseWriter, r *http.Request) {
	listcustomers.ListCustomers(w, r, h.customers)
}

func (h *HTTPTransport) getCustomer(w http.ResponseWriter, r *http.Request) {
	getcustomer.GetCustomer(w, r, h.customers)
}

func (h *HTTPTransport) createCustomer(w http.ResponseWriter, r *http.Request) {
	createcustomer.CreateCustomer(w, r, h.customers)
}

func (h *HTTPTransport) updateCustomer(w http.ResponseWriter, r *http.Request) {
	updatecustomer.UpdateCustomer(w, r, h.customers)
}

func (h *HTTPTransport) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	deletecustomer.DeleteCustomer(w, r, h.customers)
}

func (h *HTTPTransport) uploadImage(w http.ResponseWriter, r *http.Request) {
	uploadimage.UploadImage(w, r, h.uploads)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	login.Login(w, r, h.auth)
}

func (h *HTTPTransport) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func newRouter(m *metrics.Registry) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(metricsmw.NewMetricsMiddleware(m.HTTPRequests, m.HTTPDuration))
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
