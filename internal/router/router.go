package router

import (
	"net/http"

	"auction-api/internal/handlers"
	"auction-api/internal/middleware"
	"auction-api/internal/repository"
	"auction-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(store repository.Store, logger zerolog.Logger) *mux.Router {
	authService := services.NewAuthService(logger)

	authHandler := handlers.NewAuthHandler(store, authService, logger)
	userHandler := handlers.NewUserHandler(store, logger)
	productHandler := handlers.NewProductHandler(store, logger)
	bidHandler := handlers.NewBidHandler(store, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	authn := middleware.Authentication(authService, logger)

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	// Product and bid reads are public; every mutation goes through the
	// authenticated subrouter.
	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", productHandler.ListProducts).Methods("GET")
	products.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")

	protectedProducts := api.PathPrefix("/products").Subrouter()
	protectedProducts.Use(authn)
	protectedProducts.Use(middleware.RequestValidation())
	protectedProducts.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	protectedProducts.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	protectedProducts.HandleFunc("/{id}", productHandler.DeleteProduct).Methods("DELETE")
	protectedProducts.HandleFunc("/{id}/bids", bidHandler.CreateBid).Methods("POST")

	bids := api.PathPrefix("/bids").Subrouter()
	bids.Use(authn)
	bids.HandleFunc("/{id}", bidHandler.DeleteBid).Methods("DELETE")

	// /users/me must be mounted before /users/{id} so "me" is not taken
	// for a user id.
	me := api.PathPrefix("/users").Subrouter()
	me.Use(authn)
	me.HandleFunc("/me", userHandler.Me).Methods("GET")

	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
