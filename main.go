package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookcourier/backend/config"
	"github.com/bookcourier/backend/handlers"
	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/service"
	"github.com/bookcourier/backend/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes:", err)
	}

	var verifier service.Verifier
	if len(cfg.FirebaseServiceKey) > 0 {
		verifier, err = service.NewFirebaseVerifier(ctx, cfg.FirebaseServiceKey)
		if err != nil {
			log.Fatal("firebase:", err)
		}
	} else {
		if cfg.DevJWTSecret == "" {
			log.Fatal("FB_SERVICE_KEY not set and no DEV_JWT_SECRET fallback configured")
		}
		log.Println("warning: FB_SERVICE_KEY not set; accepting locally signed dev tokens")
		verifier = &service.DevVerifier{Secret: []byte(cfg.DevJWTSecret)}
	}

	if cfg.StripeSecretKey == "" {
		log.Println("warning: STRIPE_SECRET_KEY not set; checkout will fail")
	}
	checkout := service.NewStripeProvider(cfg.StripeSecretKey)

	var s3Service *service.S3Service
	if cfg.S3Bucket != "" {
		s3Service, err = service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; cover uploads will fail")
	}

	var mailer *service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}

	usersHandler := &handlers.UsersHandler{DB: db}
	booksHandler := &handlers.BooksHandler{DB: db}
	ordersHandler := &handlers.OrdersHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	reviewsHandler := &handlers.ReviewsHandler{DB: db}
	paymentsHandler := &handlers.PaymentsHandler{
		DB:         db,
		Checkout:   checkout,
		Mailer:     mailer,
		SiteDomain: cfg.SiteDomain,
	}
	uploadHandler := &handlers.UploadHandler{
		S3:       s3Service,
		MaxBytes: cfg.MaxUploadMB * 1024 * 1024,
	}

	r := chi.NewRouter()
	r.Use(middleware.AllowOrigins(cfg.AllowedOrigins))
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello from BookCourier server."}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Post("/users", usersHandler.Register)
	r.Get("/books", booksHandler.Search)
	r.Get("/books/{id}", booksHandler.Get)
	r.Get("/related-books/{id}", booksHandler.Related)
	r.Get("/latest-books", booksHandler.Latest)
	r.Get("/book-review/{id}", reviewsHandler.ForBook)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier))
		r.Get("/user/role", usersHandler.Role)
		r.Get("/users/{email}", usersHandler.GetByEmail)
		r.Patch("/users/my-profile/{email}", usersHandler.UpdateProfile)
		r.Patch("/books/update-status/{id}", booksHandler.UpdateStatus)
		r.Post("/orders", ordersHandler.Create)
		r.Get("/my-orders", ordersHandler.Mine)
		r.Patch("/orders/cancel/{id}", ordersHandler.Cancel)
		r.Get("/orders-stats", ordersHandler.Stats)
		r.Post("/wishlist", wishlistHandler.Add)
		r.Delete("/wishlist/{id}", wishlistHandler.Remove)
		r.Get("/my-wishlist/{email}", wishlistHandler.Mine)
		r.Post("/create-checkout-session", paymentsHandler.CreateCheckoutSession)
		r.Post("/payment-success", paymentsHandler.PaymentSuccess)
		r.Get("/my-invoice", paymentsHandler.MyInvoices)
		r.Post("/book-review", reviewsHandler.Create)
	})

	// Librarian routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier), middleware.RequireLibrarian(db))
		r.Post("/books", booksHandler.Create)
		r.Get("/my-books", booksHandler.Mine)
		r.Patch("/books/update/{id}", booksHandler.UpdateContent)
		r.Get("/orders/owner", ordersHandler.Owner)
		r.Patch("/orders/status/{id}", ordersHandler.UpdateStatus)
		r.Post("/upload/book-cover", uploadHandler.BookCover)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier), middleware.RequireAdmin(db))
		r.Get("/users", usersHandler.List)
		r.Patch("/update-user/{id}", usersHandler.UpdateRole)
		r.Get("/all-books", booksHandler.All)
		r.Delete("/books/delete/{id}", booksHandler.Delete)
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
