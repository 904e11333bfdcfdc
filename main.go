package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sambhai-backend/internal/config"
	"sambhai-backend/internal/database"
	"sambhai-backend/internal/handlers"
	"sambhai-backend/internal/mailer"
	"sambhai-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}

	handlers.SetUploadRoot(config.AppEnv.UploadDir)

	mail := mailer.New(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUser,
		config.AppEnv.SMTPPass,
		config.AppEnv.MailFrom,
	)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
	}))
	r.Static("/public", config.AppEnv.UploadDir)

	r.POST("/api/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/api/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/api/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/api/products", handlers.GetProducts(db))
	r.GET("/api/products/:id", handlers.GetProduct(db))

	r.POST("/api/orders/place", handlers.PlaceOrder(db, config.AppEnv.JWTSecret, mail))
	r.GET("/api/orders/user/:identifier", handlers.GetUserOrders(db))
	r.PUT("/api/orders/:id/cancel", handlers.CancelOrder(db, mail))

	r.POST("/create-checkout-session", handlers.CreateCheckoutSession(
		config.AppEnv.StripeSecretKey,
		config.AppEnv.CheckoutSuccessURL,
		config.AppEnv.CheckoutCancelURL,
	))
	r.POST("/api/payment/stripe/webhook", handlers.StripeWebhook(db, config.AppEnv.StripeWebhookSecret))
	r.POST("/api/payment/razorpay/order", handlers.CreateRazorpayOrder(
		config.AppEnv.RazorpayKeyID,
		config.AppEnv.RazorpayKeySecret,
	))
	r.POST("/api/payment/razorpay/verify", handlers.VerifyRazorpayPayment(db, config.AppEnv.RazorpayKeySecret))

	user := r.Group("/api/cart")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("", handlers.GetCart(db))
		user.POST("", handlers.AddToCart(db))
		user.PUT("/:productId", handlers.UpdateCartItem(db))
		user.DELETE("/:productId", handlers.RemoveFromCart(db))
		user.POST("/clear", handlers.ClearCart(db))
	}

	admin := r.Group("/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))
		admin.GET("/admin/products", handlers.GetAllProducts(db))

		admin.POST("/upload", handlers.UploadImage(config.AppEnv.CloudinaryURL))

		admin.GET("/users", handlers.GetUsers(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
