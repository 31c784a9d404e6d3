package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mobilia-api/internal/application/auth"
	"github.com/tu-usuario/mobilia-api/internal/application/checkout"
	"github.com/tu-usuario/mobilia-api/internal/application/usecase"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
	"github.com/tu-usuario/mobilia-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	MaterialUC  *usecase.MaterialUseCase
	CartUC      *usecase.CartUseCase
	OrderUC     *usecase.OrderUseCase
	PlaceOrder  *checkout.PlaceOrderUseCase
	CancelOrder *checkout.CancelOrderUseCase
	UserRepo    repository.UserRepository
	Receipts    *pdf.ReceiptGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Carrito (cliente autenticado)
	cartHandler := NewCartHandler(deps.CartUC)
	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:id", cartHandler.UpdateLine)
	cart.Delete("/items/:id", cartHandler.RemoveLine)

	// Pedidos (cliente autenticado)
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.CancelOrder, deps.OrderUC, deps.UserRepo, deps.Receipts)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.List)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Administración (solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))

	adminProducts := admin.Group("/products")
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := admin.Group("/materials")
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/low", materialHandler.ListLow)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	adminCategories := admin.Group("/categories")
	adminCategories.Post("/", categoryHandler.Create)
	adminCategories.Put("/:id", categoryHandler.Update)
	adminCategories.Delete("/:id", categoryHandler.Delete)
}
