package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentario-api/internal/application/auth"
	"github.com/jhoicas/Rentario-api/internal/application/booking"
	"github.com/jhoicas/Rentario-api/internal/application/usecase"
	"github.com/jhoicas/Rentario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC     *usecase.TenantUseCase
	RentalItemUC *usecase.RentalItemUseCase
	CustomerUC   *usecase.CustomerUseCase
	AuthUC       *auth.UseCase
	Orchestrator *booking.SyncOrchestrator
	Provisioner  *booking.TenantProvisioner
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo público del widget de reservas (sin token)
	itemHandler := NewRentalItemHandler(deps.RentalItemUC)
	api.Get("/public/:slug/items", itemHandler.ListPublic)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Tenants (plataforma)
	tenants := protected.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Delete("/:id", tenantHandler.Delete)

	// Artículos alquilables (protegido)
	items := protected.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Clientes finales (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Sincronización y aprovisionamiento (operadores)
	syncHandler := NewSyncHandler(deps.Orchestrator, deps.Provisioner, deps.RentalItemUC, deps.CustomerUC)
	items.Post("/:id/sync", syncHandler.SyncItem)
	customers.Post("/:id/sync", syncHandler.SyncCustomer)
	tenants.Post("/:id/resync", syncHandler.ResyncTenant)
	tenants.Post("/:id/provision", syncHandler.ProvisionTenant)
	protected.Post("/sync/pending", RequireRole(entity.RoleSuperAdmin), syncHandler.SyncAllPending)
	protected.Post("/provision/reconcile", RequireRole(entity.RoleSuperAdmin), syncHandler.ReconcileProvisioning)
}
