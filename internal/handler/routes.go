package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/middleware"
)

// Handlers bundles every HTTP handler the router wires up, grouped by
// aggregate the same way the service layer is.
type Handlers struct {
	Equipment         *EquipmentHandler
	Category          *CategoryHandler
	Client            *ClientHandler
	Booking           *BookingHandler
	Project           *ProjectHandler
	Document          *DocumentHandler
	ScanSession       *ScanSessionHandler
	Barcode           *BarcodeHandler
	SubcategoryPrefix *SubcategoryPrefixHandler
}

// RegisterRoutes sets up every API v1 route. All routes require a bearer
// token (decoded, not verified -- see middleware.AuthMiddleware) and are
// subject to the shared per-IP rate limiter.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h *Handlers) {
	api := e.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rateLimiter))
	api.Use(authMiddleware.Authenticate())

	equipment := api.Group("/equipment")
	equipment.POST("", h.Equipment.CreateEquipment)
	equipment.GET("", h.Equipment.ListEquipment)
	equipment.GET("/search", h.Equipment.SearchEquipment)
	equipment.GET("/barcode/:barcode", h.Equipment.GetByBarcode)
	equipment.GET("/:id", h.Equipment.GetEquipment)
	equipment.PUT("/:id", h.Equipment.UpdateEquipment)
	equipment.DELETE("/:id", h.Equipment.DeleteEquipment)
	equipment.POST("/:id/status", h.Equipment.TransitionStatus)
	equipment.POST("/:id/regenerate-barcode", h.Equipment.RegenerateBarcode)
	equipment.GET("/:id/availability", h.Booking.GetEquipmentAvailability)

	categories := api.Group("/categories")
	categories.POST("", h.Category.CreateCategory)
	categories.GET("", h.Category.ListCategories)
	categories.GET("/search", h.Category.SearchCategories)
	categories.GET("/print-overview", h.Category.GetPrintOverview)
	categories.GET("/:id", h.Category.GetCategory)
	categories.PUT("/:id", h.Category.UpdateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)
	categories.GET("/:id/children", h.Category.GetChildren)
	categories.GET("/:id/equipment-count", h.Category.GetWithEquipmentCount)

	clients := api.Group("/clients")
	clients.POST("", h.Client.CreateClient)
	clients.GET("", h.Client.ListClients)
	clients.GET("/search", h.Client.SearchClients)
	clients.GET("/:id", h.Client.GetClient)
	clients.PUT("/:id", h.Client.UpdateClient)
	clients.DELETE("/:id", h.Client.DeleteClient)
	clients.DELETE("/:id/hard", h.Client.HardDeleteClient)
	clients.POST("/:id/status", h.Client.SetStatus)

	bookings := api.Group("/bookings")
	bookings.POST("", h.Booking.CreateBooking)
	bookings.POST("/batch", h.Booking.BatchCreateBookings)
	bookings.GET("", h.Booking.ListBookings)
	bookings.GET("/:id", h.Booking.GetBooking)
	bookings.PUT("/:id", h.Booking.UpdateBooking)
	bookings.POST("/:id/status", h.Booking.TransitionStatus)
	bookings.POST("/:id/payment-status", h.Booking.TransitionPaymentStatus)

	projects := api.Group("/projects")
	projects.POST("", h.Project.CreateProject)
	projects.GET("", h.Project.ListProjects)
	projects.GET("/:id", h.Project.GetProject)
	projects.PUT("/:id", h.Project.UpdateProject)
	projects.DELETE("/:id", h.Project.DeleteProject)
	projects.GET("/:id/bookings", h.Project.GetProjectBookings)
	projects.POST("/:id/bookings", h.Project.AddBooking)
	projects.DELETE("/:id/bookings/:bookingId", h.Project.RemoveBooking)

	documents := api.Group("/documents")
	documents.POST("", h.Document.UploadDocument)
	documents.GET("", h.Document.ListDocuments)
	documents.GET("/:id", h.Document.GetDocument)
	documents.GET("/:id/url", h.Document.GetDownloadURL)
	documents.PUT("/:id", h.Document.UpdateDocument)
	documents.DELETE("/:id", h.Document.DeleteDocument)

	scanSessions := api.Group("/scan-sessions")
	scanSessions.POST("", h.ScanSession.CreateSession)
	scanSessions.GET("", h.ScanSession.ListSessions)
	scanSessions.GET("/:id", h.ScanSession.GetSession)
	scanSessions.PUT("/:id/items", h.ScanSession.ReplaceItems)
	scanSessions.DELETE("/:id", h.ScanSession.DeleteSession)
	scanSessions.POST("/:id/checkout", h.ScanSession.Checkout)

	barcode := api.Group("/barcode")
	barcode.POST("/generate", h.Barcode.Generate)
	barcode.POST("/validate", h.Barcode.Validate)
	barcode.GET("/next", h.Barcode.NextSequence)

	subcategoryPrefixes := api.Group("/subcategory-prefixes")
	subcategoryPrefixes.POST("", h.SubcategoryPrefix.CreateSubcategoryPrefix)
	subcategoryPrefixes.GET("", h.SubcategoryPrefix.ListSubcategoryPrefixes)
	subcategoryPrefixes.GET("/:id", h.SubcategoryPrefix.GetSubcategoryPrefix)
	subcategoryPrefixes.PUT("/:id", h.SubcategoryPrefix.UpdateSubcategoryPrefix)
	subcategoryPrefixes.DELETE("/:id", h.SubcategoryPrefix.DeleteSubcategoryPrefix)
}
