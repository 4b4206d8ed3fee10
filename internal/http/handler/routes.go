package handler

import (
	"github.com/gofiber/fiber/v2"

	"vendordesk/internal/http/middleware"
	"vendordesk/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Store     Pinger
	Auth      service.AuthService
	Vendors   service.VendorService
	Team      service.TeamService
	Documents service.DocumentService
	// AuthLimiter throttles login, register and setup per client IP; nil disables it.
	AuthLimiter *middleware.RateLimiter
	// CORSAllowOrigins is a comma separated origin list; empty allows any origin.
	CORSAllowOrigins string
	// MaxUploadBytes caps a single uploaded file; zero leaves it to BodyLimit.
	MaxUploadBytes int64
}

// RegisterRoutes attaches the /api routes and the liveness probe to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Use(middleware.CORS(d.CORSAllowOrigins))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/health", HealthCheck(d.Store))

	requireAuth := middleware.RequireAuth(d.Auth)

	// Only the credential endpoints are throttled; /me is covered by its token.
	public := func(h fiber.Handler) []fiber.Handler { return []fiber.Handler{h} }
	if d.AuthLimiter != nil {
		limit := d.AuthLimiter.Handler()
		public = func(h fiber.Handler) []fiber.Handler { return []fiber.Handler{limit, h} }
	}

	authGroup := api.Group("/auth")
	authGroup.Post("/login", public(Login(d.Auth))...)
	authGroup.Post("/register", public(Register(d.Auth))...)
	authGroup.Post("/setup", public(CompleteSetup(d.Auth))...)
	authGroup.Get("/me", requireAuth, Me(d.Auth))

	vendors := api.Group("/vendors", requireAuth)
	vendors.Get("/", ListVendors(d.Vendors))
	vendors.Post("/", CreateVendor(d.Vendors))
	vendors.Get("/:id", GetVendor(d.Vendors))
	vendors.Put("/:id", UpdateVendor(d.Vendors))
	vendors.Delete("/:id", DeleteVendor(d.Vendors))

	team := api.Group("/team", requireAuth)
	team.Get("/", ListTeamMembers(d.Team))
	team.Get("/:id", GetTeamMember(d.Team))
	team.Put("/:id", UpdateTeamMember(d.Team))
	team.Delete("/:id", DeleteTeamMember(d.Team))

	docs := api.Group("/documents", requireAuth)
	docs.Get("/vendor/:vendorId", ListVendorDocuments(d.Documents))
	docs.Post("/upload", UploadDocument(d.Documents, d.MaxUploadBytes))
	docs.Get("/:id/download", DownloadDocument(d.Documents))
	docs.Delete("/:id", DeleteDocument(d.Documents))
}
