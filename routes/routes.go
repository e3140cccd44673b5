// Package routes wires every HTTP endpoint to its handler. All state
// the handlers need is injected here; nothing reaches for globals.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/cache"
	"puna.nz/compliance/handlers"
	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/storage"
)

// Deps carries the shared clients the handlers are built from.
type Deps struct {
	DB    *gorm.DB
	Cache *cache.Cache
	Auth  *middleware.Auth
	Store storage.Provider
}

// managerRoles may create, change and submit compliance artifacts.
var managerRoles = []string{models.RoleOrgAdmin, models.RoleComplianceManager}

// operatorRoles may additionally record field data (test results).
var operatorRoles = []string{models.RoleOrgAdmin, models.RoleComplianceManager, models.RoleOperator}

// Register sets up all application routes.
func Register(d Deps) http.Handler {
	r := mux.NewRouter()

	authH := handlers.NewAuthHandler(d.DB, d.Auth)
	orgH := handlers.NewOrganizationHandler(d.DB)
	assetH := handlers.NewAssetHandler(d.DB)
	planH := handlers.NewPlanHandler(d.DB, d.Cache)
	testH := handlers.NewWaterTestHandler(d.DB)
	dwqarH := handlers.NewDWQARHandler(d.DB, handlers.NewAggregationService(d.DB))
	docH := handlers.NewDocumentHandler(d.DB, d.Store)
	noteH := handlers.NewNotificationHandler(d.DB)
	auditH := handlers.NewAuditHandler(d.DB)
	dashH := handlers.NewDashboardHandler(d.DB, d.Cache)

	// Public routes (no authentication)
	r.HandleFunc("/register", authH.Register).Methods("POST")
	r.HandleFunc("/login", authH.Login).Methods("POST")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityHeaders)
	api.Use(d.Auth.Middleware)
	// after auth so the request log carries the caller identity
	api.Use(middleware.RequestLogger)
	api.Use(middleware.NewAuditor(d.DB).Middleware)

	api.HandleFunc("/profile", authH.Profile).Methods("GET")
	api.HandleFunc("/dashboard", dashH.Stats).Methods("GET")

	// Organization and supply zones
	api.HandleFunc("/organization", orgH.Get).Methods("GET")
	api.HandleFunc("/organization/zones", orgH.ListZones).Methods("GET")

	// Safety plans: reads for everyone in the org, writes for managers
	api.HandleFunc("/plans", planH.List).Methods("GET")
	api.HandleFunc("/plans/{id}", planH.Get).Methods("GET")
	api.HandleFunc("/plans/{id}/validate", planH.Validate).Methods("GET")

	// Assets and test results
	api.HandleFunc("/assets", assetH.List).Methods("GET")
	api.HandleFunc("/assets/{id}", assetH.Get).Methods("GET")
	api.HandleFunc("/water-tests", testH.List).Methods("GET")

	// DWQAR reporting
	api.HandleFunc("/dwqar/{period}", dwqarH.Aggregate).Methods("GET")
	api.HandleFunc("/dwqar/{period}/validate", dwqarH.Validate).Methods("GET")
	api.HandleFunc("/submissions", dwqarH.ListSubmissions).Methods("GET")

	// Documents
	api.HandleFunc("/documents", docH.List).Methods("GET")
	api.HandleFunc("/documents/{id}/download", docH.Download).Methods("GET")
	api.HandleFunc("/documents/{id}/versions", docH.Versions).Methods("GET")

	// Notifications
	api.HandleFunc("/notifications", noteH.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", noteH.MarkRead).Methods("POST")
	api.HandleFunc("/notifications/read-all", noteH.MarkAllRead).Methods("POST")

	// Field data entry: operators and up
	op := api.NewRoute().Subrouter()
	op.Use(requireRole(operatorRoles))
	op.HandleFunc("/water-tests", testH.Create).Methods("POST")
	op.HandleFunc("/water-tests/{id}", testH.Delete).Methods("DELETE")
	op.HandleFunc("/documents", docH.Upload).Methods("POST")
	op.HandleFunc("/documents/{id}/versions", docH.UploadVersion).Methods("POST")

	// Compliance management: managers and admins only
	mgr := api.NewRoute().Subrouter()
	mgr.Use(requireRole(managerRoles))
	mgr.HandleFunc("/organization", orgH.Update).Methods("PATCH")
	mgr.HandleFunc("/organization/zones", orgH.CreateZone).Methods("POST")
	mgr.HandleFunc("/organization/zones/{id}", orgH.DeleteZone).Methods("DELETE")
	mgr.HandleFunc("/plans", planH.Create).Methods("POST")
	mgr.HandleFunc("/plans/{id}", planH.Update).Methods("PUT")
	mgr.HandleFunc("/plans/{id}", planH.Delete).Methods("DELETE")
	mgr.HandleFunc("/plans/{id}/submit", planH.Submit).Methods("POST")
	mgr.HandleFunc("/assets", assetH.Create).Methods("POST")
	mgr.HandleFunc("/assets/{id}", assetH.Update).Methods("PATCH")
	mgr.HandleFunc("/assets/{id}", assetH.Delete).Methods("DELETE")
	mgr.HandleFunc("/dwqar/{period}/export", dwqarH.Export).Methods("GET")
	mgr.HandleFunc("/dwqar/{period}/submit", dwqarH.Submit).Methods("POST")
	mgr.HandleFunc("/submissions/{id}/acknowledge", dwqarH.AcknowledgeSubmission).Methods("POST")
	mgr.HandleFunc("/documents/{id}", docH.Delete).Methods("DELETE")
	mgr.HandleFunc("/documents/{id}/status", docH.UpdateStatus).Methods("POST")

	// Audit trail: org admins only
	admin := api.NewRoute().Subrouter()
	admin.Use(requireRole([]string{models.RoleOrgAdmin}))
	admin.HandleFunc("/audit-logs", auditH.List).Methods("GET")

	return r
}

func requireRole(roles []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return middleware.RequireRole(roles, next)
	}
}
