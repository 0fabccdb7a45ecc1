package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/grantz/ledger"
	"go.vocdoni.io/dvote/log"
)

// APIConfig type represents the configuration for the API HTTP server.
type APIConfig struct {
	Host   string
	Port   int
	Ledger *ledger.Ledger
}

// API type represents the API HTTP server over the grants ledger.
type API struct {
	router *chi.Mux
	ledger *ledger.Ledger
}

// New creates a new API instance with the given configuration and starts
// the HTTP server.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Ledger == nil {
		return nil, fmt.Errorf("missing ledger instance")
	}
	a := &API{
		ledger: conf.Ledger,
	}

	// Initialize router
	a.initRouter()
	go func() {
		log.Infow("Starting API server", "host", conf.Host, "port", conf.Port)
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", conf.Host, conf.Port), a.router); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	a.router.Get(LedgerEndpoint, a.ledgerInfo)
	a.router.Get(BatchesEndpoint, a.listBatches)
	a.router.Get(BatchEndpoint, a.batch)
	a.router.Post(BatchOpenEndpoint, a.openBatch)
	a.router.Post(BatchCloseEndpoint, a.closeBatch)
	a.router.Post(ApplicationsEndpoint, a.submitApplication)
	a.router.Post(DeriveEndpoint, a.deriveGrantAmount)
	a.router.Post(DisclosuresEndpoint, a.requestDisclosure)
	a.router.Get(DisclosureEndpoint, a.disclosure)
	a.router.Post(DisclosureAbandonEndpoint, a.abandonDisclosure)
	a.router.Post(CallbackEndpoint, a.disclosureCallback)
	a.router.Get(AuditEndpoint, a.audit)
	a.router.Post(TransferEndpoint, a.transferOwnership)
	a.router.Post(SubmittersEndpoint, a.addSubmitter)
	a.router.Delete(SubmitterEndpoint, a.removeSubmitter)
	a.router.Post(PauseEndpoint, a.pause)
	a.router.Post(UnpauseEndpoint, a.unpause)
	a.router.Post(CooldownEndpoint, a.setCooldown)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", ActorHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.registerHandlers()
}
