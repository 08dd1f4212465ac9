package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recordkeeper/recordkeeper/internal/logging"
	"github.com/recordkeeper/recordkeeper/internal/server/config"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Accounts  *services.AccountService
	Headers   *services.HeaderService
	Items     *services.ItemService
	Reminders *services.ReminderService
	Alerts    *services.AlertService
	Documents *services.DocumentService
}

// NewRouter assembles the chi router: open registration and login routes,
// everything else behind the bearer-token middleware.
func NewRouter(svcs Services, cfg *config.Config, logger logging.Logger) http.Handler {
	accounts := NewAccountHandler(svcs.Accounts, logger)
	headers := NewHeaderHandler(svcs.Headers)
	items := NewItemHandler(svcs.Items)
	reminders := NewReminderHandler(svcs.Reminders, svcs.Alerts)
	documents := NewDocumentHandler(svcs.Documents)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(timeoutMiddleware(cfg.StoreTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/accounts", accounts.Register)
		r.Post("/sessions", accounts.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware([]byte(cfg.SecretKey)))

			r.Delete("/accounts/me", accounts.Disable)

			r.Post("/headers", headers.Create)
			r.Get("/headers", headers.List)

			r.Post("/items", items.Create)
			r.Get("/items", items.List)
			r.Get("/items/{id}", items.Get)
			r.Delete("/items/{id}", items.Delete)
			r.Get("/overview", items.Overview)

			r.Post("/reminders", reminders.Create)
			r.Get("/reminders/due", reminders.Due)
			r.Put("/reminders/{id}", reminders.Update)
			r.Delete("/reminders/{id}", reminders.Delete)

			r.Post("/documents", documents.Create)
			r.Put("/documents/{id}", documents.Replace)
			r.Delete("/documents/{id}", documents.Delete)
			r.Get("/documents/{id}/download-link", documents.DownloadLink)
		})
	})

	return r
}
