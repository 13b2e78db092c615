package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.lsf.HealthCheck(ctx); err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Errorf("health failed: %s", err)
		return
	}
	render.JSON(w, r, OK{"ok"})
}
