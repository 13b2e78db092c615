package api

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

const (
	hostsCacheKey  = "hosts"
	queuesCacheKey = "queues"
)

// Hosts lists the execution hosts. Answers are cached; a cluster does not
// change shape between two page refreshes.
func (a *API) Hosts(w http.ResponseWriter, r *http.Request) {
	if cached, ok := a.cache.Get(hostsCacheKey); ok {
		render.JSON(w, r, cached)
		return
	}

	hosts, err := a.lsf.ListHosts(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Errorf("ListHosts failed: %s", err)
		return
	}

	a.cache.SetDefault(hostsCacheKey, hosts)
	render.JSON(w, r, hosts)
}

// Queues lists the scheduler queues, cached like Hosts.
func (a *API) Queues(w http.ResponseWriter, r *http.Request) {
	if cached, ok := a.cache.Get(queuesCacheKey); ok {
		render.JSON(w, r, cached)
		return
	}

	queues, err := a.lsf.ListQueues(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Errorf("ListQueues failed: %s", err)
		return
	}

	a.cache.SetDefault(queuesCacheKey, queues)
	render.JSON(w, r, queues)
}
