// Package api exposes the LSF client over HTTP: job submission, status,
// cancellation and read-only cluster views.
package api

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/squarefactory/lsf-api/config"
	"github.com/squarefactory/lsf-api/scheduler"
)

type API struct {
	lsf   *scheduler.Lsf
	conf  *config.Config
	cache *gocache.Cache
}

func New(lsf *scheduler.Lsf, conf *config.Config) *API {
	return &API{
		lsf:   lsf,
		conf:  conf,
		cache: gocache.New(conf.CacheTTL(), 2*conf.CacheTTL()),
	}
}
