package main

import (
	"net"
	"net/http"
	"os"

	_ "embed"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/squarefactory/lsf-api/api"
	"github.com/squarefactory/lsf-api/config"
	"github.com/squarefactory/lsf-api/executor"
	"github.com/squarefactory/lsf-api/scheduler"
)

//go:embed web/index.html
var f string

func main() {
	conf, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	var exec scheduler.Executor
	switch conf.Server.Executor {
	case "local":
		exec = &executor.Local{Dir: conf.Server.WorkDir}
	default:
		exec = &executor.Shell{Dir: conf.Server.WorkDir}
	}

	lsf := scheduler.NewLsf(exec, conf.Server.User)
	a := api.New(lsf, conf)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, r, f)
	})
	r.Post("/jobs", a.SubmitJob)
	r.Get("/jobs/{jobID}", a.JobStatus)
	r.Delete("/jobs/{jobID}", a.CancelJob)
	r.Get("/hosts", a.Hosts)
	r.Get("/queues", a.Queues)
	r.Get("/health", a.Health)

	listenAddress := os.Getenv("LISTEN_ADDRESS")
	if len(listenAddress) == 0 {
		listenAddress = ":8080"
	}
	l, err := net.Listen("tcp", listenAddress)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("listening on %s", listenAddress)
	if err := http.Serve(l, r); err != nil {
		log.Fatal(err)
	}
}
