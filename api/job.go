package api

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/squarefactory/lsf-api/scheduler"
	"github.com/squarefactory/lsf-api/utils"
)

// SubmitJob submits a job and answers with its identifier. With "watch"
// set, a background goroutine keeps resubmitting the job whenever it
// reaches a confirmed EXIT, so the command must be idempotent.
func (a *API) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req SubmitJobRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}

	sreq := req.toScheduler()
	if sreq.Queue == "" {
		sreq.Queue = a.conf.Scheduler.DefaultQueue
	}
	if sreq.Output == "" && a.conf.Scheduler.LogDir != "" {
		name := sreq.Name
		if name == "" {
			name = "job"
		}
		sreq.Output = path.Join(a.conf.Scheduler.LogDir, scheduler.SafeFileName(name)+"-%J.out")
	}
	if err := utils.EnsureLogDir(sreq.Output); err != nil {
		log.Warnf("failed to create log dir for %q: %s", sreq.Output, err)
	}

	job, err := a.lsf.Submit(r.Context(), sreq)
	if err != nil {
		var encErr *scheduler.EncodingError
		if errors.As(err, &encErr) {
			render.Status(r, http.StatusBadRequest)
		} else {
			render.Status(r, http.StatusInternalServerError)
		}
		render.JSON(w, r, Error{Error: err.Error()})
		log.Errorf("submit failed: %s", err)
		return
	}

	if req.Watch {
		go a.watch(job, sreq)
	}

	render.JSON(w, r, SubmitJobResponse{JobID: job.ID})
}

// watch drives one job to completion and falls back to full resubmission
// on confirmed failure. It runs detached from the request context.
func (a *API) watch(job *scheduler.Job, req *scheduler.SubmitRequest) {
	ctx := context.Background()
	interval, grace := a.conf.PollInterval(), a.conf.PollGrace()

	st, err := job.Wait(ctx, interval, grace)
	if err != nil {
		log.Errorf("watch of job %d aborted: %s", job.ID, err)
		return
	}
	if st.State == scheduler.StateDone {
		log.Infof("job %d done", job.ID)
		return
	}

	log.Warnf("job %d exited, resubmitting", job.ID)
	done, _, err := a.lsf.RunToCompletion(ctx, req, interval, grace)
	if err != nil {
		log.Errorf("watch resubmission failed: %s", err)
		return
	}
	log.Infof("job %d done", done.ID)
}

// JobStatus answers a single status query for the job in the URL.
func (a *API) JobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: "invalid job id"})
		return
	}

	st := a.lsf.JobStatus(r.Context(), id)
	render.JSON(w, r, JobStatusResponse{
		JobID: id,
		State: st.State.String(),
		Raw:   st.Raw,
	})
}

// CancelJob kills the job in the URL.
func (a *API) CancelJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: "invalid job id"})
		return
	}

	if err := a.lsf.CancelJob(r.Context(), &scheduler.CancelRequest{JobID: id}); err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}
	render.JSON(w, r, OK{"ok"})
}
