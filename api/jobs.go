package api

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hpcfactory/condor-api/scheduler"
	"github.com/hpcfactory/condor-api/utils"
)

const defaultUniverse = "vanilla"

// Handler serves the job-submission endpoints. A nil Runner lets each job
// pick its own shell (local when the submit binary is on PATH, remote
// otherwise); tests inject a mock.
type Handler struct {
	Cfg    Config
	Runner scheduler.Runner
}

func (h *Handler) newJob(universe string) (*scheduler.Job, error) {
	if universe == "" {
		universe = h.Cfg.Universe
	}
	if universe == "" {
		universe = defaultUniverse
	}
	job, err := scheduler.New(universe, h.Cfg.User, h.Cfg.Server, h.Runner)
	if err != nil {
		return nil, err
	}
	if h.Cfg.MailMap != "" {
		job.SetMailMapPath(h.Cfg.MailMap)
		job.SetEmail("")
	}
	return job, nil
}

func (h *Handler) buildJob(r *http.Request, req *SubmitRequest) (*scheduler.Job, error) {
	job, err := h.newJob(req.Universe)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		job.SetEmail(req.Email)
	}
	if req.CPUs > 0 {
		job.SetCPUs(req.CPUs)
	}
	if req.MemoryMB > 0 {
		job.SetMemoryMB(req.MemoryMB)
	}
	if req.DiskMB > 0 {
		job.SetDiskMB(req.DiskMB)
	}
	times := req.Times
	if times == 0 {
		times = 1
	}
	for _, cmd := range req.Commands {
		if err := job.Queue(r.Context(), cmd, times); err != nil {
			return nil, err
		}
	}
	return job, nil
}

// Submit queues every command of the request into one submission description
// and sends it to the scheduler, replying with the assigned cluster id.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}
	if len(req.Commands) == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: "no commands supplied"})
		return
	}

	job, err := h.buildJob(r, &req)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Printf("building job failed: %s", err)
		return
	}

	cluster, err := job.Submit(r.Context())
	if err != nil {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Printf("submit failed: %s", err)
		return
	}
	if cluster == 0 {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Error{Error: "the submit command failed; the job was probably not submitted"})
		return
	}
	render.JSON(w, r, SubmitResponse{Cluster: cluster})
}

// Save builds the submission description without submitting it and writes it
// to disk for manual inspection or submission.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}
	if len(req.Commands) == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: "no commands supplied"})
		return
	}

	job, err := h.buildJob(r, &req.SubmitRequest)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}

	path := req.Filename
	if path == "" {
		path = filepath.Join(h.Cfg.SaveDir, "condor-"+utils.GenerateRandomString(10)+".sub")
	}
	if err := job.SaveSubmitFile(path); err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Printf("saving submit file failed: %s", err)
		return
	}
	render.JSON(w, r, SaveResponse{Path: path})
}

func (h *Handler) attachCluster(r *http.Request) (*scheduler.Job, int, error) {
	cluster, err := strconv.Atoi(chi.URLParam(r, "cluster"))
	if err != nil || cluster <= 0 {
		return nil, 0, fmt.Errorf("invalid cluster id %q", chi.URLParam(r, "cluster"))
	}
	job, err := h.newJob("")
	if err != nil {
		return nil, 0, err
	}
	if err := job.Attach(cluster); err != nil {
		return nil, 0, err
	}
	return job, cluster, nil
}

// Poll replies with the number of processes of the cluster still in the
// queue.
func (h *Handler) Poll(w http.ResponseWriter, r *http.Request) {
	job, cluster, err := h.attachCluster(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}
	running, err := job.Poll(r.Context())
	if err != nil {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Printf("poll failed: %s", err)
		return
	}
	render.JSON(w, r, PollResponse{Cluster: cluster, Running: running})
}

// Status replies with the raw queue listing for the cluster.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	job, _, err := h.attachCluster(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error{Error: err.Error()})
		return
	}
	text, err := job.Status(r.Context(), func(s string) string { return s })
	if err != nil {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Printf("status failed: %s", err)
		return
	}
	render.PlainText(w, r, text)
}
