package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/hpcfactory/condor-api/shell"
)

// Health checks that the queue-status command answers on the submit host.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	runner := h.Runner
	if runner == nil {
		runner = shell.New(h.Cfg.Server, h.Cfg.User)
	}
	code, out, err := runner.Execute(ctx, "condor_q", "")
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: err.Error()})
		log.Printf("health failed: %s", err)
		return
	}
	if code != 0 {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error{Error: "condor_q is not answering", Data: out})
		log.Printf("health failed: condor_q exited with %d", code)
		return
	}
	render.JSON(w, r, OK{"ok"})
}
