package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"siggibot/internal/core/port"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

type param struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Choices     []string `json:"choices,omitempty"`
}

type commandInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []param `json:"params"`
}

// Health serves liveness and the registered command list.
type Health struct {
	commandRegistry port.CommandRegistry
}

func NewHealth(commandRegistry port.CommandRegistry) *Health {
	return &Health{commandRegistry: commandRegistry}
}

func (h *Health) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	router.HandleFunc("/commands", h.commands).Methods(http.MethodGet)

	return router
}

func (h *Health) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Warn().Err(err).Msg("failed to write health response")
	}
}

func (h *Health) commands(w http.ResponseWriter, _ *http.Request) {
	specs := h.commandRegistry.Specs()

	out := make([]commandInfo, 0, len(specs))
	for _, s := range specs {
		params := make([]param, 0, len(s.Params))
		for _, p := range s.Params {
			params = append(params, param{
				Name:        p.Name,
				Description: p.Description,
				Type:        p.Type.String(),
				Required:    p.Required,
				Choices:     p.Choices,
			})
		}
		out = append(out, commandInfo{Name: s.Name, Description: s.Description, Params: params})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Warn().Err(err).Msg("failed to write command list")
	}
}

// Serve listens on addr until ctx is done.
func (h *Health) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("health endpoint listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
