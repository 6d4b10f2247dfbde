package daemon

import (
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/api"
	"github.com/fashionmkt/fashion-market-core/internal/config"
	"github.com/fashionmkt/fashion-market-core/internal/elastic_search"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type Daemon struct {
	elastic elastic_search.Index
	server  api.Server
}

func NewDaemon(elastic elastic_search.Index, server api.Server) *Daemon {
	return &Daemon{elastic, server}
}

// Execute installs the archive mappings, starts the background persist loop
// and the health listener, and serves the API until the process dies.
func (d *Daemon) Execute() {
	d.elastic.InstallMappings()

	go d.persistLoop()
	go d.health()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Market API listening")
	if err := http.ListenAndServe(":"+config.Get().ApiPort, d.server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start api server")
	}
}

func (d *Daemon) persistLoop() {
	for {
		time.Sleep(5 * time.Second)
		d.elastic.Persist()
	}
}

func (d *Daemon) health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, healthRouter()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func healthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
