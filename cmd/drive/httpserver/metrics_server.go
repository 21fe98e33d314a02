// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/platformcore/drive/co"
	"github.com/platformcore/drive/metrics"
)

// StatusFunc reports the progress of the running command.
type StatusFunc func() any

// NewRouter routes /metrics to the metrics handler, when metrics are enabled,
// and GET /status to the JSON encoding of status, when not nil.
func NewRouter(status StatusFunc) *mux.Router {
	router := mux.NewRouter()
	if h := metrics.HTTPHandler(); h != nil {
		router.PathPrefix("/metrics").Handler(h)
	}
	if status != nil {
		router.Path("/status").Methods(http.MethodGet).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(status()); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		})
	}
	return router
}

// StartMetricsServer serves NewRouter(status) on addr. It returns the base
// url and a function that stops the server.
func StartMetricsServer(addr string, status StatusFunc) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	handler := handlers.CompressHandler(NewRouter(status))

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		goes.Wait()
	}, nil
}
