// Package httpserver exposes the query engine over a small JSON HTTP
// surface: the thin contract sketch spec.md calls peripheral, wired
// just deep enough that the round-based search has a real caller.
package httpserver

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TrainNomad/raptor-backend/query"
	"github.com/TrainNomad/raptor-backend/reconcile"
)

// Server holds everything a request handler needs: the read-only
// snapshot, the derived city index, and the tariff table loaded once
// at startup.
type Server struct {
	snap    *query.Snapshot
	cities  []cityView
	tariffs *TariffTable
	router  *mux.Router
}

// New builds the router and binds every endpoint. tariffCSV may be
// nil, in which case /api/tarifs always reports no fare found.
func New(snap *query.Snapshot, tariffCSV *TariffTable) *Server {
	s := &Server{
		snap:    snap,
		cities:  buildCityViews(snap),
		tariffs: tariffCSV,
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.HandleFunc("/api/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/api/explore", s.handleExplore).Methods(http.MethodGet)
	r.HandleFunc("/api/stops", s.handleStops).Methods(http.MethodGet)
	r.HandleFunc("/api/cities", s.handleCities).Methods(http.MethodGet)
	r.HandleFunc("/api/meta", s.handleMeta).Methods(http.MethodGet)
	r.HandleFunc("/api/debug/trips", s.handleDebugTrips).Methods(http.MethodGet)
	r.HandleFunc("/api/tarifs", s.handleTarifs).Methods(http.MethodPost)
	s.router = r

	return s
}

func (s *Server) ListenAndServe(addr string) error {
	log.Printf("raptor-server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func buildCityViews(snap *query.Snapshot) []cityView {
	groups := reconcile.BuildCityGroups(snap.Stations)
	out := make([]cityView, 0, len(groups))
	for _, g := range groups {
		out = append(out, cityView{City: g.City, Country: g.Country, StationCount: len(g.StationNo)})
	}
	return out
}

type cityView struct {
	City         string `json:"city"`
	Country      string `json:"country"`
	StationCount int    `json:"stationCount"`
}
