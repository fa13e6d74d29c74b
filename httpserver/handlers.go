package httpserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/TrainNomad/raptor-backend/model"
	"github.com/TrainNomad/raptor-backend/query"
)

// EmptyRequestError is returned when a search or explore request
// names no valid origin or destination stop at all, per spec.md
// section 7. It is the only query-time error reported to the client;
// an individual unknown stop ID among several is filtered silently.
type EmptyRequestError struct {
	Field string
}

func (e *EmptyRequestError) Error() string {
	return "empty request: no valid " + e.Field + " stop given"
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log.Printf("[%s] %d: %v", requestID(r), status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// filterKnownStops drops any stop ID httpserver does not recognize,
// per spec.md section 7's "unknown stop IDs are filtered silently".
func filterKnownStops(snap *query.Snapshot, ids []model.StopId) []model.StopId {
	var out []model.StopId
	for _, id := range ids {
		if _, ok := snap.Timetable.Stops[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func parseStopList(raw string) []model.StopId {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]model.StopId, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, model.StopId(p))
		}
	}
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	origins := filterKnownStops(s.snap, parseStopList(q.Get("from")))
	if len(origins) == 0 {
		writeError(w, r, http.StatusBadRequest, &EmptyRequestError{Field: "origin"})
		return
	}
	destinations := filterKnownStops(s.snap, parseStopList(q.Get("to")))
	if len(destinations) == 0 {
		writeError(w, r, http.StatusBadRequest, &EmptyRequestError{Field: "destination"})
		return
	}

	date := q.Get("date")
	startTime := parseHHMM(q.Get("time"))

	journeys := query.Search(s.snap, query.SearchRequest{
		Origins:      origins,
		Destinations: destinations,
		Date:         date,
		StartTime:    startTime,
		TrainTypes:   parseTrainTypes(q.Get("trainTypes")),
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{"journeys": journeys})
}

func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	origins := filterKnownStops(s.snap, parseStopList(q.Get("from")))
	if len(origins) == 0 {
		writeError(w, r, http.StatusBadRequest, &EmptyRequestError{Field: "origin"})
		return
	}

	reach := query.Explore(s.snap, origins)
	writeJSON(w, http.StatusOK, map[string]interface{}{"reachability": reach})
}

func (s *Server) handleStops(w http.ResponseWriter, r *http.Request) {
	type stopView struct {
		ID       model.StopId   `json:"id"`
		Name     string         `json:"name"`
		Operator model.Operator `json:"operator"`
	}

	out := make([]stopView, 0, len(s.snap.Timetable.Stops))
	for id, stop := range s.snap.Timetable.Stops {
		out = append(out, stopView{ID: id, Name: s.snap.StopNames[id], Operator: stop.Operator})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cities)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stopCount":    len(s.snap.Timetable.Stops),
		"routeCount":   len(s.snap.Timetable.RoutesInfo),
		"stationCount": len(s.snap.Stations),
	})
}

func (s *Server) handleDebugTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stopID := model.StopId(q.Get("stop"))
	if stopID == "" {
		writeError(w, r, http.StatusBadRequest, &EmptyRequestError{Field: "stop"})
		return
	}

	trips := query.TripsThrough(s.snap, q.Get("date"), stopID)
	writeJSON(w, http.StatusOK, trips)
}

// parseHHMM parses a "HH:MM" query parameter into Seconds from
// midnight, defaulting to 00:00 on anything unparsable.
func parseHHMM(v string) model.Seconds {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return model.Seconds(h*3600 + m*60)
}

func parseTrainTypes(raw string) map[model.TrainType]bool {
	if raw == "" {
		return nil
	}
	out := map[model.TrainType]bool{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out[model.TrainType(p)] = true
		}
	}
	return out
}
