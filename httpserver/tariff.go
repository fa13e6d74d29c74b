package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
)

// tariffRow is one row of the flat product-index CSV: a fare for one
// origin/destination/product/class/profile combination. Per spec.md
// section 1's "contracts given only where the core touches them", this
// is a lookup table, not a pricing engine.
type tariffRow struct {
	Origin      string `csv:"origin"`
	Destination string `csv:"destination"`
	Product     string `csv:"product"`
	Class       string `csv:"class"`
	Profile     string `csv:"profile"`
	PriceCents  int    `csv:"price_cents"`
	Currency    string `csv:"currency"`
}

type TariffTable struct {
	byKey map[string]tariffRow
}

// LoadTariffTable reads the product-index CSV into a map keyed by a
// composite origin|destination|product|class|profile string.
func LoadTariffTable(data io.Reader) (*TariffTable, error) {
	rows := []*tariffRow{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	t := &TariffTable{byKey: map[string]tariffRow{}}
	for _, row := range rows {
		t.byKey[tariffKey(row.Origin, row.Destination, row.Product, row.Class, row.Profile)] = *row
	}
	return t, nil
}

func tariffKey(origin, destination, product, class, profile string) string {
	return strings.Join([]string{origin, destination, product, class, profile}, "|")
}

type tariffRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Product     string `json:"product"`
	Class       string `json:"class"`
	Profile     string `json:"profile"`
}

func (s *Server) handleTarifs(w http.ResponseWriter, r *http.Request) {
	var req tariffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, &EmptyRequestError{Field: "body"})
		return
	}

	if s.tariffs == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}

	row, ok := s.tariffs.byKey[tariffKey(req.Origin, req.Destination, req.Product, req.Class, req.Profile)]
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found":      true,
		"priceCents": row.PriceCents,
		"currency":   row.Currency,
	})
}
