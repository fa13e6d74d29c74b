package query

import (
	"strconv"

	"github.com/TrainNomad/raptor-backend/model"
)

// summerMonthStart and summerMonthEnd bound the +7200s adjustment
// window for TI trips (April through September inclusive); outside
// that window, and for dateless queries, the adjustment is +3600s.
const (
	summerMonthStart = 4
	summerMonthEnd   = 9

	tzAdjustWinter = 3600
	tzAdjustSummer = 7200
)

// adjustTITime applies the Italy-to-France timezone normalization from
// spec.md section 4.4.2 to one stop-time read. It is applied at scan
// time only: trips are never rewritten in place.
func adjustTITime(operator model.Operator, t model.Seconds, date string) model.Seconds {
	if operator != model.OperatorTI {
		return t
	}
	return t + model.Seconds(tiOffset(date))
}

func tiOffset(date string) int {
	month := monthOf(date)
	if month >= summerMonthStart && month <= summerMonthEnd {
		return tzAdjustSummer
	}
	return tzAdjustWinter
}

// monthOf extracts the numeric month from a "yyyy-mm-dd" date string.
// A blank or malformed date is treated as outside the summer window.
func monthOf(date string) int {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return 0
	}
	m, err := strconv.Atoi(date[5:7])
	if err != nil {
		return 0
	}
	return m
}
