// Package export serializes core result values to the CSV/JSON formats
// the CLI writes to disk. This is the only boundary in the repository that
// touches encoding or file I/O — the core packages return plain Go values
// and never know these formats exist.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/session"
	"github.com/jstittsworth/continuum-wagersim/internal/skill"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
	"github.com/jstittsworth/continuum-wagersim/internal/venue"
)

// SessionCSVHeader is the exact, ordered header row for session CSV
// exports (spec §6).
var SessionCSVHeader = []string{
	"shot_num", "hole_id", "hole_distance_yds", "wager", "miss_distance_ft",
	"multiplier", "payout", "net_gain_loss", "cumulative_net", "is_fat_tail",
}

// WriteSessionCSV writes one row per shot outcome in result, in step
// order, to w. Money and distance fields use two decimals; booleans
// render as true/false.
func WriteSessionCSV(w io.Writer, result session.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(SessionCSVHeader); err != nil {
		return err
	}

	var cumulativeNet float64
	for i, o := range result.Outcomes {
		holeDistance := 0
		if t, ok := targets.ByID(o.TargetID); ok {
			holeDistance = t.DistanceYds
		}
		net := o.Payout - o.Wager
		cumulativeNet += net

		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(o.TargetID),
			strconv.Itoa(holeDistance),
			formatMoney(o.Wager),
			formatMoney(o.MissFt),
			formatMoney(o.Multiplier),
			formatMoney(o.Payout),
			formatMoney(net),
			formatMoney(cumulativeNet),
			strconv.FormatBool(o.IsFatTail),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// HeatmapCSVHeader is the exact header row for heatmap CSV exports.
var HeatmapCSVHeader = []string{"Distance (yds)", "0-4", "5-9", "10-14", "15-19", "20-24", "25-30"}

// WriteHeatmapCSV writes one row per target distance (8 rows total), each
// cell a hold percentage to two decimals; cells with no data (handled
// upstream as zero in the heatmap matrix) render as 0.00.
func WriteHeatmapCSV(w io.Writer, heatmap venue.HeatmapData) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(HeatmapCSVHeader); err != nil {
		return err
	}

	for distIdx, distance := range heatmap.DistanceBins {
		row := make([]string, 0, len(heatmap.HandicapBins)+1)
		row = append(row, strconv.Itoa(distance))
		for binIdx := range heatmap.HandicapBins {
			value := 0.0
			if binIdx < len(heatmap.HoldPercentages) && distIdx < len(heatmap.HoldPercentages[binIdx]) {
				value = heatmap.HoldPercentages[binIdx][distIdx]
			}
			row = append(row, formatMoney(value))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// PMaxHistoryCSVHeader is the exact header row for P_max history exports.
var PMaxHistoryCSVHeader = []string{"update_num", "club_category", "p_max"}

// WritePMaxHistoryCSV writes p's recorded P_max history grouped by
// category in declared catalog order (Wedge, MidIron, LongIron), with
// p_max to four decimals.
func WritePMaxHistoryCSV(w io.Writer, p *player.Player) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(PMaxHistoryCSVHeader); err != nil {
		return err
	}

	updateNum := 1
	var writeErr error
	p.ForEachCategory(func(cat targets.Category, f *skill.Filter) {
		if writeErr != nil {
			return
		}
		for _, pMax := range f.PMaxHistory() {
			row := []string{
				strconv.Itoa(updateNum),
				cat.String(),
				strconv.FormatFloat(pMax, 'f', 4, 64),
			}
			if err := cw.Write(row); err != nil {
				writeErr = err
				return
			}
			updateNum++
		}
	})
	if writeErr != nil {
		return writeErr
	}
	return cw.Error()
}

// venueJSON mirrors the §6 field-name contract for the venue JSON export.
type venueJSON struct {
	TotalWagered       float64      `json:"total_wagered"`
	TotalPayouts       float64      `json:"total_payouts"`
	NetProfit          float64      `json:"net_profit"`
	HoldPercentage     float64      `json:"hold_percentage"`
	ProfitOverTime     [][2]float64 `json:"profit_over_time"`
	HeatmapData        heatmapJSON  `json:"heatmap_data"`
	PayoutDistribution [11]int      `json:"payout_distribution"`
	TotalShots         int          `json:"total_shots"`
}

type heatmapJSON struct {
	HandicapBins    []string    `json:"handicap_bins"`
	DistanceBins    []int       `json:"distance_bins"`
	HoldPercentages [][]float64 `json:"hold_percentages"`
}

// WriteVenueJSON writes a pretty-printed JSON object for result, with
// field names matching the §3 data model.
func WriteVenueJSON(w io.Writer, result venue.Result) error {
	doc := venueJSON{
		TotalWagered:   result.TotalWagered,
		TotalPayouts:   result.TotalPaid,
		NetProfit:      result.NetProfit,
		HoldPercentage: result.HoldPercentage,
		ProfitOverTime: result.ProfitOverTime,
		HeatmapData: heatmapJSON{
			HandicapBins:    result.Heatmap.HandicapBins,
			DistanceBins:    result.Heatmap.DistanceBins,
			HoldPercentages: result.Heatmap.HoldPercentages,
		},
		PayoutDistribution: result.PayoutBuckets,
		TotalShots:         result.TotalShots,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
