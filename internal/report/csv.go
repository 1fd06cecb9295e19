package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"scenario",
	"team size",
	"avg deal size",
	"current close rate",
	"sales cycle length",
	"leads per month",
	"improved close rate",
	"reduced sales cycle length",
	"additional deals per month",
	"current monthly revenue",
	"projected monthly revenue",
	"monthly revenue increase",
	"annual revenue increase",
	"roi percentage",
}

// CsvFormat writes one row per projection with raw (unformatted) numbers.
func CsvFormat(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range r.Projections {
		m, res := p.Metrics, p.Result
		row := []string{
			string(p.Scenario),
			strconv.Itoa(m.TeamSize),
			formatFloat(m.AvgDealSize),
			formatFloat(m.CurrentCloseRate),
			strconv.Itoa(m.SalesCycleLength),
			strconv.Itoa(m.LeadsPerMonth),
			formatFloat(res.ImprovedCloseRate),
			strconv.Itoa(res.ReducedSalesCycleLength),
			formatFloat(res.AdditionalDealsPerMonth),
			formatFloat(res.CurrentMonthlyRevenue),
			formatFloat(res.ProjectedMonthlyRevenue),
			formatFloat(res.MonthlyRevenueIncrease),
			formatFloat(res.AnnualRevenueIncrease),
			formatFloat(res.ROIPercentage),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString renders the CSV report into a string.
func CsvString(r Report) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
