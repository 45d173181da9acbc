/*
forecast.go - Hospital payment predictions

For each configured hospital: when the next payment is due (per its
frequency and day rule) and how much is expected - the sum of unpaid,
non-commitment shifts matched to the hospital by name. Matching falls
back to the shift's location name when no hospital name was stamped,
mirroring how shifts are entered in practice.
*/
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/shift"
)

// HospitalForecast is the predicted payment for one hospital.
type HospitalForecast struct {
	Hospital shift.Hospital

	// NextPayment is the due date of the current cycle; HasDate is false
	// for cyclic hospitals that have never been paid (no anchor).
	NextPayment time.Time
	HasDate     bool

	// ExpectedAmount sums the unpaid shifts attributed to this hospital.
	ExpectedAmount decimal.Decimal
	PendingShifts  int
}

// Forecast computes a prediction per hospital, in the hospitals' given
// order. Pure function.
func Forecast(shifts []shift.Shift, hospitals []shift.Hospital, now time.Time) []HospitalForecast {
	out := make([]HospitalForecast, 0, len(hospitals))
	for _, h := range hospitals {
		f := HospitalForecast{Hospital: h, ExpectedAmount: decimal.Zero}
		f.NextPayment, f.HasDate = h.NextPaymentDate(now)

		for _, s := range shifts {
			if s.IsCommitment || s.IsPaid {
				continue
			}
			if attributedHospital(s) != h.Name {
				continue
			}
			f.ExpectedAmount = f.ExpectedAmount.Add(s.Amount)
			f.PendingShifts++
		}
		out = append(out, f)
	}
	return out
}

// AverageShiftValue returns the mean amount of the shifts attributed to
// the named hospital; zero when none match.
func AverageShiftValue(shifts []shift.Shift, hospitalName string) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for _, s := range shifts {
		if s.IsCommitment || attributedHospital(s) != hospitalName {
			continue
		}
		sum = sum.Add(s.Amount)
		n++
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

func attributedHospital(s shift.Shift) string {
	if s.HospitalName != "" {
		return s.HospitalName
	}
	return s.Location
}
