package payroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentPeriod string

const (
	PeriodDaily     PaymentPeriod = "Daily"
	PeriodWeekly    PaymentPeriod = "Weekly"
	PeriodBiweekly  PaymentPeriod = "Biweekly"
	PeriodMonthly   PaymentPeriod = "Monthly"
	PeriodQuarterly PaymentPeriod = "Quarterly"
	PeriodAnnually  PaymentPeriod = "Annually"
)

// periodOrder is the frontend's numeric enum order.
var periodOrder = []PaymentPeriod{
	PeriodDaily, PeriodWeekly, PeriodBiweekly, PeriodMonthly, PeriodQuarterly, PeriodAnnually,
}

var periodDivisor = map[PaymentPeriod]int64{
	PeriodDaily:     1,
	PeriodWeekly:    7,
	PeriodBiweekly:  14,
	PeriodMonthly:   30,
	PeriodQuarterly: 90,
	PeriodAnnually:  365,
}

// ParsePaymentPeriod accepts a period name in any case or its numeric index.
// Anything unrecognised is Monthly.
func ParsePaymentPeriod(s string) PaymentPeriod {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n < len(periodOrder) {
			return periodOrder[n]
		}
		return PeriodMonthly
	}

	for _, p := range periodOrder {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return PeriodMonthly
}

// Divisor is the number of days a period's salary covers. Unknown periods
// count as Monthly.
func (p PaymentPeriod) Divisor() int64 {
	if d, ok := periodDivisor[p]; ok {
		return d
	}
	return periodDivisor[PeriodMonthly]
}

func salaryAmount(v float64) decimal.Decimal {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func DailyRate(baseSalary float64, period PaymentPeriod) float64 {
	return salaryAmount(baseSalary).Div(decimal.NewFromInt(period.Divisor())).InexactFloat64()
}

const day = 24 * time.Hour

// PeriodDays counts the days of [start, end], both ends included.
func PeriodDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
	}
	diff := end.Sub(start)
	return int(math.Ceil(float64(diff)/float64(day))) + 1, nil
}
