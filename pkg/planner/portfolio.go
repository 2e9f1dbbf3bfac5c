package planner

// Allocation is one asset bucket of a generated portfolio.
type Allocation struct {
	Asset   string  `json:"asset"`
	Percent int     `json:"percent"`
	Amount  float64 `json:"amount"`
	Color   string  `json:"color"`
}

type allocationRule struct {
	asset   string
	percent int
	color   string
}

// The rule tables are fixed constants, not recomputed from market data.
// Percentages in every table sum to 100.

// Startup users get a single split regardless of risk tolerance.
var startupRules = []allocationRule{
	{"Business Reinvestment", 60, "#10B981"},
	{"Cash Reserve (OpEx)", 20, "#3B82F6"},
	{"Market Hedge (Puts/Gold)", 20, "#F59E0B"},
}

var jobRules = map[string][]allocationRule{
	RiskLow: {
		{"Index Funds (S&P 500)", 60, "#10B981"},
		{"Government Bonds", 30, "#3B82F6"},
		{"Gold / Real Estate", 10, "#F59E0B"},
	},
	RiskHigh: {
		{"Tech Growth Stocks", 60, "#8B5CF6"},
		{"Emerging Markets", 30, "#EC4899"},
		{"Crypto / Alt Assets", 10, "#EF4444"},
	},
	RiskModerate: {
		{"Diversified ETFs", 50, "#3B82F6"},
		{"Tech Sector", 30, "#8B5CF6"},
		{"Corporate Bonds", 20, "#10B981"},
	},
}

// GeneratePortfolio allocates a monthly amount across fixed asset buckets.
// Startup users get the risk-independent business split; job users get a split
// selected by risk tolerance, falling back to moderate for unknown values.
func GeneratePortfolio(amount float64, riskTolerance, userType string) []Allocation {
	rules := startupRules
	if userType != UserTypeStartup {
		var ok bool
		if rules, ok = jobRules[riskTolerance]; !ok {
			rules = jobRules[RiskModerate]
		}
	}
	out := make([]Allocation, 0, len(rules))
	for _, r := range rules {
		out = append(out, Allocation{
			Asset:   r.asset,
			Percent: r.percent,
			Amount:  amount * float64(r.percent) / 100,
			Color:   r.color,
		})
	}
	return out
}
