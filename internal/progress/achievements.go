package progress

// Permanent achievement names.
const (
	CoinCollector = "Coin Collector"
	CoinMaster    = "Coin Master"
	PerfectPilot  = "Perfect Pilot"
	SkyExplorer   = "Sky Explorer"
	SkyMaster     = "Sky Master"
)

// Evaluate returns the permanent achievements earned by a finished session.
func Evaluate(score, coinStreak, combo int) []string {
	var out []string

	switch {
	case coinStreak >= 10:
		out = append(out, CoinMaster)
	case coinStreak >= 5:
		out = append(out, CoinCollector)
	}

	if combo >= 3 {
		out = append(out, PerfectPilot)
	}

	switch {
	case score >= 100:
		out = append(out, SkyMaster)
	case score >= 50:
		out = append(out, SkyExplorer)
	}

	return out
}
