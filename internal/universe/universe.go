package universe

// Group labels which cohort slice a company belongs to.
type Group string

const (
	GroupPurePlay    Group = "pure_play"
	GroupCloudLeader Group = "cloud_leader"
)

// Company is one watchlist member.
type Company struct {
	Symbol string
	Group  Group
}

// PurePlayCyber lists vendors whose business is predominantly security.
var PurePlayCyber = []string{
	"CRWD", // CrowdStrike - endpoint/XDR
	"S",    // SentinelOne - endpoint/XDR
	"PANW", // Palo Alto Networks - firewall + platform
	"FTNT", // Fortinet - firewall + security fabric
	"NET",  // Cloudflare - Zero Trust / edge
	"ZS",   // Zscaler - Zero Trust / SSE
	"OKTA", // Okta - identity & access
	"TENB", // Tenable - vulnerability mgmt
	"QLYS", // Qualys - vulnerability, cloud security
	"CHKP", // Check Point - firewall + threat prevention
}

// CloudSecurityLeaders lists platform companies with large security
// portfolios but diversified revenue.
var CloudSecurityLeaders = []string{
	"MSFT",  // Microsoft security portfolio
	"GOOGL", // Google Cloud + Mandiant
	"AMZN",  // AWS security services
	"SNOW",  // Snowflake - data governance
	"DDOG",  // Datadog - cloud SIEM + detection
	"CSCO",  // Cisco - Duo, firewall, XDR
}

// Watchlist returns every company to analyze, pure plays first, with its
// group label attached.
func Watchlist() []Company {
	out := make([]Company, 0, len(PurePlayCyber)+len(CloudSecurityLeaders))
	for _, sym := range PurePlayCyber {
		out = append(out, Company{Symbol: sym, Group: GroupPurePlay})
	}
	for _, sym := range CloudSecurityLeaders {
		out = append(out, Company{Symbol: sym, Group: GroupCloudLeader})
	}
	return out
}

// GroupOf returns the group for a symbol, or "" when the symbol is not on
// the watchlist.
func GroupOf(symbol string) Group {
	for _, c := range Watchlist() {
		if c.Symbol == symbol {
			return c.Group
		}
	}
	return ""
}

// Symbols returns just the ticker symbols of the full watchlist.
func Symbols() []string {
	companies := Watchlist()
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Symbol
	}
	return out
}
