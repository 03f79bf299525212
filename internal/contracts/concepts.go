package contracts

// Concept is a canonical financial-statement line item. Providers name the
// same line item differently ("Total Liab" vs "totalLiabilities"), so each
// concept carries an ordered alias list and the first alias present in a
// statement wins.
type Concept string

const (
	ConceptTotalRevenue       Concept = "total_revenue"
	ConceptOperatingIncome    Concept = "operating_income"
	ConceptNetIncome          Concept = "net_income"
	ConceptGrossProfit        Concept = "gross_profit"
	ConceptDilutedEPS         Concept = "diluted_eps"
	ConceptBasicEPS           Concept = "basic_eps"
	ConceptStockholdersEquity Concept = "stockholders_equity"
	ConceptTotalLiabilities   Concept = "total_liabilities"
	ConceptOperatingCashFlow  Concept = "operating_cash_flow"
	ConceptCapitalExpenditure Concept = "capital_expenditure"
	ConceptSellingGeneralAdmin Concept = "sga"
	ConceptResearchDevelopment Concept = "rd"
)

// conceptAliases maps each concept to its accepted row labels, highest
// priority first. Yahoo-style labels come before FMP camelCase ones because
// the original universe was shaped from Yahoo tables.
var conceptAliases = map[Concept][]string{
	ConceptTotalRevenue: {
		"Total Revenue", "totalRevenue", "revenue", "Revenue",
	},
	ConceptOperatingIncome: {
		"Operating Income", "operatingIncome",
	},
	ConceptNetIncome: {
		"Net Income", "netIncome", "NetIncome",
	},
	ConceptGrossProfit: {
		"Gross Profit", "grossProfit",
	},
	ConceptDilutedEPS: {
		"Diluted EPS", "epsdiluted", "epsDiluted",
	},
	ConceptBasicEPS: {
		"Basic EPS", "eps",
	},
	ConceptStockholdersEquity: {
		"Total Stockholder Equity", "Stockholders Equity",
		"totalStockholdersEquity", "stockholdersEquity",
	},
	ConceptTotalLiabilities: {
		"Total Liab", "Total Liabilities", "totalLiabilities",
	},
	ConceptOperatingCashFlow: {
		"Operating Cash Flow", "Total Cash From Operating Activities",
		"operatingCashFlow", "netCashProvidedByOperatingActivities",
	},
	ConceptCapitalExpenditure: {
		"Capital Expenditure", "Capital Expenditures", "capitalExpenditure",
	},
	ConceptSellingGeneralAdmin: {
		"Selling General Administrative", "SellingGeneralAdministrative",
		"Sales General Administrative", "SG&A",
		"Selling, General & Administrative",
		"sellingGeneralAndAdministrativeExpenses",
	},
	ConceptResearchDevelopment: {
		"Research Development", "ResearchAndDevelopment",
		"ResearchAndDevelopmentExpenses", "Research & Development", "R D",
		"researchAndDevelopmentExpenses",
	},
}

// Aliases returns the accepted row labels for a concept, highest priority
// first.
func (c Concept) Aliases() []string {
	return conceptAliases[c]
}
