package research

import "finch/internal/agent"

// Team groupings, in pipeline order.
var (
	SearchTeam   = []string{"corporate", "industry"}
	AnalysisTeam = []string{"fundamental", "technical", "sentiment", "risk"}
)

// Profiles returns every agent profile the research pipeline uses.
// Model is left empty so each agent follows the configured default
// unless a profile pins one.
func Profiles() []agent.Profile {
	return []agent.Profile{
		{
			Name:         "corporate",
			Description:  "Gathers corporate and price information snapshots",
			Instructions: corporatePrompt,
			Temperature:  0.2,
			Tools:        []string{"corporate_info"},
			OutputKey:    "corporate_info_file_path",
		},
		{
			Name:         "industry",
			Description:  "Finds industry trends, performance metrics, and growth opportunities",
			Instructions: industryPrompt,
			Temperature:  0.2,
			Tools:        []string{"industry_info"},
			OutputKey:    "industry_info_file_path",
		},
		{
			Name:         "fundamental",
			Description:  "Analyzes financial ratios, growth, and financial health",
			Instructions: fundamentalPrompt,
			Temperature:  0.2,
			Tools:        []string{"analyze_stock", "web"},
			OutputKey:    "fundamental_analysis",
		},
		{
			Name:         "technical",
			Description:  "Analyzes price action and technical indicators",
			Instructions: technicalPrompt,
			Temperature:  0.2,
			Tools:        []string{"analyze_technical"},
			OutputKey:    "technical_analysis",
		},
		{
			Name:         "sentiment",
			Description:  "Analyzes news, analyst, and institutional sentiment",
			Instructions: sentimentPrompt,
			Temperature:  0.2,
			Tools:        []string{"analyze_sentiment"},
			OutputKey:    "sentiment_analysis",
		},
		{
			Name:         "risk",
			Description:  "Analyzes volatility, financial, market, liquidity, and concentration risk",
			Instructions: riskPrompt,
			Temperature:  0.2,
			Tools:        []string{"analyze_risk"},
			OutputKey:    "risk_analysis",
		},
		{
			Name:         "recommendation",
			Description:  "Produces a buy, sell, or hold recommendation from the merged analysis",
			Instructions: recommendationPrompt,
			Temperature:  0.2,
			OutputKey:    "equity_recommendation",
		},
		{
			Name:         "writer",
			Description:  "Writes the preliminary report from the merged analysis and recommendation",
			Instructions: writerPrompt,
			OutputKey:    "generated_report",
		},
		{
			Name:         "reviewer",
			Description:  "Reviews the generated report",
			Instructions: reviewerPrompt,
			OutputKey:    "review_comments",
		},
		{
			Name:         "refactor",
			Description:  "Rewrites the report applying the review comments",
			Instructions: refactorPrompt,
			OutputKey:    "final_report",
		},
		{
			Name:         "pdf",
			Description:  "Stores the final report as a PDF file",
			Instructions: pdfPrompt,
			Tools:        []string{"generate_pdf_report"},
			OutputKey:    "pdf_report_path",
		},
	}
}
