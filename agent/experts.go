package agent

import (
	"context"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Reports gives experts read access to the portfolio. Every method
// returns a rendered markdown report, the same ones the CLI prints, so
// the model reasons over exactly what the user sees.
type Reports interface {
	Holdings() (string, error)
	Risk() (string, error)
	Simulation(days, numSimulations int) (string, error)
}

// newFacilitator builds the conversation owner. It never answers from
// its own knowledge about the portfolio, it routes questions to experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about each expert's skill from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user is here primarily for information about the assets in his portfolio.
			Always check the portfolio holdings first to understand what his tickers are,
			then devise a plan of questions per expert and compose the best response.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewStrategist is the market-context expert. It is read-only and
// advisory: grounded in search, it covers macro cycles, market regimes
// and the news around the user's holdings.
func NewStrategist() *Expert {
	return &Expert{
		Name: "Strategist",
		Description: `This is an expert market strategist,
		aware of macro cycles, market regimes and the latest news about
		companies and funds. Ask the Strategist whenever you need recent
		or grounding information about markets or a specific holding.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market strategist. You leverage Google Search to
			ground your assertions: financial institutions, companies, markets,
			funds, macro regimes. Relate the latest news to the user's request
			and stay advisory, you never decide trades.
		`}}},
		},
	}
}

// NewAnalyst is the portfolio expert. It reads the reconciled positions
// and the risk and projection reports through its function library and
// answers every question about the user's own wealth.
func NewAnalyst(reports Reports) *Expert {
	lib := []Function{
		holdingsFunc(reports),
		riskFunc(reports),
		simulationFunc(reports),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the portfolio Analyst. He reads the user's
		reconciled positions, the risk metrics and the Monte Carlo
		projections. Ask him anything about what the user actually holds,
		its value, its risk profile or its projected range.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst in charge of the user's portfolio. Use the
			available tools to read the holdings, the annualized risk metrics
			and the Monte Carlo projection before answering. Other experts
			might ask you questions in approximative language, pardon it and
			figure out what they meant. Figures come from the tools only,
			never invent a number.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// reportResponse shapes a report (or its failure) as a function response.
func reportResponse(id, name string, report string, err error) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	fresp.Response["output"] = report
	return fresp
}

func holdingsFunc(reports Reports) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists every open position in the portfolio with its
			quantity, average cost, market value, unrealized profit and the
			portfolio totals in the base currency.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted holdings report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := reports.Holdings()
			return reportResponse(id, "Holdings", report, err)
		},
	}
}

func riskFunc(reports Reports) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Risk",
			Description: `Risk reports the portfolio's annualized volatility, annualized
			return, Sharpe ratio and maximum drawdown, derived from one year of
			history under the current position weights.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted risk report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := reports.Risk()
			return reportResponse(id, "Risk", report, err)
		},
	}
}

func simulationFunc(reports Reports) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Simulation",
			Description: `Simulation runs a Monte Carlo projection of the portfolio value
			and reports the terminal distribution: mean, median, 5th and 95th
			percentiles, worst and best path.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"days": {
						Type:        genai.TypeInteger,
						Description: "Trading days to project. Defaults to 252, one year.",
					},
					"simulations": {
						Type:        genai.TypeInteger,
						Description: "Number of simulated paths. Defaults to 1000.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted projection report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			days := intArg(args, "days", 252)
			sims := intArg(args, "simulations", 1000)
			report, err := reports.Simulation(days, sims)
			return reportResponse(id, "Simulation", report, err)
		},
	}
}

// intArg reads an integer argument, tolerating the float64 the JSON
// decoding produces.
func intArg(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}
