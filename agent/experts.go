package agent

import (
	"github.com/etnz/stocksim"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is playing with a simulated stock market: prices are synthetic and move every few seconds,
			the money is virtual. He wants to understand the market, his portfolio, and sometimes to trade.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Never place a trade the user did not explicitly ask for, and always confirm its outcome.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert searching the web for news about real companies.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		Very well aware of all the financial products and institutions,
		about the latest news about the different companies.
		Ask the Trader whenever you need recent or grounding information about the real companies behind the simulated stocks.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets etc. You Leverage Google Search to
			ground your assertions in a solid truth.
			Remind that the prices the user sees are simulated and unrelated to the real ones.
				`}}},
		},
	}
}

// NewBroker returns an expert operating the simulated market and portfolio of s.
func NewBroker(s *stocksim.Session) *Expert {
	lib := SessionFunctions(s)

	return &Expert{
		Name: "Broker",
		Description: `This is the Broker. He is in charge of the user's simulated account.
		He knows the live quotes of every listed stock, the user's cash, holdings and trade history,
		and he can buy or sell shares on the user's behalf.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a broker in charge of the user's account on a simulated stock market.
				You know how to use the Tools to get the live market, the details of a stock, and the portfolio.
				You are part of a team of experts, yours is everything about the market and the user's account.
				They might ask you questions, pardon their approximative language and figure out what they meant.

				Only trade when explicitly asked to, and report the outcome exactly as the Trade tool returns it.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}
