package stepwise

// Onboard is the fixed prompt/response sequence for the interactive
// onboarding wizard, covering the continue confirmation, mode and provider
// selection, auth method, credential reuse, model and channel selection, the
// hooks toggle, the skipped skills sub-flow, and the daemon install/start
// confirmations. Responses are literal keyboard bytes, arrow keys included.
func Onboard() Script {
	return Script{
		{Expect: `Continue\?`, Send: "y", Desc: "confirm continue"},
		{Expect: `Onboarding mode`, Send: Enter, Desc: "select QuickStart (default)"},
		{Expect: `Model/auth provider`, Send: Down + Enter, Desc: "arrow down to Anthropic + enter"},
		{Expect: `Anthropic auth method`, Send: Down + Enter, Desc: "arrow down to API key + enter"},
		{Expect: `Use existing ANTHROPIC_API_KEY`, Send: "y", Desc: "confirm existing key"},
		{Expect: `Default model`, Send: Enter, Desc: "select default model"},
		{Expect: `Select channel`, Send: Up + Enter, Desc: "arrow up + enter"},
		{Expect: `Enable hooks\?`, Send: Space + Enter, Desc: "space to toggle + enter"},
		{Expect: `Configure skills now\?`, Send: "n", Desc: "skip skills config"},
		{Expect: `Install daemon`, Send: "y", Desc: "install daemon"},
		{Expect: `Start daemon`, Send: "y", Desc: "start daemon"},
	}
}
