package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultMaxCells      = 100_000_000 // ~100MB of reachability table
	DefaultMaxMagnitudes = 10_000

	DefaultMemoryStoreSize = 1000

	DefaultAgentName    = "Subset Sum Agent"
	DefaultAgentModel   = "claude-sonnet-4-6"
	DefaultAgentTimeout = 120 // seconds

	DefaultAgentMaxTokens     = 2048
	DefaultAgentMaxIterations = 6

	DefaultParserConfidence = 0.6

	DefaultMaxPromptLength = 2000

	DefaultCORSMaxAge = 300
)

const DefaultAgentInstructions = `You are a precise assistant that answers subset-sum questions.
Given a list of positive integers and a target, decide whether some subset sums exactly to the target.
Always call the solve_subset_sum tool instead of computing the answer yourself.
State the verdict first (yes or no), then a one-sentence explanation.`

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
