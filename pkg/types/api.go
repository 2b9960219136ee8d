package types

// Defaults applied to GenerateRequest fields left at their zero value.
const (
	DefaultMaxTokens     = 1024
	DefaultTemperature   = 0.7
	DefaultTopK          = 40
	DefaultTopP          = 0.9
	DefaultRepeatPenalty = 1.1
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation history.
type Turn struct {
	// Who produced the message: "user" or "assistant".
	// example: user
	Role string `json:"role" example:"user"`
	// Message text.
	Content string `json:"content" example:"Write a haiku about the ocean."`
}

// GenerateRequest represents a chat generation request payload.
type GenerateRequest struct {
	// Required prompt text for the next user turn.
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt" example:"Write a haiku about the ocean."`
	// Maximum number of new tokens to generate.
	// example: 1024
	MaxTokens int `json:"max_tokens,omitempty" example:"1024"`
	// Sampling temperature (higher = more random).
	// example: 0.7
	Temperature float64 `json:"temperature,omitempty" example:"0.7"`
	// Top-K sampling: limit candidates to top K tokens.
	// example: 40
	TopK int `json:"top_k,omitempty" example:"40"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP float64 `json:"top_p,omitempty" example:"0.9"`
	// Penalty applied to repeated tokens.
	// example: 1.1
	RepeatPenalty float64 `json:"repeat_penalty,omitempty" example:"1.1"`
}

// WithDefaults returns a copy of the request with unset sampling fields
// replaced by the package defaults. Zero means unset for every optional field.
func (r GenerateRequest) WithDefaults() GenerateRequest {
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.Temperature <= 0 {
		r.Temperature = DefaultTemperature
	}
	if r.TopK <= 0 {
		r.TopK = DefaultTopK
	}
	if r.TopP <= 0 {
		r.TopP = DefaultTopP
	}
	if r.RepeatPenalty <= 0 {
		r.RepeatPenalty = DefaultRepeatPenalty
	}
	return r
}

// GenerateResponse is returned by POST /generate on success.
type GenerateResponse struct {
	// Generated assistant text.
	Response string `json:"response"`
	// Conversation history after this exchange, truncated to the retention window.
	Conversation []Turn `json:"conversation"`
	// Wall-clock generation time in seconds, rounded to two decimals.
	// example: 4.21
	GenerationTime float64 `json:"generation_time" example:"4.21"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /model-status.
type StatusResponse struct {
	// True once the model has finished loading and can serve requests.
	// example: true
	Initialized bool `json:"initialized" example:"true"`
}

// ResetResponse is returned by POST /reset.
type ResetResponse struct {
	// Confirmation message.
	// example: Conversation reset successfully.
	Message string `json:"message" example:"Conversation reset successfully."`
}
