package types

type HealthResponse struct {
	Status     string `json:"status"`
	ServerTime int64  `json:"server_time_ms"`
}

type PriceMetrics struct {
	CurrentPrice float64 `json:"current_price"`
	HourlyChange float64 `json:"hourly_change_pct"`
	DailyChange  float64 `json:"daily_change_pct"`
	High24h      float64 `json:"high_24h"`
	Low24h       float64 `json:"low_24h"`
}

type AnalysisResponse struct {
	Metrics     PriceMetrics `json:"metrics"`
	Summary     string       `json:"summary"`
	GeneratedAt int64        `json:"generated_at_ms"`
}

type RewriteRequest struct {
	Text              string `json:"text"`
	Style             string `json:"style,optional"`
	ExtraInstructions string `json:"extra_instructions,optional"`
	Model             string `json:"model,optional"`
}

type RewriteResponse struct {
	RewrittenText string `json:"rewritten_text"`
	Style         string `json:"style"`
}
