package store

// Session represents the active chat session state in memory
type Session struct {
	ID     string `json:"id"`     // ChatSessionID
	Age    string `json:"age"`    // free-text age hint, e.g. "14"
	Gender string `json:"gender"` // free-text gender hint, e.g. "boy"
	Stage  string `json:"stage"`  // conversation stage

	// Metadata for last interaction
	LastSearchID string `json:"last_search_id"`
	LastQuery    string `json:"last_query"`
}

const (
	StageGreeting  = "GREETING"
	StageDiscovery = "DISCOVERY"
	StageRefining  = "REFINING"
)
