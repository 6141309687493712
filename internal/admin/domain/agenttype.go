package domain

// AgentType classifies a user account. The authoritative list lives in an
// external directory service; DefaultAgentTypes is the fallback when that
// service is unreachable.
type AgentType struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// DefaultAgentTypes returns the fixed fallback list.
func DefaultAgentTypes() []AgentType {
	return []AgentType{
		{Code: 1, Name: "Man"},
		{Code: 2, Name: "Men"},
		{Code: 3, Name: "Machine"},
	}
}
