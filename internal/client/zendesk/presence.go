package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// AgentStatus is one agent's normalized presence record, whichever
// endpoint shape it was parsed from.
type AgentStatus struct {
	AgentID int64  `json:"agent_id"`
	Status  string `json:"status"`
	Channel string `json:"channel,omitempty"`
}

// AgentStatusResult carries the parsed statuses plus the endpoint that
// answered, so callers can see which API generation the instance runs.
type AgentStatusResult struct {
	Endpoint string        `json:"endpoint"`
	Statuses []AgentStatus `json:"statuses"`
}

// presenceAdapter binds one candidate endpoint to the parser for the
// response shape that endpoint is known to return.
type presenceAdapter struct {
	path  string
	parse func([]byte) ([]AgentStatus, error)
}

// Adapters are tried in order; the first endpoint that responds 200 with a
// parseable shape wins. Instances expose different presence APIs depending
// on plan and product generation.
var presenceAdapters = []presenceAdapter{
	{path: "/api/v2/agent_availabilities.json", parse: parseAgentAvailabilities},
	{path: "/api/agent_availability/availabilities", parse: parseAvailabilityRecords},
	{path: "/api/v2/chats/agents.json", parse: parseChatAgents},
}

// FetchAgentStatuses tries each presence endpoint in fixed order and
// returns the first successfully parsed shape.
func (c *Client) FetchAgentStatuses(ctx context.Context, domain string, creds Credentials) (*AgentStatusResult, error) {
	domain = SanitizeDomain(domain)
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}
	var lastErr error
	for _, adapter := range presenceAdapters {
		body, err := c.doRequest(ctx, "https://"+domain+adapter.path, creds)
		if err != nil {
			lastErr = err
			continue
		}
		statuses, err := adapter.parse(body)
		if err != nil {
			lastErr = err
			continue
		}
		return &AgentStatusResult{Endpoint: adapter.path, Statuses: statuses}, nil
	}
	return nil, fmt.Errorf("no presence endpoint answered: %w", lastErr)
}

// Shape: {"agent_availabilities":[{"agent_id":1,"status":"online","via":"talk"}]}
func parseAgentAvailabilities(body []byte) ([]AgentStatus, error) {
	var payload struct {
		AgentAvailabilities []struct {
			AgentID int64  `json:"agent_id"`
			Status  string `json:"status"`
			Via     string `json:"via"`
		} `json:"agent_availabilities"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.AgentAvailabilities == nil {
		return nil, fmt.Errorf("missing agent_availabilities field")
	}
	out := make([]AgentStatus, 0, len(payload.AgentAvailabilities))
	for _, item := range payload.AgentAvailabilities {
		out = append(out, AgentStatus{AgentID: item.AgentID, Status: item.Status, Channel: item.Via})
	}
	return out, nil
}

// Shape (JSON:API): {"data":[{"id":"1","attributes":{"agent_status":"online"}}]}
func parseAvailabilityRecords(body []byte) ([]AgentStatus, error) {
	var payload struct {
		Data []struct {
			ID         string `json:"id"`
			Attributes struct {
				AgentStatus string `json:"agent_status"`
				Channel     string `json:"channel"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("missing data field")
	}
	out := make([]AgentStatus, 0, len(payload.Data))
	for _, item := range payload.Data {
		id, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric agent id %q: %w", item.ID, err)
		}
		out = append(out, AgentStatus{AgentID: id, Status: item.Attributes.AgentStatus, Channel: item.Attributes.Channel})
	}
	return out, nil
}

// Shape: {"agents":[{"id":1,"presence":"online"}]}
func parseChatAgents(body []byte) ([]AgentStatus, error) {
	var payload struct {
		Agents []struct {
			ID       int64  `json:"id"`
			Presence string `json:"presence"`
		} `json:"agents"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Agents == nil {
		return nil, fmt.Errorf("missing agents field")
	}
	out := make([]AgentStatus, 0, len(payload.Agents))
	for _, item := range payload.Agents {
		out = append(out, AgentStatus{AgentID: item.ID, Status: item.Presence, Channel: "chat"})
	}
	return out, nil
}
