package rossum

import (
	"context"
	"encoding/json"
	"sync"
)

// scriptedTransport replays canned responses: one submit response and a
// sequence of status bodies, the last of which repeats once exhausted.
type scriptedTransport struct {
	mu          sync.Mutex
	submitResp  *SubmitResponse
	submitErr   error
	statuses    []json.RawMessage
	statusErr   error
	submitCalls int
	statusCalls int
}

func (t *scriptedTransport) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.submitCalls++
	if t.submitErr != nil {
		return nil, t.submitErr
	}
	return t.submitResp, nil
}

func (t *scriptedTransport) Status(ctx context.Context, jobID string, filter Filter) (json.RawMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.statusErr != nil {
		return nil, t.statusErr
	}
	i := t.statusCalls
	if i >= len(t.statuses) {
		i = len(t.statuses) - 1
	}
	t.statusCalls++
	return t.statuses[i], nil
}

// NewForTesting creates a Client backed by a scripted transport that accepts
// any submission and reports the job ready on the first status query with the
// given terminal payload. It needs no credentials and no network.
func NewForTesting(terminal json.RawMessage) *Client {
	c, _ := NewClient(
		WithTransport(&scriptedTransport{
			submitResp: &SubmitResponse{ID: "test-job"},
			statuses:   []json.RawMessage{terminal},
		}),
		WithPollInterval(0),
	)
	return c
}
