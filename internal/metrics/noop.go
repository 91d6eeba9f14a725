package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordLogin(authSource string, success bool)        {}
func (n *NoopMetrics) RecordTokenIssued(tokenType string)                 {}
func (n *NoopMetrics) RecordTokenRefresh(result string)                   {}
func (n *NoopMetrics) RecordSignup(role string, success bool)             {}
func (n *NoopMetrics) RecordPasswordReset(stage, result string)           {}
func (n *NoopMetrics) RecordOAuthCallback(provider string, success bool)  {}
func (n *NoopMetrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
}
