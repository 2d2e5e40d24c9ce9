// cmd/worker-manager/main_test.go
package main

import (
	"testing"
	"time"

	"career-compass/internal/common/config"
	"career-compass/internal/recommendation"

	"github.com/stretchr/testify/assert"
)

func TestNotifyConfig(t *testing.T) {
	var n config.NotificationConfig
	n.Email.Enabled = true
	n.FailJobOnError = true

	got := notifyConfig(n, config.WorkerConfig{Timeout: 2500})
	assert.True(t, got.EmailEnabled)
	assert.False(t, got.SMSEnabled)
	assert.True(t, got.FailJobOnError)
	assert.Equal(t, 2500*time.Millisecond, got.Timeout)

	got = notifyConfig(config.NotificationConfig{}, config.WorkerConfig{})
	assert.False(t, got.FailJobOnError)
	assert.Equal(t, 15*time.Second, got.Timeout)
}

func TestNewJitter(t *testing.T) {
	assert.Equal(t, recommendation.ZeroJitter{}, newJitter(config.RecommendationConfig{}))

	j := newJitter(config.RecommendationConfig{JitterEnabled: true, JitterSeed: 7})
	v := j.Next()
	assert.GreaterOrEqual(t, v, -3.0)
	assert.LessOrEqual(t, v, 3.0)
}
