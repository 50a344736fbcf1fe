package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopic_TableName(t *testing.T) {
	topic := Topic{}
	assert.Equal(t, "notifier_topic", topic.TableName())
}

func TestNewTopic(t *testing.T) {
	topic := NewTopic("a1b2", 42, "disk alerts", -100123)

	assert.Equal(t, "a1b2", topic.Token)
	assert.Equal(t, int64(42), topic.OwnerID)
	assert.Equal(t, "disk alerts", topic.Name)
	assert.Equal(t, int64(-100123), topic.ChatID)
	assert.WithinDuration(t, time.Now(), topic.CreatedAt, time.Second)
}

func TestTopic_Validate(t *testing.T) {
	valid := NewTopic("a1b2", 42, "alerts", -100123)
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Topic)
	}{
		{"missing token", func(m *Topic) { m.Token = "" }},
		{"missing owner", func(m *Topic) { m.OwnerID = 0 }},
		{"missing name", func(m *Topic) { m.Name = "" }},
		{"missing chat", func(m *Topic) { m.ChatID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic := valid
			tt.mutate(&topic)
			assert.Error(t, topic.Validate())
		})
	}
}
