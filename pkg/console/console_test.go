package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	old := Out
	Out = &buf
	t.Cleanup(func() { Out = old })
	fn()
	return buf.String()
}

func TestPanel(t *testing.T) {
	out := capture(t, func() { Panel("Exercise 1", "create an agent") })
	assert.Contains(t, out, "Exercise 1")
	assert.Contains(t, out, "create an agent")
}

func TestRule(t *testing.T) {
	out := capture(t, func() { Rule("Setup") })
	assert.Contains(t, out, "Setup")

	out = capture(t, func() { Rule("") })
	assert.Contains(t, out, "─")
}

func TestTable(t *testing.T) {
	out := capture(t, func() {
		Table([]string{"Name", "Status"}, [][]string{
			{"agent-1", "completed"},
			{"agent-2", "failed"},
		})
	})
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "agent-1")
	assert.Contains(t, out, "failed")
}

func TestKeyValue(t *testing.T) {
	out := capture(t, func() {
		KeyValue([][2]string{
			{"ID", "asst_123"},
			{"Model", "gpt-4o"},
		})
	})
	assert.Contains(t, out, "ID:")
	assert.Contains(t, out, "asst_123")
	assert.Contains(t, out, "gpt-4o")
}

func TestStatusLines(t *testing.T) {
	out := capture(t, func() {
		Successf("created %s", "agent")
		Warnf("missing %s", "key")
		Errorf("run %s", "failed")
		Infof("polling %d", 3)
	})
	assert.Contains(t, out, "created agent")
	assert.Contains(t, out, "missing key")
	assert.Contains(t, out, "run failed")
	assert.Contains(t, out, "polling 3")
}
