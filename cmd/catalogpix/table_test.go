package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogpix/internal/catalog"
)

func TestRenderStatusTable(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Name: "Widget", Status: catalog.StatusSucceeded, URL: "https://cdn.example.com/1.png"},
		{ID: 2, Name: "Gadget", Status: catalog.StatusFailed, Error: catalog.FailureQuotaExceeded},
		{ID: 3, Name: "Gizmo", Status: catalog.StatusPending},
	}

	rendered := renderStatusTable(items)

	assert.Contains(t, rendered, "Widget")
	assert.Contains(t, rendered, "https://cdn.example.com/1.png")
	assert.Contains(t, rendered, "Quota Exceeded")
	assert.Contains(t, rendered, "pending")
	assert.Contains(t, rendered, "1 pending, 1 succeeded, 1 failed")
}
