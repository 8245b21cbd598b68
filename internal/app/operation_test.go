package app

import (
	"testing"
	"time"

	"frame-go/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestNewOperation(t *testing.T) {
	clock := testutil.FixedClock()
	ids := testutil.NewStubIDGenerator()

	tests := []struct {
		name   string
		opName string
		wantID string
	}{
		{name: "first operation", opName: "GetFileList", wantID: "op-0001"},
		{name: "second operation", opName: "Playlist", wantID: "op-0002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.opName, ids, clock)

			assert.Equal(t, tt.opName, op.Name)
			assert.Equal(t, tt.wantID, op.ID)
			assert.Equal(t, "success", op.Status)
			assert.True(t, op.StartedAt.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)), "StartedAt = %v", op.StartedAt)
		})
	}
}

func TestOperation_Fail(t *testing.T) {
	op := NewOperation("GetFileList", testutil.NewStubIDGenerator(), testutil.FixedClock())
	assert.False(t, op.Failed())

	op.Fail()
	assert.True(t, op.Failed())
	assert.Equal(t, "error", op.Status)
}
