package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-asana-bridge/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.Local)

	b, err := json.Marshal(map[string]any{"time": response.DateTime(tm)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"2024-05-01 15:30:00"}`, string(b))
}
