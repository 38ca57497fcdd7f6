package imagegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogpix/internal/catalog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want catalog.Failure
	}{
		{"quota by grpc code", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), catalog.FailureQuotaExceeded},
		{"quota by http status", errors.New("Error 429: too many requests"), catalog.FailureQuotaExceeded},
		{"invalid key", errors.New("Requested entity was not found."), catalog.FailureInvalidAPIKey},
		{"empty response", errors.New("no image was generated"), catalog.FailureGeneration},
		{"anything else", errors.New("context deadline exceeded"), catalog.FailureGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, catalog.Failure(""), Classify(nil))
}
