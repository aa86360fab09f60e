package modelio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

func TestProfileMsgpack_RoundTrip(t *testing.T) {
	profile := &domain.Profile{}
	profile.Append(domain.Step{
		ModelName:   "Login",
		ElementName: "Start",
		Position:    domain.Position{ModelID: "m1", ElementID: "v1"},
		Data:        []domain.VarEntry{{Name: "count", Value: int64(3)}},
	})

	var buf bytes.Buffer
	assert.NoError(t, WriteProfileMsgpack(&buf, profile))

	decoded, err := ReadProfileMsgpack(&buf)
	assert.NoError(t, err)
	assert.Equal(t, profile.Steps, decoded.Steps)
}
