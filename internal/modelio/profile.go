package modelio

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// WriteProfileMsgpack encodes profile in msgpack, an alternate, more compact
// wire form of the Profile's JSON representation — useful for an offline
// walk's output when size, not human-readability, is the priority. Step and
// VarEntry carry msgpack struct tags matching their json tags exactly, so
// the two encodings agree field-for-field.
func WriteProfileMsgpack(w io.Writer, profile *domain.Profile) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(profile.Steps); err != nil {
		return domain.NewEngineError(domain.ErrConfig, "failed to write msgpack profile", err)
	}
	return nil
}

// ReadProfileMsgpack decodes a Profile previously written by
// WriteProfileMsgpack.
func ReadProfileMsgpack(r io.Reader) (*domain.Profile, error) {
	dec := msgpack.NewDecoder(r)
	var steps []domain.Step
	if err := dec.Decode(&steps); err != nil {
		return nil, domain.NewEngineError(domain.ErrConfig, "failed to read msgpack profile", err)
	}
	return &domain.Profile{Steps: steps}, nil
}
