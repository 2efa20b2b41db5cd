package api

import (
	"bytes"
	"encoding/json"

	"github.com/nmoreaux/instalens-go/pkg/errors"
)

// envelopeProbe is the discriminated view of a possibly-wrapped response.
// The backend is inconsistent about its envelope: some endpoints answer
// {success, data}, some answer the payload directly, and a few answer the
// payload with a bare success flag mixed in.
type envelopeProbe struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// UnwrapEnvelope normalizes the two known response shapes:
//
//  1. Wrapped: {success: bool, data: T} -> returns data (error when success is false)
//  2. Raw: T -> returned verbatim; a bare success:false flag still fails
//
// Anything that is not a JSON object (arrays, scalars) cannot be wrapped and
// passes through unchanged.
func UnwrapEnvelope(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body, nil
	}

	var probe envelopeProbe
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		// Not decodable as an object wrapper; pass through and let the
		// caller's typed decode report the real problem.
		return body, nil
	}

	if probe.Success != nil && probe.Data != nil {
		if !*probe.Success {
			return nil, errors.NewAPIError("API returned unsuccessful response", 200, nil)
		}
		return probe.Data, nil
	}

	if probe.Success != nil && !*probe.Success {
		return nil, errors.NewAPIError("API returned unsuccessful response", 200, nil)
	}

	return body, nil
}
