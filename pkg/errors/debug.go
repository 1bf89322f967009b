package errors

import (
	"errors"
	"fmt"
)

// RemoteError carries the status and message returned by the procurement
// backend so call sites can log and surface them verbatim.
type RemoteError struct {
	Status   int
	Endpoint string
	Message  string
}

func (r *RemoteError) Error() string {
	if r.Message == "" {
		return fmt.Sprintf("upstream %s: status %d", r.Endpoint, r.Status)
	}
	return fmt.Sprintf("upstream %s: status %d: %s", r.Endpoint, r.Status, r.Message)
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
	UpstreamMessage  string `json:"upstream_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		d.UpstreamStatus = remote.Status
		d.UpstreamEndpoint = remote.Endpoint
		d.UpstreamMessage = remote.Message
	}

	return d
}
