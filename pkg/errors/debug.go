package errors

import (
	"errors"
	"fmt"
)

// upstreamError is implemented by the commerce backend client's status errors.
type upstreamError interface {
	error
	UpstreamStatus() int
	UpstreamEndpoint() string
	UpstreamBody() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
	UpstreamBody     string `json:"upstream_body,omitempty"`
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

	var upErr upstreamError
	if errors.As(err, &upErr) {
		d.UpstreamStatus = upErr.UpstreamStatus()
		d.UpstreamEndpoint = upErr.UpstreamEndpoint()
		d.UpstreamBody = upErr.UpstreamBody()
	}

	return d
}
