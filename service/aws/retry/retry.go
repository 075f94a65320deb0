// Package retry wraps AWS API calls with exponential backoff so that
// transient throttling does not abort a scan.
package retry

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
)

const maxRetries = 3

var throttleCodes = map[string]struct{}{
	"Throttling":                             {},
	"ThrottlingException":                    {},
	"RequestLimitExceeded":                   {},
	"RequestThrottled":                       {},
	"RequestThrottledException":              {},
	"TooManyRequestsException":               {},
	"ProvisionedThroughputExceededException": {},
}

// Throttled reports whether err is an AWS throttling response.
func Throttled(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := throttleCodes[apiErr.ErrorCode()]
	return ok
}

// Do runs op, retrying throttled calls up to maxRetries times with
// exponential backoff. Any other error fails immediately, and retries
// stop as soon as ctx is cancelled.
func Do(ctx context.Context, op func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(func() error {
		err := op()
		if err != nil && !Throttled(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}
