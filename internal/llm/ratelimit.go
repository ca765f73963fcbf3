package llm

import (
	"net/http"
	"strconv"
	"time"
)

// retryAfter reads a Retry-After header given in seconds. Anything else,
// including the HTTP-date form, yields zero so backoff falls back to the
// exponential schedule.
func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
