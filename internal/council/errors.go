package council

import (
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors returned wholesale by the coordinator.
var (
	// ErrInvalidRequest marks malformed input; no partial output accompanies it.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCancelled is returned when cancellation fires before two answers
	// succeeded, i.e. nothing aggregatable was produced.
	ErrCancelled = errors.New("deliberation cancelled")
)

// ErrorKind classifies a provider failure for the per-role error record.
type ErrorKind string

const (
	ErrorTransient ErrorKind = "transient"
	ErrorPermanent ErrorKind = "permanent"
)

// clientStatus matches a standalone three-digit 4xx status code.
var clientStatus = regexp.MustCompile(`\b4\d\d\b`)

// ClassifyProviderError buckets a provider error as transient (timeouts, 5xx,
// resets, rate limits) or permanent (other 4xx). Both degrade identically;
// the kind is only recorded alongside the message.
func ClassifyProviderError(err error) ErrorKind {
	if err == nil {
		return ErrorTransient
	}
	msg := strings.ToLower(err.Error())

	permanent := []string{
		"400", "bad request",
		"401", "unauthorized",
		"403", "forbidden",
		"404", "not found",
		"invalid",
	}
	for _, s := range permanent {
		if strings.Contains(msg, s) {
			return ErrorPermanent
		}
	}
	for _, code := range clientStatus.FindAllString(msg, -1) {
		if code != "429" {
			return ErrorPermanent
		}
	}
	return ErrorTransient
}
