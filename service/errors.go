package service

import (
	"fmt"
	"strings"

	"github.com/costsift/costsift/model"
)

// ProviderError wraps a cloud API failure for one resource kind. The failure
// is fatal for that kind only; the scan continues with the rest.
type ProviderError struct {
	Kind model.Kind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fetching %s resources: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PartialResultError reports that one or more resource kinds could not be
// fetched while the rest of the scan succeeded. Callers should treat it as a
// warning: the report it accompanies is valid for the kinds that succeeded.
type PartialResultError struct {
	Failures []*ProviderError
}

func (e *PartialResultError) Error() string {
	kinds := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		kinds[i] = string(f.Kind)
	}
	return fmt.Sprintf("scan incomplete: %d resource kind(s) failed (%s)", len(e.Failures), strings.Join(kinds, ", "))
}

func (e *PartialResultError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
