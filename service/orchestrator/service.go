package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service"
	"github.com/costsift/costsift/service/report"
)

// NewService wires the scan pipeline. spend may be nil when billed-spend
// context is not wanted.
func NewService(identity service.IdentityService, fetchers []service.Fetcher, classifier service.Classifier, estimator service.Estimator, spend service.SpendService, log logrus.FieldLogger) *orchestratorService {
	return &orchestratorService{
		identity:   identity,
		fetchers:   fetchers,
		classifier: classifier,
		estimator:  estimator,
		spend:      spend,
		log:        log,
	}
}

// Scan fetches every selected resource kind concurrently, classifies and
// prices each record, and builds the report. A nil report means the run
// failed outright. A non-nil report may come back together with a
// *service.PartialResultError; the report is then valid for the kinds that
// succeeded and the error lists the kinds that were skipped.
func (s *orchestratorService) Scan(ctx context.Context, opts model.ScanOptions) (*model.Report, error) {
	account, err := s.identity.GetAccountInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving caller identity: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"account": account.AccountID,
		"region":  opts.Region,
	}).Info("starting scan")

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		records  []model.ResourceRecord
		failures []*service.ProviderError
		actuals  *model.ActualSpend
	)

	launched := 0
	for _, fetcher := range s.fetchers {
		if !wantKind(opts.Kinds, fetcher.Kind()) {
			continue
		}
		launched++
		wg.Add(1)
		go func(fetcher service.Fetcher) {
			defer wg.Done()
			fetched, err := fetcher.Fetch(ctx)
			if err != nil {
				mu.Lock()
				failures = append(failures, &service.ProviderError{Kind: fetcher.Kind(), Err: err})
				mu.Unlock()
				return
			}
			s.log.WithFields(logrus.Fields{
				"kind":      string(fetcher.Kind()),
				"resources": len(fetched),
			}).Debug("kind fetched")
			mu.Lock()
			records = append(records, fetched...)
			mu.Unlock()
		}(fetcher)
	}
	if launched == 0 {
		return nil, errors.New("no resource kinds selected")
	}

	if opts.WithActuals && s.spend != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spend, err := s.spend.MonthToDate(ctx)
			if err != nil {
				s.log.WithError(err).Warn("billed spend unavailable")
				return
			}
			mu.Lock()
			actuals = spend
			mu.Unlock()
		}()
	}

	wg.Wait()

	// Goroutine completion order is not deterministic; the report should be.
	sort.Slice(failures, func(i, j int) bool { return failures[i].Kind < failures[j].Kind })

	skipped := make([]model.SkippedKind, 0, len(failures))
	for _, failure := range failures {
		s.log.WithError(failure.Err).WithField("kind", string(failure.Kind)).Warn("resource kind skipped")
		skipped = append(skipped, model.SkippedKind{Kind: failure.Kind, Reason: failure.Err.Error()})
	}

	if len(failures) == launched {
		return nil, &service.PartialResultError{Failures: failures}
	}

	rows := make([]model.Row, 0, len(records))
	for _, record := range records {
		classification := s.classifier.Classify(record)
		rows = append(rows, model.Row{
			Record:         record,
			Classification: classification,
			Estimate:       s.estimator.Estimate(record, classification),
		})
	}

	result := report.Build(account, opts.Region, rows, skipped, actuals)

	s.log.WithFields(logrus.Fields{
		"resources": len(result.Rows),
		"idle":      result.Totals.IdleCount,
		"savings":   result.Totals.MonthlySavings,
	}).Info("scan complete")

	if len(failures) > 0 {
		return result, &service.PartialResultError{Failures: failures}
	}
	return result, nil
}

func wantKind(kinds []model.Kind, kind model.Kind) bool {
	return len(kinds) == 0 || lo.Contains(kinds, kind)
}
