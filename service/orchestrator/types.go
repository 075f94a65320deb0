package orchestrator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service"
)

type orchestratorService struct {
	identity   service.IdentityService
	fetchers   []service.Fetcher
	classifier service.Classifier
	estimator  service.Estimator
	spend      service.SpendService
	log        logrus.FieldLogger
}

// OrchestratorService runs one full scan and assembles the report.
type OrchestratorService interface {
	Scan(ctx context.Context, opts model.ScanOptions) (*model.Report, error)
}
