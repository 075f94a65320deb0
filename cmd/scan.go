package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/costsift/costsift/config"
	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service"
	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
	awsconfig "github.com/costsift/costsift/service/aws/config"
	awscostexplorer "github.com/costsift/costsift/service/aws/costexplorer"
	awsec2 "github.com/costsift/costsift/service/aws/ec2"
	awsrds "github.com/costsift/costsift/service/aws/rds"
	awss3 "github.com/costsift/costsift/service/aws/s3"
	awssts "github.com/costsift/costsift/service/aws/sts"
	"github.com/costsift/costsift/service/classifier"
	"github.com/costsift/costsift/service/estimator"
	"github.com/costsift/costsift/service/orchestrator"
	"github.com/costsift/costsift/service/pricing"
	"github.com/costsift/costsift/service/report"
	"github.com/costsift/costsift/utils"
)

const defaultPublishPrefix = "costsift"

type scanFlags struct {
	region        string
	profile       string
	configPath    string
	outPath       string
	htmlPath      string
	publishBucket string
	withActuals   bool
	verbose       bool
	noColor       bool
}

// NewRootCmd builds the costsift command. Running it performs one scan.
func NewRootCmd() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:           "costsift",
		Short:         "Find idle AWS resources and estimate the money they waste",
		Long:          "costsift scans EC2 instances, RDS instances and S3 buckets in one\naccount/region, checks their CloudWatch utilization against idle thresholds\nand reports the estimated monthly savings, biggest saver first.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.region, "region", "r", "", "AWS region to scan (defaults to profile region)")
	cmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ~/.config/costsift/config.yaml)")
	cmd.Flags().StringVarP(&flags.outPath, "out", "o", "", "write the report CSV to this file")
	cmd.Flags().StringVar(&flags.htmlPath, "html", "", "write an HTML dashboard to this file")
	cmd.Flags().StringVar(&flags.publishBucket, "publish", "", "upload the report CSV to this S3 bucket")
	cmd.Flags().BoolVar(&flags.withActuals, "with-actuals", false, "include month-to-date billed spend from Cost Explorer")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runScan(ctx context.Context, flags scanFlags) error {
	log := logrus.New()
	if flags.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if flags.noColor {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
		utils.DisableColors()
	}

	utils.DrawBanner()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	profile, region := cfg.Merge(flags.profile, flags.region)

	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
	if err != nil {
		return err
	}
	if region == "" {
		region = awsCfg.Region
	}

	windowDays := cfg.Window()
	metricsService := awscloudwatch.NewService(cloudwatch.NewFromConfig(awsCfg))
	identityService := awssts.NewService(sts.NewFromConfig(awsCfg))
	spendService := awscostexplorer.NewService(costexplorer.NewFromConfig(awsCfg))
	s3Service := awss3.NewService(s3.NewFromConfig(awsCfg), metricsService, log, region, windowDays)

	fetchers := []service.Fetcher{
		awsec2.NewService(ec2.NewFromConfig(awsCfg), metricsService, log, region, windowDays),
		awsrds.NewService(rds.NewFromConfig(awsCfg), metricsService, log, region, windowDays),
		s3Service,
	}

	orchestratorService := orchestrator.NewService(
		identityService,
		fetchers,
		classifier.NewService(cfg.ScanThresholds()),
		estimator.NewService(pricing.NewService(cfg.PriceTable())),
		spendService,
		log,
	)

	publishBucket := flags.publishBucket
	if publishBucket == "" {
		publishBucket = cfg.Publish.Bucket
	}
	opts := model.ScanOptions{
		Region:        region,
		Profile:       profile,
		Kinds:         cfg.ScanKinds(),
		OutputPath:    flags.outPath,
		HTMLPath:      flags.htmlPath,
		PublishBucket: publishBucket,
		PublishPrefix: cfg.Publish.Prefix,
		WithActuals:   flags.withActuals,
	}

	utils.StartSpinner()
	result, err := orchestratorService.Scan(ctx, opts)
	utils.StopSpinner()
	if result == nil {
		return err
	}

	utils.DrawReportTable(result)
	utils.DrawSavingsChart(result)
	utils.DrawSpendTable(result.ActualSpend)

	return writeArtifacts(ctx, log, s3Service, result, opts)
}

// writeArtifacts persists the finished report. The CSV is the primary
// artifact and its write failure fails the run; HTML and S3 uploads only
// warn.
func writeArtifacts(ctx context.Context, log logrus.FieldLogger, publisher service.Publisher, result *model.Report, opts model.ScanOptions) error {
	var csvBuf bytes.Buffer
	if opts.OutputPath != "" || opts.PublishBucket != "" {
		if err := report.WriteCSV(result, &csvBuf); err != nil {
			return fmt.Errorf("rendering report CSV: %w", err)
		}
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, csvBuf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing report CSV: %w", err)
		}
		log.WithField("path", opts.OutputPath).Info("report CSV written")
	}

	if opts.HTMLPath != "" {
		if err := writeHTMLFile(result, opts.HTMLPath); err != nil {
			log.WithError(err).Warn("HTML dashboard not written")
		} else {
			log.WithField("path", opts.HTMLPath).Info("HTML dashboard written")
		}
	}

	if opts.PublishBucket != "" {
		prefix := opts.PublishPrefix
		if prefix == "" {
			prefix = defaultPublishPrefix
		}
		key := path.Join(prefix, result.RunID+".csv")
		url, err := publisher.Upload(ctx, opts.PublishBucket, key, csvBuf.Bytes())
		if err != nil {
			log.WithError(err).Warn("report not published")
		} else {
			log.WithField("url", url).Info("report published")
		}
	}

	return nil
}

func writeHTMLFile(result *model.Report, dest string) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := report.WriteHTML(result, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
