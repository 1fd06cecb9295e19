package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/sales-roi-forecast/internal/config"
	"github.com/iwvelando/sales-roi-forecast/internal/report"
	"github.com/iwvelando/sales-roi-forecast/internal/roi"
	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/iwvelando/sales-roi-forecast/pkg/validation"
	"go.uber.org/zap"
)

// metricFlags holds the per-field overrides; only flags the user set are applied.
type metricFlags struct {
	teamSize         int
	avgDealSize      float64
	currentCloseRate float64
	salesCycleLength int
	leadsPerMonth    int
}

func (m *metricFlags) register(set *flag.FlagSet) {
	set.IntVar(&m.teamSize, "team-size", 0, "number of sales representatives")
	set.Float64Var(&m.avgDealSize, "avg-deal-size", 0, "average deal size in dollars")
	set.Float64Var(&m.currentCloseRate, "close-rate", 0, "current close rate in percent (0-100]")
	set.IntVar(&m.salesCycleLength, "cycle-length", 0, "sales cycle length in days")
	set.IntVar(&m.leadsPerMonth, "leads", 0, "inbound leads per month")
}

// apply overlays the flags that were explicitly set on the flag set onto base.
func (m *metricFlags) apply(set *flag.FlagSet, base roi.SalesMetrics) roi.SalesMetrics {
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "team-size":
			base.TeamSize = m.teamSize
		case "avg-deal-size":
			base.AvgDealSize = m.avgDealSize
		case "close-rate":
			base.CurrentCloseRate = m.currentCloseRate
		case "cycle-length":
			base.SalesCycleLength = m.salesCycleLength
		case "leads":
			base.LeadsPerMonth = m.leadsPerMonth
		}
	})
	return base
}

// loadConfiguration reads configPath. A missing file at the default location
// falls back to built-in defaults; any other failure is returned.
func loadConfiguration(configPath string) (*config.Configuration, bool, error) {
	conf, err := config.LoadConfiguration(configPath)
	if err == nil {
		return conf, true, nil
	}
	if configPath == constants.DefaultConfigFile {
		if _, statErr := os.Stat(configPath); errors.Is(statErr, fs.ErrNotExist) {
			conf, err = config.DefaultConfiguration()
			return conf, false, err
		}
	}
	return nil, false, err
}

func writeReport(w io.Writer, outputFormat string, rep report.Report) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return report.CsvFormat(w, rep)
	case constants.OutputFormatMarkdown:
		return report.MarkdownFormat(w, rep)
	default:
		return report.PrettyFormat(w, rep)
	}
}

func main() {
	flags := flag.CommandLine
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	envFile := flags.String("env-file", ".env", "optional dotenv file with ROI_ overrides")
	scenarioFlag := flags.String("scenario", "", "scenario override: conservative, average, optimistic")
	compare := flags.Bool("compare", false, "project every scenario side by side")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, markdown")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	var overrides metricFlags
	overrides.register(flags)
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envFile, err)
		os.Exit(1)
	}

	conf, fromFile, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !fromFile {
		logger.Debug("no configuration file found, using defaults",
			zap.String("op", "main"),
			zap.String("path", *configLocation),
		)
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	metrics := overrides.apply(flags, conf.Defaults.Metrics)
	if err := metrics.Validate(); err != nil {
		logger.Fatal("invalid sales metrics",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var rep report.Report
	if *compare {
		rep = report.New(roi.CompareScenarios(metrics)...)
	} else {
		scenario := conf.DefaultScenario()
		if *scenarioFlag != "" {
			var known bool
			scenario, known = roi.ParseScenario(*scenarioFlag)
			if !known {
				logger.Warn("unrecognized scenario, using average",
					zap.String("op", "main"),
					zap.String("scenario", *scenarioFlag),
				)
			}
		}
		rep = report.New(roi.Project(metrics, scenario))
	}

	logger.Debug("projection computed",
		zap.String("op", "main"),
		zap.String("reportId", rep.ID),
		zap.Int("projections", len(rep.Projections)),
	)

	if err := writeReport(os.Stdout, outputFormat, rep); err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
