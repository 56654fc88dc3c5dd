package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/iwvelando/mortgage-simulator/internal/config"
	"github.com/iwvelando/mortgage-simulator/internal/export"
	"github.com/iwvelando/mortgage-simulator/internal/logging"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"github.com/iwvelando/mortgage-simulator/pkg/output"
	"github.com/iwvelando/mortgage-simulator/pkg/validation"
	"go.uber.org/zap"
)

const (
	envScheduleDestination = "MORTGAGE_SCHEDULE_DESTINATION"
	envLogLevel            = "MORTGAGE_LOG_LEVEL"
)

type simulateRequest struct {
	Name      string               `json:"name"`
	Principal float64              `json:"principal"`
	Config    *config.LoanSettings `json:"config"`
}

type simulateResponse struct {
	Config   loans.LoanConfig `json:"config"`
	Result   loans.Result     `json:"result"`
	Warnings []string         `json:"warnings,omitempty"`
	Export   string           `json:"export,omitempty"`
}

// exporter uploads a report and returns its location.
type exporter func(ctx context.Context, report output.Report) (string, error)

func s3Exporter(destination string) (exporter, error) {
	dst, err := export.ParseS3(destination)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, report output.Report) (string, error) {
		client, err := export.NewS3Client(ctx, "")
		if err != nil {
			return "", err
		}
		return export.StoreToS3(ctx, report, client, dst)
	}, nil
}

func simulate(ctx context.Context, logger *zap.Logger, body string, upload exporter) (int, interface{}) {
	var req simulateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("failed to decode request: %v", err)}
	}
	if req.Principal <= 0 {
		return http.StatusBadRequest, map[string]string{"error": "principal must be positive"}
	}

	loanConfig := loans.DefaultLoanConfig()
	if req.Config != nil {
		loanConfig = req.Config.Apply(loanConfig)
	}
	if err := validation.CheckLoanInputs(req.Principal, loanConfig); err != nil {
		return http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid loan configuration: %v", err)}
	}
	warnings := validation.ValidateLoanConfig(req.Name, req.Principal, loanConfig)
	loanConfig = loanConfig.Normalized()

	resp := simulateResponse{
		Config:   loanConfig,
		Result:   loans.Simulate(logger, req.Principal, loanConfig),
		Warnings: warnings,
	}
	if err := validation.CheckResult(resp.Result); err != nil {
		return http.StatusUnprocessableEntity, map[string]string{"error": fmt.Sprintf("simulation cannot be represented: %v", err)}
	}

	if upload != nil {
		location, err := upload(ctx, output.Report{Name: req.Name, Config: loanConfig, Result: resp.Result})
		if err != nil {
			logger.Error("failed to export schedule",
				zap.String("op", "lambda.simulate"),
				zap.Error(err),
			)
			return http.StatusInternalServerError, map[string]string{"error": err.Error()}
		}
		resp.Export = location
	}

	return http.StatusOK, resp
}

func newHandler(logger *zap.Logger, upload exporter) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		status, payload := simulate(ctx, logger, request.Body, upload)

		body, err := json.Marshal(payload)
		if err != nil {
			logger.Error("failed to encode response",
				zap.String("op", "lambda.handler"),
				zap.Error(err),
			)
			status = http.StatusInternalServerError
			body = []byte(`{"error":"failed to encode response"}`)
		}

		return events.APIGatewayProxyResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       string(body),
		}, nil
	}
}

func main() {
	logger, err := logging.New(config.LoggingConfig{}, os.Getenv(envLogLevel))
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	var upload exporter
	if destination := os.Getenv(envScheduleDestination); destination != "" {
		if upload, err = s3Exporter(destination); err != nil {
			logger.Fatal("invalid schedule destination",
				zap.String("op", "main"),
				zap.String("destination", destination),
				zap.Error(err),
			)
		}
	}

	lambda.Start(newHandler(logger, upload))
}
