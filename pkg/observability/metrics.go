package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes reward counters to CloudWatch. Publication is
// best-effort: a failed PutMetricData is logged and otherwise ignored.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a CloudWatch-backed metrics publisher.
func NewMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// CountReward records a single reward grant with its point value.
func (m *Metrics) CountReward(ctx context.Context, reason string, points int) {
	if m == nil || m.client == nil {
		return
	}

	now := time.Now()
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("RewardGranted"),
				Timestamp:  aws.Time(now),
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
				Dimensions: []types.Dimension{
					{Name: aws.String("Reason"), Value: aws.String(reason)},
				},
			},
			{
				MetricName: aws.String("RewardPoints"),
				Timestamp:  aws.Time(now),
				Value:      aws.Float64(float64(points)),
				Unit:       types.StandardUnitCount,
				Dimensions: []types.Dimension{
					{Name: aws.String("Reason"), Value: aws.String(reason)},
				},
			},
		},
	})
	if err != nil {
		m.logger.Warn("failed to publish reward metric",
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}
