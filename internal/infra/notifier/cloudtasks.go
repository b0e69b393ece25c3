//go:build gcloud

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	backoff "github.com/cenkalti/backoff/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/tracing"
)

const cloudTaskDispatchDeadline = 30 * time.Second

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

// CloudTasksNotifier hands reminders to a Cloud Tasks queue, which pushes
// them to TargetURL with its own retry policy.
type CloudTasksNotifier struct {
	client     *cloudtasks.Client
	queuePath  string
	targetURL  string
	maxRetries int
}

func NewCloudTasksNotifier(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksNotifier, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksNotifier{
		client:     client,
		queuePath:  fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.ProjectID, cfg.LocationID, cfg.QueueID),
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (n *CloudTasksNotifier) Deliver(ctx context.Context, notification domain.Notification) error {
	ctx, span := tracing.StartDeliverySpan(ctx, "cloud_tasks", n.targetURL)
	defer span.End()

	payload, err := json.Marshal(webhookPayload{
		UserID:            notification.UserID,
		Tracker:           notification.Tracker.String(),
		Title:             notification.Title,
		Body:              notification.Body,
		RecommendedAmount: notification.RecommendedAmount,
		SentAt:            time.Now().UTC(),
	})
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: n.queuePath,
		Task: &taskspb.Task{
			MessageType: &taskspb.Task_HttpRequest{
				HttpRequest: &taskspb.HttpRequest{
					HttpMethod: taskspb.HttpMethod_POST,
					Url:        n.targetURL,
					Headers: map[string]string{
						"Content-Type": "application/json",
					},
					Body: payload,
				},
			},
			DispatchDeadline: durationpb.New(cloudTaskDispatchDeadline),
		},
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = defaultInitialBackoff
	exp.MaxInterval = defaultMaxBackoff

	var created *taskspb.Task
	operation := func() error {
		task, err := n.client.CreateTask(ctx, req)
		if err != nil {
			slog.WarnContext(ctx, "failed to create cloud task",
				slog.String("user_id", notification.UserID),
				slog.String("tracker", notification.Tracker.String()),
				slog.String("error", err.Error()),
			)
			switch status.Code(err) {
			case codes.InvalidArgument, codes.NotFound, codes.PermissionDenied, codes.FailedPrecondition:
				return backoff.Permanent(err)
			}
			return err
		}
		created = task
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(n.maxRetries-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	slog.InfoContext(ctx, "reminder task registered to Cloud Tasks",
		slog.String("task_name", created.GetName()),
		slog.String("user_id", notification.UserID),
		slog.String("tracker", notification.Tracker.String()),
	)

	tracing.RecordError(span, nil)
	return nil
}

func (n *CloudTasksNotifier) Close() error {
	return n.client.Close()
}
