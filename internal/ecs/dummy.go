package ecs

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/dhth/ecscope/internal/types"
)

// DummyAPI serves made-up but stable ECS data for any cluster and service
// name. Services whose name contains "missing" are reported as API failures.
type DummyAPI struct{}

// NewDummyRegistry returns a registry answering every source used by
// clusters with a DummyAPI
func NewDummyRegistry(clusters []types.ClusterConfig) Registry {
	clients := make(map[types.ConfigSource]API)
	for _, c := range clusters {
		clients[c.ConfigSource] = DummyAPI{}
	}
	return NewRegistry(clients)
}

func seed(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
	}
	return h.Sum32()
}

func (DummyAPI) DescribeServices(_ context.Context, params *awsecs.DescribeServicesInput, _ ...func(*awsecs.Options)) (*awsecs.DescribeServicesOutput, error) {
	cluster := aws.ToString(params.Cluster)
	out := &awsecs.DescribeServicesOutput{}

	for _, name := range params.Services {
		if strings.Contains(name, "missing") {
			out.Failures = append(out.Failures, ecstypes.Failure{
				Arn:    aws.String(cluster + "/" + name),
				Reason: aws.String("MISSING"),
			})
			continue
		}

		s := seed(cluster, name)
		desired := int32(s%3) + 1
		running := desired
		var pending int32
		if s%5 == 0 {
			running--
			pending = 1
		}

		deployments := []ecstypes.Deployment{{
			Id:           aws.String(fmt.Sprintf("ecs-svc/%019d", s)),
			Status:       aws.String(types.DeploymentStatusPrimary),
			DesiredCount: desired,
			RunningCount: running,
			PendingCount: pending,
		}}
		if s%4 == 0 {
			deployments = append(deployments, ecstypes.Deployment{
				Id:           aws.String(fmt.Sprintf("ecs-svc/%019d", s/2)),
				Status:       aws.String("ACTIVE"),
				DesiredCount: desired,
				RunningCount: desired - 1,
				FailedTasks:  int32(s % 3),
			})
		}

		out.Services = append(out.Services, ecstypes.Service{
			ServiceName:  aws.String(name),
			Status:       aws.String("ACTIVE"),
			DesiredCount: desired,
			RunningCount: running,
			PendingCount: pending,
			Deployments:  deployments,
		})
	}

	return out, nil
}

func (DummyAPI) ListTasks(_ context.Context, params *awsecs.ListTasksInput, _ ...func(*awsecs.Options)) (*awsecs.ListTasksOutput, error) {
	cluster := aws.ToString(params.Cluster)
	service := aws.ToString(params.ServiceName)
	s := seed(cluster, service)

	n := int(s%3) + 1
	arns := make([]string, 0, n)
	for i := 0; i < n; i++ {
		arns = append(arns, fmt.Sprintf("%s/task/%s/%08x%02d", cluster, service, s, i))
	}
	return &awsecs.ListTasksOutput{TaskArns: arns}, nil
}

func (DummyAPI) DescribeTasks(_ context.Context, params *awsecs.DescribeTasksInput, _ ...func(*awsecs.Options)) (*awsecs.DescribeTasksOutput, error) {
	out := &awsecs.DescribeTasksOutput{}
	for _, arn := range params.Tasks {
		s := seed(arn)
		status := types.StatusRunning
		if s%4 == 0 {
			status = "PROVISIONING"
		}

		containers := []ecstypes.Container{
			{
				Name:         aws.String("app"),
				Image:        aws.String("111111111111.dkr.ecr.eu-central-1.amazonaws.com/app:1.4.2"),
				LastStatus:   aws.String(status),
				Cpu:          aws.String("256"),
				Memory:       aws.String("512"),
				HealthStatus: ecstypes.HealthStatusHealthy,
			},
			{
				Name:         aws.String("log-router"),
				Image:        aws.String("public.ecr.aws/aws-observability/aws-for-fluent-bit:stable"),
				LastStatus:   aws.String(types.StatusRunning),
				Cpu:          aws.String("0"),
				HealthStatus: ecstypes.HealthStatusUnknown,
			},
		}

		out.Tasks = append(out.Tasks, ecstypes.Task{
			TaskArn:      aws.String(arn),
			HealthStatus: ecstypes.HealthStatusHealthy,
			Cpu:          aws.String("512"),
			Memory:       aws.String("1024"),
			LastStatus:   aws.String(status),
			Containers:   containers,
		})
	}
	return out, nil
}
