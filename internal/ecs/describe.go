package ecs

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/dhth/ecscope/internal/messages"
	"github.com/dhth/ecscope/internal/types"
)

const (
	// DescribeServices accepts at most 10 services per call
	maxServicesPerDescribe = 10
	// DescribeTasks accepts at most 100 tasks per call
	maxTasksPerDescribe = 100
)

var errEmptyServiceName = errors.New("service name returned was empty")

// describedServices is the raw outcome of describing one cluster's services
type describedServices struct {
	services []ecstypes.Service
	failures []ecstypes.Failure
}

// describeClusterServices describes every service in cluster, in chunks the
// API accepts.
func describeClusterServices(ctx context.Context, api API, clusterARN string, services []string) (describedServices, error) {
	var out describedServices
	for chunk := range slices.Chunk(services, maxServicesPerDescribe) {
		resp, err := api.DescribeServices(ctx, &awsecs.DescribeServicesInput{
			Cluster:  aws.String(clusterARN),
			Services: chunk,
		})
		if err != nil {
			return describedServices{}, messages.WrapError(err, "couldn't describe services in cluster %s", clusterARN)
		}
		out.services = append(out.services, resp.Services...)
		out.failures = append(out.failures, resp.Failures...)
	}
	return out, nil
}

// ServicesForCluster fetches every configured service of cluster. A failed
// query yields one ServiceError per configured service.
func ServicesForCluster(ctx context.Context, api API, cluster types.ClusterConfig) []types.ServiceResult {
	described, err := describeClusterServices(ctx, api, cluster.ARN, cluster.Services)
	if err != nil {
		return serviceErrors(cluster, err.Error())
	}

	results := make([]types.ServiceResult, 0, len(described.services)+len(described.failures))
	for _, s := range described.services {
		results = append(results, toServiceResult(s, cluster.Keys, cluster.ARN, cluster.ConfigSource))
	}
	for _, f := range described.failures {
		results = append(results, types.ServiceError{
			Name: serviceNameFromARN(aws.ToString(f.Arn)),
			Err:  failureText(f),
			Keys: cluster.Keys,
		})
	}
	return results
}

// RefreshService fetches a fresh snapshot of one service
func RefreshService(ctx context.Context, api API, svc types.ServiceDetails) types.ServiceResult {
	described, err := describeClusterServices(ctx, api, svc.ClusterARN, []string{svc.Name})
	if err != nil {
		return types.ServiceError{Name: svc.Name, Err: err.Error(), Keys: svc.Keys}
	}

	if len(described.failures) > 0 {
		return types.ServiceError{Name: svc.Name, Err: failureText(described.failures[0]), Keys: svc.Keys}
	}
	if len(described.services) != 1 {
		return types.ServiceError{
			Name: svc.Name,
			Err:  fmt.Sprintf("expected 1 service in response, got %d", len(described.services)),
			Keys: svc.Keys,
		}
	}

	return toServiceResult(described.services[0], svc.Keys, svc.ClusterARN, svc.ConfigSource)
}

// DeploymentsForCluster fetches the deployments of every configured service
// of cluster and keeps those in state. A nil state keeps everything.
func DeploymentsForCluster(ctx context.Context, api API, cluster types.ClusterConfig, state *types.DeploymentState) []types.DeploymentResult {
	described, err := describeClusterServices(ctx, api, cluster.ARN, cluster.Services)
	if err != nil {
		results := make([]types.DeploymentResult, 0, len(cluster.Services))
		for _, name := range cluster.Services {
			results = append(results, types.DeploymentError{
				ServiceName: name,
				Err:         err.Error(),
				ClusterARN:  cluster.ARN,
				Keys:        cluster.Keys,
			})
		}
		return results
	}

	var results []types.DeploymentResult
	for _, s := range described.services {
		for _, d := range s.Deployments {
			details := toDeploymentDetails(s, d, cluster)
			if state != nil && !state.Includes(details) {
				continue
			}
			results = append(results, details)
		}
	}
	for _, f := range described.failures {
		results = append(results, types.DeploymentError{
			ServiceName: serviceNameFromARN(aws.ToString(f.Arn)),
			Err:         failureText(f),
			ClusterARN:  cluster.ARN,
			Keys:        cluster.Keys,
		})
	}
	return results
}

// ServiceTasks lists the tasks of a service and describes them
func ServiceTasks(ctx context.Context, api API, svc types.ServiceDetails) ([]types.TaskDetails, error) {
	var arns []string
	paginator := awsecs.NewListTasksPaginator(api, &awsecs.ListTasksInput{
		Cluster:     aws.String(svc.ClusterARN),
		ServiceName: aws.String(svc.Name),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, messages.WrapError(err, "couldn't list tasks for service %s", svc.Name)
		}
		arns = append(arns, page.TaskArns...)
	}

	if len(arns) == 0 {
		return []types.TaskDetails{}, nil
	}

	tasks := make([]types.TaskDetails, 0, len(arns))
	for chunk := range slices.Chunk(arns, maxTasksPerDescribe) {
		resp, err := api.DescribeTasks(ctx, &awsecs.DescribeTasksInput{
			Cluster: aws.String(svc.ClusterARN),
			Tasks:   chunk,
		})
		if err != nil {
			return nil, messages.WrapError(err, "couldn't describe tasks for service %s", svc.Name)
		}
		for _, t := range resp.Tasks {
			tasks = append(tasks, toTaskDetails(t))
		}
	}

	return tasks, nil
}

func serviceErrors(cluster types.ClusterConfig, text string) []types.ServiceResult {
	results := make([]types.ServiceResult, 0, len(cluster.Services))
	for _, name := range cluster.Services {
		results = append(results, types.ServiceError{Name: name, Err: text, Keys: cluster.Keys})
	}
	return results
}
