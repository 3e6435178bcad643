package ecs

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/types"
)

// MaxConcurrentFetches bounds in-flight cluster queries across a batch
const MaxConcurrentFetches = 10

// DeploymentsResult holds the outcome of a deployments batch, each side
// sorted by service name and keys
type DeploymentsResult struct {
	Deployments []types.DeploymentDetails
	Errors      []types.DeploymentError
}

// ServicesResult holds the outcome of a services batch, each side sorted by
// service name and keys
type ServicesResult struct {
	Services []types.ServiceDetails
	Errors   []types.ServiceError
}

// GetDeployments fetches deployments for every cluster with at most
// MaxConcurrentFetches clusters queried at once. Remote failures become
// DeploymentError records; only a missing registry entry or a cancelled
// context fails the whole call.
func GetDeployments(ctx context.Context, clusters []types.ClusterConfig, registry Registry, state *types.DeploymentState) (DeploymentsResult, error) {
	timing := logging.Start("get deployments")

	perCluster, err := fetchAll(ctx, clusters, registry, func(ctx context.Context, api API, c types.ClusterConfig) []types.DeploymentResult {
		return DeploymentsForCluster(ctx, api, c, state)
	})
	if err != nil {
		return DeploymentsResult{}, err
	}

	var result DeploymentsResult
	for _, results := range perCluster {
		for _, r := range results {
			switch r := r.(type) {
			case types.DeploymentDetails:
				result.Deployments = append(result.Deployments, r)
			case types.DeploymentError:
				result.Errors = append(result.Errors, r)
			}
		}
	}

	slices.SortStableFunc(result.Deployments, types.CompareDeployments)
	slices.SortStableFunc(result.Errors, types.CompareDeploymentErrors)

	logging.EndWithCount(timing, len(result.Deployments)+len(result.Errors))
	return result, nil
}

// GetServices fetches service snapshots for every cluster under the same
// rules as GetDeployments
func GetServices(ctx context.Context, clusters []types.ClusterConfig, registry Registry) (ServicesResult, error) {
	timing := logging.Start("get services")

	perCluster, err := fetchAll(ctx, clusters, registry, ServicesForCluster)
	if err != nil {
		return ServicesResult{}, err
	}

	var result ServicesResult
	for _, results := range perCluster {
		for _, r := range results {
			switch r := r.(type) {
			case types.ServiceDetails:
				result.Services = append(result.Services, r)
			case types.ServiceError:
				result.Errors = append(result.Errors, r)
			}
		}
	}

	slices.SortStableFunc(result.Services, types.CompareServices)
	slices.SortStableFunc(result.Errors, types.CompareServiceErrors)

	logging.EndWithCount(timing, len(result.Services)+len(result.Errors))
	return result, nil
}

// fetchAll runs one unit of work per cluster under a shared limit and
// returns the per-cluster results in cluster order. Every cluster's client is
// resolved before any query starts.
func fetchAll[T any](
	ctx context.Context,
	clusters []types.ClusterConfig,
	registry Registry,
	fetch func(context.Context, API, types.ClusterConfig) []T,
) ([][]T, error) {
	apis := make([]API, len(clusters))
	for i, c := range clusters {
		api, ok := registry.Lookup(c.ConfigSource)
		if !ok {
			return nil, fmt.Errorf("%w: cluster %s uses %s", ErrMissingClient, c.ARN, c.ConfigSource)
		}
		apis[i] = api
	}

	results := make([][]T, len(clusters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentFetches)

	for i, c := range clusters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("couldn't start fetch for cluster %s: %w", c.ARN, err)
			}
			results[i] = fetch(gctx, apis[i], c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Error("fetch batch failed", "error", err)
		return nil, err
	}

	return results, nil
}
