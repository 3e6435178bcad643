package ecs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/types"
)

// BuildRegistry creates one ECS client per distinct credential source used
// by clusters.
func BuildRegistry(ctx context.Context, clusters []types.ClusterConfig) (Registry, error) {
	timing := logging.Start("build client registry")

	clients := make(map[types.ConfigSource]API)
	for _, c := range clusters {
		if _, ok := clients[c.ConfigSource]; ok {
			continue
		}

		cfg, err := LoadSDKConfig(ctx, c.ConfigSource)
		if err != nil {
			return Registry{}, err
		}
		clients[c.ConfigSource] = awsecs.NewFromConfig(cfg)
		logging.Debug("created ecs client", "source", c.ConfigSource.String())
	}

	logging.EndWithCount(timing, len(clients))
	return NewRegistry(clients), nil
}

// LoadSDKConfig resolves AWS configuration for a credential source
func LoadSDKConfig(ctx context.Context, source types.ConfigSource) (aws.Config, error) {
	switch source.Kind {
	case types.SourceEnv:
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load default AWS config: %w", err)
		}
		return cfg, nil

	case types.SourceProfile:
		cfg, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(source.Name))
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", source.Name, err)
		}
		return cfg, nil

	case types.SourceAssumeRole:
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load default AWS config: %w", err)
		}
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), source.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = "ecscope"
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
		return cfg, nil

	default:
		return aws.Config{}, fmt.Errorf("unsupported config source %s", source)
	}
}
