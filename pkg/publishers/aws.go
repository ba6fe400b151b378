package publishers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// loadAWSConfig resolves region and, when configured, static credentials
// read from the named environment variables.
func loadAWSConfig(ctx context.Context, region string, creds AWSCredentials) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if creds.AccessKeyEnv != "" {
		access := strings.TrimSpace(os.Getenv(creds.AccessKeyEnv))
		secret := strings.TrimSpace(os.Getenv(creds.SecretKeyEnv))
		if access == "" || secret == "" {
			return aws.Config{}, fmt.Errorf("aws credentials env %s/%s not set", creds.AccessKeyEnv, creds.SecretKeyEnv)
		}
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
