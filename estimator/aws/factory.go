package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
)

// pricingRegion is the region serving the Price List and Savings Plans APIs.
const pricingRegion = "us-east-1"

// SDKClientFactory creates real AWS SDK clients for a region/profile pair. Implements ClientFactory.
type SDKClientFactory struct {
	Region  string
	Profile string
}

func (f *SDKClientFactory) load(ctx context.Context, region string) (awssdk.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithSharedConfigProfile(f.Profile),
	)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("failed to load AWS config [region=%s, profile=%s]: %w", region, f.Profile, err)
	}
	return cfg, nil
}

func (f *SDKClientFactory) NewEC2Client(ctx context.Context) (EC2Client, error) {
	cfg, err := f.load(ctx, f.Region)
	if err != nil {
		return nil, err
	}
	return ec2.NewFromConfig(cfg), nil
}

func (f *SDKClientFactory) NewELBClient(ctx context.Context) (ELBClient, error) {
	cfg, err := f.load(ctx, f.Region)
	if err != nil {
		return nil, err
	}
	return elbv2.NewFromConfig(cfg), nil
}

func (f *SDKClientFactory) NewPricingClient(ctx context.Context) (pricing.GetProductsAPIClient, error) {
	cfg, err := f.load(ctx, pricingRegion)
	if err != nil {
		return nil, err
	}
	return pricing.NewFromConfig(cfg), nil
}

func (f *SDKClientFactory) NewSavingsPlansClient(ctx context.Context) (SavingsPlansAPI, error) {
	cfg, err := f.load(ctx, pricingRegion)
	if err != nil {
		return nil, err
	}
	return savingsplans.NewFromConfig(cfg), nil
}
