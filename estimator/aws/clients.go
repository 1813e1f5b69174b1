package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
)

// ELBDescribeTagsAPI wraps the ELBv2 DescribeTags call (no SDK paginator interface exists).
type ELBDescribeTagsAPI interface {
	DescribeTags(ctx context.Context, params *elbv2.DescribeTagsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error)
}

// SavingsPlansAPI wraps the DescribeSavingsPlansOfferingRates call (no SDK paginator interface exists).
type SavingsPlansAPI interface {
	DescribeSavingsPlansOfferingRates(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error)
}

// EC2Client combines the EC2 API interfaces needed by the estimator.
type EC2Client interface {
	ec2.DescribeInstancesAPIClient
	ec2.DescribeVolumesAPIClient
	ec2.DescribeNatGatewaysAPIClient
}

// ELBClient combines the ELBv2 API interfaces needed by the estimator.
type ELBClient interface {
	elbv2.DescribeLoadBalancersAPIClient
	ELBDescribeTagsAPI
}

// ClientFactory creates AWS service clients, enabling dependency injection for testing.
type ClientFactory interface {
	NewEC2Client(ctx context.Context) (EC2Client, error)
	NewELBClient(ctx context.Context) (ELBClient, error)
	NewPricingClient(ctx context.Context) (pricing.GetProductsAPIClient, error)
	NewSavingsPlansClient(ctx context.Context) (SavingsPlansAPI, error)
}
