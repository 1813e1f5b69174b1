package estimator

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"

	"github.com/pixelfederation/eks-cost-estimator/estimator/aws"
)

// mockClientFactory implements aws.ClientFactory for testing.
type mockClientFactory struct {
	ec2Client     aws.EC2Client
	elbClient     aws.ELBClient
	pricingClient pricing.GetProductsAPIClient
	spClient      aws.SavingsPlansAPI

	ec2Err     error
	elbErr     error
	pricingErr error
	spErr      error
}

func (f *mockClientFactory) NewEC2Client(ctx context.Context) (aws.EC2Client, error) {
	return f.ec2Client, f.ec2Err
}

func (f *mockClientFactory) NewELBClient(ctx context.Context) (aws.ELBClient, error) {
	return f.elbClient, f.elbErr
}

func (f *mockClientFactory) NewPricingClient(ctx context.Context) (pricing.GetProductsAPIClient, error) {
	return f.pricingClient, f.pricingErr
}

func (f *mockClientFactory) NewSavingsPlansClient(ctx context.Context) (aws.SavingsPlansAPI, error) {
	return f.spClient, f.spErr
}

// mockEC2Client implements aws.EC2Client for testing.
type mockEC2Client struct {
	DescribeInstancesFn   func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumesFn     func(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeNatGatewaysFn func(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
}

func (m *mockEC2Client) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return m.DescribeInstancesFn(ctx, params, optFns...)
}

func (m *mockEC2Client) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	return m.DescribeVolumesFn(ctx, params, optFns...)
}

func (m *mockEC2Client) DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	return m.DescribeNatGatewaysFn(ctx, params, optFns...)
}

// mockELBClient implements aws.ELBClient for testing.
type mockELBClient struct {
	DescribeLoadBalancersFn func(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	DescribeTagsFn          func(ctx context.Context, params *elbv2.DescribeTagsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error)
}

func (m *mockELBClient) DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	return m.DescribeLoadBalancersFn(ctx, params, optFns...)
}

func (m *mockELBClient) DescribeTags(ctx context.Context, params *elbv2.DescribeTagsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error) {
	return m.DescribeTagsFn(ctx, params, optFns...)
}

// mockPricingClient implements pricing.GetProductsAPIClient for testing.
type mockPricingClient struct {
	GetProductsFn func(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

func (m *mockPricingClient) GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	return m.GetProductsFn(ctx, params, optFns...)
}

// mockSavingsPlansClient implements aws.SavingsPlansAPI for testing.
type mockSavingsPlansClient struct {
	DescribeSavingsPlansOfferingRatesFn func(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error)
}

func (m *mockSavingsPlansClient) DescribeSavingsPlansOfferingRates(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error) {
	return m.DescribeSavingsPlansOfferingRatesFn(ctx, params, optFns...)
}

// newTestConfig returns a complete configuration for the test cluster.
func newTestConfig() *Config {
	return &Config{
		ClusterName: "prod",
		Profile:     "default",
		Region:      "eu-west-1",
		Prices: &Prices{
			NATGatewayHourly:      0.045,
			ALBHourly:             0.0225,
			NLBHourly:             0.0225,
			EBSGBMonth:            0.08,
			EKSControlPlaneHourly: 0.10,
			InstanceHourly: map[string]float64{
				"m5.large":  0.096,
				"m5.xlarge": 0.192,
			},
		},
	}
}

// newTestFactory returns a factory describing a small healthy cluster:
// 2 m5.large + 1 m5.xlarge running, 340 GiB of volumes, 2 NAT gateways,
// 1 application and 1 network load balancer.
func newTestFactory() *mockClientFactory {
	return &mockClientFactory{
		ec2Client: &mockEC2Client{
			DescribeInstancesFn: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
				return &ec2.DescribeInstancesOutput{
					Reservations: []ec2types.Reservation{
						{
							Instances: []ec2types.Instance{
								{InstanceType: ec2types.InstanceTypeM5Large},
								{InstanceType: ec2types.InstanceTypeM5Large},
								{InstanceType: ec2types.InstanceTypeM5Xlarge},
							},
						},
					},
				}, nil
			},
			DescribeVolumesFn: func(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
				return &ec2.DescribeVolumesOutput{
					Volumes: []ec2types.Volume{
						{Size: awssdk.Int32(100)},
						{Size: awssdk.Int32(240)},
					},
				}, nil
			},
			DescribeNatGatewaysFn: func(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
				return &ec2.DescribeNatGatewaysOutput{
					NatGateways: []ec2types.NatGateway{
						{NatGatewayId: awssdk.String("nat-1")},
						{NatGatewayId: awssdk.String("nat-2")},
					},
				}, nil
			},
		},
		elbClient: &mockELBClient{
			DescribeLoadBalancersFn: func(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
				return &elbv2.DescribeLoadBalancersOutput{
					LoadBalancers: []elbtypes.LoadBalancer{
						{LoadBalancerArn: awssdk.String("arn:alb-1"), Type: elbtypes.LoadBalancerTypeEnumApplication},
						{LoadBalancerArn: awssdk.String("arn:nlb-1"), Type: elbtypes.LoadBalancerTypeEnumNetwork},
					},
				}, nil
			},
			DescribeTagsFn: func(ctx context.Context, params *elbv2.DescribeTagsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error) {
				out := &elbv2.DescribeTagsOutput{}
				for _, arn := range params.ResourceArns {
					out.TagDescriptions = append(out.TagDescriptions, elbtypes.TagDescription{
						ResourceArn: awssdk.String(arn),
						Tags: []elbtypes.Tag{
							{Key: awssdk.String("kubernetes.io/cluster/prod"), Value: awssdk.String("owned")},
						},
					})
				}
				return out, nil
			},
		},
	}
}
