package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// CountNATGateways counts the available NAT gateways owned by the cluster.
func CountNATGateways(ctx context.Context, client ec2.DescribeNatGatewaysAPIClient, cluster string) (int, error) {
	count := 0

	pag := ec2.NewDescribeNatGatewaysPaginator(
		client,
		&ec2.DescribeNatGatewaysInput{
			MaxResults: awssdk.Int32(MaxResultsPerPage),
			Filter: []ec2types.Filter{
				{
					Name:   awssdk.String("tag-key"),
					Values: []string{ClusterTagKey(cluster)},
				},
				{
					Name:   awssdk.String("state"),
					Values: []string{"available"},
				},
			},
		})
	for pag.HasMorePages() {
		page, err := pag.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("couldn't describe NAT gateways [cluster=%s]: %w", cluster, err)
		}
		count += len(page.NatGateways)
	}

	return count, nil
}
