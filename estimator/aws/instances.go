package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ClusterTagPrefix is the key prefix of the EKS ownership tag.
const ClusterTagPrefix = "kubernetes.io/cluster/"

// ClusterTagKey returns the ownership tag key for the named cluster.
func ClusterTagKey(cluster string) string {
	return ClusterTagPrefix + cluster
}

// CountInstances tallies the running EC2 instances owned by the cluster,
// keyed by instance type.
func CountInstances(ctx context.Context, client ec2.DescribeInstancesAPIClient, cluster string) (map[string]int, error) {
	counts := make(map[string]int)

	pag := ec2.NewDescribeInstancesPaginator(
		client,
		&ec2.DescribeInstancesInput{
			MaxResults: awssdk.Int32(MaxResultsPerPage),
			Filters: []ec2types.Filter{
				{
					Name:   awssdk.String("tag-key"),
					Values: []string{ClusterTagKey(cluster)},
				},
				{
					Name:   awssdk.String("instance-state-name"),
					Values: []string{"running"},
				},
			},
		})
	for pag.HasMorePages() {
		page, err := pag.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't describe instances [cluster=%s]: %w", cluster, err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				counts[string(instance.InstanceType)]++
			}
		}
	}

	return counts, nil
}
