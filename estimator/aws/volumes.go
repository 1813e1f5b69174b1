package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// SumVolumeSize returns the total size (GiB) and count of the EBS volumes
// owned by the cluster.
func SumVolumeSize(ctx context.Context, client ec2.DescribeVolumesAPIClient, cluster string) (int64, int, error) {
	var totalGiB int64
	count := 0

	pag := ec2.NewDescribeVolumesPaginator(
		client,
		&ec2.DescribeVolumesInput{
			MaxResults: awssdk.Int32(MaxResultsPerPage),
			Filters: []ec2types.Filter{
				{
					Name:   awssdk.String("tag-key"),
					Values: []string{ClusterTagKey(cluster)},
				},
			},
		})
	for pag.HasMorePages() {
		page, err := pag.NextPage(ctx)
		if err != nil {
			return 0, 0, fmt.Errorf("couldn't describe volumes [cluster=%s]: %w", cluster, err)
		}
		for _, volume := range page.Volumes {
			totalGiB += int64(awssdk.ToInt32(volume.Size))
			count++
		}
	}

	return totalGiB, count, nil
}
