package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	log "github.com/sirupsen/logrus"
)

// describeTagsMaxARNs is the per-call resource limit of the ELBv2 DescribeTags API.
const describeTagsMaxARNs = 20

// LoadBalancerCounts holds the per-type counts of cluster-owned load balancers.
type LoadBalancerCounts struct {
	Application int
	Network     int
}

// CountLoadBalancers classifies the ELBv2 load balancers owned by the cluster
// into application and network buckets. The ELBv2 API has no server-side tag
// filter, so every load balancer is listed and ownership is checked through
// DescribeTags. Gateway load balancers are ignored.
func CountLoadBalancers(ctx context.Context, client ELBClient, cluster string) (LoadBalancerCounts, error) {
	var counts LoadBalancerCounts

	typeByArn := make(map[string]elbtypes.LoadBalancerTypeEnum)
	var arns []string

	pag := elbv2.NewDescribeLoadBalancersPaginator(client, &elbv2.DescribeLoadBalancersInput{})
	for pag.HasMorePages() {
		page, err := pag.NextPage(ctx)
		if err != nil {
			return counts, fmt.Errorf("couldn't describe load balancers [cluster=%s]: %w", cluster, err)
		}
		for _, lb := range page.LoadBalancers {
			if lb.Type != elbtypes.LoadBalancerTypeEnumApplication && lb.Type != elbtypes.LoadBalancerTypeEnumNetwork {
				log.Debugf("Skipping load balancer type: %s", lb.Type)
				continue
			}
			arn := awssdk.ToString(lb.LoadBalancerArn)
			typeByArn[arn] = lb.Type
			arns = append(arns, arn)
		}
	}

	tagKey := ClusterTagKey(cluster)
	for start := 0; start < len(arns); start += describeTagsMaxARNs {
		end := start + describeTagsMaxARNs
		if end > len(arns) {
			end = len(arns)
		}
		out, err := client.DescribeTags(ctx, &elbv2.DescribeTagsInput{ResourceArns: arns[start:end]})
		if err != nil {
			return LoadBalancerCounts{}, fmt.Errorf("couldn't describe load balancer tags [cluster=%s]: %w", cluster, err)
		}
		for _, description := range out.TagDescriptions {
			if !hasTagKey(description.Tags, tagKey) {
				continue
			}
			switch typeByArn[awssdk.ToString(description.ResourceArn)] {
			case elbtypes.LoadBalancerTypeEnumApplication:
				counts.Application++
			case elbtypes.LoadBalancerTypeEnumNetwork:
				counts.Network++
			}
		}
	}

	return counts, nil
}

func hasTagKey(tags []elbtypes.Tag, key string) bool {
	for _, tag := range tags {
		if awssdk.ToString(tag.Key) == key {
			return true
		}
	}
	return false
}
