package estimator

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/eks-cost-estimator/estimator/aws"
)

// Estimator computes the static monthly cost of one EKS cluster from
// read-only describe/list queries and the configured unit prices.
type Estimator struct {
	cfg     *Config
	factory aws.ClientFactory
}

// New returns an Estimator for the given settings and client factory.
func New(cfg *Config, factory aws.ClientFactory) *Estimator {
	return &Estimator{cfg: cfg, factory: factory}
}

// Estimate runs every resource query and aggregates the per-category monthly
// costs. Any AWS query error is fatal to the run; there is no partial result.
func (e *Estimator) Estimate(ctx context.Context) (*Estimate, error) {
	cluster := e.cfg.ClusterName
	prices := e.cfg.Prices

	ec2Client, err := e.factory.NewEC2Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create EC2 client: %w", err)
	}
	elbClient, err := e.factory.NewELBClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create ELB client: %w", err)
	}

	estimate := &Estimate{Cluster: cluster, Region: e.cfg.Region}

	log.Debugf("querying running instances [cluster=%s]", cluster)
	instanceCounts, err := aws.CountInstances(ctx, ec2Client, cluster)
	if err != nil {
		return nil, err
	}
	instanceCost, err := e.instanceCost(ctx, instanceCounts)
	if err != nil {
		return nil, err
	}
	estimate.Categories = append(estimate.Categories, instanceCost)

	log.Debugf("querying EBS volumes [cluster=%s]", cluster)
	totalGiB, volumeCount, err := aws.SumVolumeSize(ctx, ec2Client, cluster)
	if err != nil {
		return nil, err
	}
	estimate.Categories = append(estimate.Categories, CategoryCost{
		Key:     CategoryVolumes,
		Name:    "EBS volumes",
		Monthly: float64(totalGiB) * prices.EBSGBMonth,
		Detail:  fmt.Sprintf("%d GiB in %d volumes", totalGiB, volumeCount),
	})

	log.Debugf("querying NAT gateways [cluster=%s]", cluster)
	gateways, err := aws.CountNATGateways(ctx, ec2Client, cluster)
	if err != nil {
		return nil, err
	}
	estimate.Categories = append(estimate.Categories, CategoryCost{
		Key:     CategoryNATGateways,
		Name:    "NAT gateways",
		Monthly: MonthlyFromHourly(float64(gateways) * prices.NATGatewayHourly),
		Detail:  fmt.Sprintf("%d gateways", gateways),
	})

	log.Debugf("querying load balancers [cluster=%s]", cluster)
	lbs, err := aws.CountLoadBalancers(ctx, elbClient, cluster)
	if err != nil {
		return nil, err
	}
	estimate.Categories = append(estimate.Categories, CategoryCost{
		Key:     CategoryLoadBalancers,
		Name:    "Load balancers",
		Monthly: MonthlyFromHourly(float64(lbs.Application)*prices.ALBHourly + float64(lbs.Network)*prices.NLBHourly),
		Detail:  fmt.Sprintf("%d application, %d network", lbs.Application, lbs.Network),
	})

	estimate.Categories = append(estimate.Categories, CategoryCost{
		Key:     CategoryControlPlane,
		Name:    "EKS control plane",
		Monthly: MonthlyFromHourly(prices.EKSControlPlaneHourly),
		Detail:  "1 cluster",
	})

	if e.cfg.SavingsPlans {
		comparison, err := e.savingsPlanComparison(ctx, instanceCounts)
		if err != nil {
			return nil, err
		}
		estimate.SavingsPlan = comparison
	}

	return estimate, nil
}

// instanceCost prices the running instance fleet. Instance types without a
// configured hourly price are omitted from the total with a warning, unless
// the Price List fallback is enabled and resolves them.
func (e *Estimator) instanceCost(ctx context.Context, counts map[string]int) (CategoryCost, error) {
	configured := e.cfg.Prices.InstanceHourly

	var missing []string
	for instanceType := range counts {
		if _, ok := configured[instanceType]; !ok {
			missing = append(missing, instanceType)
		}
	}
	sort.Strings(missing)

	resolved := map[string]float64{}
	if e.cfg.LookupMissingPrices && len(missing) > 0 {
		pricingClient, err := e.factory.NewPricingClient(ctx)
		if err != nil {
			return CategoryCost{}, fmt.Errorf("failed to create Pricing client: %w", err)
		}
		resolved, err = aws.LookupOnDemandPrices(ctx, pricingClient, e.cfg.Region, missing)
		if err != nil {
			return CategoryCost{}, err
		}
	}

	var hourly float64
	instances := 0
	for instanceType, count := range counts {
		price, ok := configured[instanceType]
		if !ok {
			price, ok = resolved[instanceType]
		}
		if !ok {
			log.Warnf("no hourly price for instance type, omitting from total [type=%s, count=%d]", instanceType, count)
			continue
		}
		hourly += float64(count) * price
		instances += count
	}

	return CategoryCost{
		Key:     CategoryInstances,
		Name:    "EC2 instances",
		Monthly: MonthlyFromHourly(hourly),
		Detail:  fmt.Sprintf("%d instances", instances),
	}, nil
}

// savingsPlanComparison prices the running fleet at the cheapest 1-year
// no-upfront EC2Instance savings plan rate per type.
func (e *Estimator) savingsPlanComparison(ctx context.Context, counts map[string]int) (*SavingsPlanComparison, error) {
	instanceTypes := make([]string, 0, len(counts))
	for instanceType := range counts {
		instanceTypes = append(instanceTypes, instanceType)
	}
	sort.Strings(instanceTypes)

	spClient, err := e.factory.NewSavingsPlansClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create SavingsPlans client: %w", err)
	}
	rates, err := aws.LookupSavingsPlanRates(ctx, spClient, e.cfg.Region, instanceTypes)
	if err != nil {
		return nil, err
	}

	comparison := &SavingsPlanComparison{}
	var hourly float64
	for instanceType, count := range counts {
		comparison.Total += count
		rate, ok := rates[instanceType]
		if !ok {
			log.Warnf("no savings plan offering rate [region=%s, type=%s]", e.cfg.Region, instanceType)
			continue
		}
		hourly += float64(count) * rate
		comparison.Covered += count
	}
	comparison.Monthly = MonthlyFromHourly(hourly)

	return comparison, nil
}
