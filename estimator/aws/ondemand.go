package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"
	log "github.com/sirupsen/logrus"
)

// onDemandOperatingSystem narrows Price List lookups to the OS running on EKS nodes.
const onDemandOperatingSystem = "Linux"

// LookupOnDemandPrices fetches the on-demand hourly USD price of each instance
// type from the Price List API. Types with no published price are absent from
// the result.
func LookupOnDemandPrices(ctx context.Context, client pricing.GetProductsAPIClient, region string, instanceTypes []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(instanceTypes))
	for _, instanceType := range instanceTypes {
		price, ok, err := lookupOnDemandPrice(ctx, client, region, instanceType)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warnf("no on-demand price published [region=%s, type=%s]", region, instanceType)
			continue
		}
		prices[instanceType] = price
	}
	return prices, nil
}

func lookupOnDemandPrice(ctx context.Context, client pricing.GetProductsAPIClient, region, instanceType string) (float64, bool, error) {
	pag := pricing.NewGetProductsPaginator(
		client,
		&pricing.GetProductsInput{
			ServiceCode: awssdk.String("AmazonEC2"),
			MaxResults:  awssdk.Int32(MaxResultsPerPage),
			Filters: []pricingtypes.Filter{
				{
					Field: awssdk.String("regionCode"),
					Type:  pricingtypes.FilterTypeTermMatch,
					Value: awssdk.String(region),
				},
				{
					Field: awssdk.String("instanceType"),
					Type:  pricingtypes.FilterTypeTermMatch,
					Value: awssdk.String(instanceType),
				},
				{
					Field: awssdk.String("capacitystatus"),
					Type:  pricingtypes.FilterTypeTermMatch,
					Value: awssdk.String("Used"),
				},
				{
					Field: awssdk.String("tenancy"),
					Type:  pricingtypes.FilterTypeTermMatch,
					Value: awssdk.String("Shared"),
				},
				{
					Field: awssdk.String("preInstalledSw"),
					Type:  pricingtypes.FilterTypeTermMatch,
					Value: awssdk.String("NA"),
				},
				{
					Field: awssdk.String("operatingSystem"),
					Type:  pricingtypes.FilterTypeTermMatch,
					Value: awssdk.String(onDemandOperatingSystem),
				},
			},
		},
	)
	for pag.HasMorePages() {
		pricelist, err := pag.NextPage(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("error while fetching ondemand price [region=%s, type=%s]: %w", region, instanceType, err)
		}
		for _, price := range pricelist.PriceList {
			var out Pricing
			if err := json.Unmarshal([]byte(price), &out); err != nil {
				log.WithError(err).Errorf("failed to unmarshal pricing item [region=%s, type=%s]", region, instanceType)
				continue
			}

			sku := out.Product.Sku
			skuOnDemand := fmt.Sprintf("%s.%s", sku, TermOnDemand)
			skuOnDemandPerHour := fmt.Sprintf("%s.%s", skuOnDemand, TermPerHour)

			skuEntry, ok := out.Terms.OnDemand[skuOnDemand]
			if !ok {
				continue
			}
			dimEntry, ok := skuEntry.PriceDimensions[skuOnDemandPerHour]
			if !ok {
				continue
			}
			usdPrice, ok := dimEntry.PricePerUnit["USD"]
			if !ok {
				continue
			}
			value, err := strconv.ParseFloat(usdPrice, 64)
			if err != nil {
				log.WithError(err).Errorf("error while parsing ondemand price value from API response [region=%s, type=%s]", region, instanceType)
				continue
			}
			log.Debugf("Resolved on-demand price [region=%s, type=%s] = %v", region, instanceType, value)
			return value, true, nil
		}
	}
	return 0, false, nil
}
