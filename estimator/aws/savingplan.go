package aws

import (
	"context"
	"fmt"
	"strconv"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
	savingsplansTypes "github.com/aws/aws-sdk-go-v2/service/savingsplans/types"
	log "github.com/sirupsen/logrus"
)

const secondsPerYear int64 = 31536000

type savingPlanProperties struct {
	Region             string
	InstanceType       string
	InstanceFamily     string
	ProductDescription string
	Tenancy            string
}

// LookupSavingsPlanRates returns the cheapest 1-year no-upfront EC2Instance
// savings plan hourly rate for each of the given instance types. Types with
// no offering are absent from the result.
func LookupSavingsPlanRates(ctx context.Context, client SavingsPlansAPI, region string, instanceTypes []string) (map[string]float64, error) {
	rates := make(map[string]float64)
	if len(instanceTypes) == 0 {
		return rates, nil
	}

	params := &savingsplans.DescribeSavingsPlansOfferingRatesInput{
		MaxResults:                MaxResultsPerPage,
		SavingsPlanTypes:          []savingsplansTypes.SavingsPlanType{savingsplansTypes.SavingsPlanTypeEc2Instance},
		SavingsPlanPaymentOptions: []savingsplansTypes.SavingsPlanPaymentOption{savingsplansTypes.SavingsPlanPaymentOptionNoUpfront},
		ServiceCodes:              []savingsplansTypes.SavingsPlanRateServiceCode{"AmazonEC2"},
		Filters: []savingsplansTypes.SavingsPlanOfferingRateFilterElement{
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeRegion,
				Values: []string{region},
			},
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeTenancy,
				Values: []string{"shared"},
			},
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeProductDescription,
				Values: []string{"Linux/UNIX"},
			},
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeInstanceType,
				Values: instanceTypes,
			},
		},
	}

	for {
		resp, err := client.DescribeSavingsPlansOfferingRates(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("error while fetching savings plan rates [region=%s]: %w", region, err)
		}

		for _, plan := range resp.SearchResults {
			properties := convertPropertiesToStruct(plan.Properties)

			if plan.SavingsPlanOffering == nil || plan.SavingsPlanOffering.DurationSeconds != secondsPerYear {
				continue
			}

			value, err := strconv.ParseFloat(awssdk.ToString(plan.Rate), 64)
			if err != nil {
				log.WithError(err).Errorf("error while parsing saving plan price value from API response [region=%s, type=%s]", region, properties.InstanceType)
				continue
			}

			if existing, ok := rates[properties.InstanceType]; !ok || value < existing {
				rates[properties.InstanceType] = value
			}
		}

		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		params.NextToken = resp.NextToken
	}

	return rates, nil
}

func convertPropertiesToStruct(properties []savingsplansTypes.SavingsPlanOfferingRateProperty) savingPlanProperties {
	result := savingPlanProperties{}

	for _, property := range properties {
		if property.Name != nil && property.Value != nil {
			switch *property.Name {
			case string(savingsplansTypes.SavingsPlanRatePropertyKeyRegion):
				result.Region = *property.Value
			case string(savingsplansTypes.SavingsPlanRatePropertyKeyInstanceType):
				result.InstanceType = *property.Value
			case string(savingsplansTypes.SavingsPlanRatePropertyKeyInstanceFamily):
				result.InstanceFamily = *property.Value
			case string(savingsplansTypes.SavingsPlanRatePropertyKeyProductDescription):
				result.ProductDescription = *property.Value
			case string(savingsplansTypes.SavingsPlanRatePropertyKeyTenancy):
				result.Tenancy = *property.Value
			}
		}
	}

	return result
}
