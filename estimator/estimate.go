package estimator

// HoursPerMonth converts hourly rates to monthly figures.
const HoursPerMonth = 730

// Category keys, used as metric label values in exporter mode.
const (
	CategoryInstances     = "ec2_instances"
	CategoryVolumes       = "ebs_volumes"
	CategoryNATGateways   = "nat_gateways"
	CategoryLoadBalancers = "load_balancers"
	CategoryControlPlane  = "eks_control_plane"
)

// CategoryCost is one line of the report.
type CategoryCost struct {
	Key     string  // stable identifier, used as metric label
	Name    string  // report line heading
	Monthly float64 // USD per month
	Detail  string  // observed quantities, e.g. "12 instances"
}

// SavingsPlanComparison is the optional instance-fleet cost at savings plan rates.
type SavingsPlanComparison struct {
	Monthly float64 // USD per month at savings plan rates
	Covered int     // running instances with an offering rate
	Total   int     // running instances considered
}

// Estimate is the result of one estimation run.
type Estimate struct {
	Cluster     string
	Region      string
	Categories  []CategoryCost
	SavingsPlan *SavingsPlanComparison
}

// Total returns the sum of all category monthly costs.
func (e *Estimate) Total() float64 {
	var total float64
	for _, category := range e.Categories {
		total += category.Monthly
	}
	return total
}

// MonthlyFromHourly converts an hourly rate to a monthly figure.
func MonthlyFromHourly(hourly float64) float64 {
	return hourly * HoursPerMonth
}
