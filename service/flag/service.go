package flag

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

const (
	FlagSubscription = "subscription"
	FlagChart        = "chart"
)

type service struct {
	flags *pflag.FlagSet
}

func NewService(flags *pflag.FlagSet) *service {
	return &service{flags: flags}
}

// Register adds the report flags to a command's flag set
func Register(flags *pflag.FlagSet) {
	RegisterSubscription(flags)
	flags.Bool(FlagChart, false, "Display daily totals as a bar chart")
}

func RegisterSubscription(flags *pflag.FlagSet) {
	flags.StringP(FlagSubscription, "s", "", "Azure subscription ID (defaults to AZURE_SUBSCRIPTION_ID)")
}

// GetSubscription returns --subscription, falling back to defaultSubscription
func (s *service) GetSubscription(defaultSubscription string) (string, error) {
	subscription, err := s.flags.GetString(FlagSubscription)
	if err != nil {
		return "", err
	}
	if subscription == "" {
		subscription = defaultSubscription
	}
	if subscription == "" {
		return "", fmt.Errorf("--%s or AZURE_SUBSCRIPTION_ID is required", FlagSubscription)
	}
	return subscription, nil
}

// GetParsedFlags reads the registered flags for the given report. defaultSubscription
// is used when --subscription was not given.
func (s *service) GetParsedFlags(report, defaultSubscription string) (model.Flags, error) {
	subscription, err := s.GetSubscription(defaultSubscription)
	if err != nil {
		return model.Flags{}, err
	}

	chart, err := s.flags.GetBool(FlagChart)
	if err != nil {
		return model.Flags{}, err
	}

	return model.Flags{
		Subscription: subscription,
		Report:       report,
		Chart:        chart,
	}, nil
}
