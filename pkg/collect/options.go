package collect

import "github.com/charmbracelet/huh"

// RegionOption represents an Azure region offered by the wizard.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// Regions contains the regions offered as defaults. Any region string typed
// into the config file directly is accepted as-is.
var Regions = []RegionOption{
	{Value: "westeurope", Label: "westeurope", Description: "West Europe (Netherlands)"},
	{Value: "northeurope", Label: "northeurope", Description: "North Europe (Ireland)"},
	{Value: "uksouth", Label: "uksouth", Description: "UK South (London)"},
	{Value: "eastus", Label: "eastus", Description: "East US (Virginia)"},
	{Value: "eastus2", Label: "eastus2", Description: "East US 2 (Virginia)"},
	{Value: "westus2", Label: "westus2", Description: "West US 2 (Washington)"},
}

// RegionsToOptions converts the region table to huh select options.
func RegionsToOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(Regions))
	for _, r := range Regions {
		options = append(options, huh.NewOption(r.Label+" - "+r.Description, r.Value))
	}
	return options
}

// StorageSKUOptions contains the storage account SKUs offered by the wizard.
var StorageSKUOptions = []huh.Option[string]{
	huh.NewOption("Standard_LRS (locally redundant)", "Standard_LRS"),
	huh.NewOption("Standard_ZRS (zone redundant)", "Standard_ZRS"),
	huh.NewOption("Standard_GRS (geo redundant)", "Standard_GRS"),
}

// SourceControlKindOptions contains the repository kinds for workspace linkage.
var SourceControlKindOptions = []huh.Option[string]{
	huh.NewOption("None", "none"),
	huh.NewOption("GitHub", "github"),
	huh.NewOption("Azure DevOps", "devops"),
}
