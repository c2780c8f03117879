package utils

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidResourceID = errors.New("invalid resource ID")

// ResourceID holds the segments of an ARM resource ID that the dashboard reports on
type ResourceID struct {
	SubscriptionID string
	ResourceGroup  string
	Provider       string
	Type           string
	Name           string
}

// ParseResourceID splits an Azure resource ID such as
// "/subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.Compute/disks/my-disk".
// Segment keys are matched case-insensitively; segments the ID does not carry are left empty.
func ParseResourceID(resourceID string) (ResourceID, error) {
	var id ResourceID

	trimmed := strings.Trim(resourceID, "/")
	if trimmed == "" {
		return id, fmt.Errorf("%w: empty", ErrInvalidResourceID)
	}

	parts := strings.Split(trimmed, "/")
	for i := 0; i+1 < len(parts); i++ {
		switch {
		case strings.EqualFold(parts[i], "subscriptions") && id.SubscriptionID == "":
			id.SubscriptionID = parts[i+1]
		case strings.EqualFold(parts[i], "resourceGroups") && id.ResourceGroup == "":
			id.ResourceGroup = parts[i+1]
		case strings.EqualFold(parts[i], "providers") && id.Provider == "":
			id.Provider = parts[i+1]
			// Microsoft.Compute/disks/my-disk -> type Microsoft.Compute/disks
			if i+2 < len(parts) {
				id.Type = parts[i+1] + "/" + parts[i+2]
			}
		}
	}

	if id.SubscriptionID == "" && id.ResourceGroup == "" && id.Provider == "" {
		return ResourceID{}, fmt.Errorf("%w: %q", ErrInvalidResourceID, resourceID)
	}

	id.Name = parts[len(parts)-1]
	return id, nil
}

// ExtractResourceGroup returns the resource group segment of a resource ID, or ""
func ExtractResourceGroup(resourceID string) string {
	id, err := ParseResourceID(resourceID)
	if err != nil {
		return ""
	}
	return id.ResourceGroup
}

// ExtractSubscriptionID returns the subscription segment of a resource ID
func ExtractSubscriptionID(resourceID string) (string, error) {
	id, err := ParseResourceID(resourceID)
	if err != nil {
		return "", err
	}
	if id.SubscriptionID == "" {
		return "", fmt.Errorf("%w: no subscription segment in %q", ErrInvalidResourceID, resourceID)
	}
	return id.SubscriptionID, nil
}
