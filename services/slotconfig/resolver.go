package slotconfig

import (
	"sort"

	"go.uber.org/zap"

	"frontdesk/models"
	"frontdesk/utils"
)

// FromTenant resolves the ordered slot plan from a loaded tenant document,
// preferring the current config, then the legacy slot list, then a conversion
// of the legacy free-form prompts. The source label lets turn traces show
// where the plan came from; SourceNone means booking cannot proceed.
func FromTenant(tenant *models.Tenant) ([]models.SlotDefinition, models.ConfigSource) {
	if len(tenant.SlotConfig) > 0 {
		return ordered(tenant.SlotConfig), models.SourceCurrent
	}
	if len(tenant.LegacySlotConfig) > 0 {
		return ordered(convertLegacy(tenant.LegacySlotConfig)), models.SourceLegacy
	}
	if len(tenant.LegacyPrompts) > 0 {
		slots := convertPrompts(tenant.LegacyPrompts)
		if len(slots) > 0 {
			utils.GetLogger().Warn("tenant running on legacy prompt conversion",
				zap.String("tenantId", tenant.ID))
			return ordered(slots), models.SourceLegacyPrompts
		}
	}
	return nil, models.SourceNone
}

func ordered(slots []models.SlotDefinition) []models.SlotDefinition {
	out := make([]models.SlotDefinition, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// convertLegacy lifts the old key/prompt slot list into the current shape.
// Legacy slots had no confirm-back support and were required unless marked
// optional.
func convertLegacy(legacy []models.LegacySlot) []models.SlotDefinition {
	out := make([]models.SlotDefinition, 0, len(legacy))
	for i, ls := range legacy {
		out = append(out, models.SlotDefinition{
			SlotID:   ls.Key,
			Question: ls.Prompt,
			Required: !ls.Optional,
			Order:    i,
			Type:     typeForKey(ls.Key),
		})
	}
	return out
}

// convertPrompts maps the oldest configuration, a bare map of prompt strings
// keyed by field name, onto slot definitions. Unknown keys become free-text
// slots ordered after the known ones.
func convertPrompts(prompts map[string]string) []models.SlotDefinition {
	known := []string{"name", "phone", "address", "time"}
	out := make([]models.SlotDefinition, 0, len(prompts))
	order := 0
	for _, key := range known {
		prompt, ok := prompts[key]
		if !ok || prompt == "" {
			continue
		}
		out = append(out, models.SlotDefinition{
			SlotID:   key,
			Question: prompt,
			Required: true,
			Order:    order,
			Type:     typeForKey(key),
		})
		order++
	}
	extras := make([]string, 0, len(prompts))
	for key := range prompts {
		if typeForKey(key) == models.SlotTypeText && prompts[key] != "" {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		out = append(out, models.SlotDefinition{
			SlotID:   key,
			Question: prompts[key],
			Required: false,
			Order:    order,
			Type:     models.SlotTypeText,
		})
		order++
	}
	return out
}

func typeForKey(key string) models.SlotType {
	switch key {
	case "name", "full_name", "customer_name":
		return models.SlotTypeName
	case "phone", "phone_number", "callback_number":
		return models.SlotTypePhone
	case "address", "service_address", "street_address":
		return models.SlotTypeAddress
	case "time", "time_window", "preferred_time":
		return models.SlotTypeTime
	default:
		return models.SlotTypeText
	}
}
