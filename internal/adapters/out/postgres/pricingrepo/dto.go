// Package pricingrepo persists pricing rule versions. One version spans five
// tables (the version row plus zone, urgency, conditional and peak window
// children) written and read as a unit, and the holiday calendar used by the
// quote path.
package pricingrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
)

// RuleVersionDTO is the version row. Child rows reference it by version ID.
type RuleVersionDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	VersionCode   string    `gorm:"type:varchar(64);uniqueIndex"`
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsActive      bool            `gorm:"index"`
	MinimumCharge decimal.Decimal `gorm:"type:numeric(12,2)"`
	MaxDistanceKm float64
}

// TableName overrides GORM's default naming to use "pricing_rule_versions".
func (RuleVersionDTO) TableName() string {
	return "pricing_rule_versions"
}

// ZoneRuleDTO is one zone band of a version.
type ZoneRuleDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	VersionID uuid.UUID `gorm:"type:uuid;index"`
	Zone      int
	MinKm     float64
	MaxKm     float64
	BaseValue decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName overrides GORM's default naming to use "pricing_zone_rules".
func (ZoneRuleDTO) TableName() string {
	return "pricing_zone_rules"
}

// UrgencyAddonDTO is one urgency tier addon of a version.
type UrgencyAddonDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	VersionID uuid.UUID       `gorm:"type:uuid;index"`
	Urgency   string          `gorm:"type:varchar(16)"`
	Addon     decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName overrides GORM's default naming to use "pricing_urgency_addons".
func (UrgencyAddonDTO) TableName() string {
	return "pricing_urgency_addons"
}

// ConditionalAddonDTO is one conditional addon of a version.
type ConditionalAddonDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	VersionID uuid.UUID       `gorm:"type:uuid;index"`
	Condition string          `gorm:"type:varchar(16)"`
	Addon     decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName overrides GORM's default naming to use "pricing_conditional_addons".
func (ConditionalAddonDTO) TableName() string {
	return "pricing_conditional_addons"
}

// PeakWindowDTO is one peak hour window of a version.
type PeakWindowDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	VersionID uuid.UUID `gorm:"type:uuid;index"`
	StartHour int
	EndHour   int
}

// TableName overrides GORM's default naming to use "pricing_peak_windows".
func (PeakWindowDTO) TableName() string {
	return "pricing_peak_windows"
}

// HolidayDTO is one calendar holiday. Holidays are reference data independent
// of rule versions.
type HolidayDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	HolidayOn string `gorm:"type:date;uniqueIndex"`
	Name      string `gorm:"type:varchar(128)"`
}

// TableName overrides GORM's default naming to use "pricing_holidays".
func (HolidayDTO) TableName() string {
	return "pricing_holidays"
}

type ruleVersionRows struct {
	version           RuleVersionDTO
	zoneRules         []ZoneRuleDTO
	urgencyAddons     []UrgencyAddonDTO
	conditionalAddons []ConditionalAddonDTO
	peakWindows       []PeakWindowDTO
}

func fromDomain(aggregate *pricing.RuleVersion) ruleVersionRows {
	versionID := aggregate.ID().Bytes()

	rows := ruleVersionRows{
		version: RuleVersionDTO{
			ID:            versionID,
			VersionCode:   aggregate.VersionCode(),
			EffectiveFrom: aggregate.EffectiveFrom(),
			EffectiveTo:   aggregate.EffectiveTo(),
			IsActive:      aggregate.IsActive(),
			MinimumCharge: aggregate.MinimumCharge().Decimal(),
			MaxDistanceKm: aggregate.MaxDistanceKm(),
		},
	}

	for _, zone := range aggregate.ZoneRules() {
		rows.zoneRules = append(rows.zoneRules, ZoneRuleDTO{
			VersionID: versionID,
			Zone:      zone.Zone,
			MinKm:     zone.MinKm,
			MaxKm:     zone.MaxKm,
			BaseValue: zone.BaseValue.Decimal(),
		})
	}
	for urgency, addon := range aggregate.UrgencyAddons() {
		rows.urgencyAddons = append(rows.urgencyAddons, UrgencyAddonDTO{
			VersionID: versionID,
			Urgency:   urgency.String(),
			Addon:     addon.Decimal(),
		})
	}
	for condition, addon := range aggregate.ConditionalAddons() {
		rows.conditionalAddons = append(rows.conditionalAddons, ConditionalAddonDTO{
			VersionID: versionID,
			Condition: string(condition),
			Addon:     addon.Decimal(),
		})
	}
	for _, window := range aggregate.PeakWindows() {
		rows.peakWindows = append(rows.peakWindows, PeakWindowDTO{
			VersionID: versionID,
			StartHour: window.StartHour,
			EndHour:   window.EndHour,
		})
	}

	return rows
}

func toDomain(rows ruleVersionRows) (*pricing.RuleVersion, error) {
	id, err := kernel.UUIDFromBytes(rows.version.ID[:])
	if err != nil {
		return nil, err
	}
	minimumCharge, err := kernel.NewMoney(rows.version.MinimumCharge)
	if err != nil {
		return nil, err
	}

	params := pricing.RuleVersionParams{
		ID:            id,
		VersionCode:   rows.version.VersionCode,
		EffectiveFrom: rows.version.EffectiveFrom,
		MinimumCharge: minimumCharge,
		MaxDistanceKm: rows.version.MaxDistanceKm,

		UrgencyAddons:     make(map[kernel.Urgency]kernel.Money, len(rows.urgencyAddons)),
		ConditionalAddons: make(map[pricing.Condition]kernel.Money, len(rows.conditionalAddons)),
	}

	for _, zone := range rows.zoneRules {
		baseValue, zoneErr := kernel.NewMoney(zone.BaseValue)
		if zoneErr != nil {
			return nil, zoneErr
		}
		params.ZoneRules = append(params.ZoneRules, pricing.ZoneRule{
			Zone:      zone.Zone,
			MinKm:     zone.MinKm,
			MaxKm:     zone.MaxKm,
			BaseValue: baseValue,
		})
	}
	for _, addon := range rows.urgencyAddons {
		value, addonErr := kernel.NewMoney(addon.Addon)
		if addonErr != nil {
			return nil, addonErr
		}
		params.UrgencyAddons[kernel.Urgency(addon.Urgency)] = value
	}
	for _, addon := range rows.conditionalAddons {
		value, addonErr := kernel.NewMoney(addon.Addon)
		if addonErr != nil {
			return nil, addonErr
		}
		params.ConditionalAddons[pricing.Condition(addon.Condition)] = value
	}
	for _, window := range rows.peakWindows {
		params.PeakWindows = append(params.PeakWindows, pricing.PeakWindow{
			StartHour: window.StartHour,
			EndHour:   window.EndHour,
		})
	}

	return pricing.RestoreRuleVersion(params, rows.version.IsActive, rows.version.EffectiveTo)
}
