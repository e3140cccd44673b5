package config

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwqar"
)

// SeedComplianceRules mirrors the DWQAR reference rule table into the
// database so controllers can serve it without touching the static table
// in pkg/dwqar. Idempotent: existing rule rows are left untouched.
func SeedComplianceRules(db *gorm.DB) error {
	rules := dwqar.DefaultRules()

	seeded := 0
	for ruleID, annual := range rules {
		row := models.ComplianceRule{
			RuleID:                ruleID,
			Category:              string(dwqar.CategoryForRule(ruleID)),
			Parameter:             dwqar.RuleParameter(ruleID),
			Description:           fmt.Sprintf("Compliance rule %s", ruleID),
			AnnualRequiredSamples: annual,
			IsActive:              true,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rule_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return fmt.Errorf("seed rule %s: %w", ruleID, res.Error)
		}
		seeded += int(res.RowsAffected)
	}

	if seeded > 0 {
		log.Printf("Seeded %d compliance rules", seeded)
	}
	return nil
}
