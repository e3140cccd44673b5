package dwqar

import "strings"

// RuleCategory groups compliance rules by the rule ID prefix used in the
// official DWQAR reporting template (RuleIDs sheet).
type RuleCategory string

const (
	CategoryBacteriological RuleCategory = "BACTERIOLOGICAL" // T1.*
	CategoryChemical        RuleCategory = "CHEMICAL"        // T2.*
	CategoryProtozoa        RuleCategory = "PROTOZOA"        // T3.*
	CategoryRadiological    RuleCategory = "RADIOLOGICAL"    // T4.*
	CategoryMonitoring      RuleCategory = "MONITORING"      // M*
	CategoryVerification    RuleCategory = "VERIFICATION"    // V*
	CategoryOperational     RuleCategory = "OPERATIONAL"     // O*
	CategoryWaterQuality    RuleCategory = "WATER_QUALITY"
)

// CategoryForRule derives the category from a rule identifier such as
// "T1.8-ecol" or "T2.1-pH".
func CategoryForRule(ruleID string) RuleCategory {
	switch {
	case strings.HasPrefix(ruleID, "T1"):
		return CategoryBacteriological
	case strings.HasPrefix(ruleID, "T2"):
		return CategoryChemical
	case strings.HasPrefix(ruleID, "T3"):
		return CategoryProtozoa
	case strings.HasPrefix(ruleID, "T4"):
		return CategoryRadiological
	case strings.HasPrefix(ruleID, "M"):
		return CategoryMonitoring
	case strings.HasPrefix(ruleID, "V"):
		return CategoryVerification
	case strings.HasPrefix(ruleID, "O"):
		return CategoryOperational
	default:
		return CategoryWaterQuality
	}
}

// RuleParameter extracts the measured parameter from a rule identifier
// ("T1.8-ecol" -> "ecol"). Empty when the rule has no parameter suffix.
func RuleParameter(ruleID string) string {
	if i := strings.IndexByte(ruleID, '-'); i >= 0 {
		return strings.ToLower(ruleID[i+1:])
	}
	return ""
}

// annualRequiredSamples is the reference table of minimum sample counts
// per rule over a full reporting year. The regulator's template is the
// source of truth; this mirror exists so aggregation can run without a
// database round-trip per rule. Quarterly requirements scale down, see
// RequiredSamples.
var annualRequiredSamples = map[string]int{
	"T1.8-ecol":   52, // weekly E. coli
	"T1.9-tcoli":  12,
	"T2.1-pH":     12,
	"T2.2-fac":    52, // free available chlorine
	"T2.4-nitra":  4,
	"T2.5-fluor":  4,
	"T3.1-crypto": 12,
	"T3.2-giard":  12,
	"M1.1-turb":   52,
	"V1.1-ecol":   12,
	"O1.1-fac":    52,
	"O2.1-turb":   12,
}

// DefaultRules returns the rule IDs of the reference table, used for
// seeding and for aggregation when the caller supplies no override.
func DefaultRules() map[string]int {
	out := make(map[string]int, len(annualRequiredSamples))
	for id, n := range annualRequiredSamples {
		out[id] = n
	}
	return out
}

// RequiredSamples returns the minimum sample count for a rule within the
// period: the annual figure for annual periods, otherwise a quarter of it
// rounded up. Unknown rules require at least one sample.
func RequiredSamples(ruleID string, p Period) int {
	return requiredFor(ruleID, annualRequiredSamples, p)
}
