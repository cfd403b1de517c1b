package scoring

// Band is a qualitative maturity level over a 0-100 score.
type Band int

const (
	BandCritical Band = iota
	BandSignificantGaps
	BandDeveloping
	BandWellEstablished
	BandIndustryLeading
)

// BandFor places score into its band: [0,20] critical, [21,40] significant
// gaps, [41,60] developing, [61,80] well-established, [81,100] industry-leading.
func BandFor(score int) Band {
	switch {
	case score >= 81:
		return BandIndustryLeading
	case score >= 61:
		return BandWellEstablished
	case score >= 41:
		return BandDeveloping
	case score >= 21:
		return BandSignificantGaps
	default:
		return BandCritical
	}
}

func (b Band) String() string {
	switch b {
	case BandIndustryLeading:
		return "industry-leading"
	case BandWellEstablished:
		return "well-established"
	case BandDeveloping:
		return "developing"
	case BandSignificantGaps:
		return "significant gaps"
	default:
		return "critical"
	}
}

// Label is the legend line used for the band.
func (b Band) Label() string {
	switch b {
	case BandIndustryLeading:
		return "Industry-leading practices"
	case BandWellEstablished:
		return "Well-established practices"
	case BandDeveloping:
		return "Developing capabilities"
	case BandSignificantGaps:
		return "Significant improvements needed"
	default:
		return "Critical gaps requiring immediate attention"
	}
}

// Description is the narrative assessment of a score in this band.
func (b Band) Description() string {
	switch b {
	case BandIndustryLeading:
		return "Industry-leading practices demonstrated in this area. Focus on maintaining excellence and sharing best practices."
	case BandWellEstablished:
		return "Well-established practices in place. Opportunities exist for further optimization and refinement."
	case BandDeveloping:
		return "Developing capabilities with room for maturation. Key processes need strengthening."
	case BandSignificantGaps:
		return "Significant improvements needed. Several critical gaps require attention."
	default:
		return "Critical gaps requiring immediate attention. Fundamental processes need to be established."
	}
}

// Bands lists all bands from lowest to highest with their inclusive bounds.
var Bands = []struct {
	Band     Band
	Min, Max int
}{
	{BandCritical, 0, 20},
	{BandSignificantGaps, 21, 40},
	{BandDeveloping, 41, 60},
	{BandWellEstablished, 61, 80},
	{BandIndustryLeading, 81, 100},
}

// LikertLabel describes a single response value. Values outside [1,5] are
// "Not assessed".
func LikertLabel(value int) string {
	switch value {
	case 1:
		return "Not implemented - No formal processes or controls in place"
	case 2:
		return "Initial/Ad hoc - Basic processes exist but are inconsistent"
	case 3:
		return "Defined - Standardized processes implemented but not fully mature"
	case 4:
		return "Managed - Well-defined processes with regular monitoring"
	case 5:
		return "Optimized - Industry-leading practices with continuous improvement"
	default:
		return "Not assessed"
	}
}
