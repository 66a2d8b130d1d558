package scoring

import (
	"github.com/ajharbinger/building-health-pipeline/internal/models"
)

// PeopleDetails carries the named metrics behind a people score.
type PeopleDetails struct {
	PaymentPunctuality float64 `json:"payment_punctuality"`
	OwnerRatio         float64 `json:"owner_ratio"`
	AvgIncomeScore     float64 `json:"avg_income_score"`
	AvgEducationScore  float64 `json:"avg_education_score"`
}

// PeopleScore scores the resident composition of a building. A building with
// no matching residents scores 0 with empty details.
func (e *Engine) PeopleScore(b models.Building, residents []models.Resident) (float64, PeopleDetails) {
	if len(residents) == 0 {
		return 0, PeopleDetails{}
	}

	punctuality := paymentPunctuality(residents, b.TotalFlats)

	// Ownership ratio against total flats, not resident count.
	owners := 0
	for _, r := range residents {
		if r.IsOwner() {
			owners++
		}
	}
	ownerRatio := 0.0
	if b.TotalFlats > 0 {
		ownerRatio = float64(owners) / float64(b.TotalFlats) * 100
	}

	// Socio-economic score: per-resident income and education scores
	// averaged, unmapped brackets scoring 0.
	var incomeSum, eduSum float64
	for _, r := range residents {
		incomeSum += IncomeScores[r.AvgMonthlyIncome]
		eduSum += EducationScores[r.EducationLevel]
	}
	avgIncome := incomeSum / float64(len(residents))
	avgEdu := eduSum / float64(len(residents))
	socioEconomic := avgIncome*0.6 + avgEdu*0.4

	score := punctuality*weightPplPunctuality +
		ownerRatio*weightOwnerRatio +
		socioEconomic*weightSocioEconomic

	details := PeopleDetails{
		PaymentPunctuality: punctuality,
		OwnerRatio:         ownerRatio,
		AvgIncomeScore:     avgIncome,
		AvgEducationScore:  avgEdu,
	}
	return clamp(score), details
}
