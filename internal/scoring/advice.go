package scoring

import "fmt"

// Advice levels, most urgent first.
const (
	AdviceCritical = "critical"
	AdviceWarning  = "warning"
	AdviceInfo     = "info"
	AdviceGood     = "good"
)

// Advice is one recommendation derived from a hit/repeat measurement.
type Advice struct {
	Level   string `json:"level"`
	Subject string `json:"subject"` // hit_rate, repeat_rate, overall
	Message string `json:"message"`
}

// Advise returns recommendations for rates given as fractions.
// It assumes the rates already passed Score's validation.
func Advise(hitRate, repeatRate float64) []Advice {
	hit := hitRate * 100
	repeat := repeatRate * 100

	var advice []Advice

	switch {
	case hit < 1:
		advice = append(advice, Advice{AdviceCritical, "hit_rate",
			fmt.Sprintf("hit rate %.8f%% is very low; retrain the model", hit)})
	case hit < 5:
		advice = append(advice, Advice{AdviceWarning, "hit_rate",
			fmt.Sprintf("hit rate %.8f%% is low; fine-tune the model", hit)})
	case hit < 10:
		advice = append(advice, Advice{AdviceInfo, "hit_rate",
			fmt.Sprintf("hit rate %.8f%% has room to improve", hit)})
	default:
		advice = append(advice, Advice{AdviceGood, "hit_rate",
			fmt.Sprintf("hit rate %.8f%% is good", hit)})
	}

	switch {
	case repeat > 1:
		advice = append(advice, Advice{AdviceCritical, "repeat_rate",
			fmt.Sprintf("repeat rate %.8f%% is high; increase output diversity", repeat)})
	case repeat > 0.1:
		advice = append(advice, Advice{AdviceWarning, "repeat_rate",
			fmt.Sprintf("repeat rate %.8f%% is slightly high", repeat)})
	case repeat < 0.000001:
		advice = append(advice, Advice{AdviceGood, "repeat_rate",
			fmt.Sprintf("repeat rate %.10f%% is negligible; diversity is excellent", repeat)})
	default:
		advice = append(advice, Advice{AdviceGood, "repeat_rate",
			fmt.Sprintf("repeat rate %.8f%% is low; diversity is good", repeat)})
	}

	if hit >= 5 && repeat <= 0.1 {
		advice = append(advice, Advice{AdviceGood, "overall",
			"model performs well with a high hit rate and a low repeat rate"})
	}

	return advice
}
