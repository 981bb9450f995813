package domain

// consolidate writes the implied final mark of every GREEN question. A GREEN
// question that somehow reached this point without a provisional selection
// is left blank. Other tiers keep whatever refinement wrote.
func consolidate(questions []Question) {
	for i := range questions {
		q := &questions[i]
		if q.Confidence != ConfidenceGreen {
			continue
		}
		q.FinalSelection = q.ImpliedFinal()
	}
}
